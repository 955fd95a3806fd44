// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package metaitem

import (
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxTextLength is the 250-grapheme ceiling spec.md §4.4/§8 invariant 5
// imposes on every stored label, alias and description.
const MaxTextLength = 250

// TruncateGraphemes shortens s to at most max grapheme clusters, so a
// multi-codepoint cluster (an emoji with modifiers, a combining-mark
// letter) is never split in the middle.
func TruncateGraphemes(s string, max int) string {
	seg := graphemes.NewSegmenter([]byte(s))
	count, end := 0, 0
	for seg.Next() {
		if count >= max {
			break
		}
		end += len(seg.Bytes())
		count++
	}
	return s[:end]
}

// IdentityTransform is the default transform_label: no change.
func IdentityTransform(s string) string { return s }

// TransformLabelLastFirst turns "Last, First" into "First Last"; inputs
// without ", " are returned unchanged. Invariant 4 of spec.md §8.
func TransformLabelLastFirst(s string) string {
	last, first, ok := strings.Cut(s, ", ")
	if !ok {
		return s
	}
	return first + " " + last
}

// LowerFirstFrench lowercases s's first rune using French casing rules,
// leaving the remainder untouched: the description rule of spec.md §4.4
// step 6 ("For French, lowercase the first character").
func LowerFirstFrench(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	lowered := cases.Lower(language.French).String(string(r))
	return lowered + s[size:]
}

// ApplyLabelCandidate implements the per-literal rule of spec.md §4.4
// step 5: transform, truncate to 250 graphemes, then set the label if the
// language has none yet, otherwise record an alias unless the candidate
// matches the existing label or that label's own transformed form.
func (m *MetaItem) ApplyLabelCandidate(lang, raw string, transform func(string) string) {
	candidate := TruncateGraphemes(transform(raw), MaxTextLength)
	if candidate == "" {
		return
	}
	existing, ok := m.Labels[lang]
	if !ok {
		m.Labels[lang] = candidate
		return
	}
	if candidate == existing || candidate == transform(existing) {
		return
	}
	m.AddAlias(lang, candidate)
}

// ApplyDescriptionCandidate implements step 6: first value per language
// wins, truncated to 250 graphemes, with French first-letter lowercasing.
func (m *MetaItem) ApplyDescriptionCandidate(lang, raw string) {
	if lang == "fr" {
		raw = LowerFirstFrench(raw)
	}
	m.AddDescription(lang, TruncateGraphemes(raw, MaxTextLength))
}
