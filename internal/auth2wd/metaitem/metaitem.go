// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package metaitem

import (
	"sort"

	"github.com/wikitools/auth2wd/internal/auth2wd/externalid"
)

// AliasEntry is one (language, value) pair in MetaItem.Aliases.
type AliasEntry struct {
	Lang  string
	Value string
}

// MetaItem is the draft entity a SourceAdapter populates and an
// ItemMerger folds together. See spec.md §3.
type MetaItem struct {
	Labels       map[string]string
	Aliases      []AliasEntry
	Descriptions map[string]string
	Sitelinks    map[string]string
	Claims       []Statement

	// PropText holds free-text values awaiting the rescue pass, reusing
	// ExternalId as the (property, text) pair it structurally is.
	PropText []externalid.ExternalId
}

// New returns an empty MetaItem.
func New() *MetaItem {
	return &MetaItem{
		Labels:       make(map[string]string),
		Descriptions: make(map[string]string),
		Sitelinks:    make(map[string]string),
	}
}

// AddLabel sets the label for lang if none is set yet; otherwise, if value
// differs from the existing label, it is recorded as an alias instead.
func (m *MetaItem) AddLabel(lang, value string) {
	if value == "" {
		return
	}
	if existing, ok := m.Labels[lang]; !ok {
		m.Labels[lang] = value
		return
	} else if existing == value {
		return
	}
	m.AddAlias(lang, value)
}

// AddAlias appends (lang, value) to Aliases unless already present.
func (m *MetaItem) AddAlias(lang, value string) {
	if value == "" {
		return
	}
	for _, a := range m.Aliases {
		if a.Lang == lang && a.Value == value {
			return
		}
	}
	m.Aliases = append(m.Aliases, AliasEntry{Lang: lang, Value: value})
}

// AddDescription sets the description for lang only if none is set yet:
// "first value per language wins" (spec.md §4.4 step 6).
func (m *MetaItem) AddDescription(lang, value string) {
	if value == "" {
		return
	}
	if _, ok := m.Descriptions[lang]; ok {
		return
	}
	m.Descriptions[lang] = value
}

// AddSitelink adds a sitelink if site is not already present.
func (m *MetaItem) AddSitelink(site, title string) {
	if _, ok := m.Sitelinks[site]; ok {
		return
	}
	m.Sitelinks[site] = title
}

// AddPropText appends a free-text value pending rescue, deduplicating
// against anything already queued for the same property.
func (m *MetaItem) AddPropText(property int, text string) {
	e := externalid.New(property, text)
	for _, existing := range m.PropText {
		if existing == e {
			return
		}
	}
	m.PropText = append(m.PropText, e)
}

// AddClaim appends a statement, folding it into an existing one sharing
// the same structural key (main snak + qualifiers) by unioning references
// instead of creating a duplicate claim. qualifierInsensitive names
// properties for which qualifiers are ignored when computing the key.
func (m *MetaItem) AddClaim(st Statement, qualifierInsensitive map[int]bool) {
	for i := range m.Claims {
		if StatementsEqual(m.Claims[i], st, qualifierInsensitive) {
			m.Claims[i].References = unionReferences(m.Claims[i].References, st.References)
			return
		}
	}
	m.Claims = append(m.Claims, st)
}

func unionReferences(existing, incoming []Reference) []Reference {
	out := existing
	for _, ref := range incoming {
		if !ReferenceExists(out, ref) {
			out = append(out, ref)
		}
	}
	return out
}

// ReferenceExists implements the tolerant reference-match rule of
// spec.md §4.6: a reference is already present when it is literally equal
// to one in existing, or when it shares at least one external-id part.
// It is exported for the merger, which applies the same rule when folding
// an incoming statement's references onto a structurally-equal existing one.
func ReferenceExists(existing []Reference, ref Reference) bool {
	newParts := ref.ExternalIDParts()
	for _, e := range existing {
		if ReferencesLiterallyEqual(e, ref) {
			return true
		}
		if len(newParts) == 0 {
			continue
		}
		for _, p := range e.ExternalIDParts() {
			for _, np := range newParts {
				if p == np {
					return true
				}
			}
		}
	}
	return false
}

// ReferencesLiterallyEqual compares two references as sets of snaks.
func ReferencesLiterallyEqual(a, b Reference) bool {
	ak, bk := referenceKeys(a), referenceKeys(b)
	if len(ak) != len(bk) {
		return false
	}
	for i := range ak {
		if ak[i] != bk[i] {
			return false
		}
	}
	return true
}

func referenceKeys(r Reference) []string {
	keys := make([]string, len(r))
	for i, s := range r {
		keys[i] = snakKey(s)
	}
	sort.Strings(keys)
	return keys
}

// Cleanup sorts and deduplicates PropText, per spec.md §4.4's closing
// step run by every adapter after its source-specific extraction.
func (m *MetaItem) Cleanup() {
	m.PropText = externalid.SortAndDedup(m.PropText)
}

// ExternalIDClaims returns one ExternalId per ExternalID-valued mainsnak
// in m.Claims: the set of cross-source identifiers a crawl can dispatch
// next, or that a fetched base item can be seeded from.
func (m *MetaItem) ExternalIDClaims() []externalid.ExternalId {
	var out []externalid.ExternalId
	for _, st := range m.Claims {
		if st.MainSnak.Value.Kind != ValueExternalID {
			continue
		}
		out = append(out, externalid.New(st.MainSnak.Property, st.MainSnak.Value.Str))
	}
	return out
}
