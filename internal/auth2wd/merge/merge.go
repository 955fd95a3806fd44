// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package merge implements the ItemMerger: a pure fold of two MetaItems
// into one, producing a MergeDiff. See spec.md §4.6.
package merge

import (
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

// QualifierInsensitiveProperties is the escape hatch of spec.md §4.6 and
// §9: properties whose qualifiers are ignored when deciding whether two
// statements are "the same fact", so that sources disagreeing on
// qualifier detail still collapse into one statement.
var QualifierInsensitiveProperties = map[int]bool{
	properties.TaxonName: true,
}

// datePrecisionProperties are the only properties the precision rule and
// fix_dates sweep apply to.
var datePrecisionProperties = map[int]bool{
	properties.DateOfBirth: true,
	properties.DateOfDeath: true,
}

// MergeDiff is the additive edit script produced by Merge, relative to
// the base item's pre-merge state.
type MergeDiff struct {
	Labels            map[string]string
	Descriptions      map[string]string
	Aliases           []metaitem.AliasEntry
	Sitelinks         map[string]string
	AlteredStatements map[string]metaitem.Statement // keyed by base statement id
	AddedStatements   []metaitem.Statement
}

func newDiff() *MergeDiff {
	return &MergeDiff{
		Labels:            make(map[string]string),
		Descriptions:      make(map[string]string),
		Sitelinks:         make(map[string]string),
		AlteredStatements: make(map[string]metaitem.Statement),
	}
}

// Merge folds incoming into base in place and returns the diff describing
// what changed. base and incoming are never mutated for each other's
// sake beyond base absorbing incoming's content; incoming is left as-is.
func Merge(base *metaitem.MetaItem, incoming *metaitem.MetaItem) *MergeDiff {
	diff := newDiff()

	for lang, value := range incoming.Labels {
		mergeLabel(base, diff, lang, value)
	}
	for _, a := range incoming.Aliases {
		mergeLabel(base, diff, a.Lang, a.Value)
	}
	for lang, value := range incoming.Descriptions {
		if _, ok := base.Descriptions[lang]; !ok {
			base.Descriptions[lang] = value
			diff.Descriptions[lang] = value
		}
	}
	for site, title := range incoming.Sitelinks {
		if _, ok := base.Sitelinks[site]; !ok {
			base.Sitelinks[site] = title
			diff.Sitelinks[site] = title
		}
	}

	baseHasImage := hasClaim(base.Claims, properties.Image)

	for _, st := range incoming.Claims {
		if baseHasImage && st.MainSnak.Property == properties.CommonsCompatibleImageURL {
			continue // fix_images: P18 already present, drop P4765 claims
		}
		mergeStatement(base, diff, st)
	}

	fixDates(base)

	base.PropText = append(base.PropText, incoming.PropText...)
	base.Cleanup()

	return diff
}

// mergeLabel applies "first write wins, duplicate becomes an alias" to
// both MetaItem.Labels and MetaItem.Aliases sources, since spec.md §4.6
// folds both through the same rule.
func mergeLabel(base *metaitem.MetaItem, diff *MergeDiff, lang, value string) {
	if value == "" {
		return
	}
	existing, ok := base.Labels[lang]
	if !ok {
		base.Labels[lang] = value
		diff.Labels[lang] = value
		return
	}
	if existing == value {
		return
	}
	for _, a := range base.Aliases {
		if a.Lang == lang && a.Value == value {
			return
		}
	}
	base.Aliases = append(base.Aliases, metaitem.AliasEntry{Lang: lang, Value: value})
	diff.Aliases = append(diff.Aliases, metaitem.AliasEntry{Lang: lang, Value: value})
}

func hasClaim(claims []metaitem.Statement, property int) bool {
	for _, c := range claims {
		if c.MainSnak.Property == property {
			return true
		}
	}
	return false
}

// mergeStatement folds one incoming statement into base, implementing
// structural-equality dedup, the tolerant reference fold, and the
// date-precision rule for newly-added date claims.
func mergeStatement(base *metaitem.MetaItem, diff *MergeDiff, incoming metaitem.Statement) {
	for i := range base.Claims {
		if !metaitem.StatementsEqual(base.Claims[i], incoming, QualifierInsensitiveProperties) {
			continue
		}
		if incoming.MainSnak.Value.Kind == metaitem.ValueExternalID {
			return // no reference noise on identifier claims
		}
		added := false
		for _, ref := range incoming.References {
			if metaitem.ReferenceExists(base.Claims[i].References, ref) {
				continue
			}
			base.Claims[i].References = append(base.Claims[i].References, ref)
			added = true
		}
		if added && base.Claims[i].ID != "" {
			diff.AlteredStatements[base.Claims[i].ID] = base.Claims[i]
		}
		return
	}

	if datePrecisionProperties[incoming.MainSnak.Property] && checkNewClaimForDates(base.Claims, incoming) {
		incoming.Rank = metaitem.RankDeprecated
		if !hasQualifier(incoming.Qualifiers, properties.LessPreciseValueQualifier) {
			incoming.Qualifiers = append(append([]metaitem.Snak(nil), incoming.Qualifiers...), metaitem.NewSnak(
				properties.LessPreciseValueQualifier,
				metaitem.ItemValue(properties.LessPreciseReasonValue),
			))
		}
	}
	base.Claims = append(base.Claims, incoming)
	diff.AddedStatements = append(diff.AddedStatements, incoming)
}

// checkNewClaimForDates implements spec.md §4.6: when the incoming
// statement's property already has a higher-precision claim in base, the
// incoming one is deprecated on arrival rather than waiting for fixDates.
func checkNewClaimForDates(baseClaims []metaitem.Statement, incoming metaitem.Statement) bool {
	if incoming.MainSnak.Value.Time == nil {
		return false
	}
	for _, c := range baseClaims {
		if c.MainSnak.Property != incoming.MainSnak.Property {
			continue
		}
		if c.MainSnak.Value.Time == nil {
			continue
		}
		if c.MainSnak.Value.Time.Precision > incoming.MainSnak.Value.Time.Precision {
			return true
		}
	}
	return false
}

// fixDates is the symmetric sweep: demote every Normal-rank date-of-birth
// or date-of-death statement whose precision is below the best observed
// for that property, attaching a P2241=Q42727519 reason qualifier.
// Guarantees invariant 10 of spec.md §8 (precision monotonicity).
func fixDates(m *metaitem.MetaItem) {
	best := map[int]int{}
	for _, c := range m.Claims {
		if !datePrecisionProperties[c.MainSnak.Property] || c.MainSnak.Value.Time == nil {
			continue
		}
		if p := c.MainSnak.Value.Time.Precision; p > best[c.MainSnak.Property] {
			best[c.MainSnak.Property] = p
		}
	}
	for i := range m.Claims {
		c := &m.Claims[i]
		if !datePrecisionProperties[c.Property()] || c.MainSnak.Value.Time == nil {
			continue
		}
		if c.Rank != metaitem.RankNormal {
			continue
		}
		if c.MainSnak.Value.Time.Precision >= best[c.Property()] {
			continue
		}
		c.Rank = metaitem.RankDeprecated
		if !hasQualifier(c.Qualifiers, properties.LessPreciseValueQualifier) {
			c.Qualifiers = append(c.Qualifiers, metaitem.NewSnak(
				properties.LessPreciseValueQualifier,
				metaitem.ItemValue(properties.LessPreciseReasonValue),
			))
		}
	}
}

func hasQualifier(qualifiers []metaitem.Snak, property int) bool {
	for _, q := range qualifiers {
		if q.Property == property {
			return true
		}
	}
	return false
}
