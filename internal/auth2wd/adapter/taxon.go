// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"fmt"

	"github.com/gnames/gnparser"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/wbsearch"
)

// taxonRankMap is a representative subset of the ≈65-entry fixed
// taxonomic-rank table (spec.md §4.4). The remaining ranks (parvorder
// and a long tail of rarely-used zoological/botanical intermediate
// ranks) are not mapped; for one of them addTaxonRankClaim falls back to
// the scientific name's cardinality, and where that gives no rank either
// it leaves P105 unset and records the raw rank string as prop_text.
var taxonRankMap = map[string]string{
	"kingdom":      "Q36732",
	"phylum":       "Q38348",
	"division":     "Q38348",
	"class":        "Q37517",
	"order":        "Q36602",
	"family":       "Q35409",
	"subfamily":    "Q164280",
	"tribe":        "Q227936",
	"genus":        "Q34740",
	"subgenus":     "Q3238261",
	"species":      "Q7432",
	"subspecies":   "Q68947",
	"variety":      "Q767728",
	"form":         "Q279749",
	"superfamily":  "Q2136103",
	"infraorder":   "Q2928679",
	"suborder":     "Q5867051",
	"subclass":     "Q5867959",
	"superclass":   "Q3504061",
	"subphylum":    "Q1153785",
}

// iucnStatusMap maps IUCN Red List three-letter codes onto their
// Wikidata conservation-status items.
var iucnStatusMap = map[string]string{
	"EX": "Q237350",
	"EW": "Q239509",
	"CR": "Q219127",
	"EN": "Q11394",
	"VU": "Q278113",
	"NT": "Q719675",
	"LC": "Q211005",
	"DD": "Q3245245",
	"NE": "Q3350324",
}

var taxonConceptClass = "Q16521" // "taxon"

// gnp is a package-level gnparser instance; the library's own docs
// recommend reusing one across calls since construction compiles its
// grammar once.
var gnp = gnparser.New(gnparser.NewConfig())

// canonicalTaxonName parses a raw scientific-name string, returning the
// canonical form gnparser derives (stripping authorship, normalizing
// whitespace/italics markup) plus its cardinality (1 = uninomial,
// 2 = binomial, 3 = trinomial), used as a rank fallback when a source
// omits an explicit rank.
func canonicalTaxonName(raw string) (canonical string, cardinality int, ok bool) {
	parsed := gnp.ParseName(raw)
	if !parsed.Parsed || parsed.Canonical == nil {
		return "", 0, false
	}
	return parsed.Canonical.Simple, parsed.Cardinality, true
}

// rankFromCardinality is the fallback used when a source gives a bare
// scientific name with no explicit rank: two words implies species,
// three implies subspecies/variety level, one implies genus-or-above
// (left unset, since a uninomial could be anything from kingdom to
// genus).
func rankFromCardinality(cardinality int) (string, bool) {
	switch cardinality {
	case 2:
		return taxonRankMap["species"], true
	case 3:
		return taxonRankMap["subspecies"], true
	default:
		return "", false
	}
}

// addTaxonNameClaim writes P225 from the canonicalized scientific name,
// falling back to the raw string verbatim when gnparser cannot parse it.
func addTaxonNameClaim(m *metaitem.MetaItem, raw string, ref metaitem.Reference) {
	name := raw
	if canonical, _, ok := canonicalTaxonName(raw); ok && canonical != "" {
		name = canonical
	}
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(properties.TaxonName, metaitem.MonolingualTextValue("mul", name)),
		References: []metaitem.Reference{ref},
	}, nil)
}

// addTaxonRankClaim writes P105 from a source-given rank string when it
// is present in taxonRankMap, else falls back to cardinality of the
// scientific name. When neither yields a rank, a non-empty source rank
// string is recorded as prop_text instead.
func addTaxonRankClaim(m *metaitem.MetaItem, sourceRank, scientificName string, ref metaitem.Reference) {
	item, ok := taxonRankMap[sourceRank]
	if !ok {
		if _, cardinality, parseOK := canonicalTaxonName(scientificName); parseOK {
			item, ok = rankFromCardinality(cardinality)
		}
	}
	if !ok {
		if sourceRank != "" {
			m.AddPropText(properties.TaxonRank, sourceRank)
		}
		return
	}
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(properties.TaxonRank, metaitem.ItemValue(item)),
		References: []metaitem.Reference{ref},
	}, nil)
}

// addInstanceOfTaxon writes the fixed P31=Q16521 ("taxon") claim every
// taxon adapter emits.
func addInstanceOfTaxon(m *metaitem.MetaItem, ref metaitem.Reference) {
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(properties.InstanceOf, metaitem.ItemValue(taxonConceptClass)),
		References: []metaitem.Reference{ref},
	}, nil)
}

// addParentTaxonClaim resolves a parent's scientific name to a Wikidata
// item via the search endpoint, constrained to taxon items, and writes
// P171 if a single unambiguous hit comes back (spec.md §8: "P171 resolved
// through search"). Used by sources (GBIF) whose parent record carries no
// stable externally-searchable taxon id, only a name.
func addParentTaxonClaim(ctx context.Context, m *metaitem.MetaItem, parentName string, ref metaitem.Reference) {
	if parentName == "" {
		return
	}
	query := fmt.Sprintf("haswbstatement:P225=%q haswbstatement:P31=%s", parentName, taxonConceptClass)
	item, ok := wbsearch.SingleItem(ctx, query)
	if !ok {
		return
	}
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(properties.ParentTaxon, metaitem.ItemValue(item)),
		References: []metaitem.Reference{ref},
	}, nil)
}

// addParentTaxonClaimByINaturalistID resolves a parent by the ancestor's
// iNaturalist taxon id (spec.md: "resolved via P3151 + P31=Q16521
// search"), avoiding the name-collision risk of a name-based lookup
// across homonymous taxa.
func addParentTaxonClaimByINaturalistID(ctx context.Context, m *metaitem.MetaItem, parentID int, ref metaitem.Reference) {
	if parentID == 0 {
		return
	}
	query := fmt.Sprintf("haswbstatement:P%d=%d haswbstatement:P31=%s", properties.INaturalistTaxon, parentID, taxonConceptClass)
	item, ok := wbsearch.SingleItem(ctx, query)
	if !ok {
		return
	}
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(properties.ParentTaxon, metaitem.ItemValue(item)),
		References: []metaitem.Reference{ref},
	}, nil)
}

// addIUCNStatusClaim writes P141 from a three-letter Red List code.
func addIUCNStatusClaim(m *metaitem.MetaItem, code string, ref metaitem.Reference) {
	item, ok := iucnStatusMap[code]
	if !ok {
		return
	}
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(properties.IUCNConservationStatus, metaitem.ItemValue(item)),
		References: []metaitem.Reference{ref},
	}, nil)
}
