// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package urlrecognizer turns an outbound IRI into an ExternalId, or
// reports that it recognises none. It is a pure function over an ordered
// table of (regex, replacement template, property) rows, grounded on the
// original tool's EXTERNAL_ID_REGEXPS table in external_importer.rs.
package urlrecognizer

import (
	"regexp"

	"github.com/wikitools/auth2wd/internal/auth2wd/externalid"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

type row struct {
	pattern  *regexp.Regexp
	template string
	property int
}

// table is ordered; entries must not overlap for the same URL (tested by
// TestTableIsUnambiguous in urlrecognizer_test.go). Every pattern anchors
// the full string.
var table = []row{
	{regexp.MustCompile(`^https?://viaf\.org/viaf/(\d+)$`), "$1", properties.VIAF},
	{regexp.MustCompile(`^https?://isni\.org/isni/(\d{4})(\d{4})(\d{4})(\d{4})$`), "$1 $2 $3 $4", properties.ISNI},
	{regexp.MustCompile(`^https?://isni-url\.oclc\.nl/isni/(\d{4})(\d{4})(\d{4})(\d{4})$`), "$1 $2 $3 $4", properties.ISNI},
	{regexp.MustCompile(`^https?://d-nb\.info/gnd/(1[012]?\d{7}[0-9X]|[47]\d{6}-\d|[1-9]\d{0,7}-[0-9X]|3\d{7}[0-9X])$`), "$1", properties.GND},
	{regexp.MustCompile(`^https?://id\.loc\.gov/authorities/names/(gf|n|nb|nr|no|ns|sh|sj)([4-9][0-9]|00|20[0-2][0-9])([0-9]{6})$`), "$1$2$3", properties.LoC},
	{regexp.MustCompile(`^https?://id\.loc\.gov/rwo/agents/(gf|n|nb|nr|no|ns|sh|sj)([4-9][0-9]|00|20[0-2][0-9])([0-9]{6})(\.html)?$`), "$1$2$3", properties.LoC},
	{regexp.MustCompile(`^https?://data\.bnf\.fr/(\d{8,9}).*$`), "$1", properties.BnF},
	{regexp.MustCompile(`^https?://data\.bnf\.fr/ark:/12148/cb(\d{8,9}[0-9bcdfghjkmnpqrstvwxz]).*$`), "$1", properties.BnF},
	{regexp.MustCompile(`^https?://www\.idref\.fr/(\d{8}[\dX])$`), "$1", properties.IdRef},
	{regexp.MustCompile(`^https?://libris\.kb\.se/resource/auth/([1-9]\d{4,5})$`), "$1", properties.SELIBR},
	{regexp.MustCompile(`^https?://sws\.geonames\.org/([1-9][0-9]{0,8}).*$`), "$1", properties.GeonamesID},
	{regexp.MustCompile(`^https?://orcid\.org/(\d{4}-\d{4}-\d{4}-\d{3}[0-9X])$`), "$1", properties.ORCID},
	{regexp.MustCompile(`^https?://id\.ndl\.go\.jp/auth/ndlna/([0-9]{8})$`), "$1", properties.NDL},
	{regexp.MustCompile(`^https?://vocab\.getty\.edu/ulan/([0-9]+)$`), "$1", properties.ULAN},
	{regexp.MustCompile(`^https?://datos\.bne\.es/resource/(XX[0-9]+)$`), "$1", properties.BNE},
	{regexp.MustCompile(`^https?://authority\.bibsys\.no/authority/rest/authorities/v2/([0-9]+)$`), "$1", properties.NORAF},
	{regexp.MustCompile(`^https?://www\.worldcat\.org/identities/([A-Za-z0-9-]+)$`), "$1", properties.WorldCat},
	{regexp.MustCompile(`^https?://data\.bibliotheken\.nl/id/thes/p([0-9]+)$`), "$1", properties.NB},
	{regexp.MustCompile(`^https?://pubchem\.ncbi\.nlm\.nih\.gov/compound/([0-9]+)$`), "$1", properties.PubChemCID},
	{regexp.MustCompile(`^https?://www\.ncbi\.nlm\.nih\.gov/taxonomy/([0-9]+)$`), "$1", properties.NCBITaxonomy},
	{regexp.MustCompile(`^https?://www\.gbif\.org/species/([0-9]+)$`), "$1", properties.GBIFTaxon},
	{regexp.MustCompile(`^https?://www\.inaturalist\.org/taxa/([0-9]+)(-.*)?$`), "$1", properties.INaturalistTaxon},
}

// Recognize returns the ExternalId that url encodes, or false if no row's
// pattern matches the whole URL.
func Recognize(url string) (externalid.ExternalId, bool) {
	for _, r := range table {
		if !r.pattern.MatchString(url) {
			continue
		}
		id := r.pattern.ReplaceAllString(url, r.template)
		return externalid.New(r.property, id), true
	}
	return externalid.ExternalId{}, false
}
