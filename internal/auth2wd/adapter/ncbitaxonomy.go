// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func init() {
	register(SupportedProperty{
		Property: properties.NCBITaxonomy,
		Name:     "NCBI Taxonomy",
		Source:   "National Center for Biotechnology Information",
		DemoID:   "9606",
		New:      func(id string) (SourceAdapter, error) { return NewNCBITaxonomy(id) },
	})
}

const (
	ncbiStatedIn  = "Q13711410"
	ncbiKeyURL    = "https://www.ncbi.nlm.nih.gov/Taxonomy/Browser/wwwtax.cgi?id=%s"
	ncbiFetchURL  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi?db=taxonomy&id=%s"
)

// NCBI's eutils efetch only emits XML, not JSON; spec.md §6 notes this is
// normalized "via XML-to-JSON" upstream of the core, but since that
// translation step is itself outside the core's scope (§1), this adapter
// just decodes the XML directly with encoding/xml rather than round-
// tripping through JSON for no benefit.
type ncbiTaxaSet struct {
	XMLName xml.Name   `xml:"TaxaSet"`
	Taxon   []ncbiTaxon `xml:"Taxon"`
}

type ncbiTaxon struct {
	ScientificName string `xml:"ScientificName"`
	Rank           string `xml:"Rank"`
	ParentTaxID    string `xml:"ParentTaxId"`
}

// NCBITaxonomy adapts the NCBI Taxonomy database.
type NCBITaxonomy struct {
	id string
}

func NewNCBITaxonomy(id string) (*NCBITaxonomy, error) {
	if id == "" {
		return nil, fmt.Errorf("ncbitaxonomy: empty id")
	}
	return &NCBITaxonomy{id: id}, nil
}

func (a *NCBITaxonomy) MyProperty() int             { return properties.NCBITaxonomy }
func (a *NCBITaxonomy) MyID() string                { return a.id }
func (a *NCBITaxonomy) MyStatedIn() string          { return ncbiStatedIn }
func (a *NCBITaxonomy) PrimaryLanguage() string     { return "en" }
func (a *NCBITaxonomy) GetKeyURL(key string) string { return fmt.Sprintf(ncbiKeyURL, key) }
func (a *NCBITaxonomy) TransformLabel(s string) string { return metaitem.IdentityTransform(s) }

func (a *NCBITaxonomy) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, fmt.Sprintf(ncbiFetchURL, a.id))
	if err != nil {
		return nil, fmt.Errorf("ncbitaxonomy %s: %w", a.id, err)
	}
	var set ncbiTaxaSet
	if err := xml.Unmarshal([]byte(body), &set); err != nil {
		return nil, fmt.Errorf("ncbitaxonomy %s: %w", a.id, err)
	}
	if len(set.Taxon) == 0 {
		return nil, fmt.Errorf("ncbitaxonomy %s: no taxon in response", a.id)
	}
	taxon := set.Taxon[0]

	m := metaitem.New()
	m.AddClaim(SelfClaim(a), nil)
	ref := SelfReference(a)

	if taxon.ScientificName != "" {
		m.ApplyLabelCandidate(a.PrimaryLanguage(), taxon.ScientificName, a.TransformLabel)
		addTaxonNameClaim(m, taxon.ScientificName, ref)
	}
	addInstanceOfTaxon(m, ref)
	addTaxonRankClaim(m, strings.ToLower(taxon.Rank), taxon.ScientificName, ref)

	return Finish(ctx, m), nil
}
