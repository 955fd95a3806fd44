// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func init() {
	register(SupportedProperty{
		Property: properties.GBIFTaxon,
		Name:     "GBIF",
		Source:   "Global Biodiversity Information Facility",
		DemoID:   "2496344",
		New:      func(id string) (SourceAdapter, error) { return NewGBIF(id) },
	})
}

const (
	gbifStatedIn     = "Q1531570"
	gbifKeyURLFormat = "https://www.gbif.org/species/%s"
	gbifAPIFormat    = "https://api.gbif.org/v1/species/%s"
)

type gbifTaxonJSON struct {
	ScientificName    string `json:"canonicalName"`
	Rank              string `json:"rank"`
	ParentKey         int    `json:"parentKey"`
	Kingdom           string `json:"kingdom"`
}

type gbifParentJSON struct {
	CanonicalName string `json:"canonicalName"`
}

// GBIF adapts the Global Biodiversity Information Facility's species API,
// a straightforward JSON taxon record (spec.md §4.4: "follows the same
// skeleton [as iNaturalist], from its own API shape").
type GBIF struct {
	id string
}

func NewGBIF(id string) (*GBIF, error) {
	if id == "" {
		return nil, fmt.Errorf("gbif: empty id")
	}
	return &GBIF{id: id}, nil
}

func (a *GBIF) MyProperty() int             { return properties.GBIFTaxon }
func (a *GBIF) MyID() string                { return a.id }
func (a *GBIF) MyStatedIn() string          { return gbifStatedIn }
func (a *GBIF) PrimaryLanguage() string     { return "en" }
func (a *GBIF) GetKeyURL(key string) string { return fmt.Sprintf(gbifKeyURLFormat, key) }
func (a *GBIF) TransformLabel(s string) string { return metaitem.IdentityTransform(s) }

func (a *GBIF) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, fmt.Sprintf(gbifAPIFormat, a.id))
	if err != nil {
		return nil, fmt.Errorf("gbif %s: %w", a.id, err)
	}
	var doc gbifTaxonJSON
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("gbif %s: %w", a.id, err)
	}

	m := metaitem.New()
	m.AddClaim(SelfClaim(a), nil)
	ref := SelfReference(a)

	if doc.ScientificName != "" {
		m.ApplyLabelCandidate(a.PrimaryLanguage(), doc.ScientificName, a.TransformLabel)
		addTaxonNameClaim(m, doc.ScientificName, ref)
	}
	addInstanceOfTaxon(m, ref)
	addTaxonRankClaim(m, strings.ToLower(doc.Rank), doc.ScientificName, ref)

	if doc.ParentKey != 0 {
		parentBody, err := httpclient.GetText(ctx, fmt.Sprintf(gbifAPIFormat, fmt.Sprint(doc.ParentKey)))
		if err == nil {
			var parent gbifParentJSON
			if json.Unmarshal([]byte(parentBody), &parent) == nil {
				addParentTaxonClaim(ctx, m, parent.CanonicalName, ref)
			}
		}
	}

	return Finish(ctx, m), nil
}
