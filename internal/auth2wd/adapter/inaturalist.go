// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func init() {
	register(SupportedProperty{
		Property: properties.INaturalistTaxon,
		Name:     "iNaturalist",
		Source:   "iNaturalist",
		DemoID:   "627975",
		New:      func(id string) (SourceAdapter, error) { return NewINaturalist(id) },
	})
}

const (
	inaturalistStatedIn     = "Q16958215"
	inaturalistKeyURLFormat = "https://www.inaturalist.org/taxa/%s"
)

// reINaturalistEmbeddedJSON pulls the taxon JSON object iNaturalist embeds
// in a page-bootstrap <script> tag; the page itself is not an API
// response (spec.md §4.4: "extracts a JSON object embedded in an HTML
// script").
var reINaturalistEmbeddedJSON = regexp.MustCompile(`(?s)var\s+TAXON\s*=\s*(\{.*?\});`)

type inaturalistPhoto struct {
	URL         string `json:"medium_url"`
	License     string `json:"license_code"`
	Attribution string `json:"attribution"`
}

type inaturalistAncestor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Rank string `json:"rank"`
}

type inaturalistTaxonJSON struct {
	Name                  string                `json:"name"`
	Rank                  string                `json:"rank"`
	PreferredCommonName   string                `json:"preferred_common_name"`
	ConservationStatus    *struct {
		StatusCode string `json:"status"`
	} `json:"conservation_status"`
	Ancestors   []inaturalistAncestor `json:"ancestors"`
	TaxonPhotos []struct {
		Photo inaturalistPhoto `json:"photo"`
	} `json:"taxon_photos"`
}

// INaturalist adapts iNaturalist's taxon pages.
type INaturalist struct {
	id string
}

func NewINaturalist(id string) (*INaturalist, error) {
	if id == "" {
		return nil, fmt.Errorf("inaturalist: empty id")
	}
	return &INaturalist{id: id}, nil
}

func (a *INaturalist) MyProperty() int             { return properties.INaturalistTaxon }
func (a *INaturalist) MyID() string                { return a.id }
func (a *INaturalist) MyStatedIn() string          { return inaturalistStatedIn }
func (a *INaturalist) PrimaryLanguage() string     { return "en" }
func (a *INaturalist) GetKeyURL(key string) string { return fmt.Sprintf(inaturalistKeyURLFormat, key) }
func (a *INaturalist) TransformLabel(s string) string { return metaitem.IdentityTransform(s) }

func (a *INaturalist) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id))
	if err != nil {
		return nil, fmt.Errorf("inaturalist %s: %w", a.id, err)
	}
	match := reINaturalistEmbeddedJSON.FindStringSubmatch(body)
	if match == nil {
		return nil, fmt.Errorf("inaturalist %s: no embedded taxon JSON found", a.id)
	}
	var doc inaturalistTaxonJSON
	if err := json.Unmarshal([]byte(match[1]), &doc); err != nil {
		return nil, fmt.Errorf("inaturalist %s: %w", a.id, err)
	}

	m := metaitem.New()
	m.AddClaim(SelfClaim(a), nil)
	ref := SelfReference(a)

	if doc.Name != "" {
		m.ApplyLabelCandidate(a.PrimaryLanguage(), doc.Name, a.TransformLabel)
		addTaxonNameClaim(m, doc.Name, ref)
	}
	if doc.PreferredCommonName != "" {
		m.AddClaim(metaitem.Statement{
			MainSnak:   metaitem.NewSnak(properties.TaxonCommonName, metaitem.MonolingualTextValue(a.PrimaryLanguage(), doc.PreferredCommonName)),
			References: []metaitem.Reference{ref},
		}, nil)
	}
	addInstanceOfTaxon(m, ref)
	addTaxonRankClaim(m, doc.Rank, doc.Name, ref)

	if len(doc.Ancestors) > 0 {
		parent := doc.Ancestors[len(doc.Ancestors)-1]
		addParentTaxonClaimByINaturalistID(ctx, m, parent.ID, ref)
	}

	if doc.ConservationStatus != nil {
		addIUCNStatusClaim(m, doc.ConservationStatus.StatusCode, ref)
	}

	for _, tp := range doc.TaxonPhotos {
		if tp.Photo.URL == "" {
			continue
		}
		var qualifiers []metaitem.Snak
		if tp.Photo.License != "" {
			qualifiers = append(qualifiers, metaitem.NewSnak(properties.CopyrightLicense, metaitem.ExternalIDValue(tp.Photo.License)))
		}
		if tp.Photo.Attribution != "" {
			qualifiers = append(qualifiers, metaitem.NewSnak(properties.MediaLegend, metaitem.MonolingualTextValue("en", tp.Photo.Attribution)))
		}
		if ext := photoFormat(tp.Photo.URL); ext != "" {
			qualifiers = append(qualifiers, metaitem.NewSnak(properties.FileFormat, metaitem.ExternalIDValue(ext)))
		}
		statement := metaitem.Statement{
			MainSnak:   metaitem.NewSnak(properties.CommonsCompatibleImageURL, metaitem.URLValue(tp.Photo.URL)),
			Qualifiers: qualifiers,
			References: []metaitem.Reference{ref},
		}
		m.AddClaim(statement, nil)
	}

	return Finish(ctx, m), nil
}

// photoFormat recovers a file extension (without the leading dot) from a
// photo URL's last path segment, for the P2701 file-format qualifier.
func photoFormat(url string) string {
	base := url
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	idx := strings.LastIndexByte(base, '.')
	if idx < 0 || idx == len(base)-1 {
		return ""
	}
	return base[idx+1:]
}
