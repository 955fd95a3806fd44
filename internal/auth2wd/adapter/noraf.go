// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wikitools/auth2wd/internal/auth2wd/externalid"
	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/urlrecognizer"
)

func init() {
	register(SupportedProperty{
		Property: properties.NORAF,
		Name:     "NORAF",
		Source:   "Norwegian Authority File (BIBSYS)",
		DemoID:   "90524395",
		New:      func(id string) (SourceAdapter, error) { return NewNORAF(id) },
	})
}

const (
	norafStatedIn     = "Q16902450"
	norafKeyURLFormat = "https://authority.bibsys.no/authority/rest/authorities/v2/%s?format=json"
)

// norafField mirrors a MARC field's subfield list, keyed by subfield code.
type norafField struct {
	Tag       string            `json:"tag"`
	Subfields map[string]string `json:"subfields"`
}

type norafRecord struct {
	Marc           []norafField        `json:"marc"`
	IdentifiersMap map[string][]string `json:"identifiersMap"`
}

// NORAF adapts BIBSYS's Norwegian authority file, published as a
// MARC-like JSON envelope rather than RDF (spec.md §4.4).
type NORAF struct {
	id string
}

func NewNORAF(id string) (*NORAF, error) {
	if id == "" {
		return nil, fmt.Errorf("noraf: empty id")
	}
	return &NORAF{id: id}, nil
}

func (a *NORAF) MyProperty() int             { return properties.NORAF }
func (a *NORAF) MyID() string                { return a.id }
func (a *NORAF) MyStatedIn() string          { return norafStatedIn }
func (a *NORAF) PrimaryLanguage() string     { return "no" }
func (a *NORAF) GetKeyURL(key string) string { return fmt.Sprintf(norafKeyURLFormat, key) }
func (a *NORAF) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *NORAF) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id))
	if err != nil {
		return nil, fmt.Errorf("noraf %s: %w", a.id, err)
	}
	var rec norafRecord
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, fmt.Errorf("noraf %s: %w", a.id, err)
	}

	m := metaitem.New()
	m.AddClaim(SelfClaim(a), nil)
	self := SelfReference(a)

	for _, field := range rec.Marc {
		if field.Tag != "100" {
			continue
		}
		if name, ok := field.Subfields["a"]; ok && name != "" {
			m.ApplyLabelCandidate(a.PrimaryLanguage(), name, a.TransformLabel)
		}
		if span, ok := field.Subfields["d"]; ok {
			if start, end, ok := ParseYearRange(span); ok {
				addYearClaim(m, properties.DateOfBirth, start, self)
				addYearClaim(m, properties.DateOfDeath, end, self)
			}
		}
	}

	for _, urls := range rec.IdentifiersMap {
		for _, url := range urls {
			if externalid.Blocked(url) {
				continue
			}
			id, ok := urlrecognizer.Recognize(url)
			if !ok || !id.CheckIfValid(ctx) {
				continue
			}
			m.AddClaim(metaitem.Statement{
				MainSnak:   metaitem.NewSnak(id.Property, metaitem.ExternalIDValue(id.ID)),
				References: []metaitem.Reference{self},
			}, nil)
		}
	}

	return Finish(ctx, m), nil
}

// addYearClaim records a bare-year date claim, skipping placeholder
// zero years (a literal 0 from a malformed subfield should not become a
// claim).
func addYearClaim(m *metaitem.MetaItem, property, year int, ref metaitem.Reference) {
	if year == 0 {
		return
	}
	iso := fmt.Sprintf("%04d-01-01T00:00:00Z", year)
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(property, metaitem.TimeValueOf(iso, 9)),
		References: []metaitem.Reference{ref},
	}, nil)
}
