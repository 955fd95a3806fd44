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
		Property: properties.WorldCat,
		Name:     "WorldCat Identities",
		Source:   "OCLC WorldCat",
		DemoID:   "E39PBJd87VvgDDTV6RxBYm6qcP",
		New:      func(id string) (SourceAdapter, error) { return NewWorldCat(id) },
	})
}

const (
	worldcatStatedIn     = "Q2831330"
	worldcatKeyURLFormat = "https://www.worldcat.org/identities/%s"
)

type worldcatJSONLD struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SameAs      []string `json:"sameAs"`
}

// WorldCat adapts OCLC's WorldCat Identities JSON-LD payload, bypassing
// the RDF parser since the source is already JSON (spec.md §6).
type WorldCat struct {
	id string
}

func NewWorldCat(id string) (*WorldCat, error) {
	if id == "" {
		return nil, fmt.Errorf("worldcat: empty id")
	}
	return &WorldCat{id: id}, nil
}

func (a *WorldCat) MyProperty() int             { return properties.WorldCat }
func (a *WorldCat) MyID() string                { return a.id }
func (a *WorldCat) MyStatedIn() string          { return worldcatStatedIn }
func (a *WorldCat) PrimaryLanguage() string     { return "en" }
func (a *WorldCat) GetKeyURL(key string) string { return fmt.Sprintf(worldcatKeyURLFormat, key) }
func (a *WorldCat) TransformLabel(s string) string { return metaitem.IdentityTransform(s) }

func (a *WorldCat) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+".json")
	if err != nil {
		return nil, fmt.Errorf("worldcat %s: %w", a.id, err)
	}
	var doc worldcatJSONLD
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("worldcat %s: %w", a.id, err)
	}

	m := metaitem.New()
	m.AddClaim(SelfClaim(a), nil)

	if doc.Name != "" {
		m.ApplyLabelCandidate(a.PrimaryLanguage(), doc.Name, a.TransformLabel)
	}
	if doc.Description != "" {
		m.ApplyDescriptionCandidate(a.PrimaryLanguage(), doc.Description)
	}
	for _, url := range doc.SameAs {
		if externalid.Blocked(url) {
			continue
		}
		if id, ok := urlrecognizer.Recognize(url); ok {
			if id.CheckIfValid(ctx) {
				m.AddClaim(metaitem.Statement{
					MainSnak:   metaitem.NewSnak(id.Property, metaitem.ExternalIDValue(id.ID)),
					References: []metaitem.Reference{SelfReference(a)},
				}, nil)
			}
			continue
		}
		m.AddClaim(metaitem.Statement{
			MainSnak:   metaitem.NewSnak(properties.DescribedAtURL, metaitem.URLValue(url)),
			References: []metaitem.Reference{SelfReference(a)},
		}, nil)
	}

	return Finish(ctx, m), nil
}
