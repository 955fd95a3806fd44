// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wikitools/auth2wd/internal/auth2wd/graph"
	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func init() {
	register(SupportedProperty{
		Property: properties.NB,
		Name:     "NB",
		Source:   "National Library of Norway authority service",
		DemoID:   "1006046",
		New:      func(id string) (SourceAdapter, error) { return NewNB(id) },
	})
}

const (
	nbStatedIn      = "Q1526131"
	nbKeyURLFormat  = "https://authority.bibsys.no/authority/rest/v2/%s"
	nbFetchURLFormat = nbKeyURLFormat + "/triples.json"
)

// nbTripleObject mirrors a single triple's object term, tagged by Type:
// "uri" for a resource reference, "literal" for a string (with optional
// Lang).
type nbTripleObject struct {
	Type  string `json:"type"`
	Value string `json:"value"`
	Lang  string `json:"lang"`
}

type nbTriple struct {
	Subject   string         `json:"subject"`
	Predicate string         `json:"predicate"`
	Object    nbTripleObject `json:"object"`
}

// NB adapts the National Library of Norway's service, which hands back a
// flat JSON list of triples instead of RDF/XML. The triples are folded
// into an in-memory graph so the usual label/alias/same-as extraction
// (AddTheUsual) runs unmodified (spec.md §4.4).
type NB struct {
	id string
}

func NewNB(id string) (*NB, error) {
	if id == "" {
		return nil, fmt.Errorf("nb: empty id")
	}
	return &NB{id: id}, nil
}

func (a *NB) MyProperty() int             { return properties.NB }
func (a *NB) MyID() string                { return a.id }
func (a *NB) MyStatedIn() string          { return nbStatedIn }
func (a *NB) PrimaryLanguage() string     { return "no" }
func (a *NB) GetKeyURL(key string) string { return fmt.Sprintf(nbKeyURLFormat, key) }
func (a *NB) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *NB) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, fmt.Sprintf(nbFetchURLFormat, a.id))
	if err != nil {
		return nil, fmt.Errorf("nb %s: %w", a.id, err)
	}
	var triples []nbTriple
	if err := json.Unmarshal([]byte(body), &triples); err != nil {
		return nil, fmt.Errorf("nb %s: %w", a.id, err)
	}

	g := graph.New()
	for _, t := range triples {
		switch t.Object.Type {
		case "uri":
			g.AddIRI(t.Subject, t.Predicate, t.Object.Value)
		default:
			g.AddLiteral(t.Subject, t.Predicate, t.Object.Value, t.Object.Lang)
		}
	}

	m := metaitem.New()
	AddTheUsual(ctx, a, g, m)
	return Finish(ctx, m), nil
}
