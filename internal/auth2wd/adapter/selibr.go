// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/wikitools/auth2wd/internal/auth2wd/graph"
	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/rdfxml"
)

func init() {
	register(SupportedProperty{
		Property: properties.SELIBR,
		Name:     "SELIBR",
		Source:   "Swedish National Library (Libris)",
		DemoID:   "231727",
		New:      func(id string) (SourceAdapter, error) { return NewSELIBR(id) },
	})
}

const (
	selibrStatedIn     = "Q1950080"
	selibrKeyURLFormat = "https://libris.kb.se/resource/auth/%s"
)

// SELIBR adapts the Swedish National Library's Libris authority records,
// which use id.kb.se's own sameAs/description vocabulary alongside RDF.
type SELIBR struct {
	id string
}

func NewSELIBR(id string) (*SELIBR, error) {
	if id == "" {
		return nil, fmt.Errorf("selibr: empty id")
	}
	return &SELIBR{id: id}, nil
}

func (a *SELIBR) MyProperty() int             { return properties.SELIBR }
func (a *SELIBR) MyID() string                { return a.id }
func (a *SELIBR) MyStatedIn() string          { return selibrStatedIn }
func (a *SELIBR) PrimaryLanguage() string     { return "sv" }
func (a *SELIBR) GetKeyURL(key string) string { return fmt.Sprintf(selibrKeyURLFormat, key) }
func (a *SELIBR) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *SELIBR) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+".rdf")
	if err != nil {
		return nil, fmt.Errorf("selibr %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("selibr %s: %w", a.id, err)
	}

	m := metaitem.New()
	AddTheUsual(ctx, a, g, m)
	return Finish(ctx, m), nil
}

// Graph exposes the RDF graph behind this record (spec.md §6).
func (a *SELIBR) Graph(ctx context.Context) (*graph.Graph, error) {
	return fetchGraph(ctx, a.GetKeyURL(a.id)+".rdf")
}
