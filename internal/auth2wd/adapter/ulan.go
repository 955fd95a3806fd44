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
		Property: properties.ULAN,
		Name:     "ULAN",
		Source:   "Getty Union List of Artist Names",
		DemoID:   "500228559",
		New:      func(id string) (SourceAdapter, error) { return NewULAN(id) },
	})
}

const (
	ulanStatedIn     = "Q2494649"
	ulanKeyURLFormat = "https://vocab.getty.edu/ulan/%s"
)

// ULAN adapts the Getty Union List of Artist Names, published as SKOS/RDF.
type ULAN struct {
	id string
}

func NewULAN(id string) (*ULAN, error) {
	if id == "" {
		return nil, fmt.Errorf("ulan: empty id")
	}
	return &ULAN{id: id}, nil
}

func (a *ULAN) MyProperty() int             { return properties.ULAN }
func (a *ULAN) MyID() string                { return a.id }
func (a *ULAN) MyStatedIn() string          { return ulanStatedIn }
func (a *ULAN) PrimaryLanguage() string     { return "en" }
func (a *ULAN) GetKeyURL(key string) string { return fmt.Sprintf(ulanKeyURLFormat, key) }
func (a *ULAN) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *ULAN) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+".rdf")
	if err != nil {
		return nil, fmt.Errorf("ulan %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ulan %s: %w", a.id, err)
	}

	m := metaitem.New()
	AddTheUsual(ctx, a, g, m)
	return Finish(ctx, m), nil
}

// Graph exposes the RDF graph behind this record (spec.md §6).
func (a *ULAN) Graph(ctx context.Context) (*graph.Graph, error) {
	return fetchGraph(ctx, a.GetKeyURL(a.id)+".rdf")
}
