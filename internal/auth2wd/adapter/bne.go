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
		Property: properties.BNE,
		Name:     "BNE",
		Source:   "Biblioteca Nacional de España",
		DemoID:   "XX990809",
		New:      func(id string) (SourceAdapter, error) { return NewBNE(id) },
	})
}

const (
	bneStatedIn     = "Q50358336"
	bneKeyURLFormat = "https://datos.bne.es/resource/%s"
)

// BNE adapts the Biblioteca Nacional de España's datos.bne.es, whose
// P5012/P3067 predicates the usual sequence already knows how to read.
type BNE struct {
	id string
}

func NewBNE(id string) (*BNE, error) {
	if id == "" {
		return nil, fmt.Errorf("bne: empty id")
	}
	return &BNE{id: id}, nil
}

func (a *BNE) MyProperty() int             { return properties.BNE }
func (a *BNE) MyID() string                { return a.id }
func (a *BNE) MyStatedIn() string          { return bneStatedIn }
func (a *BNE) PrimaryLanguage() string     { return "es" }
func (a *BNE) GetKeyURL(key string) string { return fmt.Sprintf(bneKeyURLFormat, key) }
func (a *BNE) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *BNE) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+".rdf")
	if err != nil {
		return nil, fmt.Errorf("bne %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bne %s: %w", a.id, err)
	}

	m := metaitem.New()
	AddTheUsual(ctx, a, g, m)
	return Finish(ctx, m), nil
}

// Graph exposes the RDF graph behind this record (spec.md §6).
func (a *BNE) Graph(ctx context.Context) (*graph.Graph, error) {
	return fetchGraph(ctx, a.GetKeyURL(a.id)+".rdf")
}
