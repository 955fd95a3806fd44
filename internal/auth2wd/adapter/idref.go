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
		Property: properties.IdRef,
		Name:     "IdRef",
		Source:   "IdRef / Sudoc",
		DemoID:   "026812304",
		New:      func(id string) (SourceAdapter, error) { return NewIdRef(id) },
	})
}

const (
	idrefStatedIn     = "Q47757534"
	idrefKeyURLFormat = "https://www.idref.fr/%s"
)

// IdRef adapts the French academic authority file (Sudoc/IdRef).
type IdRef struct {
	id string
}

func NewIdRef(id string) (*IdRef, error) {
	if id == "" {
		return nil, fmt.Errorf("idref: empty id")
	}
	return &IdRef{id: id}, nil
}

func (a *IdRef) MyProperty() int             { return properties.IdRef }
func (a *IdRef) MyID() string                { return a.id }
func (a *IdRef) MyStatedIn() string          { return idrefStatedIn }
func (a *IdRef) PrimaryLanguage() string     { return "fr" }
func (a *IdRef) GetKeyURL(key string) string { return fmt.Sprintf(idrefKeyURLFormat, key) }
func (a *IdRef) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *IdRef) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+".rdf")
	if err != nil {
		return nil, fmt.Errorf("idref %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("idref %s: %w", a.id, err)
	}

	m := metaitem.New()
	AddTheUsual(ctx, a, g, m)
	return Finish(ctx, m), nil
}

// Graph exposes the RDF graph behind this record (spec.md §6's
// "/graph/{prop}/{id}" route).
func (a *IdRef) Graph(ctx context.Context) (*graph.Graph, error) {
	return fetchGraph(ctx, a.GetKeyURL(a.id)+".rdf")
}
