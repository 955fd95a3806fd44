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
		Property: properties.NDL,
		Name:     "NDL",
		Source:   "National Diet Library (Japan)",
		DemoID:   "00054222",
		New:      func(id string) (SourceAdapter, error) { return NewNDL(id) },
	})
}

const (
	ndlStatedIn     = "Q1254324"
	ndlKeyURLFormat = "https://id.ndl.go.jp/auth/ndlna/%s"
)

// NDL adapts Japan's National Diet Library name authority file.
type NDL struct {
	id string
}

func NewNDL(id string) (*NDL, error) {
	if id == "" {
		return nil, fmt.Errorf("ndl: empty id")
	}
	return &NDL{id: id}, nil
}

func (a *NDL) MyProperty() int             { return properties.NDL }
func (a *NDL) MyID() string                { return a.id }
func (a *NDL) MyStatedIn() string          { return ndlStatedIn }
func (a *NDL) PrimaryLanguage() string     { return "ja" }
func (a *NDL) GetKeyURL(key string) string { return fmt.Sprintf(ndlKeyURLFormat, key) }
func (a *NDL) TransformLabel(s string) string { return metaitem.IdentityTransform(s) }

func (a *NDL) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+".rdf")
	if err != nil {
		return nil, fmt.Errorf("ndl %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ndl %s: %w", a.id, err)
	}

	m := metaitem.New()
	AddTheUsual(ctx, a, g, m)
	return Finish(ctx, m), nil
}

// Graph exposes the RDF graph behind this record (spec.md §6).
func (a *NDL) Graph(ctx context.Context) (*graph.Graph, error) {
	return fetchGraph(ctx, a.GetKeyURL(a.id)+".rdf")
}
