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
		Property: properties.LoC,
		Name:     "Library of Congress",
		Source:   "LC Name Authority File",
		DemoID:   "n78095637",
		New:      func(id string) (SourceAdapter, error) { return NewLoC(id) },
	})
}

const (
	locStatedIn     = "Q13219454"
	locKeyURLFormat = "https://id.loc.gov/authorities/names/%s"
)

// LoC adapts the Library of Congress Name Authority File.
type LoC struct {
	id string
}

func NewLoC(id string) (*LoC, error) {
	if id == "" {
		return nil, fmt.Errorf("loc: empty id")
	}
	return &LoC{id: id}, nil
}

func (a *LoC) MyProperty() int             { return properties.LoC }
func (a *LoC) MyID() string                { return a.id }
func (a *LoC) MyStatedIn() string          { return locStatedIn }
func (a *LoC) PrimaryLanguage() string     { return "en" }
func (a *LoC) GetKeyURL(key string) string { return fmt.Sprintf(locKeyURLFormat, key) }
func (a *LoC) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *LoC) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+".rdf")
	if err != nil {
		return nil, fmt.Errorf("loc %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("loc %s: %w", a.id, err)
	}

	m := metaitem.New()
	AddTheUsual(ctx, a, g, m)
	return Finish(ctx, m), nil
}

// Graph exposes the RDF graph behind this record (spec.md §6).
func (a *LoC) Graph(ctx context.Context) (*graph.Graph, error) {
	return fetchGraph(ctx, a.GetKeyURL(a.id)+".rdf")
}
