// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/wikitools/auth2wd/internal/auth2wd/graph"
	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/rdfxml"
)

func init() {
	register(SupportedProperty{
		Property: properties.BnF,
		Name:     "BnF",
		Source:   "Bibliothèque nationale de France",
		DemoID:   "11898689q",
		New:      func(id string) (SourceAdapter, error) { return NewBnF(id) },
	})
}

const (
	bnfStatedIn     = "Q193563"
	bnfKeyURLFormat = "https://data.bnf.fr/%s"

	predBIODateOfBirth = "http://vocab.org/bio/0.1/birth"
	predBIODateOfDeath = "http://vocab.org/bio/0.1/death"
)

var reBnFIDFormat = regexp.MustCompile(`^\d{8,9}[a-z0-9]?$`)

// BnF adapts the Bibliothèque nationale de France's data.bnf.fr RDF/XML.
type BnF struct {
	id string
}

func NewBnF(id string) (*BnF, error) {
	if !reBnFIDFormat.MatchString(id) {
		return nil, fmt.Errorf("bnf: malformed id %q", id)
	}
	return &BnF{id: id}, nil
}

func (a *BnF) MyProperty() int             { return properties.BnF }
func (a *BnF) MyID() string                { return a.id }
func (a *BnF) MyStatedIn() string          { return bnfStatedIn }
func (a *BnF) PrimaryLanguage() string     { return "fr" }
func (a *BnF) GetKeyURL(key string) string { return fmt.Sprintf(bnfKeyURLFormat, key) }
func (a *BnF) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *BnF) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+".rdf")
	if err != nil {
		return nil, fmt.Errorf("bnf %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bnf %s: %w", a.id, err)
	}

	m := metaitem.New()
	self := SelfURL(a)
	AddTheUsual(ctx, a, g, m)

	addDateClaim(m, a, g, self, predBIODateOfBirth, properties.DateOfBirth)
	addDateClaim(m, a, g, self, predBIODateOfDeath, properties.DateOfDeath)

	return Finish(ctx, m), nil
}

// Graph exposes the RDF graph behind this record (spec.md §6).
func (a *BnF) Graph(ctx context.Context) (*graph.Graph, error) {
	return fetchGraph(ctx, a.GetKeyURL(a.id)+".rdf")
}

// addDateClaim is the shared birth/death date extraction several
// RDF/XML-based adapters reuse: parse the literal(s) at (self, pred) and
// emit a P569/P570 claim, or fall back to prop_text when unparseable.
func addDateClaim(m *metaitem.MetaItem, a SourceAdapter, g *graph.Graph, self, pred string, property int) {
	for _, lit := range g.TriplesSubjectLiterals(self, pred) {
		iso, precision, ok := ParseDate(lit)
		if !ok {
			m.AddPropText(property, lit)
			continue
		}
		m.AddClaim(metaitem.Statement{
			MainSnak:   metaitem.NewSnak(property, metaitem.TimeValueOf(iso, precision)),
			References: []metaitem.Reference{SelfReference(a)},
		}, nil)
	}
}
