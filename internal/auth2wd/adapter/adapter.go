// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package adapter defines the SourceAdapter capability contract
// (spec.md §4.4), the free-standing "usual sequence" every adapter
// applies before its own source-specific extraction, and the dispatch
// table that maps a Wikidata property number to a concrete adapter
// constructor.
package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wikitools/auth2wd/internal/auth2wd/graph"
	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/rdfxml"
	"github.com/wikitools/auth2wd/internal/auth2wd/rescue"
)

// GraphAdapter is an optional capability: adapters whose payload is RDF
// can expose the parsed graph for the "/graph/{prop}/{id}" debugging
// route (spec.md §6). Adapters without a natural RDF graph (JSON- or
// HTML-sourced ones) simply don't implement it.
type GraphAdapter interface {
	Graph(ctx context.Context) (*graph.Graph, error)
}

// SourceAdapter is the capability set every per-authority adapter must
// provide. Variants differ only in Run's source-specific tail; the usual
// sequence (AddTheUsual) is identical for all of them.
type SourceAdapter interface {
	MyProperty() int
	MyID() string
	MyStatedIn() string // the Wikidata item for the source itself
	PrimaryLanguage() string
	GetKeyURL(key string) string
	TransformLabel(s string) string
	Run(ctx context.Context) (*metaitem.MetaItem, error)
}

// IdentityLabelTransform is the default transform_label every adapter
// gets unless it opts into TransformLabelLastFirst.
func IdentityLabelTransform(s string) string { return metaitem.IdentityTransform(s) }

// KeyURL holds a single sprintf-style key→URL template. The adapters in
// this package format their key URLs with fmt.Sprintf directly and do
// not embed it.
type KeyURL struct {
	Template string // e.g. "https://viaf.org/viaf/%s"
}

// Build expands the template with key, implementing GetKeyURL for the
// common single-placeholder case.
func (k KeyURL) Build(key string) string {
	return fmt.Sprintf(k.Template, key)
}

// nowFunc exists so tests can pin P813's retrieved-date; production code
// always uses time.Now.
var nowFunc = time.Now

// SelfClaim builds the statement every adapter's usual-sequence step 1
// asserts: an external-id self-claim referencing the source itself and
// today's retrieval date.
func SelfClaim(a SourceAdapter) metaitem.Statement {
	return metaitem.Statement{
		MainSnak: metaitem.NewSnak(a.MyProperty(), metaitem.ExternalIDValue(a.MyID())),
		References: []metaitem.Reference{{
			metaitem.NewSnak(properties.StatedIn, metaitem.ItemValue(a.MyStatedIn())),
			metaitem.NewSnak(a.MyProperty(), metaitem.ExternalIDValue(a.MyID())),
			metaitem.NewSnak(properties.RetrievedDate, metaitem.TimeValueOf(nowFunc().UTC().Format("2006-01-02")+"T00:00:00Z", 11)),
		}},
	}
}

// SelfReference is the reference steps elsewhere in the usual sequence
// attach to non-identifier claims extracted straight from the self
// record (e.g. gender, dates): P248=stated_in, P{my_property}=my_id, P813=today.
func SelfReference(a SourceAdapter) metaitem.Reference {
	return metaitem.Reference{
		metaitem.NewSnak(properties.StatedIn, metaitem.ItemValue(a.MyStatedIn())),
		metaitem.NewSnak(a.MyProperty(), metaitem.ExternalIDValue(a.MyID())),
		metaitem.NewSnak(properties.RetrievedDate, metaitem.TimeValueOf(nowFunc().UTC().Format("2006-01-02")+"T00:00:00Z", 11)),
	}
}

// SelfURL is the adapter's own canonical id-URL: the fixed subject every
// GraphQuery shortcut in the usual sequence queries against.
func SelfURL(a SourceAdapter) string {
	return a.GetKeyURL(a.MyID())
}

// fetchGraph is the common fetch-then-parse shape shared by every plain
// RDF/XML adapter's Run and its optional Graph method.
func fetchGraph(ctx context.Context, url string) (*graph.Graph, error) {
	body, err := httpclient.GetText(ctx, url)
	if err != nil {
		return nil, err
	}
	return rdfxml.Parse(strings.NewReader(body))
}

// Finish runs the rescue pass and the PropText cleanup every adapter's
// Run must perform as its last step (spec.md §4.4: "...finally runs
// try_rescue_prop_text ... and cleanup").
func Finish(ctx context.Context, m *metaitem.MetaItem) *metaitem.MetaItem {
	rescue.TryRescueForAdapter(ctx, m)
	m.Cleanup()
	return m
}
