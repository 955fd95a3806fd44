// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/rdfxml"
)

func init() {
	register(SupportedProperty{
		Property: properties.NUKAT,
		Name:     "NUKAT",
		Source:   "NUKAT Centre (Poland)",
		DemoID:   "n2005091073",
		New:      func(id string) (SourceAdapter, error) { return NewNUKAT(id) },
	})
}

const nukatStatedIn = "Q11789729"

// NUKAT has no standalone RDF endpoint of its own; it resolves through
// VIAF's cluster-record service instead. VIAF source-keys for NUKAT
// pad the alphanumeric prefix out to two spaces before the numeric
// suffix (e.g. "n  2005091073"), so the raw id is rewritten before the
// lookup (spec.md §4.4).
type NUKAT struct {
	id string
}

func NewNUKAT(id string) (*NUKAT, error) {
	if id == "" {
		return nil, fmt.Errorf("nukat: empty id")
	}
	return &NUKAT{id: id}, nil
}

func (a *NUKAT) MyProperty() int         { return properties.NUKAT }
func (a *NUKAT) MyID() string            { return a.id }
func (a *NUKAT) MyStatedIn() string      { return nukatStatedIn }
func (a *NUKAT) PrimaryLanguage() string { return "pl" }
func (a *NUKAT) GetKeyURL(key string) string {
	return "https://www.nukat.edu.pl/id/" + key
}
func (a *NUKAT) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

// nukatViafSourceKey splits the id into its leading alphabetic prefix
// and numeric suffix, joining them with two spaces to match VIAF's
// internal NUKAT source-key encoding.
func nukatViafSourceKey(id string) string {
	i := 0
	for i < len(id) && (id[i] < '0' || id[i] > '9') {
		i++
	}
	return id[:i] + "  " + id[i:]
}

func (a *NUKAT) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	sourceKey := nukatViafSourceKey(a.id)
	body, err := httpclient.PostForm(ctx, viafClusterRecordURL,
		strings.NewReader("reqValue="+sourceKey+"&reqType=NUKAT"), "application/x-www-form-urlencoded")
	if err != nil {
		return nil, fmt.Errorf("nukat %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("nukat %s: %w", a.id, err)
	}

	m := metaitem.New()
	AddTheUsual(ctx, a, g, m)
	return Finish(ctx, m), nil
}
