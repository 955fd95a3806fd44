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
		Property: properties.GND,
		Name:     "GND",
		Source:   "Gemeinsame Normdatei",
		DemoID:   "132539691",
		New:      func(id string) (SourceAdapter, error) { return NewGND(id) },
	})
}

const (
	gndStatedIn     = "Q36578"
	gndKeyURLFormat = "https://d-nb.info/gnd/%s"

	predGNDIdentifier         = "http://d-nb.info/standards/elementset/gnd#gndIdentifier"
	predGNDGeographicAreaCode = "http://d-nb.info/standards/elementset/gnd#geographicAreaCode"
	predGNDPeriodOfActivity   = "http://d-nb.info/standards/elementset/gnd#periodOfActivity"
	predGNDProfessionOrOccupation = "http://d-nb.info/standards/elementset/gnd#professionOrOccupation"
	predGNDUndifferentiatedPerson = "http://d-nb.info/standards/elementset/gnd#UndifferentiatedPerson"
)

// iso3166Alpha2FromXA maps GND's "XA-DE" style geographicAreaCode suffix
// to an ISO-3166-1-alpha-2 code; only the handful of countries that show
// up in practice are listed, the rest fall through to prop_text.
var iso3166Alpha2FromXA = map[string]string{
	"XA-DE": "DE",
	"XA-AT": "AT",
	"XA-CH": "CH",
	"XA-FR": "FR",
	"XA-GB": "GB",
	"XA-US": "US",
}

// countryItemByISO2 maps a country's ISO-3166-1-alpha-2 code to its
// Wikidata item, for P27 (country of citizenship).
var countryItemByISO2 = map[string]string{
	"DE": "Q183",
	"AT": "Q40",
	"CH": "Q39",
	"FR": "Q142",
	"GB": "Q145",
	"US": "Q30",
}

// GND adapts the Gemeinsame Normdatei. Its own-id is rewritten from the
// record's gnd#gndIdentifier literal (which survives ID redirects), so
// the adapter's canonical id may differ from the id it was constructed
// with until after the first fetch.
type GND struct {
	id string
}

func NewGND(id string) (*GND, error) {
	if id == "" {
		return nil, fmt.Errorf("gnd: empty id")
	}
	return &GND{id: id}, nil
}

func (a *GND) MyProperty() int         { return properties.GND }
func (a *GND) MyID() string            { return a.id }
func (a *GND) MyStatedIn() string      { return gndStatedIn }
func (a *GND) PrimaryLanguage() string { return "de" }
func (a *GND) GetKeyURL(key string) string {
	return fmt.Sprintf(gndKeyURLFormat, key)
}
func (a *GND) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *GND) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id)+"/about/lds.rdf")
	if err != nil {
		return nil, fmt.Errorf("gnd %s: %w", a.id, err)
	}
	g, err := rdfxml.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gnd %s: %w", a.id, err)
	}

	// Rewrite own id from gnd#gndIdentifier before running the usual
	// sequence, so the self-claim and every reference use the
	// redirect-resistant id rather than whatever id we were constructed
	// with.
	selfBeforeRewrite := a.GetKeyURL(a.id)
	if ids := g.TriplesSubjectLiterals(selfBeforeRewrite, predGNDIdentifier); len(ids) == 1 {
		a.id = ids[0]
	}

	m := metaitem.New()
	self := SelfURL(a)

	AddTheUsual(ctx, a, g, m)

	if isUndifferentiatedPerson(g, self) {
		deprecateSelfClaim(m, a)
	}

	for _, areaCode := range g.TriplesSubjectIRIs(self, predGNDGeographicAreaCode) {
		suffix := lastURLSegment(areaCode)
		if iso2, ok := iso3166Alpha2FromXA[suffix]; ok {
			if qid, ok := countryItemByISO2[iso2]; ok {
				m.AddClaim(metaitem.Statement{
					MainSnak:   metaitem.NewSnak(properties.CountryOfCitizenship, metaitem.ItemValue(qid)),
					References: []metaitem.Reference{SelfReference(a)},
				}, nil)
				continue
			}
		}
		m.AddPropText(properties.CountryOfCitizenship, areaCode)
	}

	for _, occ := range g.TriplesSubjectIRIsBlankNodes(self, predGNDProfessionOrOccupation) {
		for _, label := range g.TriplesSubjectLiterals(occ, predRDFSLabel) {
			m.AddPropText(properties.Occupation, label)
		}
	}

	for _, lit := range g.TriplesSubjectLiterals(self, predGNDPeriodOfActivity) {
		addPeriodOfActivity(m, a, lit)
	}

	return Finish(ctx, m), nil
}

func isUndifferentiatedPerson(g *graph.Graph, self string) bool {
	for _, t := range g.TriplesSubjectIRIs(self, predRDFType) {
		if t == predGNDUndifferentiatedPerson {
			return true
		}
	}
	return false
}

// deprecateSelfClaim marks the GND self-claim Deprecated with a
// P2241=Q68648103 qualifier when the record turns out to describe an
// undifferentiated person (several individuals sharing one authority
// record).
func deprecateSelfClaim(m *metaitem.MetaItem, a *GND) {
	for i := range m.Claims {
		c := &m.Claims[i]
		if c.MainSnak.Property != properties.GND || c.MainSnak.Value.Str != a.id {
			continue
		}
		c.Rank = metaitem.RankDeprecated
		c.Qualifiers = append(c.Qualifiers, metaitem.NewSnak(
			properties.LessPreciseValueQualifier,
			metaitem.ItemValue(properties.UndifferentiatedPersonQualifier),
		))
	}
}

func addPeriodOfActivity(m *metaitem.MetaItem, a *GND, lit string) {
	if start, end, ok := ParseYearRange(lit); ok {
		m.AddClaim(metaitem.Statement{
			MainSnak:   metaitem.NewSnak(properties.WorkPeriodStart, metaitem.TimeValueOf(fmt.Sprintf("%04d-01-01T00:00:00Z", start), 9)),
			References: []metaitem.Reference{SelfReference(a)},
		}, nil)
		m.AddClaim(metaitem.Statement{
			MainSnak:   metaitem.NewSnak(properties.WorkPeriodEnd, metaitem.TimeValueOf(fmt.Sprintf("%04d-01-01T00:00:00Z", end), 9)),
			References: []metaitem.Reference{SelfReference(a)},
		}, nil)
		return
	}
	if iso, precision, ok := ParseDate(lit); ok {
		m.AddClaim(metaitem.Statement{
			MainSnak:   metaitem.NewSnak(properties.PeriodOfActivity, metaitem.TimeValueOf(iso, precision)),
			References: []metaitem.Reference{SelfReference(a)},
		}, nil)
		return
	}
	m.AddPropText(properties.PeriodOfActivity, lit)
}

// Graph exposes the RDF graph behind this record (spec.md §6). It
// re-fetches rather than reusing Run's in-flight graph, since the two
// calls are never coupled through the adapter interface.
func (a *GND) Graph(ctx context.Context) (*graph.Graph, error) {
	return fetchGraph(ctx, a.GetKeyURL(a.id)+"/about/lds.rdf")
}

func lastURLSegment(url string) string {
	idx := strings.LastIndexAny(url, "/#")
	if idx < 0 {
		return url
	}
	return url[idx+1:]
}
