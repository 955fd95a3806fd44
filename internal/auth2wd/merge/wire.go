// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package merge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
)

// wireSnak is the Wikibase JSON shape for a snak, with datatype always
// stripped per spec.md §6 ("Wire output").
type wireSnak struct {
	SnakType  string      `json:"snaktype"`
	Property  string      `json:"property"`
	DataValue *wireValue  `json:"datavalue,omitempty"`
}

type wireValue struct {
	Value interface{} `json:"value"`
	Type  string      `json:"type"`
}

type wireTime struct {
	Time           string `json:"time"`
	Precision      int    `json:"precision"`
	Calendarmodel  string `json:"calendarmodel"`
	Timezone       int    `json:"timezone"`
	Before         int    `json:"before"`
	After          int    `json:"after"`
}

type wireQuantity struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

type wireEntityID struct {
	EntityType string `json:"entity-type"`
	ID         string `json:"id"`
}

type wireMonolingualText struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type wireReference struct {
	Snaks      map[string][]wireSnak `json:"snaks"`
	SnaksOrder []string              `json:"snaks-order"`
}

type wireStatement struct {
	ID         string                     `json:"id,omitempty"`
	MainSnak   wireSnak                   `json:"mainsnak"`
	Qualifiers map[string][]wireSnak      `json:"qualifiers,omitempty"`
	References []wireReference            `json:"references,omitempty"`
	Rank       string                     `json:"rank"`
	Type       string                     `json:"type"`
}

type wireMonolingual struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

type wireAlias = wireMonolingual

type wireSitelink struct {
	Site  string `json:"site"`
	Title string `json:"title"`
}

// WireDiff is the JSON-marshalable wbeditentity payload shape of spec.md
// §6: any empty section is simply a nil map/slice, which json.Marshal
// with omitempty drops entirely rather than emitting `{}`/`[]`.
type WireDiff struct {
	Labels       map[string]wireMonolingual  `json:"labels,omitempty"`
	Descriptions map[string]wireMonolingual  `json:"descriptions,omitempty"`
	Aliases      map[string][]wireAlias      `json:"aliases,omitempty"`
	Sitelinks    map[string]wireSitelink     `json:"sitelinks,omitempty"`
	Claims       map[string][]wireStatement  `json:"claims,omitempty"`
}

func propertyKey(p int) string {
	return "P" + strconv.Itoa(p)
}

func toWireSnak(s metaitem.Snak) wireSnak {
	return wireSnak{
		SnakType:  "value",
		Property:  propertyKey(s.Property),
		DataValue: toWireValue(s.Value),
	}
}

func toWireValue(v metaitem.Value) *wireValue {
	switch v.Kind {
	case metaitem.ValueExternalID:
		return &wireValue{Value: v.Str, Type: "string"}
	case metaitem.ValueURL:
		return &wireValue{Value: v.Str, Type: "string"}
	case metaitem.ValueItem:
		return &wireValue{Value: wireEntityID{EntityType: "item", ID: v.Str}, Type: "wikibase-entityid"}
	case metaitem.ValueMonolingualText:
		return &wireValue{Value: wireMonolingualText{Text: v.Str, Language: v.Lang}, Type: "monolingualtext"}
	case metaitem.ValueTime:
		return &wireValue{Value: wireTime{
			Time:          "+" + v.Time.ISO,
			Precision:     v.Time.Precision,
			Calendarmodel: "http://www.wikidata.org/entity/Q1985727",
			Timezone:      0,
			Before:        0,
			After:         0,
		}, Type: "time"}
	case metaitem.ValueQuantity:
		return &wireValue{Value: wireQuantity{Amount: v.Quantity.Amount, Unit: v.Quantity.Unit}, Type: "quantity"}
	default:
		return nil
	}
}

func toWireQualifiers(qs []metaitem.Snak) map[string][]wireSnak {
	if len(qs) == 0 {
		return nil
	}
	out := make(map[string][]wireSnak)
	for _, q := range qs {
		key := propertyKey(q.Property)
		out[key] = append(out[key], toWireSnak(q))
	}
	return out
}

func toWireReferences(refs []metaitem.Reference) []wireReference {
	if len(refs) == 0 {
		return nil
	}
	out := make([]wireReference, 0, len(refs))
	for _, r := range refs {
		snaks := make(map[string][]wireSnak)
		var order []string
		for _, s := range r {
			key := propertyKey(s.Property)
			if _, seen := snaks[key]; !seen {
				order = append(order, key)
			}
			snaks[key] = append(snaks[key], toWireSnak(s))
		}
		out = append(out, wireReference{Snaks: snaks, SnaksOrder: order})
	}
	return out
}

func toWireStatement(st metaitem.Statement) wireStatement {
	return wireStatement{
		ID:         st.ID,
		MainSnak:   toWireSnak(st.MainSnak),
		Qualifiers: toWireQualifiers(st.Qualifiers),
		References: toWireReferences(st.References),
		Rank:       st.Rank.String(),
		Type:       "statement",
	}
}

// ToWire converts a MergeDiff into the wbeditentity JSON payload shape.
// altered_statements becomes claims keyed by the owning property, same as
// added_statements: the wire format does not distinguish the two once
// serialised, since each statement carries its own id (or lack of one).
func (d *MergeDiff) ToWire() *WireDiff {
	w := &WireDiff{}
	if len(d.Labels) > 0 {
		w.Labels = make(map[string]wireMonolingual, len(d.Labels))
		for lang, v := range d.Labels {
			w.Labels[lang] = wireMonolingual{Language: lang, Value: v}
		}
	}
	if len(d.Descriptions) > 0 {
		w.Descriptions = make(map[string]wireMonolingual, len(d.Descriptions))
		for lang, v := range d.Descriptions {
			w.Descriptions[lang] = wireMonolingual{Language: lang, Value: v}
		}
	}
	if len(d.Aliases) > 0 {
		w.Aliases = make(map[string][]wireAlias)
		for _, a := range d.Aliases {
			w.Aliases[a.Lang] = append(w.Aliases[a.Lang], wireAlias{Language: a.Lang, Value: a.Value})
		}
	}
	if len(d.Sitelinks) > 0 {
		w.Sitelinks = make(map[string]wireSitelink, len(d.Sitelinks))
		for site, title := range d.Sitelinks {
			w.Sitelinks[site] = wireSitelink{Site: site, Title: title}
		}
	}

	var all []metaitem.Statement
	all = append(all, d.AddedStatements...)
	for _, st := range d.AlteredStatements {
		all = append(all, st)
	}
	if len(all) > 0 {
		w.Claims = make(map[string][]wireStatement)
		for _, st := range all {
			key := propertyKey(st.Property())
			w.Claims[key] = append(w.Claims[key], toWireStatement(st))
		}
	}
	return w
}

// ItemToWire encodes a whole MetaItem (not a diff) in the same
// wbeditentity shape, for the "/merge" endpoint's "item" response member
// and for "/item"-style debugging output.
func ItemToWire(m *metaitem.MetaItem) *WireDiff {
	w := &WireDiff{}
	if len(m.Labels) > 0 {
		w.Labels = make(map[string]wireMonolingual, len(m.Labels))
		for lang, v := range m.Labels {
			w.Labels[lang] = wireMonolingual{Language: lang, Value: v}
		}
	}
	if len(m.Descriptions) > 0 {
		w.Descriptions = make(map[string]wireMonolingual, len(m.Descriptions))
		for lang, v := range m.Descriptions {
			w.Descriptions[lang] = wireMonolingual{Language: lang, Value: v}
		}
	}
	if len(m.Aliases) > 0 {
		w.Aliases = make(map[string][]wireAlias)
		for _, a := range m.Aliases {
			w.Aliases[a.Lang] = append(w.Aliases[a.Lang], wireAlias{Language: a.Lang, Value: a.Value})
		}
	}
	if len(m.Sitelinks) > 0 {
		w.Sitelinks = make(map[string]wireSitelink, len(m.Sitelinks))
		for site, title := range m.Sitelinks {
			w.Sitelinks[site] = wireSitelink{Site: site, Title: title}
		}
	}
	if len(m.Claims) > 0 {
		w.Claims = make(map[string][]wireStatement)
		for _, st := range m.Claims {
			key := propertyKey(st.Property())
			w.Claims[key] = append(w.Claims[key], toWireStatement(st))
		}
	}
	return w
}

// rawEntity is the subset of Wikibase's entity JSON shape this system
// reads back in: the inverse of ItemToWire/WireDiff, loose enough to
// accept both a bare entity body and one nested under "entities"/"<id>"
// the way action=wbgetentities responds.
type rawEntity struct {
	Entities map[string]json.RawMessage `json:"entities"`

	Labels       map[string]wireMonolingual    `json:"labels"`
	Descriptions map[string]wireMonolingual    `json:"descriptions"`
	Aliases      map[string][]wireAlias        `json:"aliases"`
	Sitelinks    map[string]wireSitelink       `json:"sitelinks"`
	Claims       map[string][]rawWireStatement `json:"claims"`
}

type rawWireStatement struct {
	ID         string                    `json:"id"`
	MainSnak   rawWireSnak               `json:"mainsnak"`
	Qualifiers map[string][]rawWireSnak  `json:"qualifiers"`
	References []rawWireReference        `json:"references"`
	Rank       string                    `json:"rank"`
}

type rawWireReference struct {
	Snaks map[string][]rawWireSnak `json:"snaks"`
}

type rawWireSnak struct {
	SnakType  string          `json:"snaktype"`
	Property  string          `json:"property"`
	DataValue *rawWireValue   `json:"datavalue"`
}

type rawWireValue struct {
	Value json.RawMessage `json:"value"`
	Type  string          `json:"type"`
}

// ParseWireItem decodes a Wikibase entity JSON payload (either a bare
// entity, or the action=wbgetentities "entities" envelope) into a
// MetaItem. Ranked statements whose rank deserialises to anything but
// "normal"/"preferred"/"deprecated" default to Normal; unparseable
// datavalue shapes are skipped rather than rejecting the whole payload,
// since a handful of exotic datatypes (e.g. globe-coordinate) carry no
// meaning for this system anyway.
func ParseWireItem(data []byte) (*metaitem.MetaItem, error) {
	var raw rawEntity
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse wikibase entity: %w", err)
	}
	if len(raw.Entities) == 1 {
		for _, body := range raw.Entities {
			return ParseWireItem(body)
		}
	}

	m := metaitem.New()
	for lang, v := range raw.Labels {
		m.Labels[lang] = v.Value
	}
	for lang, v := range raw.Descriptions {
		m.Descriptions[lang] = v.Value
	}
	for lang, vs := range raw.Aliases {
		for _, v := range vs {
			m.Aliases = append(m.Aliases, metaitem.AliasEntry{Lang: lang, Value: v.Value})
		}
	}
	for site, v := range raw.Sitelinks {
		m.Sitelinks[site] = v.Title
	}
	for _, sts := range raw.Claims {
		for _, st := range sts {
			parsed, ok := fromWireStatement(st)
			if !ok {
				continue
			}
			m.Claims = append(m.Claims, parsed)
		}
	}
	return m, nil
}

func fromWireStatement(st rawWireStatement) (metaitem.Statement, bool) {
	snak, ok := fromWireSnak(st.MainSnak)
	if !ok {
		return metaitem.Statement{}, false
	}
	out := metaitem.Statement{
		ID:       st.ID,
		MainSnak: snak,
		Rank:     metaitem.RankFromString(st.Rank),
	}
	for _, snaks := range st.Qualifiers {
		for _, s := range snaks {
			if q, ok := fromWireSnak(s); ok {
				out.Qualifiers = append(out.Qualifiers, q)
			}
		}
	}
	for _, r := range st.References {
		var ref metaitem.Reference
		for _, snaks := range r.Snaks {
			for _, s := range snaks {
				if q, ok := fromWireSnak(s); ok {
					ref = append(ref, q)
				}
			}
		}
		if len(ref) > 0 {
			out.References = append(out.References, ref)
		}
	}
	return out, true
}

func fromWireSnak(s rawWireSnak) (metaitem.Snak, bool) {
	property, ok := propertyNumber(s.Property)
	if !ok || s.DataValue == nil {
		return metaitem.Snak{}, false
	}
	switch s.Type() {
	case "string":
		var str string
		if err := json.Unmarshal(s.DataValue.Value, &str); err != nil {
			return metaitem.Snak{}, false
		}
		return metaitem.NewSnak(property, metaitem.ExternalIDValue(str)), true
	case "wikibase-entityid":
		var id wireEntityID
		if err := json.Unmarshal(s.DataValue.Value, &id); err != nil {
			return metaitem.Snak{}, false
		}
		return metaitem.NewSnak(property, metaitem.ItemValue(id.ID)), true
	case "monolingualtext":
		var mt wireMonolingualText
		if err := json.Unmarshal(s.DataValue.Value, &mt); err != nil {
			return metaitem.Snak{}, false
		}
		return metaitem.NewSnak(property, metaitem.MonolingualTextValue(mt.Language, mt.Text)), true
	case "time":
		var t wireTime
		if err := json.Unmarshal(s.DataValue.Value, &t); err != nil {
			return metaitem.Snak{}, false
		}
		return metaitem.NewSnak(property, metaitem.TimeValueOf(strings.TrimPrefix(t.Time, "+"), t.Precision)), true
	case "quantity":
		var q wireQuantity
		if err := json.Unmarshal(s.DataValue.Value, &q); err != nil {
			return metaitem.Snak{}, false
		}
		return metaitem.NewSnak(property, metaitem.QuantityValueOf(q.Amount, q.Unit)), true
	default:
		return metaitem.Snak{}, false
	}
}

func (s rawWireSnak) Type() string {
	if s.DataValue == nil {
		return ""
	}
	return s.DataValue.Type
}

func propertyNumber(p string) (int, bool) {
	p = strings.TrimPrefix(strings.TrimPrefix(p, "P"), "p")
	n, err := strconv.Atoi(p)
	if err != nil {
		return 0, false
	}
	return n, true
}
