// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package metaitem holds the draft-entity data model: MetaItem and the
// Claim/Statement/Reference types a SourceAdapter populates and an
// ItemMerger folds together.
package metaitem

// Rank is a statement's Wikibase rank.
type Rank int

const (
	RankNormal Rank = iota
	RankPreferred
	RankDeprecated
)

func (r Rank) String() string {
	switch r {
	case RankPreferred:
		return "preferred"
	case RankDeprecated:
		return "deprecated"
	default:
		return "normal"
	}
}

// RankFromString is the inverse of Rank.String, for decoding wire JSON.
// Anything unrecognised defaults to RankNormal.
func RankFromString(s string) Rank {
	switch s {
	case "preferred":
		return RankPreferred
	case "deprecated":
		return RankDeprecated
	default:
		return RankNormal
	}
}

// ValueKind discriminates the Value tagged union of spec.md §3.
type ValueKind int

const (
	ValueExternalID ValueKind = iota
	ValueURL
	ValueItem
	ValueMonolingualText
	ValueTime
	ValueQuantity
)

// Value is a snak's payload: exactly one of the fields below is
// meaningful, selected by Kind.
type Value struct {
	Kind ValueKind

	// Str holds the external-id string (ValueExternalID), the URL
	// (ValueURL), the item QID (ValueItem), or the text (ValueMonolingualText).
	Str string

	// Lang is the monolingual text's language code, set only for ValueMonolingualText.
	Lang string

	Time     *TimeValue
	Quantity *QuantityValue
}

// TimeValue is a Wikibase time value: an ISO-8601 instant plus a precision
// (9 = year, 10 = month, 11 = day — see GLOSSARY) and calendar model.
type TimeValue struct {
	ISO       string
	Precision int
	Calendar  string // "gregorian" unless stated otherwise
}

// QuantityValue is a Wikibase quantity value.
type QuantityValue struct {
	Amount string
	Unit   string // a Wikidata unit item QID, or "1" for dimensionless
}

// Snak is a single (property, value) pair: the building block of both
// main snaks and qualifiers/reference parts.
type Snak struct {
	Property int
	Value    Value
}

func ExternalIDValue(id string) Value            { return Value{Kind: ValueExternalID, Str: id} }
func URLValue(url string) Value                  { return Value{Kind: ValueURL, Str: url} }
func ItemValue(qid string) Value                  { return Value{Kind: ValueItem, Str: qid} }
func MonolingualTextValue(lang, text string) Value {
	return Value{Kind: ValueMonolingualText, Lang: lang, Str: text}
}
func TimeValueOf(iso string, precision int) Value {
	return Value{Kind: ValueTime, Time: &TimeValue{ISO: iso, Precision: precision, Calendar: "gregorian"}}
}
func QuantityValueOf(amount, unit string) Value {
	return Value{Kind: ValueQuantity, Quantity: &QuantityValue{Amount: amount, Unit: unit}}
}

// NewSnak builds a Snak from a property and an already-constructed Value.
func NewSnak(property int, v Value) Snak { return Snak{Property: property, Value: v} }

// Reference is an unordered set of provenance snaks.
type Reference []Snak

// ExternalIDParts returns "P{n}={id}" strings for every external-id snak
// in the reference; used by the merger's tolerant reference-dedup rule.
func (r Reference) ExternalIDParts() []string {
	var out []string
	for _, s := range r {
		if s.Value.Kind == ValueExternalID {
			out = append(out, snakKey(s))
		}
	}
	return out
}

// Statement is a Claim: a main snak plus qualifiers, references, and rank.
type Statement struct {
	// ID is the server-side statement id; empty for a freshly-added
	// statement that has never been merged onto a live base item.
	ID         string
	MainSnak   Snak
	Qualifiers []Snak
	References []Reference
	Rank       Rank
}

// Property returns the statement's main property number.
func (s Statement) Property() int { return s.MainSnak.Property }
