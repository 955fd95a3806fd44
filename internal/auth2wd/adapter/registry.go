// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"fmt"

	"github.com/wikitools/auth2wd/internal/auth2wd/externalid"
)

// SupportedProperty is one row of the dispatch table: it doubles as the
// "supported properties" registry the index page and /supported_properties
// route read (spec.md §9).
type SupportedProperty struct {
	Property int
	Name     string
	Source   string
	DemoID   string
	New      func(id string) (SourceAdapter, error)
}

// supportedProperties is populated by each per-source adapter file's
// init(), rather than listed as one giant literal, so that adding a
// source means adding one file rather than editing a shared table.
var supportedProperties []SupportedProperty

func register(p SupportedProperty) {
	supportedProperties = append(supportedProperties, p)
}

// GetSupportedProperties returns the dispatch table, in registration order.
func GetSupportedProperties() []SupportedProperty {
	out := make([]SupportedProperty, len(supportedProperties))
	copy(out, supportedProperties)
	return out
}

func lookup(property int) (SupportedProperty, bool) {
	for _, p := range supportedProperties {
		if p.Property == property {
			return p, true
		}
	}
	return SupportedProperty{}, false
}

// HasParserForExtID reports whether e's property has a registered adapter.
func HasParserForExtID(e externalid.ExternalId) bool {
	_, ok := lookup(e.Property)
	return ok
}

// GetParserForExtID constructs the adapter for e, or fails with
// UnsupportedPropertyError if no source is registered for e's property.
func GetParserForExtID(e externalid.ExternalId) (SourceAdapter, error) {
	return GetParserForProperty(e.Property, e.ID)
}

// GetParserForProperty constructs the adapter for property/id.
func GetParserForProperty(property int, id string) (SourceAdapter, error) {
	p, ok := lookup(property)
	if !ok {
		return nil, &UnsupportedPropertyError{Property: property}
	}
	return p.New(id)
}

// UnsupportedPropertyError is surfaced verbatim to HTTP/CLI callers
// (spec.md §7) when the Combinator is asked for a property with no
// registered adapter.
type UnsupportedPropertyError struct {
	Property int
}

func (e *UnsupportedPropertyError) Error() string {
	return fmt.Sprintf("unsupported property: P%d", e.Property)
}
