// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package merge

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func sampleItem() *metaitem.MetaItem {
	m := metaitem.New()
	m.Labels["en"] = "Marie Curie"
	m.Descriptions["en"] = "physicist and chemist"
	m.Aliases = append(m.Aliases, metaitem.AliasEntry{Lang: "en", Value: "Maria Sklodowska"})
	m.Sitelinks["enwiki"] = "Marie Curie"
	m.Claims = append(m.Claims, metaitem.Statement{
		MainSnak: metaitem.NewSnak(properties.GND, metaitem.ExternalIDValue("118677884")),
		Rank:     metaitem.RankNormal,
		References: []metaitem.Reference{{
			metaitem.NewSnak(properties.StatedIn, metaitem.ItemValue("Q36578")),
		}},
	})
	m.Claims = append(m.Claims, metaitem.Statement{
		MainSnak: metaitem.NewSnak(properties.DateOfBirth, metaitem.TimeValueOf("1867-11-07T00:00:00Z", 11)),
		Rank:     metaitem.RankPreferred,
	})
	return m
}

func TestItemToWireThenParseWireItemRoundTrips(t *testing.T) {
	m := sampleItem()
	wire := ItemToWire(m)

	data, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back, err := ParseWireItem(data)
	if err != nil {
		t.Fatalf("ParseWireItem: %v", err)
	}

	if diff := cmp.Diff(m.Labels, back.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m.Descriptions, back.Descriptions); diff != "" {
		t.Errorf("descriptions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m.Sitelinks, back.Sitelinks); diff != "" {
		t.Errorf("sitelinks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(m.Aliases, back.Aliases); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}

	var sawGND, sawBirth bool
	for _, st := range back.Claims {
		switch st.MainSnak.Property {
		case properties.GND:
			if st.MainSnak.Value.Str == "118677884" && st.Rank == metaitem.RankNormal {
				sawGND = true
			}
		case properties.DateOfBirth:
			if st.MainSnak.Value.Time != nil && st.MainSnak.Value.Time.ISO == "1867-11-07T00:00:00Z" && st.Rank == metaitem.RankPreferred {
				sawBirth = true
			}
		}
	}
	if !sawGND {
		t.Error("expected the GND claim to round-trip with its value and rank")
	}
	if !sawBirth {
		t.Error("expected the date-of-birth claim to round-trip with its preferred rank")
	}
}

func TestParseWireItemUnwrapsEntitiesEnvelope(t *testing.T) {
	const body = `{
		"entities": {
			"Q7186": {
				"labels": {"en": {"language": "en", "value": "Marie Curie"}},
				"claims": {
					"P27": [{
						"mainsnak": {"snaktype": "value", "property": "P27", "datavalue": {"value": {"entity-type": "item", "id": "Q142"}, "type": "wikibase-entityid"}},
						"rank": "normal"
					}]
				}
			}
		}
	}`

	m, err := ParseWireItem([]byte(body))
	if err != nil {
		t.Fatalf("ParseWireItem: %v", err)
	}
	if got := m.Labels["en"]; got != "Marie Curie" {
		t.Errorf("label = %q", got)
	}
	var sawCountry bool
	for _, st := range m.Claims {
		if st.MainSnak.Property == properties.CountryOfCitizenship && st.MainSnak.Value.Str == "Q142" {
			sawCountry = true
		}
	}
	if !sawCountry {
		t.Error("expected the country-of-citizenship claim from the unwrapped entity")
	}
}
