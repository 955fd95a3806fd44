// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package externalid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func TestNewCanonicalisesPerProperty(t *testing.T) {
	tests := []struct {
		name     string
		property int
		id       string
		want     string
	}{
		{"ISNI strips spaces", properties.ISNI, "0000 0001 2184 9233", "0000000121849233"},
		{"NUKAT strips plus", properties.NUKAT, "n+96637319", "n96637319"},
		{"LoC strips plus", properties.LoC, "n+78095637", "n78095637"},
		{"LNB strips prefix", properties.LNB, "LNC10-123456", "123456"},
		{"BAV replaces underscore", properties.BAV, "ADV000123_4", "ADV000123/4"},
		{"BnF appends p for all-digit id", properties.BnF, "11898689", "11898689p"},
		{"BnF leaves alphanumeric id alone", properties.BnF, "11898689q", "11898689q"},
		{"unrecognised property is untouched", properties.VIAF, "30701597", "30701597"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := New(tc.property, tc.id).ID
			if got != tc.want {
				t.Errorf("New(%d, %q).ID = %q, want %q", tc.property, tc.id, got, tc.want)
			}
		})
	}
}

// TestCanonicalisationIsIdempotent is invariant 1 of spec.md §8.
func TestCanonicalisationIsIdempotent(t *testing.T) {
	cases := []struct {
		property int
		id       string
	}{
		{properties.ISNI, "0000 0001 2184 9233"},
		{properties.NUKAT, "n+96637319"},
		{properties.LoC, "n+78095637"},
		{properties.LNB, "LNC10-123456"},
		{properties.BAV, "ADV000123_4"},
		{properties.BnF, "11898689"},
		{properties.VIAF, "30701597"},
	}
	for _, tc := range cases {
		once := New(tc.property, tc.id)
		twice := New(tc.property, once.ID)
		if once.ID != twice.ID {
			t.Errorf("New(%d, %q) not idempotent: %q vs %q", tc.property, tc.id, once.ID, twice.ID)
		}
	}
}

func TestFromStringAndString(t *testing.T) {
	e, ok := FromString("P214:30701597")
	if !ok {
		t.Fatal("FromString failed to parse")
	}
	if e.Property != 214 || e.ID != "30701597" {
		t.Fatalf("got %+v", e)
	}
	if got, want := e.String(), "P214:30701597"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if _, ok := FromString("not-an-id"); ok {
		t.Error("FromString accepted a malformed string")
	}
}

func TestPropertyNumber(t *testing.T) {
	if n, ok := PropertyNumber("  P123  "); !ok || n != 123 {
		t.Errorf("PropertyNumber(P123) = (%d, %v)", n, ok)
	}
	if _, ok := PropertyNumber("FOO"); ok {
		t.Error("PropertyNumber accepted a malformed property string")
	}
}

func TestSortAndDedup(t *testing.T) {
	ids := []ExternalId{
		New(properties.VIAF, "2"),
		New(properties.GND, "1"),
		New(properties.VIAF, "2"),
		New(properties.VIAF, "1"),
	}
	got := SortAndDedup(ids)
	want := []ExternalId{
		New(properties.VIAF, "1"),
		New(properties.VIAF, "2"),
		New(properties.GND, "1"),
	}
	if len(got) != len(want) {
		t.Fatalf("SortAndDedup returned %d ids, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortAndDedup()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// TestBlockedURLExclusion is invariant 11 of spec.md §8.
func TestBlockedURLExclusion(t *testing.T) {
	blocked := []string{
		"https://www.wikidata.org/wiki/Q5",
		"https://en.wikipedia.org/wiki/Charles_Darwin",
		"http://xmlns.com/foaf/0.1/Person",
		"https://orcid.org/0000-0001-2345-678X#concept",
	}
	for _, url := range blocked {
		if !Blocked(url) {
			t.Errorf("Blocked(%q) = false, want true", url)
		}
	}
	if Blocked("https://viaf.org/viaf/30701597") {
		t.Error("Blocked flagged a legitimate authority URL")
	}
}

func TestCheckIfValidGND(t *testing.T) {
	ClearValidityCacheForTests()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<rdf:Description rdf:about="https://d-nb.info/gnd/118523813">`))
	}))
	defer srv.Close()
	httpclient.RegisterOverride("https://d-nb.info", srv.URL)
	defer httpclient.ClearOverrides()

	e := New(properties.GND, "118523813")
	if !e.CheckIfValid(context.Background()) {
		t.Error("expected GND id to validate")
	}

	// Cached: calling again must not require the fake server to still match.
	if !e.CheckIfValid(context.Background()) {
		t.Error("expected cached validity to be returned")
	}
}

func TestCheckIfValidNonGNDAlwaysTrue(t *testing.T) {
	ClearValidityCacheForTests()
	e := New(properties.VIAF, "30701597")
	if !e.CheckIfValid(context.Background()) {
		t.Error("non-GND properties are not live-validated and should report valid")
	}
}
