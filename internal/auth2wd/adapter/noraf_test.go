// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func TestNORAFRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"marc": [
				{"tag": "100", "subfields": {"a": "Ibsen, Henrik", "d": "1828-1906"}}
			],
			"identifiersMap": {
				"viaf": ["https://viaf.org/viaf/96994048"],
				"other": ["https://example.org/unrelated"]
			}
		}`))
	}))
	defer srv.Close()

	httpclient.RegisterOverride(strings.TrimSuffix(norafKeyURLFormat, "%s?format=json"), srv.URL+"/")
	defer httpclient.ClearOverrides()

	a, err := NewNORAF("90524395")
	if err != nil {
		t.Fatalf("NewNORAF: %v", err)
	}
	m, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := m.Labels["no"]; got != "Henrik Ibsen" {
		t.Errorf("label = %q, want transformed last-first name", got)
	}

	var sawBirth, sawDeath, sawVIAF, sawSelf bool
	for _, st := range m.Claims {
		switch st.MainSnak.Property {
		case properties.DateOfBirth:
			if st.MainSnak.Value.Time != nil && strings.HasPrefix(st.MainSnak.Value.Time.ISO, "1828-") {
				sawBirth = true
			}
		case properties.DateOfDeath:
			if st.MainSnak.Value.Time != nil && strings.HasPrefix(st.MainSnak.Value.Time.ISO, "1906-") {
				sawDeath = true
			}
		case properties.VIAF:
			if st.MainSnak.Value.Str == "96994048" {
				sawVIAF = true
			}
		case properties.NORAF:
			if st.MainSnak.Value.Str == "90524395" {
				sawSelf = true
			}
		}
	}
	if !sawBirth {
		t.Error("expected a date-of-birth claim from the MARC 100$d life span")
	}
	if !sawDeath {
		t.Error("expected a date-of-death claim from the MARC 100$d life span")
	}
	if !sawVIAF {
		t.Error("expected a VIAF claim recognised from identifiersMap")
	}
	if !sawSelf {
		t.Error("expected the NORAF self-claim")
	}
}
