// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func TestNBRun(t *testing.T) {
	const self = "https://authority.bibsys.no/authority/rest/v2/1006046"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"subject": "` + self + `", "predicate": "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", "object": {"type": "uri", "value": "http://schema.org/Person"}},
			{"subject": "` + self + `", "predicate": "http://schema.org/name", "object": {"type": "literal", "value": "Hamsun, Knut", "lang": "no"}},
			{"subject": "` + self + `", "predicate": "http://schema.org/sameAs", "object": {"type": "uri", "value": "https://viaf.org/viaf/97123775"}}
		]`))
	}))
	defer srv.Close()

	httpclient.RegisterOverride("https://authority.bibsys.no/authority/rest/v2/", srv.URL+"/")
	defer httpclient.ClearOverrides()

	a, err := NewNB("1006046")
	if err != nil {
		t.Fatalf("NewNB: %v", err)
	}
	m, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := m.Labels["no"]; got != "Knut Hamsun" {
		t.Errorf("label = %q, want transformed last-first name", got)
	}

	var sawInstanceOf, sawVIAF, sawSelf bool
	for _, st := range m.Claims {
		switch st.MainSnak.Property {
		case properties.InstanceOf:
			if st.MainSnak.Value.Str == "Q5" {
				sawInstanceOf = true
			}
		case properties.VIAF:
			if st.MainSnak.Value.Str == "97123775" {
				sawVIAF = true
			}
		case properties.NB:
			if st.MainSnak.Value.Str == "1006046" {
				sawSelf = true
			}
		}
	}
	if !sawInstanceOf {
		t.Error("expected instance-of Q5 from rdf:type")
	}
	if !sawVIAF {
		t.Error("expected a VIAF claim recognised from schema:sameAs")
	}
	if !sawSelf {
		t.Error("expected the NB self-claim")
	}
}
