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

func TestIdRefRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:schema="http://schema.org/">
  <rdf:Description rdf:about="https://www.idref.fr/026812304">
    <schema:name>Curie, Marie</schema:name>
  </rdf:Description>
</rdf:RDF>`))
	}))
	defer srv.Close()

	httpclient.RegisterOverride("https://www.idref.fr/", srv.URL+"/")
	defer httpclient.ClearOverrides()

	a, err := NewIdRef("026812304")
	if err != nil {
		t.Fatalf("NewIdRef: %v", err)
	}
	m, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := m.Labels["fr"]; got != "Marie Curie" {
		t.Errorf("label = %q", got)
	}
	var sawSelf bool
	for _, st := range m.Claims {
		if st.MainSnak.Property == properties.IdRef && st.MainSnak.Value.Str == "026812304" {
			sawSelf = true
		}
	}
	if !sawSelf {
		t.Error("expected the IdRef self-claim")
	}
}
