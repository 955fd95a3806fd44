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

const ulanRDF = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:schema="http://schema.org/">
  <rdf:Description rdf:about="https://vocab.getty.edu/ulan/500228559">
    <schema:name>Rembrandt van Rijn</schema:name>
  </rdf:Description>
</rdf:RDF>`

func TestULANRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ulanRDF))
	}))
	defer srv.Close()

	httpclient.RegisterOverride("https://vocab.getty.edu/ulan/", srv.URL+"/")
	defer httpclient.ClearOverrides()

	a, err := NewULAN("500228559")
	if err != nil {
		t.Fatalf("NewULAN: %v", err)
	}
	m, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := m.Labels["en"]; got != "Rembrandt van Rijn" {
		t.Errorf("label = %q", got)
	}
	var sawSelf bool
	for _, st := range m.Claims {
		if st.MainSnak.Property == properties.ULAN && st.MainSnak.Value.Str == "500228559" {
			sawSelf = true
		}
	}
	if !sawSelf {
		t.Error("expected the ULAN self-claim")
	}
}

func TestULANGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ulanRDF))
	}))
	defer srv.Close()

	httpclient.RegisterOverride("https://vocab.getty.edu/ulan/", srv.URL+"/")
	defer httpclient.ClearOverrides()

	a, err := NewULAN("500228559")
	if err != nil {
		t.Fatalf("NewULAN: %v", err)
	}
	g, err := a.Graph(context.Background())
	if err != nil {
		t.Fatalf("Graph: %v", err)
	}
	if g.Len() == 0 {
		t.Error("expected a non-empty graph")
	}
}
