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

func TestBNERun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:schema="http://schema.org/">
  <rdf:Description rdf:about="https://datos.bne.es/resource/XX990809">
    <schema:name>Cervantes, Miguel de</schema:name>
  </rdf:Description>
</rdf:RDF>`))
	}))
	defer srv.Close()

	httpclient.RegisterOverride("https://datos.bne.es/resource/", srv.URL+"/")
	defer httpclient.ClearOverrides()

	a, err := NewBNE("XX990809")
	if err != nil {
		t.Fatalf("NewBNE: %v", err)
	}
	m, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := m.Labels["es"]; got != "Miguel de Cervantes" {
		t.Errorf("label = %q", got)
	}
	var sawSelf bool
	for _, st := range m.Claims {
		if st.MainSnak.Property == properties.BNE && st.MainSnak.Value.Str == "XX990809" {
			sawSelf = true
		}
	}
	if !sawSelf {
		t.Error("expected the BNE self-claim")
	}
}
