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

func TestNDLRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:schema="http://schema.org/">
  <rdf:Description rdf:about="https://id.ndl.go.jp/auth/ndlna/00054222">
    <schema:name>Natsume Soseki</schema:name>
  </rdf:Description>
</rdf:RDF>`))
	}))
	defer srv.Close()

	httpclient.RegisterOverride("https://id.ndl.go.jp/auth/ndlna/", srv.URL+"/")
	defer httpclient.ClearOverrides()

	a, err := NewNDL("00054222")
	if err != nil {
		t.Fatalf("NewNDL: %v", err)
	}
	m, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := m.Labels["ja"]; got != "Natsume Soseki" {
		t.Errorf("label = %q, want identity-transformed name", got)
	}
	var sawSelf bool
	for _, st := range m.Claims {
		if st.MainSnak.Property == properties.NDL && st.MainSnak.Value.Str == "00054222" {
			sawSelf = true
		}
	}
	if !sawSelf {
		t.Error("expected the NDL self-claim")
	}
}
