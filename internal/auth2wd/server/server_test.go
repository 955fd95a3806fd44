// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/merge"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"

	_ "github.com/wikitools/auth2wd/internal/auth2wd/adapter"
)

const ulanRDF = `<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"
         xmlns:schema="http://schema.org/">
  <rdf:Description rdf:about="https://vocab.getty.edu/ulan/500228559">
    <schema:name>Rembrandt van Rijn</schema:name>
  </rdf:Description>
</rdf:RDF>`

func TestHandleSupportedProperties(t *testing.T) {
	s := New()
	req := httptest.NewRequest(http.MethodGet, "/supported_properties", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var props []string
	if err := json.Unmarshal(rec.Body.Bytes(), &props); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var sawULAN bool
	for _, p := range props {
		if p == "P245" {
			sawULAN = true
		}
	}
	if !sawULAN {
		t.Errorf("expected P245 (ULAN) in supported properties, got %v", props)
	}
}

func TestHandleMetaItem(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ulanRDF))
	}))
	defer srv.Close()
	httpclient.RegisterOverride("https://vocab.getty.edu/ulan/", srv.URL+"/")
	defer httpclient.ClearOverrides()

	s := New()
	req := httptest.NewRequest(http.MethodGet, "/meta_item/P245/500228559", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != "OK" {
		t.Errorf("status field = %v", resp["status"])
	}
	labels, ok := resp["labels"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected a top-level labels object, got %v", resp)
	}
	en, ok := labels["en"].(map[string]interface{})
	if !ok || en["value"] != "Rembrandt van Rijn" {
		t.Errorf("labels.en = %v", labels["en"])
	}
}

func TestHandleGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ulanRDF))
	}))
	defer srv.Close()
	httpclient.RegisterOverride("https://vocab.getty.edu/ulan/", srv.URL+"/")
	defer httpclient.ClearOverrides()

	s := New()
	req := httptest.NewRequest(http.MethodGet, "/graph/P245/500228559", nil)
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Rembrandt van Rijn") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestHandleMerge(t *testing.T) {
	base := metaitem.New()
	base.Labels["en"] = "Marie Curie"

	incoming := metaitem.New()
	incoming.Claims = append(incoming.Claims, metaitem.Statement{
		MainSnak: metaitem.NewSnak(properties.GND, metaitem.ExternalIDValue("118677884")),
	})

	body, err := json.Marshal(map[string]interface{}{
		"base_item": merge.ItemToWire(base),
		"new_item":  merge.ItemToWire(incoming),
	})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	s := New()
	req := httptest.NewRequest(http.MethodPost, "/merge", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Item json.RawMessage `json:"item"`
		Diff json.RawMessage `json:"diff"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Item) == 0 || len(resp.Diff) == 0 {
		t.Errorf("expected both item and diff in the response, got %s", rec.Body.String())
	}
	if !strings.Contains(string(resp.Diff), "P227") {
		t.Errorf("expected the new GND claim in the diff, got %s", resp.Diff)
	}
}
