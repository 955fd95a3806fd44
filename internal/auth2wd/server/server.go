// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package server is the thin HTTP layer around the adapter registry, the
// Combinator, and the merger: the routes of spec.md §6, built on a
// handler-methods-on-a-struct shape grounded on the teacher's webserver
// command.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wikitools/auth2wd/internal/auth2wd/adapter"
	"github.com/wikitools/auth2wd/internal/auth2wd/combinator"
	"github.com/wikitools/auth2wd/internal/auth2wd/externalid"
	"github.com/wikitools/auth2wd/internal/auth2wd/merge"
	"github.com/wikitools/auth2wd/internal/auth2wd/wbentity"
)

// Server holds no mutable state of its own: every request builds its own
// adapter/Combinator, so a Server is safe to share across goroutines.
type Server struct{}

// New returns a ready-to-use Server.
func New() *Server {
	return &Server{}
}

// Mux builds the route table using Go 1.22's method+wildcard ServeMux
// patterns (spec.md §6).
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /robots.txt", s.handleRobotsTxt)
	mux.HandleFunc("GET /supported_properties", s.handleSupportedProperties)
	mux.HandleFunc("GET /item/{prop}/{id}", s.handleItem)
	mux.HandleFunc("GET /meta_item/{prop}/{id}", s.handleMetaItem)
	mux.HandleFunc("GET /graph/{prop}/{id}", s.handleGraph)
	mux.HandleFunc("GET /extend/{item}", s.handleExtend)
	mux.HandleFunc("POST /merge", s.handleMerge)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleRobotsTxt(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprint(w, "User-Agent: *\nAllow: /\n")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	props := adapter.GetSupportedProperties()
	sort.Slice(props, func(i, j int) bool { return props[i].Property < props[j].Property })

	var rows strings.Builder
	for _, p := range props {
		fmt.Fprintf(&rows,
			"<tr><td>P%d</td><td>%s</td><td>%s</td><td><a href=\"/meta_item/P%d/%s\">try it</a></td></tr>\n",
			p.Property, p.Name, p.Source, p.Property, p.DemoID)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<html>
<head><title>auth2wd</title></head>
<body>
<h1>auth2wd</h1>
<p>Harvests biographical and taxonomic authority records into Wikibase-shaped
draft entities. See <a href="/supported_properties">/supported_properties</a>
for the machine-readable list of sources below.</p>
<table border="1" cellpadding="4">
<tr><th>Property</th><th>Name</th><th>Source</th><th>Demo</th></tr>
%s</table>
</body></html>`, rows.String())
}

func (s *Server) handleSupportedProperties(w http.ResponseWriter, r *http.Request) {
	props := adapter.GetSupportedProperties()
	out := make([]string, len(props))
	for i, p := range props {
		out[i] = fmt.Sprintf("P%d", p.Property)
	}
	sort.Strings(out)
	writeJSON(w, http.StatusOK, out)
}

// propertyAndID pulls the {prop}/{id} path values, parsing "P123"-style
// property text into its numeric form.
func propertyAndID(r *http.Request) (int, string, bool) {
	property, ok := externalid.PropertyNumber(r.PathValue("prop"))
	if !ok {
		return 0, "", false
	}
	return property, r.PathValue("id"), true
}

func (s *Server) handleItem(w http.ResponseWriter, r *http.Request) {
	s.runAdapter(w, r, false)
}

func (s *Server) handleMetaItem(w http.ResponseWriter, r *http.Request) {
	s.runAdapter(w, r, true)
}

func (s *Server) runAdapter(w http.ResponseWriter, r *http.Request, includePropText bool) {
	property, id, ok := propertyAndID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("malformed property"))
		return
	}
	a, err := adapter.GetParserForProperty(property, id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	m, err := a.Run(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	resp := itemResponse{WireDiff: merge.ItemToWire(m), Status: "OK"}
	if includePropText {
		resp.PropText = make([]string, len(m.PropText))
		for i, e := range m.PropText {
			resp.PropText[i] = e.String()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// itemResponse flattens a WireDiff's labels/descriptions/aliases/
// sitelinks/claims alongside "status" (and, for /meta_item, "prop_text"),
// matching the shape the original tool's /item and /meta_item routes
// return.
type itemResponse struct {
	*merge.WireDiff
	Status   string   `json:"status"`
	PropText []string `json:"prop_text,omitempty"`
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	property, id, ok := propertyAndID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Errorf("malformed property"))
		return
	}
	a, err := adapter.GetParserForProperty(property, id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	ga, ok := a.(adapter.GraphAdapter)
	if !ok {
		writeError(w, http.StatusNotImplemented, fmt.Errorf("P%d has no RDF graph to show", property))
		return
	}
	g, err := ga.Graph(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	w.Header().Set("Content-Type", "application/n-triples; charset=utf-8")
	fmt.Fprint(w, g.NTriples())
}

func (s *Server) handleExtend(w http.ResponseWriter, r *http.Request) {
	item := r.PathValue("item")
	base, err := wbentity.Fetch(r.Context(), item)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	c := combinator.New()
	if err := c.Import(r.Context(), base.ExternalIDClaims()); err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	diff := c.CombineOnBaseItem(base)
	writeJSON(w, http.StatusOK, diff.ToWire())
}

type mergeRequest struct {
	BaseItem json.RawMessage `json:"base_item"`
	NewItem  json.RawMessage `json:"new_item"`
}

func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	base, err := merge.ParseWireItem(req.BaseItem)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("base_item: %w", err))
		return
	}
	incoming, err := merge.ParseWireItem(req.NewItem)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("new_item: %w", err))
		return
	}

	diff := merge.Merge(base, incoming)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"item": merge.ItemToWire(base),
		"diff": diff.ToWire(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]interface{}{"status": "error", "error": err.Error()})
}
