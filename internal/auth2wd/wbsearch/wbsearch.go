// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package wbsearch talks to the Wikidata search API to resolve free text or
// an external-id claim to a single matching item, per spec.md §6's
// "Wikibase search endpoint" contract. A single hit is the only result the
// rest of the system ever accepts; zero or multiple hits are a LookupMiss,
// not an error.
package wbsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
)

// BaseURL is the Wikidata search endpoint. Overridable for tests.
var BaseURL = "https://www.wikidata.org/w/api.php"

type searchResponse struct {
	Query struct {
		SearchInfo struct {
			TotalHits int `json:"totalhits"`
		} `json:"searchinfo"`
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

// SingleItem runs srsearch=query against the Wikidata search API and
// returns the matching item id, but only when exactly one result comes
// back. Any other outcome (zero hits, more than one hit, transport error)
// yields ("", false) — a LookupMiss, never a hard error, per spec.md §7.
func SingleItem(ctx context.Context, query string) (string, bool) {
	u := fmt.Sprintf("%s?action=query&list=search&srnamespace=0&format=json&srsearch=%s",
		BaseURL, url.QueryEscape(query))
	body, err := httpclient.GetText(ctx, u)
	if err != nil {
		return "", false
	}
	var resp searchResponse
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return "", false
	}
	if resp.Query.SearchInfo.TotalHits != 1 || len(resp.Query.Search) != 1 {
		return "", false
	}
	return resp.Query.Search[0].Title, true
}

// ItemForExternalIDValue looks up haswbstatement:"P{property}={id}".
func ItemForExternalIDValue(ctx context.Context, property int, id string) (string, bool) {
	return SingleItem(ctx, fmt.Sprintf("haswbstatement:%q", fmt.Sprintf("P%d=%s", property, id)))
}

// ItemForStringExternalIDValue prepends label to the haswbstatement query,
// used by the rescue pass to disambiguate free text like "Germany" against
// a specific class of item.
func ItemForStringExternalIDValue(ctx context.Context, label string, property int, id string) (string, bool) {
	return SingleItem(ctx, fmt.Sprintf("%s haswbstatement:%q", label, fmt.Sprintf("P%d=%s", property, id)))
}
