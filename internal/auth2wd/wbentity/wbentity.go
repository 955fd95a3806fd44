// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package wbentity fetches a live Wikibase item so the "/extend" route
// and the "extend" CLI subcommand can seed a combinator crawl from an
// item's existing external-id claims and merge the crawl's findings back
// onto it (spec.md §6).
package wbentity

import (
	"context"
	"fmt"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/merge"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/wbsearch"
)

// Fetch retrieves item (e.g. "Q42") via action=wbgetentities on the
// configured Wikibase API endpoint and decodes it into a MetaItem.
func Fetch(ctx context.Context, item string) (*metaitem.MetaItem, error) {
	url := fmt.Sprintf("%s?action=wbgetentities&ids=%s&format=json", wbsearch.BaseURL, item)
	body, err := httpclient.GetText(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", item, err)
	}
	m, err := merge.ParseWireItem([]byte(body))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", item, err)
	}
	return m, nil
}
