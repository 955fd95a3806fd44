// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package rescue implements the rescue pass (spec.md §4.7): promoting
// free-text prop_text values into item-reference claims by asking the
// Wikibase search endpoint whether exactly one matching item exists.
package rescue

import (
	"context"

	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/wbsearch"
)

// classesByProperty is the small, fixed property→class table of spec.md
// §4.7. A prop_text entry is only attempted when its property is listed
// here; the classes are tried in order, any one matching is accepted.
var classesByProperty = map[int][]string{
	properties.LanguagesSpokenOrWritten: {"Q34770"},
	properties.LocatedIn:                {"Q1549591", "Q515"},
	properties.CountryOfCitizenship:     {"Q6256"},
}

// TryRescueForAdapter attempts to convert every eligible prop_text entry
// into a claim, appending successes to m.Claims and leaving the rest in
// PropText untouched. It is idempotent (invariant 7 of spec.md §8):
// entries it fails to resolve remain, but running it again against the
// same MetaItem produces no additional claims, since a prop_text entry
// that was rescued is removed from the list on success.
func TryRescueForAdapter(ctx context.Context, m *metaitem.MetaItem) {
	kept := m.PropText[:0]
	for _, pt := range m.PropText {
		classes, ok := classesByProperty[pt.Property]
		if !ok {
			kept = append(kept, pt)
			continue
		}
		qid, found := rescueOne(ctx, pt.ID, classes)
		if !found {
			kept = append(kept, pt)
			continue
		}
		m.Claims = append(m.Claims, metaitem.Statement{
			MainSnak: metaitem.NewSnak(pt.Property, metaitem.ItemValue(qid)),
		})
	}
	m.PropText = kept
}

func rescueOne(ctx context.Context, text string, classes []string) (string, bool) {
	for _, class := range classes {
		query := text + ` haswbstatement:P31=` + class
		if qid, ok := wbsearch.SingleItem(ctx, query); ok {
			return qid, true
		}
	}
	return "", false
}
