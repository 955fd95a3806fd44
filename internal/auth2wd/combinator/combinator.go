// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package combinator implements the crawling Combinator: a BFS walk of
// the identifier graph that fetches one MetaItem per discovered external
// id, bounded per-wavefront, then folds the resulting store into a
// single entity via the merge package. See spec.md §4.5.
package combinator

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wikitools/auth2wd/internal/auth2wd/adapter"
	"github.com/wikitools/auth2wd/internal/auth2wd/externalid"
	"github.com/wikitools/auth2wd/internal/auth2wd/merge"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
)

// Combinator owns the canonical-id-string → MetaItem store built up by
// a single crawl. It is not safe for concurrent Import calls sharing one
// instance; callers run one crawl per Combinator.
type Combinator struct {
	mu    sync.Mutex
	store map[string]*metaitem.MetaItem
}

// New returns an empty Combinator.
func New() *Combinator {
	return &Combinator{store: make(map[string]*metaitem.MetaItem)}
}

// HasParserForExtID reports whether e's property has a registered adapter.
func HasParserForExtID(e externalid.ExternalId) bool {
	return adapter.HasParserForExtID(e)
}

// GetParserForExtID constructs the adapter for e.
func GetParserForExtID(e externalid.ExternalId) (adapter.SourceAdapter, error) {
	return adapter.GetParserForExtID(e)
}

// Store returns a snapshot of the crawl's accumulated entries, keyed by
// ExternalId.String().
func (c *Combinator) Store() map[string]*metaitem.MetaItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]*metaitem.MetaItem, len(c.store))
	for k, v := range c.store {
		out[k] = v
	}
	return out
}

// Import runs the crawl algorithm of spec.md §4.5, starting from
// seedIDs and following every external id discovered in harvested
// claims until the wavefront is exhausted.
func (c *Combinator) Import(ctx context.Context, seedIDs []externalid.ExternalId) error {
	seen := make(map[string]bool)
	pending := append([]externalid.ExternalId(nil), seedIDs...)

	for len(pending) > 0 {
		pending = sortDedupExternalIDs(pending)
		for _, e := range pending {
			seen[e.String()] = true
		}

		type built struct {
			parser adapter.SourceAdapter
			key    string
		}
		var parsers []built
		for _, e := range pending {
			key := e.String()
			c.mu.Lock()
			_, already := c.store[key]
			c.mu.Unlock()
			if already {
				continue
			}
			p, err := adapter.GetParserForExtID(e)
			if err != nil {
				continue
			}
			parsers = append(parsers, built{parser: p, key: key})
		}

		type result struct {
			key string
			m   *metaitem.MetaItem
		}
		results := make([]result, len(parsers))
		g, gctx := errgroup.WithContext(ctx)
		for i, b := range parsers {
			i, b := i, b
			g.Go(func() error {
				m, err := b.parser.Run(gctx)
				if err != nil {
					return nil // adapter failure is non-fatal to the crawl
				}
				results[i] = result{key: b.key, m: m}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		var discovered []externalid.ExternalId
		c.mu.Lock()
		for _, r := range results {
			if r.m == nil {
				continue
			}
			if _, already := c.store[r.key]; already {
				continue
			}
			c.store[r.key] = r.m
			discovered = append(discovered, r.m.ExternalIDClaims()...)
		}
		c.mu.Unlock()

		var next []externalid.ExternalId
		nextSeen := make(map[string]bool)
		for _, e := range discovered {
			key := e.String()
			if seen[key] || nextSeen[key] {
				continue
			}
			nextSeen[key] = true
			next = append(next, e)
		}
		pending = next
	}
	return nil
}

func sortDedupExternalIDs(ids []externalid.ExternalId) []externalid.ExternalId {
	sorted := append([]externalid.ExternalId(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return externalid.Less(sorted[i], sorted[j]) })
	out := sorted[:0]
	for i, e := range sorted {
		if i == 0 || e != sorted[i-1] {
			out = append(out, e)
		}
	}
	return out
}

// Combine folds every stored MetaItem into a single representative,
// picking an arbitrary starting pair each round (spec.md §4.5). Merge
// order is unconstrained by design: the merger is required to converge
// regardless (see spec.md §8, merge commutativity).
func (c *Combinator) Combine() (*metaitem.MetaItem, *merge.MergeDiff) {
	c.mu.Lock()
	keys := make([]string, 0, len(c.store))
	for k := range c.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		c.mu.Unlock()
		return metaitem.New(), &merge.MergeDiff{}
	}

	base := c.store[keys[0]]
	cumulative := &merge.MergeDiff{
		Labels:            map[string]string{},
		Descriptions:      map[string]string{},
		Aliases:           nil,
		Sitelinks:         map[string]string{},
		AlteredStatements: map[string]metaitem.Statement{},
		AddedStatements:   nil,
	}
	rest := keys[1:]
	c.mu.Unlock()

	for _, k := range rest {
		c.mu.Lock()
		other := c.store[k]
		c.mu.Unlock()
		d := merge.Merge(base, other)
		mergeCumulative(cumulative, d)
	}

	return base, cumulative
}

// CombineOnBaseItem folds every stored MetaItem into base in turn,
// returning the cumulative diff (spec.md §4.5).
func (c *Combinator) CombineOnBaseItem(base *metaitem.MetaItem) *merge.MergeDiff {
	c.mu.Lock()
	keys := make([]string, 0, len(c.store))
	for k := range c.store {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	c.mu.Unlock()

	cumulative := &merge.MergeDiff{
		Labels:            map[string]string{},
		Descriptions:      map[string]string{},
		Sitelinks:         map[string]string{},
		AlteredStatements: map[string]metaitem.Statement{},
	}
	for _, k := range keys {
		c.mu.Lock()
		other := c.store[k]
		c.mu.Unlock()
		d := merge.Merge(base, other)
		mergeCumulative(cumulative, d)
	}
	return cumulative
}

// mergeCumulative folds one round's MergeDiff into the running total.
func mergeCumulative(total, d *merge.MergeDiff) {
	for k, v := range d.Labels {
		total.Labels[k] = v
	}
	for k, v := range d.Descriptions {
		total.Descriptions[k] = v
	}
	for k, v := range d.Sitelinks {
		total.Sitelinks[k] = v
	}
	total.Aliases = append(total.Aliases, d.Aliases...)
	for k, v := range d.AlteredStatements {
		total.AlteredStatements[k] = v
	}
	total.AddedStatements = append(total.AddedStatements, d.AddedStatements...)
}
