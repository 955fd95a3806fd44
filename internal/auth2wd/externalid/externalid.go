// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package externalid implements the ExternalId value type: a typed
// (property, id) pair that is the vocabulary every source adapter,
// the combinator, and the merger use to refer to a cross-source reference.
package externalid

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/wbsearch"
)

// ExternalId is a typed reference of the form P{property}:{id}, canonicalised
// on construction. It is a plain value type: copy it freely.
type ExternalId struct {
	Property int
	ID       string
}

var (
	reFromString     = regexp.MustCompile(`^[Pp](\d+):(.+)$`)
	reFromStringLNB  = regexp.MustCompile(`^LNC10-(.+)$`)
	rePropertyNumber = regexp.MustCompile(`^\s*[Pp](\d+)\s*$`)
)

// New builds a canonical ExternalId, applying the property-specific
// normaliser. Construction is idempotent: New(p, New(p,s).ID) == New(p,s).
func New(property int, id string) ExternalId {
	return ExternalId{Property: property, ID: canonicalize(property, id)}
}

func canonicalize(property int, id string) string {
	switch property {
	case properties.ISNI:
		return strings.ReplaceAll(id, " ", "")
	case properties.NUKAT:
		return strings.ReplaceAll(id, "+", "")
	case properties.LoC:
		return strings.ReplaceAll(id, "+", "")
	case properties.LNB:
		if m := reFromStringLNB.FindStringSubmatch(id); m != nil {
			return m[1]
		}
		return id
	case properties.BAV:
		return strings.ReplaceAll(id, "_", "/")
	case properties.BnF:
		if isAllDigits(id) {
			return id + "p"
		}
		return id
	default:
		return id
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PropertyNumber parses "P123" (surrounding whitespace tolerated) into 123.
func PropertyNumber(prop string) (int, bool) {
	m := rePropertyNumber.FindStringSubmatch(prop)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// FromString parses "P{n}:{id}" into a canonical ExternalId.
func FromString(s string) (ExternalId, bool) {
	m := reFromString.FindStringSubmatch(s)
	if m == nil {
		return ExternalId{}, false
	}
	property, err := strconv.Atoi(m[1])
	if err != nil {
		return ExternalId{}, false
	}
	return New(property, m[2]), true
}

// String renders the canonical "P{n}:{id}" text form.
func (e ExternalId) String() string {
	return fmt.Sprintf("P%d:%s", e.Property, e.ID)
}

// Less gives ExternalId a total order (property, then id), used to make
// Combinator wavefronts and merge operations reproducible.
func Less(a, b ExternalId) bool {
	if a.Property != b.Property {
		return a.Property < b.Property
	}
	return a.ID < b.ID
}

// SortAndDedup sorts ids in place by Less and removes adjacent duplicates,
// returning the deduplicated slice (which may alias ids).
func SortAndDedup(ids []ExternalId) []ExternalId {
	sort.Slice(ids, func(i, j int) bool { return Less(ids[i], ids[j]) })
	out := ids[:0]
	var prev ExternalId
	havePrev := false
	for _, id := range ids {
		if havePrev && id == prev {
			continue
		}
		out = append(out, id)
		prev = id
		havePrev = true
	}
	return out
}

// blocklist names URL prefixes that must never be promoted to an external-id
// claim: Wikidata/Wikipedia self-references, the generic foaf:Person concept
// node, and ORCID fragment anchors.
var blocklist = []*regexp.Regexp{
	regexp.MustCompile(`^https?://www\.wikidata\.org/`),
	regexp.MustCompile(`^https?://[a-z-]+\.wikipedia\.org/`),
	regexp.MustCompile(`^http://xmlns\.com/foaf/0\.1/Person$`),
	regexp.MustCompile(`^https?://orcid\.org/\d{4}-\d{4}-\d{4}-\d{3}[0-9X]#.*$`),
}

// Blocked reports whether url must never become a P973 claim or a rescued
// external id.
func Blocked(url string) bool {
	for _, re := range blocklist {
		if re.MatchString(url) {
			return true
		}
	}
	return false
}

var (
	validityCacheMu sync.Mutex
	validityCache   = map[ExternalId]bool{}
)

// CheckIfValid reports whether e is valid for write. Only GND is currently
// live-validated (by re-fetching the authority record and checking for a
// self-reference); every other property is assumed valid. Results are
// cached process-wide, keyed by the full ExternalId.
func (e ExternalId) CheckIfValid(ctx context.Context) bool {
	validityCacheMu.Lock()
	if v, ok := validityCache[e]; ok {
		validityCacheMu.Unlock()
		return v
	}
	validityCacheMu.Unlock()

	valid := e.checkIfValidUncached(ctx)

	validityCacheMu.Lock()
	validityCache[e] = valid
	validityCacheMu.Unlock()
	return valid
}

// ClearValidityCacheForTests empties the process-wide validity cache. Only
// meant to be called from tests that need a clean cache.
func ClearValidityCacheForTests() {
	validityCacheMu.Lock()
	defer validityCacheMu.Unlock()
	validityCache = map[ExternalId]bool{}
}

func (e ExternalId) checkIfValidUncached(ctx context.Context) bool {
	if e.Property != properties.GND {
		return true
	}
	url := fmt.Sprintf("https://d-nb.info/gnd/%s/about/lds.rdf", e.ID)
	body, err := httpclient.GetText(ctx, url)
	if err != nil {
		// ValidityCheckFailure: transport failure during validation means
		// the claim is skipped, not rejected as invalid.
		return false
	}
	want := fmt.Sprintf(`rdf:about="https://d-nb.info/gnd/%s"`, e.ID)
	return strings.Contains(body, want)
}

// GetItemForExternalIDValue asks the Wikibase search endpoint for the one
// item carrying this external id, per spec.md §4.1.
func (e ExternalId) GetItemForExternalIDValue(ctx context.Context) (string, bool) {
	return wbsearch.ItemForExternalIDValue(ctx, e.Property, e.ID)
}

// GetItemForStringExternalIDValue prepends label to the query.
func (e ExternalId) GetItemForStringExternalIDValue(ctx context.Context, label string) (string, bool) {
	return wbsearch.ItemForStringExternalIDValue(ctx, label, e.Property, e.ID)
}
