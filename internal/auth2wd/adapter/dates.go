// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	reYear      = regexp.MustCompile(`^(\d{4})$`)
	reYearMonth = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	reFullDate  = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// ParseDate accepts "YYYY", "YYYY-MM" and "YYYY-MM-DD" and returns an
// ISO-8601 instant plus the Wikibase precision (9/10/11) spec.md §4.4
// requires. It reports ok=false for anything else, leaving the caller to
// fall back to prop_text.
func ParseDate(s string) (iso string, precision int, ok bool) {
	switch {
	case reFullDate.MatchString(s):
		m := reFullDate.FindStringSubmatch(s)
		return fmt.Sprintf("%s-%s-%sT00:00:00Z", m[1], m[2], m[3]), 11, true
	case reYearMonth.MatchString(s):
		m := reYearMonth.FindStringSubmatch(s)
		return fmt.Sprintf("%s-%s-01T00:00:00Z", m[1], m[2]), 10, true
	case reYear.MatchString(s):
		m := reYear.FindStringSubmatch(s)
		return fmt.Sprintf("%s-01-01T00:00:00Z", m[1]), 9, true
	default:
		return "", 0, false
	}
}

// ParseYearRange parses a "YYYY-YYYY" life-span or period-of-activity
// literal into two years; ok is false unless both halves are bare years.
func ParseYearRange(s string) (start, end int, ok bool) {
	re := regexp.MustCompile(`^(\d{3,4})-(\d{3,4})$`)
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	startY, err1 := strconv.Atoi(m[1])
	endY, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return startY, endY, true
}
