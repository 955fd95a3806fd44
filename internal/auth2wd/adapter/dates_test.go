// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import "testing"

func TestParseDate(t *testing.T) {
	cases := []struct {
		in            string
		iso           string
		precision     int
		ok            bool
	}{
		{"1828", "1828-01-01T00:00:00Z", 9, true},
		{"1828-05", "1828-05-01T00:00:00Z", 10, true},
		{"1828-05-03", "1828-05-03T00:00:00Z", 11, true},
		{"not a date", "", 0, false},
		{"", "", 0, false},
	}
	for _, c := range cases {
		iso, precision, ok := ParseDate(c.in)
		if iso != c.iso || precision != c.precision || ok != c.ok {
			t.Errorf("ParseDate(%q) = (%q, %d, %v), want (%q, %d, %v)",
				c.in, iso, precision, ok, c.iso, c.precision, c.ok)
		}
	}
}

func TestParseYearRange(t *testing.T) {
	cases := []struct {
		in         string
		start, end int
		ok         bool
	}{
		{"1828-1906", 1828, 1906, true},
		{"828-906", 828, 906, true},
		{"1828-", 0, 0, false},
		{"1828", 0, 0, false},
		{"not a range", 0, 0, false},
	}
	for _, c := range cases {
		start, end, ok := ParseYearRange(c.in)
		if start != c.start || end != c.end || ok != c.ok {
			t.Errorf("ParseYearRange(%q) = (%d, %d, %v), want (%d, %d, %v)",
				c.in, start, end, ok, c.start, c.end, c.ok)
		}
	}
}
