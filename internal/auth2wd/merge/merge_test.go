// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package merge

import (
	"testing"

	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func withReference(st metaitem.Statement, refs ...metaitem.Reference) metaitem.Statement {
	st.References = refs
	return st
}

func gndSelfClaim(id string) metaitem.Statement {
	return withReference(
		metaitem.Statement{MainSnak: metaitem.NewSnak(properties.GND, metaitem.ExternalIDValue(id))},
		metaitem.Reference{
			metaitem.NewSnak(properties.StatedIn, metaitem.ItemValue("Q36578")),
			metaitem.NewSnak(properties.GND, metaitem.ExternalIDValue(id)),
		},
	)
}

// TestMergeCommutativity is invariant 8 of spec.md §8.
func TestMergeCommutativity(t *testing.T) {
	base := func() *metaitem.MetaItem { m := metaitem.New(); return m }

	a := metaitem.New()
	a.Labels["de"] = "Magnus Manske"
	a.Claims = append(a.Claims, gndSelfClaim("132539691"))

	b := metaitem.New()
	b.Labels["en"] = "Magnus Manske"
	b.Claims = append(b.Claims, metaitem.Statement{MainSnak: metaitem.NewSnak(properties.VIAF, metaitem.ExternalIDValue("30701597"))})

	x1 := base()
	Merge(x1, a)
	Merge(x1, b)

	x2 := base()
	Merge(x2, b)
	Merge(x2, a)

	if len(x1.Claims) != len(x2.Claims) {
		t.Fatalf("claim counts differ: %d vs %d", len(x1.Claims), len(x2.Claims))
	}
	if x1.Labels["de"] != x2.Labels["de"] || x1.Labels["en"] != x2.Labels["en"] {
		t.Fatalf("labels differ: %v vs %v", x1.Labels, x2.Labels)
	}
}

func TestMergeReferenceTolerantDedup(t *testing.T) {
	base := metaitem.New()
	base.Claims = append(base.Claims, withReference(
		metaitem.Statement{MainSnak: metaitem.NewSnak(properties.DateOfBirth, metaitem.TimeValueOf("1875-01-01T00:00:00Z", 9))},
		metaitem.Reference{
			metaitem.NewSnak(properties.StatedIn, metaitem.ItemValue("Q1")),
			metaitem.NewSnak(properties.GND, metaitem.ExternalIDValue("abc")),
		},
	))

	incoming := metaitem.New()
	incoming.Claims = append(incoming.Claims, withReference(
		metaitem.Statement{MainSnak: metaitem.NewSnak(properties.DateOfBirth, metaitem.TimeValueOf("1875-06-12T00:00:00Z", 9))},
		metaitem.Reference{
			metaitem.NewSnak(properties.StatedIn, metaitem.ItemValue("Q2")), // different stated-in
			metaitem.NewSnak(properties.GND, metaitem.ExternalIDValue("abc")), // shared id
		},
	))

	Merge(base, incoming)

	if len(base.Claims) != 1 {
		t.Fatalf("expected statements to fold via precision-aware equality, got %d", len(base.Claims))
	}
	if len(base.Claims[0].References) != 1 {
		t.Fatalf("tolerant reference dedup should have suppressed the new reference, got %d", len(base.Claims[0].References))
	}
}

func TestMergeDatePrecisionRule(t *testing.T) {
	base := metaitem.New()
	base.Claims = append(base.Claims, metaitem.Statement{
		MainSnak: metaitem.NewSnak(properties.DateOfBirth, metaitem.TimeValueOf("1875-06-12T00:00:00Z", 11)),
		Rank:     metaitem.RankNormal,
	})

	incoming := metaitem.New()
	incoming.Claims = append(incoming.Claims, metaitem.Statement{
		MainSnak: metaitem.NewSnak(properties.DateOfBirth, metaitem.TimeValueOf("1875-01-01T00:00:00Z", 9)),
		Rank:     metaitem.RankNormal,
	})

	diff := Merge(base, incoming)

	if len(diff.AddedStatements) != 1 {
		t.Fatalf("expected the coarser date to be added as a new (deprecated) statement, got %d", len(diff.AddedStatements))
	}
	var coarse, fine *metaitem.Statement
	for i := range base.Claims {
		if base.Claims[i].MainSnak.Value.Time.Precision == 9 {
			coarse = &base.Claims[i]
		} else {
			fine = &base.Claims[i]
		}
	}
	if coarse == nil || fine == nil {
		t.Fatalf("expected both precisions present, got %+v", base.Claims)
	}
	if coarse.Rank != metaitem.RankDeprecated {
		t.Errorf("coarser date should be deprecated, got %v", coarse.Rank)
	}
	if fine.Rank != metaitem.RankNormal {
		t.Errorf("finer date should remain normal, got %v", fine.Rank)
	}
	found := false
	for _, q := range coarse.Qualifiers {
		if q.Property == properties.LessPreciseValueQualifier {
			found = true
		}
	}
	if !found {
		t.Error("deprecated date is missing the P2241 reason qualifier")
	}
}

func TestMergeImageRuleStripsCommonsURL(t *testing.T) {
	base := metaitem.New()
	base.Claims = append(base.Claims, metaitem.Statement{MainSnak: metaitem.NewSnak(properties.Image, metaitem.URLValue("https://commons.wikimedia.org/x.jpg"))})

	incoming := metaitem.New()
	incoming.Claims = append(incoming.Claims, metaitem.Statement{MainSnak: metaitem.NewSnak(properties.CommonsCompatibleImageURL, metaitem.URLValue("https://example.org/y.jpg"))})

	Merge(base, incoming)

	for _, c := range base.Claims {
		if c.MainSnak.Property == properties.CommonsCompatibleImageURL {
			t.Fatal("P4765 claim should have been stripped because base already has P18")
		}
	}
}

func TestMergeLabelBecomesAlias(t *testing.T) {
	base := metaitem.New()
	base.Labels["en"] = "Charles Darwin"

	incoming := metaitem.New()
	incoming.Labels["en"] = "C. Darwin"

	diff := Merge(base, incoming)

	if base.Labels["en"] != "Charles Darwin" {
		t.Fatalf("base label should be unchanged, got %q", base.Labels["en"])
	}
	if len(base.Aliases) != 1 || base.Aliases[0].Value != "C. Darwin" {
		t.Fatalf("expected alias, got %v", base.Aliases)
	}
	if len(diff.Aliases) != 1 {
		t.Fatalf("diff should record the new alias, got %v", diff.Aliases)
	}
}

func TestToWireOmitsEmptySections(t *testing.T) {
	diff := newDiff()
	w := diff.ToWire()
	if w.Labels != nil || w.Descriptions != nil || w.Aliases != nil || w.Sitelinks != nil || w.Claims != nil {
		t.Fatalf("expected all sections nil for an empty diff, got %+v", w)
	}
}

func TestToWireStripsDatatype(t *testing.T) {
	diff := newDiff()
	diff.AddedStatements = append(diff.AddedStatements, withReference(
		metaitem.Statement{MainSnak: metaitem.NewSnak(properties.GND, metaitem.ExternalIDValue("1"))},
		metaitem.Reference{metaitem.NewSnak(properties.StatedIn, metaitem.ItemValue("Q1"))},
	))
	w := diff.ToWire()
	stmts := w.Claims["P227"]
	if len(stmts) != 1 {
		t.Fatalf("expected one P227 statement, got %d", len(stmts))
	}
	// wireSnak has no Datatype field at all, so there is nothing to assert
	// beyond the shape compiling and round-tripping the value correctly.
	if stmts[0].MainSnak.DataValue.Value != "1" {
		t.Errorf("mainsnak value = %v", stmts[0].MainSnak.DataValue.Value)
	}
}
