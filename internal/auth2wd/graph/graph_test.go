// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package graph

import (
	"reflect"
	"testing"
)

const (
	subj = "https://d-nb.info/gnd/118523813"
	rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	sameAs  = "http://www.w3.org/2002/07/owl#sameAs"
	label   = "http://www.w3.org/2000/01/rdf-schema#label"
)

func buildFixture() *Graph {
	g := New()
	g.AddIRI(subj, rdfType, "http://d-nb.info/standards/elementset/gnd#DifferentiatedPerson")
	g.AddIRI(subj, sameAs, "https://viaf.org/viaf/30701597")
	g.AddIRI(subj, sameAs, "https://viaf.org/viaf/30701597") // duplicate
	g.AddIRI(subj, sameAs, "https://isni.org/isni/0000000121251077")
	g.AddBlankNode(subj, "urn:test:hasPart", "b1")
	g.AddLiteral(subj, label, "Charles Darwin", "en")
	g.AddLiteral(subj, label, "Darwin, Charles", "")
	g.AddLiteral("https://viaf.org/viaf/30701597", label, "Charles Darwin", "en")
	return g
}

func TestTriplesSubjectIRIs(t *testing.T) {
	g := buildFixture()
	got := g.TriplesSubjectIRIs(subj, sameAs)
	want := []string{"https://isni.org/isni/0000000121251077", "https://viaf.org/viaf/30701597"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TriplesSubjectIRIs = %v, want %v", got, want)
	}
}

func TestTriplesSubjectIRIsBlankNodes(t *testing.T) {
	g := buildFixture()
	got := g.TriplesSubjectIRIsBlankNodes(subj, "urn:test:hasPart")
	want := []string{"b1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TriplesSubjectIRIsBlankNodes = %v, want %v", got, want)
	}
}

func TestTriplesSubjectLiterals(t *testing.T) {
	g := buildFixture()
	got := g.TriplesSubjectLiterals(subj, label)
	want := []string{"Charles Darwin", "Darwin, Charles"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TriplesSubjectLiterals = %v, want %v", got, want)
	}
}

func TestTriplesPropertyObjectIRIs(t *testing.T) {
	g := buildFixture()
	got := g.TriplesPropertyObjectIRIs(sameAs, "https://viaf.org/viaf/30701597")
	want := []string{subj}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TriplesPropertyObjectIRIs = %v, want %v", got, want)
	}
}

func TestTriplesPropertyLiterals(t *testing.T) {
	g := buildFixture()
	got := g.TriplesPropertyLiterals(label)
	want := []string{"Charles Darwin", "Darwin, Charles"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TriplesPropertyLiterals = %v, want %v", got, want)
	}
}

func TestEmptyGraphQueriesReturnNil(t *testing.T) {
	g := New()
	if got := g.TriplesSubjectIRIs("s", "p"); got != nil {
		t.Errorf("expected nil on empty graph, got %v", got)
	}
}
