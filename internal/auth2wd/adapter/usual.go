// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"

	"github.com/wikitools/auth2wd/internal/auth2wd/externalid"
	"github.com/wikitools/auth2wd/internal/auth2wd/graph"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
	"github.com/wikitools/auth2wd/internal/auth2wd/urlrecognizer"
)

// RDF/OWL/SKOS/MADS predicate IRIs the usual sequence reads. Named here
// rather than inlined so the per-step fixed predicate lists read as lists.
const (
	predRDFType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"

	predOwlSameAs       = "http://www.w3.org/2002/07/owl#sameAs"
	predSkosExactMatch  = "http://www.w3.org/2004/02/skos/core#exactMatch"
	predKBSameAs        = "http://id.kb.se/vocab/sameAs"
	predSchemaSameAs    = "http://schema.org/sameAs"
	predMadsIdentifiesRWO = "http://www.loc.gov/mads/rdf/v1#identifiesRWO"

	predFoafGender  = "http://xmlns.com/foaf/0.1/gender"
	predRDAGender   = "http://rdaregistry.info/Elements/a/P50116"
	predGNDGender   = "http://d-nb.info/standards/elementset/gnd#gender"
	predSchemaGender = "http://schema.org/gender"

	predSchemaName      = "http://schema.org/name"
	predFoafName        = "http://xmlns.com/foaf/0.1/name"
	predBNEP5012        = "http://datos.bne.es/def/P5012"
	predGNDPreferredName = "http://d-nb.info/standards/elementset/gnd#preferredNameForThePerson"
	predGNDVariantName   = "http://d-nb.info/standards/elementset/gnd#variantNameForThePerson"
	predRDFSLabel       = "http://www.w3.org/2000/01/rdf-schema#label"
	predSchemaAltName   = "http://schema.org/alternateName"

	predSkosPrefLabel    = "http://www.w3.org/2004/02/skos/core#prefLabel"
	predSkosAltLabel     = "http://www.w3.org/2004/02/skos/core#altLabel"
	predBNEP3067         = "http://datos.bne.es/def/P3067"
	predRDABiographicalInfo = "http://rdaregistry.info/Elements/a/P50113"
	predKBDescription    = "http://id.kb.se/vocab/description"
	predMadsAuthoritativeLabel = "http://www.loc.gov/mads/rdf/v1#authoritativeLabel"

	predRDALanguage = "http://rdaregistry.info/Elements/a/P50102"
)

// instanceOfMap is the fixed rdf:type → Wikidata-class table of usual
// sequence step 2.
var instanceOfMap = map[string]string{
	"http://schema.org/Person":        "Q5",
	"http://xmlns.com/foaf/0.1/Person": "Q5",
	"http://id.kb.se/vocab/Person":    "Q5",
	"http://d-nb.info/standards/elementset/gnd#DifferentiatedPerson": "Q5",
}

// sameAsPredicates is the fixed predicate list of usual sequence step 3.
var sameAsPredicates = []string{predOwlSameAs, predSkosExactMatch, predKBSameAs, predSchemaSameAs, predMadsIdentifiesRWO}

// labelPredicates is the fixed predicate list of usual sequence step 5.
var labelPredicates = []string{predSchemaName, predFoafName, predBNEP5012, predGNDPreferredName, predGNDVariantName, predRDFSLabel, predSchemaAltName}

// descriptionPredicates is the fixed predicate list of usual sequence step 6.
var descriptionPredicates = []string{predSkosPrefLabel, predSkosAltLabel, predBNEP3067, predRDABiographicalInfo, predKBDescription, predMadsAuthoritativeLabel}

// AddTheUsual runs the shared seven-step extraction every SourceAdapter
// applies before its own source-specific tail (spec.md §4.4). g is the
// RDF graph the adapter parsed its payload into; self is the adapter's
// own canonical id-URL (SelfURL(a)).
func AddTheUsual(ctx context.Context, a SourceAdapter, g *graph.Graph, m *metaitem.MetaItem) {
	self := SelfURL(a)

	// Step 1: self-claim.
	m.AddClaim(SelfClaim(a), nil)

	// Step 2: instance-of from rdf:type.
	for _, t := range g.TriplesSubjectIRIs(self, predRDFType) {
		if qid, ok := instanceOfMap[t]; ok {
			m.AddClaim(metaitem.Statement{
				MainSnak:   metaitem.NewSnak(properties.InstanceOf, metaitem.ItemValue(qid)),
				References: []metaitem.Reference{SelfReference(a)},
			}, nil)
		} else {
			m.AddPropText(properties.InstanceOf, t)
		}
	}

	// Step 3: same-as.
	for _, pred := range sameAsPredicates {
		for _, url := range g.TriplesSubjectIRIs(self, pred) {
			addSameAs(ctx, a, m, url)
		}
	}

	// Step 4: gender.
	addGender(a, g, m, self)

	// Step 5: labels and aliases.
	for _, pred := range labelPredicates {
		for _, lit := range g.TriplesSubjectLiterals(self, pred) {
			m.ApplyLabelCandidate(a.PrimaryLanguage(), lit, a.TransformLabel)
		}
	}

	// Step 6: descriptions.
	for _, pred := range descriptionPredicates {
		for _, lit := range g.TriplesSubjectLiterals(self, pred) {
			m.ApplyDescriptionCandidate(a.PrimaryLanguage(), lit)
		}
	}

	// Step 7: language spoken/written.
	for _, lit := range g.TriplesSubjectLiterals(self, predRDALanguage) {
		m.AddPropText(properties.LanguagesSpokenOrWritten, lit)
	}
}

// addSameAs implements usual-sequence step 3's per-URL handling: blocklist
// filter, then UrlRecognizer with a live validity check, falling back to a
// described-at URL claim on a miss.
func addSameAs(ctx context.Context, a SourceAdapter, m *metaitem.MetaItem, url string) {
	if externalid.Blocked(url) {
		return
	}
	if id, ok := urlrecognizer.Recognize(url); ok {
		if id.CheckIfValid(ctx) {
			m.AddClaim(metaitem.Statement{
				MainSnak:   metaitem.NewSnak(id.Property, metaitem.ExternalIDValue(id.ID)),
				References: []metaitem.Reference{SelfReference(a)},
			}, nil)
		}
		return
	}
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(properties.DescribedAtURL, metaitem.URLValue(url)),
		References: []metaitem.Reference{SelfReference(a)},
	}, nil)
}

// genderTokens maps the fixed set of recognised gender literals/IRIs to
// Wikidata items; anything else falls through to prop_text.
var genderTokens = map[string]string{
	"male":   properties.Male,
	"female": properties.Female,
	"Masculino": properties.Male,
	"Femenino":  properties.Female,
	"http://d-nb.info/standards/vocab/gnd/gender#male":   properties.Male,
	"http://d-nb.info/standards/vocab/gnd/gender#female": properties.Female,
	"http://vocab.getty.edu/aat/300189559": properties.Male,
	"http://vocab.getty.edu/aat/300189557": properties.Female,
}

func addGender(a SourceAdapter, g *graph.Graph, m *metaitem.MetaItem, self string) {
	var tokens []string
	tokens = append(tokens, g.TriplesSubjectLiterals(self, predFoafGender)...)
	tokens = append(tokens, g.TriplesSubjectLiterals(self, predRDAGender)...)
	tokens = append(tokens, g.TriplesSubjectIRIs(self, predGNDGender)...)
	tokens = append(tokens, g.TriplesSubjectIRIs(self, predSchemaGender)...)

	for _, tok := range tokens {
		if qid, ok := genderTokens[tok]; ok {
			m.AddClaim(metaitem.Statement{
				MainSnak:   metaitem.NewSnak(properties.SexOrGender, metaitem.ItemValue(qid)),
				References: []metaitem.Reference{SelfReference(a)},
			}, nil)
		} else {
			m.AddPropText(properties.SexOrGender, tok)
		}
	}
}
