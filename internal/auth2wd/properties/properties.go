// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package properties names the Wikidata property numbers that the harvester
// reads or writes. Keeping them as named constants, rather than bare
// integers scattered across adapters, is what lets the usual-sequence code
// and the per-source adapters stay readable.
package properties

const (
	SexOrGender               = 21
	CountryOfCitizenship       = 27
	InstanceOf                 = 31
	PlaceOfBirth               = 19
	PlaceOfDeath               = 20
	Child                      = 40
	FieldOfWork                = 101
	TaxonRank                  = 105
	Occupation                 = 106
	IUCNConservationStatus     = 141
	ParentTaxon                = 171
	ISNI                       = 213
	VIAF                       = 214
	TaxonName                  = 225
	GND                        = 227
	CanonicalSMILES            = 233
	InChI                      = 234
	InChIKey                   = 235
	LoC                        = 244
	ULAN                       = 245
	BnF                        = 268
	IdRef                      = 269
	SubclassOf                 = 279
	ISO3166Alpha2              = 297
	LocatedIn                  = 131
	NDL                        = 349
	ORCID                      = 496
	DateOfBirth                = 569
	DateOfDeath                = 570
	IUCNTaxonID                = 627
	PubChemCID                 = 662
	NCBITaxonomy               = 685
	GBIFTaxon                  = 846
	SELIBR                     = 906
	WorkLocation               = 937
	BNE                        = 950
	NB                         = 1006
	NORAF                      = 1015
	Scopus                     = 1153
	StudentOf                  = 1066
	LanguagesSpokenOrWritten   = 1412
	WorkPeriodStart            = 2031
	WorkPeriodEnd              = 2032
	LessPreciseValueQualifier  = 2241
	Nikkaji                    = 2085
	TaxonCommonName            = 1843
	INaturalistTaxon           = 3151
	Sibling                    = 3373
	CommonsCompatibleImageURL  = 4765
	StatedIn                   = 248
	ReferenceURL               = 854
	RetrievedDate              = 813
	Image                      = 18
	DescribedAtURL             = 973
	CERL                       = 1871
	Filmportal                 = 2639
	Persee                     = 2732
	NSZL                       = 3133
	WorldCat                   = 10832
	PeriodOfActivity           = 1317
	NUKAT                      = 1207
	LNB                        = 1368 // National Library of Latvia ID; canonicalisation-only, no adapter.
	BAV                        = 8034 // Biblioteca Apostolica Vaticana ID; canonicalisation-only, no adapter.
	GeonamesID                 = 1566
	CopyrightLicense           = 275
	FileFormat                 = 2701
	MediaLegend                = 2096
)

// UndifferentiatedPersonQualifier is attached to a GND self-claim when the
// GND record describes an undifferentiated person (several individuals
// sharing one authority record).
const UndifferentiatedPersonQualifier = "Q68648103"

// LessPreciseReasonValue is the "less precise" deprecation-reason value used
// by the date-precision rule (fix_dates) qualifier P2241.
const LessPreciseReasonValue = "Q42727519"

// Male and Female are the items used for P21 (sex or gender).
const (
	Male   = "Q6581097"
	Female = "Q6581072"
)
