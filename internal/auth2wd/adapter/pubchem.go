// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func init() {
	register(SupportedProperty{
		Property: properties.PubChemCID,
		Name:     "PubChem",
		Source:   "PubChem",
		DemoID:   "2244",
		New:      func(id string) (SourceAdapter, error) { return NewPubChem(id) },
	})
}

const (
	pubchemStatedIn  = "Q278487"
	pubchemKeyURL    = "https://pubchem.ncbi.nlm.nih.gov/compound/%s"
	pubchemPropsURL  = "https://pubchem.ncbi.nlm.nih.gov/rest/pug/compound/cid/%s/property/IUPACName,CanonicalSMILES,InChI,InChIKey/JSON"
)

type pubchemPropertyTable struct {
	PropertyTable struct {
		Properties []struct {
			IUPACName       string `json:"IUPACName"`
			CanonicalSMILES string `json:"CanonicalSMILES"`
			InChI           string `json:"InChI"`
			InChIKey        string `json:"InChIKey"`
		} `json:"Properties"`
	} `json:"PropertyTable"`
}

// PubChem adapts PubChem's PUG-REST compound property endpoint.
type PubChem struct {
	id string
}

func NewPubChem(id string) (*PubChem, error) {
	if id == "" {
		return nil, fmt.Errorf("pubchem: empty id")
	}
	return &PubChem{id: id}, nil
}

func (a *PubChem) MyProperty() int             { return properties.PubChemCID }
func (a *PubChem) MyID() string                { return a.id }
func (a *PubChem) MyStatedIn() string          { return pubchemStatedIn }
func (a *PubChem) PrimaryLanguage() string     { return "en" }
func (a *PubChem) GetKeyURL(key string) string { return fmt.Sprintf(pubchemKeyURL, key) }
func (a *PubChem) TransformLabel(s string) string { return metaitem.IdentityTransform(s) }

func (a *PubChem) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, fmt.Sprintf(pubchemPropsURL, a.id))
	if err != nil {
		return nil, fmt.Errorf("pubchem %s: %w", a.id, err)
	}
	var doc pubchemPropertyTable
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("pubchem %s: %w", a.id, err)
	}
	if len(doc.PropertyTable.Properties) == 0 {
		return nil, fmt.Errorf("pubchem %s: no compound properties in response", a.id)
	}
	props := doc.PropertyTable.Properties[0]

	m := metaitem.New()
	m.AddClaim(SelfClaim(a), nil)
	ref := SelfReference(a)

	if props.IUPACName != "" {
		m.ApplyLabelCandidate(a.PrimaryLanguage(), props.IUPACName, a.TransformLabel)
	}
	addStringClaim(m, properties.CanonicalSMILES, props.CanonicalSMILES, ref)
	addStringClaim(m, properties.InChI, props.InChI, ref)
	addStringClaim(m, properties.InChIKey, props.InChIKey, ref)

	return Finish(ctx, m), nil
}

// addStringClaim writes a plain external-id-shaped string claim, skipping
// empty values; PubChem's chemical-identifier properties (SMILES, InChI,
// InChIKey) are all external-id datatype in Wikidata even though they
// aren't "identifiers" in the authority-control sense.
func addStringClaim(m *metaitem.MetaItem, property int, value string, ref metaitem.Reference) {
	if value == "" {
		return
	}
	m.AddClaim(metaitem.Statement{
		MainSnak:   metaitem.NewSnak(property, metaitem.ExternalIDValue(value)),
		References: []metaitem.Reference{ref},
	}, nil)
}
