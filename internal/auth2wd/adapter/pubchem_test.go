// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func TestPubChemRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"PropertyTable": {
				"Properties": [{
					"IUPACName": "aspirin",
					"CanonicalSMILES": "CC(=O)OC1=CC=CC=C1C(=O)O",
					"InChI": "InChI=1S/C9H8O4/c1-6(10)13-8-5-3-2-4-7(8)9(11)12/h2-5H,1H3,(H,11,12)",
					"InChIKey": "BSYNRYMUTXBXSQ-UHFFFAOYSA-N"
				}]
			}
		}`))
	}))
	defer srv.Close()

	httpclient.RegisterOverride(
		"https://pubchem.ncbi.nlm.nih.gov/rest/pug/compound/cid/",
		srv.URL+"/",
	)
	defer httpclient.ClearOverrides()

	a, err := NewPubChem("2244")
	if err != nil {
		t.Fatalf("NewPubChem: %v", err)
	}
	m, err := a.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := m.Labels["en"]; got != "aspirin" {
		t.Errorf("label = %q", got)
	}

	var sawSMILES, sawInChI, sawInChIKey, sawSelf bool
	for _, st := range m.Claims {
		switch st.MainSnak.Property {
		case properties.CanonicalSMILES:
			sawSMILES = true
		case properties.InChI:
			sawInChI = true
		case properties.InChIKey:
			sawInChIKey = true
		case properties.PubChemCID:
			if st.MainSnak.Value.Str == "2244" {
				sawSelf = true
			}
		}
	}
	if !sawSMILES || !sawInChI || !sawInChIKey {
		t.Errorf("expected SMILES/InChI/InChIKey claims, got smiles=%v inchi=%v inchikey=%v", sawSMILES, sawInChI, sawInChIKey)
	}
	if !sawSelf {
		t.Error("expected the PubChem self-claim")
	}
}
