// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

package adapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/wikitools/auth2wd/internal/auth2wd/httpclient"
	"github.com/wikitools/auth2wd/internal/auth2wd/metaitem"
	"github.com/wikitools/auth2wd/internal/auth2wd/properties"
)

func init() {
	register(SupportedProperty{
		Property: properties.ISNI,
		Name:     "ISNI",
		Source:   "International Standard Name Identifier",
		DemoID:   "0000000121251077",
		New:      func(id string) (SourceAdapter, error) { return NewISNI(id) },
	})
}

const (
	isniStatedIn     = "Q423048"
	isniKeyURLFormat = "https://isni.org/isni/%s"
)

var reISNIViafLink = regexp.MustCompile(`viaf\.org/viaf/(\d+)`)

// ISNI scrapes HTML rather than RDF because the service offers no machine
// format for the fields this system needs (spec.md §4.4), and chains a
// VIAF lookup through whatever VIAF id the page links to.
type ISNI struct {
	id string
}

func NewISNI(id string) (*ISNI, error) {
	if id == "" {
		return nil, fmt.Errorf("isni: empty id")
	}
	return &ISNI{id: id}, nil
}

func (a *ISNI) MyProperty() int             { return properties.ISNI }
func (a *ISNI) MyID() string                { return a.id }
func (a *ISNI) MyStatedIn() string          { return isniStatedIn }
func (a *ISNI) PrimaryLanguage() string     { return "en" }
func (a *ISNI) GetKeyURL(key string) string { return fmt.Sprintf(isniKeyURLFormat, strings.ReplaceAll(key, " ", "")) }
func (a *ISNI) TransformLabel(s string) string { return metaitem.TransformLabelLastFirst(s) }

func (a *ISNI) Run(ctx context.Context) (*metaitem.MetaItem, error) {
	body, err := httpclient.GetText(ctx, a.GetKeyURL(a.id))
	if err != nil {
		return nil, fmt.Errorf("isni %s: %w", a.id, err)
	}

	m := metaitem.New()
	m.AddClaim(SelfClaim(a), nil)

	names, viafID := scrapeISNIPage(body)
	for _, name := range names {
		m.ApplyLabelCandidate(a.PrimaryLanguage(), name, a.TransformLabel)
	}

	if viafID != "" {
		m.AddClaim(metaitem.Statement{
			MainSnak:   metaitem.NewSnak(properties.VIAF, metaitem.ExternalIDValue(viafID)),
			References: []metaitem.Reference{SelfReference(a)},
		}, nil)
		if viaf, err := NewVIAF(viafID); err == nil {
			if viafItem, err := viaf.Run(ctx); err == nil {
				for lang, label := range viafItem.Labels {
					m.AddLabel(lang, label)
				}
				for _, c := range viafItem.Claims {
					if c.MainSnak.Property != properties.VIAF {
						m.AddClaim(c, nil)
					}
				}
			}
		}
	}

	return Finish(ctx, m), nil
}

// scrapeISNIPage walks the HTML token stream for the record's displayed
// name headings and any outbound link into a VIAF cluster.
func scrapeISNIPage(body string) (names []string, viafID string) {
	tok := html.NewTokenizer(strings.NewReader(body))
	var inHeading bool
	for {
		tt := tok.Next()
		if tt == html.ErrorToken {
			return names, viafID
		}
		t := tok.Token()
		switch tt {
		case html.StartTagToken:
			if t.Data == "h1" || t.Data == "h2" {
				inHeading = true
			}
			if t.Data == "a" {
				for _, attr := range t.Attr {
					if attr.Key == "href" {
						if m := reISNIViafLink.FindStringSubmatch(attr.Val); m != nil {
							viafID = m[1]
						}
					}
				}
			}
		case html.EndTagToken:
			if t.Data == "h1" || t.Data == "h2" {
				inHeading = false
			}
		case html.TextToken:
			if inHeading {
				if text := strings.TrimSpace(t.Data); text != "" {
					names = append(names, text)
				}
			}
		}
	}
}
