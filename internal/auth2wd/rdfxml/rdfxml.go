// SPDX-FileCopyrightText: 2026 The auth2wd authors
// SPDX-License-Identifier: MIT

// Package rdfxml parses the RDF/XML payload a source adapter fetches into
// a graph.Graph. Full RDF/XML is a large, old and mostly-retired spec; this
// parser only handles the shapes adapters actually see in practice (nested
// rdf:Description, rdf:resource/rdf:nodeID property attributes, typed-node
// shorthand and plain literals), the same way xtoproto's rdfxml.go walks
// the token stream rather than building a general DOM. Fuller RDF/XML
// parsing is deliberately out of scope here, same as it is for the system
// as a whole.
package rdfxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/wikitools/auth2wd/internal/auth2wd/graph"
)

const (
	rdfNS      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	rdfAbout   = rdfNS + "about"
	rdfID      = rdfNS + "ID"
	rdfNodeID  = rdfNS + "nodeID"
	rdfResource = rdfNS + "resource"
	rdfType    = rdfNS + "type"
	rdfDescription = "Description"
	rdfRDF     = "RDF"
	xmlLangAttr = "http://www.w3.org/XML/1998/namespace lang"
)

type parser struct {
	dec      *xml.Decoder
	g        *graph.Graph
	blankSeq int
}

func (p *parser) nextBlankNode() string {
	p.blankSeq++
	return fmt.Sprintf("_:b%d", p.blankSeq)
}

// Parse reads an RDF/XML document and returns the graph it describes.
func Parse(r io.Reader) (*graph.Graph, error) {
	p := &parser{dec: xml.NewDecoder(r), g: graph.New()}
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return p.g, nil
		}
		if err != nil {
			return nil, fmt.Errorf("rdfxml: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Space == rdfNS && start.Name.Local == rdfRDF {
			continue // descend into the root element's children
		}
		if _, err := p.parseNodeElement(start); err != nil {
			return nil, err
		}
	}
}

func elementIRI(name xml.Name) string {
	return name.Space + name.Local
}

func attrValue(attrs []xml.Attr, fullName string) (string, bool) {
	for _, a := range attrs {
		if a.Name.Space+a.Name.Local == fullName || (a.Name.Space == "xml" && "http://www.w3.org/XML/1998/namespace "+a.Name.Local == fullName) {
			return a.Value, true
		}
	}
	return "", false
}

// parseNodeElement consumes a <rdf:Description> (or typed-node shorthand)
// element and everything up to its matching end tag, emitting triples for
// every property element it contains. It returns the node's identifier:
// an absolute IRI, or a "_:id" blank node reference.
func (p *parser) parseNodeElement(start xml.StartElement) (string, error) {
	var subject string
	if about, ok := attrValue(start.Attr, rdfAbout); ok {
		subject = about
	} else if id, ok := attrValue(start.Attr, rdfID); ok {
		subject = "#" + id
	} else if nodeID, ok := attrValue(start.Attr, rdfNodeID); ok {
		// Unprefixed, to match the nodeID AddBlankNode stores when a
		// property element references the same node via rdf:nodeID.
		subject = nodeID
	} else {
		subject = p.nextBlankNode()
	}

	if start.Name.Local != rdfDescription || start.Name.Space != rdfNS {
		p.g.AddIRI(subject, rdfType, elementIRI(start.Name))
	}

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return "", fmt.Errorf("rdfxml: %w", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return subject, nil
		case xml.StartElement:
			if err := p.parsePropertyElement(subject, t); err != nil {
				return "", err
			}
		}
	}
}

// parsePropertyElement consumes one property element (and its matching end
// tag) and adds the triple(s) it describes to the graph.
func (p *parser) parsePropertyElement(subject string, start xml.StartElement) error {
	predicate := elementIRI(start.Name)

	if res, ok := attrValue(start.Attr, rdfResource); ok {
		p.g.AddIRI(subject, predicate, res)
		return p.skipToEnd(start)
	}
	if nodeID, ok := attrValue(start.Attr, rdfNodeID); ok {
		p.g.AddBlankNode(subject, predicate, nodeID)
		return p.skipToEnd(start)
	}

	lang, _ := attrValue(start.Attr, xmlLangAttr)
	var text string
	var sawNestedNode bool

	for {
		tok, err := p.dec.Token()
		if err != nil {
			return fmt.Errorf("rdfxml: %w", err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if !sawNestedNode {
				if trimmed := trimWhitespace(text); trimmed != "" {
					p.g.AddLiteral(subject, predicate, trimmed, lang)
				}
			}
			return nil
		case xml.CharData:
			text += string(t)
		case xml.StartElement:
			sawNestedNode = true
			obj, err := p.parseNodeElement(t)
			if err != nil {
				return err
			}
			p.g.AddIRI(subject, predicate, obj)
		}
	}
}

// skipToEnd consumes tokens (typically none, for an empty property element)
// up to and including the end tag matching start.
func (p *parser) skipToEnd(start xml.StartElement) error {
	depth := 0
	for {
		tok, err := p.dec.Token()
		if err != nil {
			return fmt.Errorf("rdfxml: %w", err)
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

func trimWhitespace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// ParseLiteralInt is a small convenience some adapters need: several
// sources encode rdf:type counts or similar small integers as literals.
func ParseLiteralInt(s string) (int, error) {
	return strconv.Atoi(trimWhitespace(s))
}
