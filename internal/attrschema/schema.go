// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package attrschema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

const (
	// XSDNamespace is the XML Schema namespace; types in it are built-in.
	XSDNamespace = "http://www.w3.org/2001/XMLSchema"
	// XHTMLNamespace is the namespace of documentation paragraphs.
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"

	// FileName is the schema file name looked up in the application directory.
	FileName = "attributes.xml"
)

// ErrNotSchema is returned when the document root is not xsd:schema.
var ErrNotSchema = errors.New("document root is not an xsd:schema element")

var namespaces = map[string]string{
	"xsd":  XSDNamespace,
	"html": XHTMLNamespace,
}

var (
	schemaRootExpr    = mustCompile("/xsd:schema")
	attributeDeclExpr = mustCompile("xsd:attribute[@name]")
	simpleTypeExpr    = mustCompile("xsd:simpleType[@name]")
	complexTypeExpr   = mustCompile("xsd:complexType[@name]")
	componentAttrExpr = mustCompile("xsd:attribute")
	paragraphExpr     = mustCompile("xsd:annotation/xsd:documentation/html:p")
	enumerationExpr   = mustCompile("xsd:restriction/xsd:enumeration")
	inlineEnumExpr    = mustCompile("xsd:simpleType/xsd:restriction/xsd:enumeration")
	normalizeExpr     = mustCompile("normalize-space(.)")
)

func mustCompile(expr string) *xpath.Expr {
	compiled, err := xpath.CompileWithNS(expr, namespaces)
	if err != nil {
		panic(fmt.Sprintf("attrschema: invalid xpath %q: %v", expr, err))
	}
	return compiled
}

// Schema is a parsed attribute schema. It is never modified after Parse.
type Schema struct {
	path         string
	root         *xmlquery.Node
	attributes   map[string]*xmlquery.Node
	simpleTypes  map[string]*xmlquery.Node
	complexTypes map[string][]*xmlquery.Node
}

// DefaultPath returns the schema location inside the application directory.
func DefaultPath(baseDir string) string {
	return filepath.Join(baseDir, FileName)
}

// Load reads and parses the schema file at path.
func Load(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open attribute schema %s: %w", path, err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load attribute schema %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Parse reads a schema document from r and indexes its top-level
// declarations.
func Parse(r io.Reader) (*Schema, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema XML: %w", err)
	}

	root := xmlquery.QuerySelector(doc, schemaRootExpr)
	if root == nil {
		return nil, ErrNotSchema
	}

	s := &Schema{
		root:         root,
		attributes:   make(map[string]*xmlquery.Node),
		simpleTypes:  make(map[string]*xmlquery.Node),
		complexTypes: make(map[string][]*xmlquery.Node),
	}
	// The first declaration of a name wins, as it would for a positional
	// XPath lookup.
	for _, n := range xmlquery.QuerySelectorAll(root, attributeDeclExpr) {
		name := n.SelectAttr("name")
		if _, exists := s.attributes[name]; !exists {
			s.attributes[name] = n
		}
	}
	for _, n := range xmlquery.QuerySelectorAll(root, simpleTypeExpr) {
		name := n.SelectAttr("name")
		if _, exists := s.simpleTypes[name]; !exists {
			s.simpleTypes[name] = n
		}
	}
	for _, n := range xmlquery.QuerySelectorAll(root, complexTypeExpr) {
		name := n.SelectAttr("name")
		s.complexTypes[name] = append(s.complexTypes[name], n)
	}
	return s, nil
}

// Path returns the file the schema was loaded from, or "" for Parse.
func (s *Schema) Path() string {
	return s.path
}

// DeclarationCount returns the number of top-level attribute declarations.
func (s *Schema) DeclarationCount() int {
	return len(s.attributes)
}

// Declaration returns the XML text of the top-level attribute declaration
// named name.
func (s *Schema) Declaration(name string) (string, bool) {
	n, ok := s.attributes[name]
	if !ok {
		return "", false
	}
	return n.OutputXML(true), true
}

// resolveQName splits a QName attribute value and resolves its prefix
// against the namespace declarations in scope at n.
func resolveQName(n *xmlquery.Node, qname string) (space, local string) {
	prefix, local, found := strings.Cut(qname, ":")
	if !found {
		local, prefix = prefix, ""
	}
	if uri, ok := lookupNamespace(n, prefix); ok {
		return uri, local
	}
	// Undeclared prefixes: accept the conventional XML Schema ones.
	if prefix == "xsd" || prefix == "xs" {
		return XSDNamespace, local
	}
	return "", local
}

func lookupNamespace(n *xmlquery.Node, prefix string) (string, bool) {
	for ; n != nil; n = n.Parent {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		for _, a := range n.Attr {
			switch {
			case prefix == "" && a.Name.Space == "" && a.Name.Local == "xmlns":
				return a.Value, true
			case prefix != "" && a.Name.Space == "xmlns" && a.Name.Local == prefix:
				return a.Value, true
			case prefix != "" && a.Name.Space == "" && a.Name.Local == "xmlns:"+prefix:
				return a.Value, true
			}
		}
	}
	return "", false
}

// localName strips a namespace prefix from an attribute reference.
func localName(qname string) string {
	if _, local, found := strings.Cut(qname, ":"); found {
		return local
	}
	return qname
}
