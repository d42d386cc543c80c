// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package attrschema

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// paragraphSeparator joins documentation paragraphs in a description.
const paragraphSeparator = "\r\n"

var booleanValues = []string{"false", "true"}

// Descriptors builds the descriptor set of kind: one descriptor per
// xsd:attribute inside the complex type named after the kind, in document
// order. A schema without that complex type yields an empty set.
func (s *Schema) Descriptors(kind Kind) (*Set, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	set := NewSet(kind)
	for _, ct := range s.complexTypes[kind.String()] {
		for _, ref := range xmlquery.QuerySelectorAll(ct, componentAttrExpr) {
			if d := s.describe(kind, ref); d != nil {
				set.Add(d)
			}
		}
	}
	return set, nil
}

// DescriptorSets builds the descriptor sets for every kind.
func (s *Schema) DescriptorSets() (map[Kind]*Set, error) {
	sets := make(map[Kind]*Set, len(kindNames))
	for _, kind := range Kinds() {
		set, err := s.Descriptors(kind)
		if err != nil {
			return nil, err
		}
		sets[kind] = set
	}
	return sets, nil
}

// describe maps one attribute reference to a descriptor. Attributes declared
// locally inside the complex type are their own declaration.
func (s *Schema) describe(kind Kind, ref *xmlquery.Node) *Descriptor {
	var decl *xmlquery.Node
	name := localName(strings.TrimSpace(ref.SelectAttr("ref")))
	if name != "" {
		decl = s.attributes[name]
	} else {
		name = strings.TrimSpace(ref.SelectAttr("name"))
		decl = ref
	}
	if name == "" {
		return nil
	}

	d := &Descriptor{Kind: kind, Name: name}
	if def := ref.SelectAttr("default"); def != "" {
		d.Default = &def
	}
	if decl == nil {
		return d
	}
	if desc := description(decl); desc != "" {
		d.Description = &desc
	}
	d.AllowedValues = s.allowedValues(decl)
	return d
}

// description joins the whitespace-normalised documentation paragraphs of
// decl.
func description(decl *xmlquery.Node) string {
	var sb strings.Builder
	for _, p := range xmlquery.QuerySelectorAll(decl, paragraphExpr) {
		text, _ := normalizeExpr.Evaluate(xmlquery.CreateXPathNavigator(p)).(string)
		// Blank paragraphs still count as a break once text has started.
		if sb.Len() > 0 {
			sb.WriteString(paragraphSeparator)
		}
		sb.WriteString(text)
	}
	return sb.String()
}

// allowedValues returns the closed choice list of decl, or nil for
// free-form attributes. Unknown types are free-form.
func (s *Schema) allowedValues(decl *xmlquery.Node) []string {
	typ := strings.TrimSpace(decl.SelectAttr("type"))
	if typ == "" {
		return enumeration(decl, inlineEnumExpr)
	}

	space, local := resolveQName(decl, typ)
	if space == XSDNamespace {
		if local == "boolean" {
			return append([]string(nil), booleanValues...)
		}
		return nil
	}

	st, ok := s.simpleTypes[local]
	if !ok {
		return nil
	}
	return enumeration(st, enumerationExpr)
}

func enumeration(n *xmlquery.Node, expr *xpath.Expr) []string {
	var values []string
	for _, e := range xmlquery.QuerySelectorAll(n, expr) {
		values = append(values, e.SelectAttr("value"))
	}
	return values
}
