// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package attrschema turns the attribute schema (attributes.xml) into
// property descriptors for the inspector.
//
// # Schema shape
//
// The schema is an ordinary XML Schema document. Three complex types named
// "graph", "node" and "edge" list the attributes available on each component
// through attribute references:
//
//	<xsd:complexType name="node">
//	  <xsd:attribute ref="shape" default="ellipse"/>
//	</xsd:complexType>
//
// Each referenced attribute is declared at the top level, optionally with
// XHTML documentation paragraphs and a type:
//
//	<xsd:attribute name="shape" type="shape">
//	  <xsd:annotation><xsd:documentation>
//	    <html:p>Set the shape of a node.</html:p>
//	  </xsd:documentation></xsd:annotation>
//	</xsd:attribute>
//
// # Descriptors
//
// A Descriptor carries the attribute name, its default, its description and,
// for xsd:boolean and enumerated simple types, the ordered list of allowed
// values. A descriptor with allowed values is a closed choice; one without is
// edited as free-form text.
//
// Descriptor sets are computed once at startup and are read-only afterwards.
package attrschema
