package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SampleSchema is a small attribute schema covering every descriptor
// feature: defaults, documentation, booleans, enumerations and free-form
// types.
const SampleSchema = `<?xml version="1.0" encoding="UTF-8"?>
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema" xmlns:html="http://www.w3.org/1999/xhtml">
  <xsd:complexType name="graph">
    <xsd:attribute ref="rankdir" default="TB"/>
    <xsd:attribute ref="bgcolor"/>
    <xsd:attribute ref="center" default="false"/>
    <xsd:attribute ref="label"/>
  </xsd:complexType>
  <xsd:complexType name="node">
    <xsd:attribute ref="shape" default="ellipse"/>
    <xsd:attribute ref="color" default="black"/>
    <xsd:attribute ref="fixedsize" default="false"/>
    <xsd:attribute ref="label" default="\N"/>
  </xsd:complexType>
  <xsd:complexType name="edge">
    <xsd:attribute ref="arrowhead" default="normal"/>
    <xsd:attribute ref="color" default="black"/>
    <xsd:attribute ref="constraint" default="true"/>
    <xsd:attribute ref="weight" default="1"/>
  </xsd:complexType>

  <xsd:attribute name="rankdir" type="rankdir">
    <xsd:annotation>
      <xsd:documentation>
        <html:p>Sets direction of graph layout.</html:p>
        <html:p>For example, if rankdir="LR", the graph is laid out from left to right.</html:p>
      </xsd:documentation>
    </xsd:annotation>
  </xsd:attribute>
  <xsd:attribute name="bgcolor" type="xsd:string">
    <xsd:annotation>
      <xsd:documentation><html:p>Canvas background color.</html:p></xsd:documentation>
    </xsd:annotation>
  </xsd:attribute>
  <xsd:attribute name="center" type="xsd:boolean"/>
  <xsd:attribute name="label" type="xsd:string"/>
  <xsd:attribute name="shape" type="shape">
    <xsd:annotation>
      <xsd:documentation><html:p>Set the shape of a node.</html:p></xsd:documentation>
    </xsd:annotation>
  </xsd:attribute>
  <xsd:attribute name="color" type="xsd:string"/>
  <xsd:attribute name="fixedsize" type="xsd:boolean"/>
  <xsd:attribute name="arrowhead" type="arrowType"/>
  <xsd:attribute name="constraint" type="xsd:boolean"/>
  <xsd:attribute name="weight" type="xsd:double"/>

  <xsd:simpleType name="rankdir">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="TB"/>
      <xsd:enumeration value="LR"/>
      <xsd:enumeration value="BT"/>
      <xsd:enumeration value="RL"/>
    </xsd:restriction>
  </xsd:simpleType>
  <xsd:simpleType name="shape">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="box"/>
      <xsd:enumeration value="ellipse"/>
      <xsd:enumeration value="circle"/>
    </xsd:restriction>
  </xsd:simpleType>
  <xsd:simpleType name="arrowType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="normal"/>
      <xsd:enumeration value="dot"/>
      <xsd:enumeration value="none"/>
    </xsd:restriction>
  </xsd:simpleType>
</xsd:schema>
`

// SampleDOT is a small digraph using attributes declared by SampleSchema.
const SampleDOT = `digraph G {
	rankdir=LR;
	label="Sample";
	node [shape=box];
	edge [color=red];
	a [label="Start"];
	b;
	a -> b [weight=2];
}
`

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "failed to write test fixture %s", name)
	return path
}

// WriteSchema writes SampleSchema as attributes.xml in dir.
func WriteSchema(t *testing.T, dir string) string {
	t.Helper()
	return WriteFile(t, dir, "attributes.xml", SampleSchema)
}
