// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package attrschema

import "slices"

// Descriptor describes one editable attribute of a component kind.
type Descriptor struct {
	Kind        Kind
	Name        string
	Default     *string
	Description *string

	// AllowedValues is nil for free-form attributes. When set, the editor
	// must offer exactly these values, in this order.
	AllowedValues []string
}

// HasDefault reports whether the schema declared a default value.
func (d *Descriptor) HasDefault() bool {
	return d.Default != nil
}

// DefaultValue returns the default, or "" when none was declared.
func (d *Descriptor) DefaultValue() string {
	if d.Default == nil {
		return ""
	}
	return *d.Default
}

// HasDescription reports whether any documentation paragraphs were found.
func (d *Descriptor) HasDescription() bool {
	return d.Description != nil
}

// DescriptionText returns the description, or "" when none was found.
func (d *Descriptor) DescriptionText() string {
	if d.Description == nil {
		return ""
	}
	return *d.Description
}

// ClosedChoice reports whether the value must be picked from AllowedValues.
func (d *Descriptor) ClosedChoice() bool {
	return d.AllowedValues != nil
}

// Allows reports whether value is acceptable for the descriptor. Free-form
// descriptors accept anything.
func (d *Descriptor) Allows(value string) bool {
	if !d.ClosedChoice() {
		return true
	}
	return slices.Contains(d.AllowedValues, value)
}

// Set is the ordered collection of descriptors for one kind.
type Set struct {
	kind        Kind
	descriptors []*Descriptor
	byName      map[string]*Descriptor
}

// NewSet creates an empty descriptor set for kind.
func NewSet(kind Kind) *Set {
	return &Set{
		kind:   kind,
		byName: make(map[string]*Descriptor),
	}
}

// Kind returns the component kind of the set.
func (s *Set) Kind() Kind {
	return s.kind
}

// Add appends d to the set. A descriptor with a name already present is
// still appended so that validation can report it. Lookups keep returning
// the first one.
func (s *Set) Add(d *Descriptor) {
	s.descriptors = append(s.descriptors, d)
	if _, exists := s.byName[d.Name]; !exists {
		s.byName[d.Name] = d
	}
}

// Len returns the number of descriptors.
func (s *Set) Len() int {
	return len(s.descriptors)
}

// All returns the descriptors in schema declaration order.
func (s *Set) All() []*Descriptor {
	return slices.Clone(s.descriptors)
}

// Names returns the descriptor names in schema declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.descriptors))
	for i, d := range s.descriptors {
		names[i] = d.Name
	}
	return names
}

// Lookup returns the descriptor with the given name.
func (s *Set) Lookup(name string) (*Descriptor, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Duplicates returns names that appear more than once, in first-seen order.
func (s *Set) Duplicates() []string {
	seen := make(map[string]int, len(s.descriptors))
	var dups []string
	for _, d := range s.descriptors {
		seen[d.Name]++
		if seen[d.Name] == 2 {
			dups = append(dups, d.Name)
		}
	}
	return dups
}
