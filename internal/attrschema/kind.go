// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package attrschema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a component kind name is not graph, node or edge.
var ErrUnknownKind = errors.New("unknown component kind")

// Kind selects which complex type of the schema is read.
type Kind int

const (
	KindGraph Kind = iota
	KindNode
	KindEdge
)

var kindNames = [...]string{
	KindGraph: "graph",
	KindNode:  "node",
	KindEdge:  "edge",
}

// Kinds returns all component kinds in display order.
func Kinds() []Kind {
	return []Kind{KindGraph, KindNode, KindEdge}
}

// String returns the complex type name for the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	return k >= KindGraph && k <= KindEdge
}

// ParseKind parses a kind name, ignoring case and surrounding space.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
