// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metadata implements the read-only metadata tree exposed over
// compiled artifacts and ISA descriptions.
//
// A tree is a tagged union of string, map and list nodes, with a null
// sentinel for "no metadata". Map entries keep the order of the document
// they were read from. Nodes are immutable once built.
package metadata

import (
	"github.com/gx-org/comgr/base/ordered"
	"github.com/gx-org/comgr/status"
)

// Kind tags the variant held by a metadata node.
type Kind int

const (
	// KindNull marks the absence of metadata.
	KindNull Kind = iota
	// KindString is a scalar string value.
	KindString
	// KindMap is an ordered set of key to value pairs.
	KindMap
	// KindList is an ordered sequence of values.
	KindList
)

var kindNames = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindMap:    "map",
	KindList:   "list",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < KindNull || k > KindList {
		return "invalid"
	}
	return kindNames[k]
}

// Node is one node of a metadata tree.
type Node struct {
	kind Kind
	str  string
	m    *ordered.Map[string, *Node]
	list []*Node
}

// Null returns the node marking the absence of metadata.
func Null() *Node {
	return &Node{kind: KindNull}
}

// String returns a string node holding s. Map keys are handed to iteration
// callbacks as string nodes.
func String(s string) *Node {
	return newString(s)
}

func newString(s string) *Node {
	return &Node{kind: KindString, str: s}
}

func newMap(m *ordered.Map[string, *Node]) *Node {
	return &Node{kind: KindMap, m: m}
}

func newList(list []*Node) *Node {
	return &Node{kind: KindList, list: list}
}

// Kind returns the variant held by the node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Value returns the value of a string node.
func (n *Node) Value() (string, error) {
	if n.kind != KindString {
		return "", status.InvalidArgumentf("metadata node is a %v, not a string", n.kind)
	}
	return n.str, nil
}

// MapSize returns the number of entries of a map node.
func (n *Node) MapSize() (int, error) {
	if n.kind != KindMap {
		return 0, status.InvalidArgumentf("metadata node is a %v, not a map", n.kind)
	}
	return n.m.Size(), nil
}

// Lookup returns the value stored under a key in a map node. A key with no
// entry is a domain error, not a precondition violation.
func (n *Node) Lookup(key string) (*Node, error) {
	if n.kind != KindMap {
		return nil, status.InvalidArgumentf("metadata node is a %v, not a map", n.kind)
	}
	child, ok := n.m.Load(key)
	if !ok {
		return nil, status.Errorf("metadata map has no entry with key %q", key)
	}
	return child, nil
}

// Entries returns an iterator over the entries of a map node, in document
// order.
func (n *Node) Entries() (func(func(string, *Node) bool), error) {
	if n.kind != KindMap {
		return nil, status.InvalidArgumentf("metadata node is a %v, not a map", n.kind)
	}
	return n.m.Iter(), nil
}

// ListSize returns the number of elements of a list node.
func (n *Node) ListSize() (int, error) {
	if n.kind != KindList {
		return 0, status.InvalidArgumentf("metadata node is a %v, not a list", n.kind)
	}
	return len(n.list), nil
}

// Index returns the element of a list node at a zero-based index.
func (n *Node) Index(i int) (*Node, error) {
	if n.kind != KindList {
		return nil, status.InvalidArgumentf("metadata node is a %v, not a list", n.kind)
	}
	if i < 0 || i >= len(n.list) {
		return nil, status.InvalidArgumentf("index %d out of range: the list has %d elements", i, len(n.list))
	}
	return n.list[i], nil
}
