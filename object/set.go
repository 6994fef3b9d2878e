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

package object

import (
	"github.com/gx-org/comgr/status"
)

// Set is an ordered collection of data objects, grouped by kind, used as the
// input or the output of an action. An object appears at most once in a set.
// The set holds a strong reference to each of its members.
type Set struct {
	buckets map[Kind][]*Object
}

// NewSet returns an empty data set.
func NewSet() *Set {
	return &Set{buckets: make(map[Kind][]*Object)}
}

// Add appends an object to the bucket of its kind and retains it. Adding an
// object already present leaves the set unchanged. An include object must
// have a name, since include directives are resolved against it.
func (s *Set) Add(o *Object) error {
	if o == nil {
		return status.InvalidArgumentf("cannot add a nil data object to a set")
	}
	if o.Kind() == KindInclude && o.Name() == "" {
		return status.InvalidArgumentf("cannot add an include data object without a name")
	}
	bucket := s.buckets[o.Kind()]
	for _, member := range bucket {
		if member == o {
			return nil
		}
	}
	o.Retain()
	s.buckets[o.Kind()] = append(bucket, o)
	return nil
}

// Remove releases and drops all members of the given kind. KindUndef removes
// all members of all kinds.
func (s *Set) Remove(kind Kind) error {
	if !kind.Valid() {
		return status.InvalidArgumentf("cannot remove data objects of kind %v", kind)
	}
	if kind == KindUndef {
		for k := range s.buckets {
			s.removeKind(k)
		}
		return nil
	}
	s.removeKind(kind)
	return nil
}

func (s *Set) removeKind(kind Kind) {
	for _, member := range s.buckets[kind] {
		member.Release()
	}
	delete(s.buckets, kind)
}

// Count returns the number of members of the given kind.
func (s *Set) Count(kind Kind) (int, error) {
	if !kind.Valid() || kind == KindUndef {
		return 0, status.InvalidArgumentf("cannot count data objects of kind %v", kind)
	}
	return len(s.buckets[kind]), nil
}

// At returns the member of the given kind at a zero-based insertion index.
func (s *Set) At(kind Kind, index int) (*Object, error) {
	if !kind.Valid() || kind == KindUndef {
		return nil, status.InvalidArgumentf("cannot index data objects of kind %v", kind)
	}
	bucket := s.buckets[kind]
	if index < 0 || index >= len(bucket) {
		return nil, status.InvalidArgumentf("index %d out of range: the set has %d data objects of kind %v", index, len(bucket), kind)
	}
	return bucket[index], nil
}

// Objects returns an iterator over the members of the given kind in
// insertion order.
func (s *Set) Objects(kind Kind) func(func(*Object) bool) {
	bucket := s.buckets[kind]
	return func(yield func(*Object) bool) {
		for _, member := range bucket {
			if !yield(member) {
				return
			}
		}
	}
}

// Slice returns the members of the given kind in insertion order.
func (s *Set) Slice(kind Kind) []*Object {
	return append([]*Object(nil), s.buckets[kind]...)
}

// Destroy removes and releases all members of the set.
func (s *Set) Destroy() {
	for k := range s.buckets {
		s.removeKind(k)
	}
}
