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

// Package object implements the data model of the engine: reference-counted
// data objects and the ordered, de-duplicated sets grouping them as action
// inputs and outputs.
package object

import (
	"sync"
	"sync/atomic"

	"github.com/gx-org/comgr/status"
)

// Object is one unit of pipeline data: a kind tag fixed at creation, a byte
// buffer, a name, and, for ISA-specific kinds, the name of the ISA the
// content targets.
//
// Objects are shared-owned by every set referencing them. The reference
// count is atomic so that disjoint sets can add and release a shared object
// concurrently. Buffer and name mutation is not synchronized: callers
// operating on the same object concurrently must serialize.
type Object struct {
	kind    Kind
	refs    atomic.Int64
	bytes   []byte
	name    string
	isaName string

	cleanupMu sync.Mutex
	cleanups  []func()
}

// New returns a data object of the given kind with one reference, an empty
// buffer and an empty name.
func New(kind Kind) (*Object, error) {
	if !kind.Valid() || kind == KindUndef {
		return nil, status.InvalidArgumentf("cannot create a data object of kind %v", kind)
	}
	o := &Object{kind: kind}
	o.refs.Store(1)
	return o, nil
}

// Kind returns the kind of the object.
func (o *Object) Kind() Kind {
	return o.kind
}

// Retain adds a reference to the object.
func (o *Object) Retain() {
	o.refs.Add(1)
}

// Release drops a reference to the object. The object is destroyed when the
// last reference is dropped, running any registered cleanups.
func (o *Object) Release() {
	if o.refs.Add(-1) > 0 {
		return
	}
	o.cleanupMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupMu.Unlock()
	for _, f := range cleanups {
		f()
	}
}

// Alive reports whether the object still holds references.
func (o *Object) Alive() bool {
	return o.refs.Load() > 0
}

// RefCount returns the current number of references.
func (o *Object) RefCount() int64 {
	return o.refs.Load()
}

// OnDestroy registers a function run when the last reference to the object
// is dropped. Used to invalidate views keyed to the object, such as symbol
// handles.
func (o *Object) OnDestroy(f func()) {
	o.cleanupMu.Lock()
	defer o.cleanupMu.Unlock()
	o.cleanups = append(o.cleanups, f)
}

// SetBytes replaces the content of the object wholesale. The bytes are
// copied. Any metadata previously read from the object no longer reflects
// its content.
func (o *Object) SetBytes(b []byte) {
	o.bytes = append([]byte(nil), b...)
}

// Bytes returns the content of the object.
func (o *Object) Bytes() []byte {
	return o.bytes
}

// SetName sets the name of the object.
func (o *Object) SetName(name string) {
	o.name = name
}

// Name returns the name of the object.
func (o *Object) Name() string {
	return o.name
}

// SetIsaName tags the object with the ISA its content targets.
// It fails if the kind of the object is not ISA specific.
func (o *Object) SetIsaName(name string) error {
	if !o.kind.IsaSpecific() {
		return status.InvalidArgumentf("data object of kind %v has no isa name", o.kind)
	}
	o.isaName = name
	return nil
}

// IsaName returns the ISA name of the object. It fails if the kind of the
// object is not ISA specific.
func (o *Object) IsaName() (string, error) {
	if !o.kind.IsaSpecific() {
		return "", status.InvalidArgumentf("data object of kind %v has no isa name", o.kind)
	}
	return o.isaName, nil
}
