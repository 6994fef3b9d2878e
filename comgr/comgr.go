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

// Package comgr is the public surface of the code object manager: a
// handle-based library for creating and inspecting code objects.
//
// Pipeline data lives in reference-counted data objects, grouped into data
// sets. An action info object configures one invocation of an action, and
// DoAction drives the registered toolchain to populate a result set.
// Compiled artifacts are inspected through the metadata tree and the symbol
// table entry points.
//
// All handles are opaque 64-bit values. Operations on handles to disjoint
// object graphs may run concurrently; operations sharing a data set, data
// object or action info handle must be serialized by the caller. The
// default device-library objects of the ISA catalog are immutable and may
// be shared freely.
//
// Every operation reports failures as an error wrapping a status sentinel;
// see the status package.
package comgr

import (
	"github.com/gx-org/comgr/handle"
	"github.com/gx-org/comgr/status"
	"github.com/gx-org/comgr/version"
)

// Handles to the object kinds managed by the library.
type (
	// Data is a handle to a data object.
	Data uint64
	// DataSet is a handle to a data set.
	DataSet uint64
	// ActionInfo is a handle to an action info object.
	ActionInfo uint64
	// Metadata is a handle to a metadata node.
	Metadata uint64
	// Symbol is a handle to a machine code object symbol.
	Symbol uint64
)

// Version returns the (major, minor) interface version pair of the library.
func Version() (major, minor uint64) {
	return version.Interface()
}

// resolve returns the object of type T registered under a handle value.
func resolve[T any](h uint64, what string) (T, error) {
	v, ok := handle.Resolve[T](handle.Handle(h))
	if !ok {
		var zero T
		return zero, status.InvalidArgumentf("invalid %s handle %d", what, h)
	}
	return v, nil
}

// fillBytes implements the two-call query-then-fill protocol shared by
// every variable-length getter: with a nil buffer only the required size is
// reported; otherwise at most len(buf) bytes are copied and size is set to
// the full length of the content.
func fillBytes(src []byte, size *uint64, buf []byte) error {
	if size == nil {
		return status.InvalidArgumentf("a size is required")
	}
	if buf != nil {
		copy(buf, src)
	}
	*size = uint64(len(src))
	return nil
}

// fillString fills a NUL-terminated copy of s; the reported size includes
// the terminating NUL character.
func fillString(s string, size *uint64, buf []byte) error {
	return fillBytes(append([]byte(s), 0), size, buf)
}
