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

// Package handle maps opaque 64-bit handles to engine-owned objects.
//
// Handle values are allocated from a monotonic counter and never reused, so
// a handle that has been released stays invalid for the lifetime of the
// process. Resolution is typed: resolving a handle with the wrong object
// type fails the same way as resolving an unknown handle.
package handle

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/gx-org/comgr/base/sync"
)

// Handle to an engine object.
type Handle uint64

var (
	handles   = sync.Map[Handle, any]{}
	handleIdx = atomic.Uint64{}
)

// Wrap registers a value and returns a fresh handle to it.
func Wrap(v any) Handle {
	h := Handle(handleIdx.Add(1))
	if h == 0 {
		panic("comgr: ran out of handle space")
	}
	handles.Store(h, v)
	return h
}

// Resolve returns the value registered under h if the handle is live and the
// value has type T.
func Resolve[T any](h Handle) (T, bool) {
	v, ok := handles.Load(h)
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Release invalidates a handle. It returns false if the handle is unknown or
// has already been released.
func Release(h Handle) bool {
	_, ok := handles.LoadAndDelete(h)
	return ok
}

// Count returns the total number of live handles.
func Count() int {
	return handles.Size()
}

// Dump returns a string representation of all live handles.
func Dump() string {
	s := strings.Builder{}
	for h, v := range handles.Iter() {
		fmt.Fprintf(&s, "%T handle: %v\n", v, h)
	}
	return s.String()
}
