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

package comgr

import (
	"github.com/gx-org/comgr/handle"
	"github.com/gx-org/comgr/metadata"
	"github.com/gx-org/comgr/status"
)

func resolveMetadata(m Metadata) (*metadata.Node, error) {
	return resolve[*metadata.Node](uint64(m), "metadata node")
}

// DestroyMetadata invalidates a metadata node handle. Child node handles
// previously returned from the node stay valid: every returned handle is
// owned and destroyed independently.
func DestroyMetadata(m Metadata) error {
	if _, err := resolveMetadata(m); err != nil {
		return err
	}
	handle.Release(handle.Handle(m))
	return nil
}

// GetMetadataKind returns the kind of a metadata node.
func GetMetadataKind(m Metadata) (metadata.Kind, error) {
	node, err := resolveMetadata(m)
	if err != nil {
		return metadata.KindNull, err
	}
	return node.Kind(), nil
}

// GetMetadataString copies the NUL-terminated value of a string node
// following the two-call protocol.
func GetMetadataString(m Metadata, size *uint64, buf []byte) error {
	node, err := resolveMetadata(m)
	if err != nil {
		return err
	}
	s, err := node.Value()
	if err != nil {
		return err
	}
	return fillString(s, size, buf)
}

// GetMetadataMapSize returns the number of entries of a map node.
func GetMetadataMapSize(m Metadata) (uint64, error) {
	node, err := resolveMetadata(m)
	if err != nil {
		return 0, err
	}
	n, err := node.MapSize()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// MetadataLookup returns the value stored under a string key in a map node.
// The returned handle is owned by the caller and must be destroyed with
// DestroyMetadata. A key with no entry reports Error.
func MetadataLookup(m Metadata, key string) (Metadata, error) {
	node, err := resolveMetadata(m)
	if err != nil {
		return 0, err
	}
	child, err := node.Lookup(key)
	if err != nil {
		return 0, err
	}
	return Metadata(handle.Wrap(child)), nil
}

// IterateMapMetadata calls fn once per entry of a map node, in document
// order. The key and value handles passed to fn are only valid inside the
// callback body. A non-nil error returned by fn stops the iteration and is
// reported to the caller as Error.
func IterateMapMetadata(m Metadata, fn func(key, value Metadata) error) error {
	node, err := resolveMetadata(m)
	if err != nil {
		return err
	}
	if fn == nil {
		return status.InvalidArgumentf("an iteration callback is required")
	}
	entries, err := node.Entries()
	if err != nil {
		return err
	}
	var fnErr error
	for key, value := range entries {
		kh := handle.Wrap(metadata.String(key))
		vh := handle.Wrap(value)
		fnErr = fn(Metadata(kh), Metadata(vh))
		handle.Release(kh)
		handle.Release(vh)
		if fnErr != nil {
			return status.Errorf("metadata iteration stopped: %v", fnErr)
		}
	}
	return nil
}

// GetMetadataListSize returns the number of elements of a list node.
func GetMetadataListSize(m Metadata) (uint64, error) {
	node, err := resolveMetadata(m)
	if err != nil {
		return 0, err
	}
	n, err := node.ListSize()
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// IndexListMetadata returns the element of a list node at a zero-based
// index. The returned handle is owned by the caller and must be destroyed
// with DestroyMetadata.
func IndexListMetadata(m Metadata, index uint64) (Metadata, error) {
	node, err := resolveMetadata(m)
	if err != nil {
		return 0, err
	}
	child, err := node.Index(int(index))
	if err != nil {
		return 0, err
	}
	return Metadata(handle.Wrap(child)), nil
}
