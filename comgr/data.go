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
	"github.com/gx-org/comgr/object"
)

func resolveData(d Data) (*object.Object, error) {
	return resolve[*object.Object](uint64(d), "data object")
}

// CreateData creates a data object holding data of the given kind, with a
// reference count of one, no bytes and an empty name.
func CreateData(kind object.Kind) (Data, error) {
	o, err := object.New(kind)
	if err != nil {
		return 0, err
	}
	return Data(handle.Wrap(o)), nil
}

// ReleaseData invalidates the handle and drops its reference to the data
// object, destroying the object when it was the last one.
func ReleaseData(d Data) error {
	o, err := resolveData(d)
	if err != nil {
		return err
	}
	handle.Release(handle.Handle(d))
	o.Release()
	return nil
}

// GetDataKind returns the kind of a data object.
func GetDataKind(d Data) (object.Kind, error) {
	o, err := resolveData(d)
	if err != nil {
		return object.KindUndef, err
	}
	return o.Kind(), nil
}

// SetData replaces the content of a data object wholesale. Any metadata
// previously read from the object no longer reflects its content.
func SetData(d Data, bytes []byte) error {
	o, err := resolveData(d)
	if err != nil {
		return err
	}
	o.SetBytes(bytes)
	return nil
}

// SetDataName sets the name of a data object. The name of an include data
// object is the name its content is included as during preprocessing and
// compilation.
func SetDataName(d Data, name string) error {
	o, err := resolveData(d)
	if err != nil {
		return err
	}
	o.SetName(name)
	return nil
}

// GetData copies the content of a data object following the two-call
// protocol: a nil buffer reports only the required size.
func GetData(d Data, size *uint64, buf []byte) error {
	o, err := resolveData(d)
	if err != nil {
		return err
	}
	return fillBytes(o.Bytes(), size, buf)
}

// GetDataName copies the NUL-terminated name of a data object following the
// two-call protocol.
func GetDataName(d Data, size *uint64, buf []byte) error {
	o, err := resolveData(d)
	if err != nil {
		return err
	}
	return fillString(o.Name(), size, buf)
}

// GetDataIsaName copies the NUL-terminated ISA name of a data object
// following the two-call protocol. It fails if the kind of the object is
// not ISA specific.
func GetDataIsaName(d Data, size *uint64, buf []byte) error {
	o, err := resolveData(d)
	if err != nil {
		return err
	}
	isaName, err := o.IsaName()
	if err != nil {
		return err
	}
	return fillString(isaName, size, buf)
}

// GetDataMetadata returns a handle to the metadata tree of a data object,
// a null node when the object has none. The handle must be destroyed with
// DestroyMetadata.
func GetDataMetadata(d Data) (Metadata, error) {
	o, err := resolveData(d)
	if err != nil {
		return 0, err
	}
	node, err := metadata.FromObject(o)
	if err != nil {
		return 0, err
	}
	return Metadata(handle.Wrap(node)), nil
}
