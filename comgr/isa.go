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
	"github.com/gx-org/comgr/action"
	"github.com/gx-org/comgr/handle"
	"github.com/gx-org/comgr/isa"
	"github.com/gx-org/comgr/object"
)

// GetIsaCount returns the number of ISA names supported by the library.
func GetIsaCount() uint64 {
	return uint64(isa.Count())
}

// GetIsaName copies the NUL-terminated Nth supported ISA name following the
// two-call protocol.
func GetIsaName(index uint64, size *uint64, buf []byte) error {
	name, err := isa.Name(int(index))
	if err != nil {
		return err
	}
	return fillString(name, size, buf)
}

// GetIsaMetadata returns a handle to the metadata tree of an ISA, a null
// node when the ISA has none. The handle must be destroyed with
// DestroyMetadata.
func GetIsaMetadata(isaName string) (Metadata, error) {
	node, err := isa.Metadata(isaName)
	if err != nil {
		return 0, err
	}
	return Metadata(handle.Wrap(node)), nil
}

// AddIsaDefaultDeviceLibraries adds the default device libraries of an ISA
// for a data kind and language to a data set. Libraries already in the set
// are not added twice, so the libraries of several languages can be merged
// into the same set.
func AddIsaDefaultDeviceLibraries(isaName string, kind object.Kind, language action.Language, result DataSet) error {
	s, err := resolveDataSet(result)
	if err != nil {
		return err
	}
	return isa.AddDefaultDeviceLibraries(isaName, kind, language, s)
}
