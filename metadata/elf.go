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

package metadata

import (
	"bytes"
	"debug/elf"

	"github.com/gx-org/comgr/object"
)

// Vendor note carrying the code object metadata document.
const (
	noteVendor      = "AMD"
	noteHSAMetadata = 10
)

// FromObject builds the metadata tree of a data object. Machine code
// objects carry their metadata as a YAML document in a vendor ELF note.
// An object with no metadata yields the null node.
func FromObject(o *object.Object) (*Node, error) {
	switch o.Kind() {
	case object.KindRelocatable, object.KindExecutable:
	default:
		return Null(), nil
	}
	f, err := elf.NewFile(bytes.NewReader(o.Bytes()))
	if err != nil {
		return Null(), nil
	}
	defer f.Close()
	for _, sec := range f.Sections {
		if sec.Type != elf.SHT_NOTE {
			continue
		}
		data, err := sec.Data()
		if err != nil {
			continue
		}
		doc := findMetadataNote(f.ByteOrder, data)
		if doc != nil {
			return FromYAML(doc)
		}
	}
	return Null(), nil
}

// findMetadataNote walks the note records of a SHT_NOTE section and returns
// the descriptor of the vendor metadata note, nil if absent. Each record is
// a 12-byte header (name size, descriptor size, type) followed by the name
// and the descriptor, both padded to 4 bytes.
func findMetadataNote(order interface{ Uint32([]byte) uint32 }, data []byte) []byte {
	for len(data) >= 12 {
		nameSize := int(order.Uint32(data[0:4]))
		descSize := int(order.Uint32(data[4:8]))
		noteType := order.Uint32(data[8:12])
		data = data[12:]
		namePadded := align4(nameSize)
		descPadded := align4(descSize)
		if len(data) < namePadded+descPadded {
			return nil
		}
		name := string(bytes.TrimRight(data[:nameSize], "\x00"))
		desc := data[namePadded : namePadded+descSize]
		if name == noteVendor && noteType == noteHSAMetadata {
			return desc
		}
		data = data[namePadded+descPadded:]
	}
	return nil
}

func align4(n int) int {
	return (n + 3) &^ 3
}
