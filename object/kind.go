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

// Kind tags the content of a data object. The kind is fixed when the object
// is created.
type Kind int

const (
	// KindUndef marks the absence of data. No data object has this kind;
	// it is used as a sentinel, for example to remove all members of a set.
	KindUndef Kind = iota
	// KindSource is a textual main source.
	KindSource
	// KindInclude is a textual source included by a main or include source.
	KindInclude
	// KindPrecompiledHeader is a precompiled header included by a source.
	KindPrecompiledHeader
	// KindDiagnostic is a diagnostic output produced by an action.
	KindDiagnostic
	// KindLog is a textual log output produced by an action.
	KindLog
	// KindBitcode is compiler intermediate representation for a specific ISA.
	KindBitcode
	// KindRelocatable is a relocatable machine code object for a specific ISA.
	KindRelocatable
	// KindExecutable is an executable machine code object for a specific ISA.
	KindExecutable
	// KindBytes is an untagged block of bytes.
	KindBytes

	kindLast = KindBytes
)

var kindNames = [...]string{
	KindUndef:             "undef",
	KindSource:            "source",
	KindInclude:           "include",
	KindPrecompiledHeader: "precompiled_header",
	KindDiagnostic:        "diagnostic",
	KindLog:               "log",
	KindBitcode:           "bc",
	KindRelocatable:       "relocatable",
	KindExecutable:        "executable",
	KindBytes:             "bytes",
}

// Valid reports whether k is a recognized data kind, including KindUndef.
func (k Kind) Valid() bool {
	return k >= KindUndef && k <= kindLast
}

// IsaSpecific reports whether objects of this kind carry an ISA name.
func (k Kind) IsaSpecific() bool {
	switch k {
	case KindBitcode, KindRelocatable, KindExecutable:
		return true
	}
	return false
}

// String returns the name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "invalid"
	}
	return kindNames[k]
}
