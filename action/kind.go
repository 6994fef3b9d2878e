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

package action

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gx-org/comgr/object"
)

// Kind identifies one pipeline transformation.
type Kind int

const (
	// SourceToPreprocessor preprocesses each source object into a source object.
	SourceToPreprocessor Kind = iota
	// CompileSourceToBc compiles each source object into a bc object.
	CompileSourceToBc
	// LinkBcToBc links all bc objects into a single bc object.
	LinkBcToBc
	// OptimizeBcToBc optimizes each bc object into a bc object.
	OptimizeBcToBc
	// CodegenBcToRelocatable generates a relocatable object from each bc object.
	CodegenBcToRelocatable
	// CodegenBcToAssembly generates an assembly source object from each bc object.
	CodegenBcToAssembly
	// LinkRelocatableToRelocatable links all relocatable objects into a single
	// relocatable object.
	LinkRelocatableToRelocatable
	// LinkRelocatableToExecutable links all relocatable objects into an
	// executable object.
	LinkRelocatableToExecutable
	// AssembleSourceToRelocatable assembles each source object into a
	// relocatable object.
	AssembleSourceToRelocatable
	// DisassembleRelocatableToSource disassembles each relocatable object into
	// a source object.
	DisassembleRelocatableToSource
	// DisassembleExecutableToSource disassembles each executable object into a
	// source object.
	DisassembleExecutableToSource
	// DisassembleBytesToSource disassembles each bytes object into a source
	// object.
	DisassembleBytesToSource
)

var kindNames = map[Kind]string{
	SourceToPreprocessor:           "source_to_preprocessor",
	CompileSourceToBc:              "compile_source_to_bc",
	LinkBcToBc:                     "link_bc_to_bc",
	OptimizeBcToBc:                 "optimize_bc_to_bc",
	CodegenBcToRelocatable:         "codegen_bc_to_relocatable",
	CodegenBcToAssembly:            "codegen_bc_to_assembly",
	LinkRelocatableToRelocatable:   "link_relocatable_to_relocatable",
	LinkRelocatableToExecutable:    "link_relocatable_to_executable",
	AssembleSourceToRelocatable:    "assemble_source_to_relocatable",
	DisassembleRelocatableToSource: "disassemble_relocatable_to_source",
	DisassembleExecutableToSource:  "disassemble_executable_to_source",
	DisassembleBytesToSource:       "disassemble_bytes_to_source",
}

// shape describes the contract of one action kind: the kind of input objects
// it consumes, the kind of objects it produces, the configuration it
// requires, and whether the toolchain is invoked once per input or once for
// the whole input list.
type shape struct {
	input  object.Kind
	output object.Kind
	// needsIsa requires the ISA name to be set on the action info.
	needsIsa bool
	// needsLanguage requires a language to be set on the action info.
	needsLanguage bool
	// checkIsaTags requires the ISA tags of the qualifying inputs to agree
	// with the action info ISA name, or among themselves when it is unset.
	checkIsaTags bool
	// link invokes the toolchain once with all qualifying inputs instead of
	// once per input.
	link bool
}

var shapes = map[Kind]shape{
	SourceToPreprocessor:           {input: object.KindSource, output: object.KindSource, needsIsa: true, needsLanguage: true},
	CompileSourceToBc:              {input: object.KindSource, output: object.KindBitcode, needsIsa: true, needsLanguage: true},
	LinkBcToBc:                     {input: object.KindBitcode, output: object.KindBitcode, checkIsaTags: true, link: true},
	OptimizeBcToBc:                 {input: object.KindBitcode, output: object.KindBitcode, checkIsaTags: true},
	CodegenBcToRelocatable:         {input: object.KindBitcode, output: object.KindRelocatable, checkIsaTags: true},
	CodegenBcToAssembly:            {input: object.KindBitcode, output: object.KindSource, checkIsaTags: true},
	LinkRelocatableToRelocatable:   {input: object.KindRelocatable, output: object.KindRelocatable, checkIsaTags: true, link: true},
	LinkRelocatableToExecutable:    {input: object.KindRelocatable, output: object.KindExecutable, checkIsaTags: true, link: true},
	AssembleSourceToRelocatable:    {input: object.KindSource, output: object.KindRelocatable, needsIsa: true},
	DisassembleRelocatableToSource: {input: object.KindRelocatable, output: object.KindSource, checkIsaTags: true},
	DisassembleExecutableToSource:  {input: object.KindExecutable, output: object.KindSource, checkIsaTags: true},
	DisassembleBytesToSource:       {input: object.KindBytes, output: object.KindSource, needsIsa: true},
}

// Valid reports whether k is a recognized action kind.
func (k Kind) Valid() bool {
	_, ok := shapes[k]
	return ok
}

// String returns the name of the action kind.
func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return "invalid"
	}
	return name
}

// Input returns the kind of data object the action consumes from its input
// set. Data objects of other kinds are ignored.
func (k Kind) Input() object.Kind {
	return shapes[k].input
}

// Output returns the kind of data object the action appends to its result
// set.
func (k Kind) Output() object.Kind {
	return shapes[k].output
}

// Kinds returns all recognized action kinds in pipeline order.
func Kinds() []Kind {
	ks := maps.Keys(shapes)
	slices.Sort(ks)
	return ks
}
