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
	"github.com/gx-org/comgr/object"
)

// Request carries the configuration of one toolchain invocation. The engine
// builds it from the action info and the input set after validation, so a
// toolchain never sees a malformed request.
type Request struct {
	// IsaName is the effective target ISA: the action info ISA name, or the
	// tag agreed on by the ISA-tagged inputs.
	IsaName string
	// Language is the source language, LanguageNone when not set.
	Language Language
	// Options is the uninterpreted option string of the action info.
	Options string
	// WorkingDirectory resolves relative source and include names. Empty
	// means the toolchain default.
	WorkingDirectory string
	// Includes are the include and precompiled-header objects of the input
	// set, in insertion order. Include names are resolved against them.
	Includes []*object.Object
}

// Result of one successful toolchain invocation.
type Result struct {
	// Bytes is the produced output.
	Bytes []byte
	// Diagnostics are the diagnostic outputs produced along the way, if any.
	// They are reported even when the invocation fails.
	Diagnostics [][]byte
	// Log is a textual account of the invocation appended to the dispatch
	// log when logging is enabled.
	Log string
}

// Toolchain is the external collaborator performing the actual
// transformations: preprocessor, compiler front end, optimizer, code
// generator, assembler, disassembler and linker. The engine validates all
// arguments before calling into it and treats any returned error as a
// domain failure of the whole action.
type Toolchain interface {
	// Preprocess runs the preprocessor on one source object.
	Preprocess(req *Request, src *object.Object) (*Result, error)
	// Compile compiles one source object to bitcode.
	Compile(req *Request, src *object.Object) (*Result, error)
	// LinkBitcode links all bitcode inputs into one bitcode output.
	LinkBitcode(req *Request, in []*object.Object) (*Result, error)
	// Optimize optimizes one bitcode object.
	Optimize(req *Request, in *object.Object) (*Result, error)
	// CodegenRelocatable generates a relocatable from one bitcode object.
	CodegenRelocatable(req *Request, in *object.Object) (*Result, error)
	// CodegenAssembly generates assembly source from one bitcode object.
	CodegenAssembly(req *Request, in *object.Object) (*Result, error)
	// LinkRelocatable links all relocatable inputs into one relocatable, or
	// into an executable when executable is true.
	LinkRelocatable(req *Request, in []*object.Object, executable bool) (*Result, error)
	// Assemble assembles one source object into a relocatable.
	Assemble(req *Request, src *object.Object) (*Result, error)
	// Disassemble disassembles one relocatable, executable or bytes object
	// into source.
	Disassemble(req *Request, in *object.Object) (*Result, error)
}

var toolchain Toolchain

// RegisterToolchain installs the toolchain used by Dispatch. It is expected
// to be called once at process start, before any action is dispatched.
func RegisterToolchain(tc Toolchain) {
	toolchain = tc
}

// RegisteredToolchain returns the installed toolchain, nil if none.
func RegisteredToolchain() Toolchain {
	return toolchain
}
