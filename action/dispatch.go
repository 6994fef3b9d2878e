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

// Package action implements the action catalog and the dispatch state
// machine driving a data set through one pipeline transformation.
package action

import (
	"slices"

	"go.uber.org/multierr"

	"github.com/gx-org/comgr/base/iter"
	"github.com/gx-org/comgr/object"
	"github.com/gx-org/comgr/status"
)

// Dispatch validates an action kind against an action info and an input
// set, invokes the registered toolchain, and appends the produced objects
// to the result set.
//
// The result set is never cleared: outputs, diagnostics and the optional
// log object are only appended. On a toolchain failure the whole call
// reports Error, but outputs already appended for earlier inputs remain.
// Validation failures report InvalidArgument and leave the result set
// unchanged. Dispatch keeps no state between calls.
func Dispatch(kind Kind, nfo *Info, input, result *object.Set) error {
	if nfo == nil || input == nil || result == nil {
		return status.InvalidArgumentf("action info, input set and result set are required")
	}
	sh, ok := shapes[kind]
	if !ok {
		return status.InvalidArgumentf("invalid action kind %d", kind)
	}
	if sh.needsIsa && nfo.isaName == "" {
		return status.InvalidArgumentf("action %v requires an isa name", kind)
	}
	if sh.needsLanguage && nfo.language == LanguageNone {
		return status.InvalidArgumentf("action %v requires a language", kind)
	}
	inputs := input.Slice(sh.input)
	isa := nfo.isaName
	if sh.checkIsaTags {
		var err error
		if isa, err = agreeIsa(isa, inputs); err != nil {
			return err
		}
	}
	tc := toolchain
	if tc == nil {
		return status.Errorf("no toolchain registered")
	}
	req := &Request{
		IsaName:          isa,
		Language:         nfo.language,
		Options:          nfo.options,
		WorkingDirectory: nfo.workingDir,
		Includes: slices.Collect(iter.All(
			input.Slice(object.KindInclude),
			input.Slice(object.KindPrecompiledHeader))),
	}
	log := newInvocationLog(kind, req)
	var dispatchErr error
	if sh.link {
		dispatchErr = dispatchLink(tc, kind, req, inputs, result, log)
	} else {
		dispatchErr = dispatchEach(tc, kind, req, inputs, result, log)
	}
	if nfo.logging {
		dispatchErr = multierr.Append(dispatchErr,
			appendOutput(result, object.KindLog, kind.String()+".log", "", log.bytes()))
	}
	if dispatchErr != nil {
		return status.WrapError(dispatchErr)
	}
	return nil
}

// dispatchEach invokes the toolchain once per qualifying input, in
// insertion order, stopping at the first failure.
func dispatchEach(tc Toolchain, kind Kind, req *Request, inputs []*object.Object, result *object.Set, log *invocationLog) error {
	for _, in := range inputs {
		res, err := invoke(tc, kind, req, in)
		log.item(in.Name(), res, err)
		if derr := appendDiagnostics(result, in.Name(), res); derr != nil {
			return multierr.Append(err, derr)
		}
		if err != nil {
			return err
		}
		out := appendOutput(result, kind.Output(), outputName(in.Name(), kind), req.IsaName, res.Bytes)
		if out != nil {
			return out
		}
	}
	return nil
}

// dispatchLink invokes the toolchain once with the whole qualifying input
// list.
func dispatchLink(tc Toolchain, kind Kind, req *Request, inputs []*object.Object, result *object.Set, log *invocationLog) error {
	var res *Result
	var err error
	switch kind {
	case LinkBcToBc:
		res, err = tc.LinkBitcode(req, inputs)
	case LinkRelocatableToRelocatable:
		res, err = tc.LinkRelocatable(req, inputs, false)
	case LinkRelocatableToExecutable:
		res, err = tc.LinkRelocatable(req, inputs, true)
	}
	log.item(linkOutputName(kind), res, err)
	if derr := appendDiagnostics(result, linkOutputName(kind), res); derr != nil {
		return multierr.Append(err, derr)
	}
	if err != nil {
		return err
	}
	return appendOutput(result, kind.Output(), linkOutputName(kind), req.IsaName, res.Bytes)
}

func invoke(tc Toolchain, kind Kind, req *Request, in *object.Object) (*Result, error) {
	switch kind {
	case SourceToPreprocessor:
		return tc.Preprocess(req, in)
	case CompileSourceToBc:
		return tc.Compile(req, in)
	case OptimizeBcToBc:
		return tc.Optimize(req, in)
	case CodegenBcToRelocatable:
		return tc.CodegenRelocatable(req, in)
	case CodegenBcToAssembly:
		return tc.CodegenAssembly(req, in)
	case AssembleSourceToRelocatable:
		return tc.Assemble(req, in)
	case DisassembleRelocatableToSource, DisassembleExecutableToSource, DisassembleBytesToSource:
		return tc.Disassemble(req, in)
	}
	return nil, status.InvalidArgumentf("invalid action kind %d", kind)
}

// agreeIsa checks that the ISA tags of the qualifying inputs agree with the
// action info ISA name. When the info ISA name is unset, the inputs must
// agree among themselves and their common tag becomes the effective ISA.
// Untagged inputs agree with everything.
func agreeIsa(want string, inputs []*object.Object) (string, error) {
	for _, in := range inputs {
		tag, err := in.IsaName()
		if err != nil {
			return "", err
		}
		if tag == "" {
			continue
		}
		if want == "" {
			want = tag
			continue
		}
		if tag != want {
			return "", status.InvalidArgumentf("isa name %q does not match the isa name %q of data object %q", want, tag, in.Name())
		}
	}
	return want, nil
}

// appendOutput creates a data object holding bytes and appends it to the
// result set, which becomes its only owner.
func appendOutput(result *object.Set, kind object.Kind, name, isa string, bytes []byte) error {
	o, err := object.New(kind)
	if err != nil {
		return err
	}
	o.SetName(name)
	o.SetBytes(bytes)
	if kind.IsaSpecific() && isa != "" {
		if err := o.SetIsaName(isa); err != nil {
			return err
		}
	}
	if err := result.Add(o); err != nil {
		return err
	}
	o.Release()
	return nil
}

// appendDiagnostics appends the diagnostics of a toolchain result to the
// result set, whether or not the invocation succeeded.
func appendDiagnostics(result *object.Set, name string, res *Result) error {
	if res == nil {
		return nil
	}
	for _, diag := range res.Diagnostics {
		if err := appendOutput(result, object.KindDiagnostic, name+".diag", "", diag); err != nil {
			return err
		}
	}
	return nil
}

var outputSuffixes = map[Kind]string{
	SourceToPreprocessor:           ".i",
	CompileSourceToBc:              ".bc",
	OptimizeBcToBc:                 ".opt.bc",
	CodegenBcToRelocatable:         ".o",
	CodegenBcToAssembly:            ".s",
	AssembleSourceToRelocatable:    ".o",
	DisassembleRelocatableToSource: ".s",
	DisassembleExecutableToSource:  ".s",
	DisassembleBytesToSource:       ".s",
}

func outputName(inputName string, kind Kind) string {
	if inputName == "" {
		inputName = "data"
	}
	return inputName + outputSuffixes[kind]
}

func linkOutputName(kind Kind) string {
	switch kind {
	case LinkBcToBc:
		return "linked.bc"
	case LinkRelocatableToRelocatable:
		return "linked.o"
	case LinkRelocatableToExecutable:
		return "a.out"
	}
	return "linked"
}
