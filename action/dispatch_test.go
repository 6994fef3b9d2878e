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

package action_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/comgr/action"
	"github.com/gx-org/comgr/object"
	"github.com/gx-org/comgr/status"
)

const gfx900 = "amdgcn-amd-amdhsa--gfx900"

// fakeToolchain produces outputs of the form "<op>:<input bytes>" and records
// the requests it receives. Inputs named failOn fail, optionally with
// diagnostics attached.
type fakeToolchain struct {
	failOn      string
	diagnostics map[string][]string

	requests []*action.Request
	// executable records the flag of the last LinkRelocatable call.
	executable bool
}

func (f *fakeToolchain) run(op string, req *action.Request, in *object.Object) (*action.Result, error) {
	f.requests = append(f.requests, req)
	res := &action.Result{
		Bytes: []byte(fmt.Sprintf("%s:%s", op, in.Bytes())),
		Log:   fmt.Sprintf("%s %s", op, in.Name()),
	}
	for _, diag := range f.diagnostics[in.Name()] {
		res.Diagnostics = append(res.Diagnostics, []byte(diag))
	}
	if in.Name() == f.failOn {
		return res, fmt.Errorf("%s failed on %s", op, in.Name())
	}
	return res, nil
}

func (f *fakeToolchain) runAll(op string, req *action.Request, in []*object.Object) (*action.Result, error) {
	f.requests = append(f.requests, req)
	parts := make([]string, len(in))
	for i, o := range in {
		parts[i] = string(o.Bytes())
	}
	return &action.Result{Bytes: []byte(fmt.Sprintf("%s:%s", op, strings.Join(parts, "+")))}, nil
}

func (f *fakeToolchain) Preprocess(req *action.Request, src *object.Object) (*action.Result, error) {
	return f.run("preprocess", req, src)
}

func (f *fakeToolchain) Compile(req *action.Request, src *object.Object) (*action.Result, error) {
	return f.run("compile", req, src)
}

func (f *fakeToolchain) LinkBitcode(req *action.Request, in []*object.Object) (*action.Result, error) {
	return f.runAll("link-bc", req, in)
}

func (f *fakeToolchain) Optimize(req *action.Request, in *object.Object) (*action.Result, error) {
	return f.run("optimize", req, in)
}

func (f *fakeToolchain) CodegenRelocatable(req *action.Request, in *object.Object) (*action.Result, error) {
	return f.run("codegen-reloc", req, in)
}

func (f *fakeToolchain) CodegenAssembly(req *action.Request, in *object.Object) (*action.Result, error) {
	return f.run("codegen-asm", req, in)
}

func (f *fakeToolchain) LinkRelocatable(req *action.Request, in []*object.Object, executable bool) (*action.Result, error) {
	f.executable = executable
	return f.runAll("link-reloc", req, in)
}

func (f *fakeToolchain) Assemble(req *action.Request, src *object.Object) (*action.Result, error) {
	return f.run("assemble", req, src)
}

func (f *fakeToolchain) Disassemble(req *action.Request, in *object.Object) (*action.Result, error) {
	return f.run("disassemble", req, in)
}

// register installs a toolchain for the duration of one test.
func register(t *testing.T, tc action.Toolchain) {
	t.Helper()
	prev := action.RegisteredToolchain()
	action.RegisterToolchain(tc)
	t.Cleanup(func() { action.RegisterToolchain(prev) })
}

func newObject(t *testing.T, kind object.Kind, name, content, isaName string) *object.Object {
	t.Helper()
	o, err := object.New(kind)
	if err != nil {
		t.Fatal(err)
	}
	o.SetName(name)
	o.SetBytes([]byte(content))
	if isaName != "" {
		if err := o.SetIsaName(isaName); err != nil {
			t.Fatal(err)
		}
	}
	return o
}

func newSet(t *testing.T, objs ...*object.Object) *object.Set {
	t.Helper()
	s := object.NewSet()
	for _, o := range objs {
		if err := s.Add(o); err != nil {
			t.Fatal(err)
		}
		o.Release()
	}
	return s
}

func compileInfo(t *testing.T) *action.Info {
	t.Helper()
	nfo := action.NewInfo()
	nfo.SetIsaName(gfx900)
	if err := nfo.SetLanguage(action.LanguageOpenCL12); err != nil {
		t.Fatal(err)
	}
	return nfo
}

// contents returns name->bytes of the members of one kind, in order.
func contents(s *object.Set, kind object.Kind) []string {
	var out []string
	for o := range s.Objects(kind) {
		out = append(out, fmt.Sprintf("%s=%s", o.Name(), o.Bytes()))
	}
	return out
}

func TestDispatchValidation(t *testing.T) {
	register(t, &fakeToolchain{})
	input := newSet(t, newObject(t, object.KindSource, "a.cl", "kernel a", ""))
	result := object.NewSet()
	nfo := action.NewInfo()

	tests := []struct {
		name string
		err  error
	}{
		{name: "nil info", err: action.Dispatch(action.CompileSourceToBc, nil, input, result)},
		{name: "nil input", err: action.Dispatch(action.CompileSourceToBc, nfo, nil, result)},
		{name: "nil result", err: action.Dispatch(action.CompileSourceToBc, nfo, input, nil)},
		{name: "invalid kind", err: action.Dispatch(action.Kind(42), nfo, input, result)},
		{name: "missing isa", err: action.Dispatch(action.CompileSourceToBc, nfo, input, result)},
	}
	for _, test := range tests {
		if status.FromError(test.err) != status.InvalidArgument {
			t.Errorf("%s: got %v but want an invalid argument error", test.name, test.err)
		}
	}

	// A compile with an ISA but no language is also a precondition violation.
	nfo.SetIsaName(gfx900)
	if err := action.Dispatch(action.CompileSourceToBc, nfo, input, result); status.FromError(err) != status.InvalidArgument {
		t.Errorf("missing language: got %v but want an invalid argument error", err)
	}

	// Validation failures never touch the result set.
	if n, _ := result.Count(object.KindBitcode); n != 0 {
		t.Errorf("a failed validation appended %d objects to the result set", n)
	}
}

func TestDispatchNoToolchain(t *testing.T) {
	register(t, nil)
	input := newSet(t, newObject(t, object.KindSource, "a.cl", "kernel a", ""))
	err := action.Dispatch(action.CompileSourceToBc, compileInfo(t), input, object.NewSet())
	if status.FromError(err) != status.Error {
		t.Errorf("dispatch without a toolchain = %v but want a generic error", err)
	}
}

func TestCompileEachInput(t *testing.T) {
	register(t, &fakeToolchain{})
	input := newSet(t,
		newObject(t, object.KindSource, "a.cl", "kernel a", ""),
		newObject(t, object.KindSource, "b.cl", "kernel b", ""),
		// Objects of other kinds are ignored by the action.
		newObject(t, object.KindBytes, "raw", "ignored", ""),
	)
	result := object.NewSet()
	if err := action.Dispatch(action.CompileSourceToBc, compileInfo(t), input, result); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"a.cl.bc=compile:kernel a",
		"b.cl.bc=compile:kernel b",
	}
	if got := contents(result, object.KindBitcode); !cmp.Equal(got, want) {
		t.Errorf("wrong outputs: got %v, want %v", got, want)
	}
	// Outputs of an ISA-specific kind carry the effective ISA.
	out, err := result.At(object.KindBitcode, 0)
	if err != nil {
		t.Fatal(err)
	}
	if isaName, _ := out.IsaName(); isaName != gfx900 {
		t.Errorf("output isa name is %q but want %q", isaName, gfx900)
	}
}

func TestDispatchPassesIncludes(t *testing.T) {
	tc := &fakeToolchain{}
	register(t, tc)
	input := newSet(t,
		newObject(t, object.KindSource, "a.cl", "kernel a", ""),
		newObject(t, object.KindInclude, "common.h", "#define N 4", ""),
		newObject(t, object.KindPrecompiledHeader, "std.pch", "pch", ""),
	)
	if err := action.Dispatch(action.CompileSourceToBc, compileInfo(t), input, object.NewSet()); err != nil {
		t.Fatal(err)
	}
	if len(tc.requests) != 1 {
		t.Fatalf("the toolchain received %d requests but want 1", len(tc.requests))
	}
	var names []string
	for _, inc := range tc.requests[0].Includes {
		names = append(names, inc.Name())
	}
	want := []string{"common.h", "std.pch"}
	if !cmp.Equal(names, want) {
		t.Errorf("wrong includes: got %v, want %v", names, want)
	}
}

func TestDispatchLogging(t *testing.T) {
	register(t, &fakeToolchain{})
	input := newSet(t, newObject(t, object.KindSource, "a.cl", "kernel a", ""))
	result := object.NewSet()
	nfo := compileInfo(t)
	nfo.SetLogging(true)
	if err := action.Dispatch(action.CompileSourceToBc, nfo, input, result); err != nil {
		t.Fatal(err)
	}
	n, err := result.Count(object.KindLog)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("the result set has %d log objects but want 1", n)
	}
	log, err := result.At(object.KindLog, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := log.Name(), "compile_source_to_bc.log"; got != want {
		t.Errorf("log object name is %q but want %q", got, want)
	}
	for _, want := range []string{"action: compile_source_to_bc", "a.cl: ok", "compile a.cl"} {
		if !strings.Contains(string(log.Bytes()), want) {
			t.Errorf("log %q does not contain %q", log.Bytes(), want)
		}
	}
}

func TestDispatchDiagnostics(t *testing.T) {
	register(t, &fakeToolchain{diagnostics: map[string][]string{
		"a.cl": {"a.cl:1: warning: unused variable"},
	}})
	input := newSet(t, newObject(t, object.KindSource, "a.cl", "kernel a", ""))
	result := object.NewSet()
	if err := action.Dispatch(action.CompileSourceToBc, compileInfo(t), input, result); err != nil {
		t.Fatal(err)
	}
	want := []string{"a.cl.diag=a.cl:1: warning: unused variable"}
	if got := contents(result, object.KindDiagnostic); !cmp.Equal(got, want) {
		t.Errorf("wrong diagnostics: got %v, want %v", got, want)
	}
}

func TestDispatchPartialFailure(t *testing.T) {
	register(t, &fakeToolchain{
		failOn: "b.cl",
		diagnostics: map[string][]string{
			"b.cl": {"b.cl:3: error: expected ';'"},
		},
	})
	input := newSet(t,
		newObject(t, object.KindSource, "a.cl", "kernel a", ""),
		newObject(t, object.KindSource, "b.cl", "kernel b", ""),
		newObject(t, object.KindSource, "c.cl", "kernel c", ""),
	)
	result := object.NewSet()
	err := action.Dispatch(action.CompileSourceToBc, compileInfo(t), input, result)
	if status.FromError(err) != status.Error {
		t.Fatalf("dispatch with a failing input = %v but want a generic error", err)
	}
	// Outputs produced before the failure remain; the failing input and the
	// ones after it produce none.
	want := []string{"a.cl.bc=compile:kernel a"}
	if got := contents(result, object.KindBitcode); !cmp.Equal(got, want) {
		t.Errorf("wrong outputs after a failure: got %v, want %v", got, want)
	}
	// Diagnostics of the failing invocation are still reported.
	wantDiags := []string{"b.cl.diag=b.cl:3: error: expected ';'"}
	if got := contents(result, object.KindDiagnostic); !cmp.Equal(got, wantDiags) {
		t.Errorf("wrong diagnostics after a failure: got %v, want %v", got, wantDiags)
	}
}

func TestLinkBatch(t *testing.T) {
	tc := &fakeToolchain{}
	register(t, tc)
	input := newSet(t,
		newObject(t, object.KindRelocatable, "a.o", "reloc a", gfx900),
		newObject(t, object.KindRelocatable, "b.o", "reloc b", gfx900),
	)
	result := object.NewSet()
	if err := action.Dispatch(action.LinkRelocatableToExecutable, action.NewInfo(), input, result); err != nil {
		t.Fatal(err)
	}
	if !tc.executable {
		t.Errorf("the toolchain linked a relocatable but want an executable")
	}
	want := []string{"a.out=link-reloc:reloc a+reloc b"}
	if got := contents(result, object.KindExecutable); !cmp.Equal(got, want) {
		t.Errorf("wrong link output: got %v, want %v", got, want)
	}
	// The effective ISA is adopted from the agreeing input tags.
	out, err := result.At(object.KindExecutable, 0)
	if err != nil {
		t.Fatal(err)
	}
	if isaName, _ := out.IsaName(); isaName != gfx900 {
		t.Errorf("link output isa name is %q but want %q", isaName, gfx900)
	}
}

func TestIsaTagDisagreement(t *testing.T) {
	register(t, &fakeToolchain{})
	tests := []struct {
		name    string
		infoIsa string
		tags    []string
	}{
		{name: "inputs disagree", tags: []string{gfx900, "amdgcn-amd-amdhsa--gfx803"}},
		{name: "input disagrees with info", infoIsa: gfx900, tags: []string{"amdgcn-amd-amdhsa--gfx803"}},
	}
	for _, test := range tests {
		var objs []*object.Object
		for i, tag := range test.tags {
			objs = append(objs, newObject(t, object.KindBitcode, fmt.Sprintf("in%d.bc", i), "bc", tag))
		}
		input := newSet(t, objs...)
		result := object.NewSet()
		nfo := action.NewInfo()
		nfo.SetIsaName(test.infoIsa)
		err := action.Dispatch(action.LinkBcToBc, nfo, input, result)
		if status.FromError(err) != status.InvalidArgument {
			t.Errorf("%s: got %v but want an invalid argument error", test.name, err)
		}
		if n, _ := result.Count(object.KindBitcode); n != 0 {
			t.Errorf("%s: a failed validation appended %d objects to the result set", test.name, n)
		}
	}
}

func TestUntaggedInputsAgree(t *testing.T) {
	register(t, &fakeToolchain{})
	input := newSet(t,
		newObject(t, object.KindBitcode, "a.bc", "bc a", ""),
		newObject(t, object.KindBitcode, "b.bc", "bc b", gfx900),
	)
	result := object.NewSet()
	if err := action.Dispatch(action.LinkBcToBc, action.NewInfo(), input, result); err != nil {
		t.Fatal(err)
	}
	want := []string{"linked.bc=link-bc:bc a+bc b"}
	if got := contents(result, object.KindBitcode); !cmp.Equal(got, want) {
		t.Errorf("wrong link output: got %v, want %v", got, want)
	}
}

func TestResultSetIsAppendOnly(t *testing.T) {
	register(t, &fakeToolchain{})
	result := newSet(t, newObject(t, object.KindBitcode, "old.bc", "old", ""))
	input := newSet(t, newObject(t, object.KindSource, "a.cl", "kernel a", ""))
	if err := action.Dispatch(action.CompileSourceToBc, compileInfo(t), input, result); err != nil {
		t.Fatal(err)
	}
	want := []string{"old.bc=old", "a.cl.bc=compile:kernel a"}
	if got := contents(result, object.KindBitcode); !cmp.Equal(got, want) {
		t.Errorf("dispatch cleared or reordered the result set: got %v, want %v", got, want)
	}
}
