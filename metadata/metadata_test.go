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

package metadata_test

import (
	"debug/elf"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/comgr/internal/elffixture"
	"github.com/gx-org/comgr/metadata"
	"github.com/gx-org/comgr/object"
	"github.com/gx-org/comgr/status"
)

// value returns the string held by a string node, failing the test otherwise.
func value(t *testing.T, n *metadata.Node) string {
	t.Helper()
	s, err := n.Value()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFromYAMLMapOrder(t *testing.T) {
	doc := []byte(`Name: vectors
Language: OpenCL C
Version: "2.0"
Kernels:
  - add
  - mul
`)
	node, err := metadata.FromYAML(doc)
	if err != nil {
		t.Fatal(err)
	}
	if node.Kind() != metadata.KindMap {
		t.Fatalf("document root is a %v but want a map", node.Kind())
	}
	n, err := node.MapSize()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("the map has %d entries but want 4", n)
	}

	// Entries iterate in document order, not key order.
	entries, err := node.Entries()
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for key := range entries {
		keys = append(keys, key)
	}
	wantKeys := []string{"Name", "Language", "Version", "Kernels"}
	if !cmp.Equal(keys, wantKeys) {
		t.Errorf("wrong key order: got %v, want %v", keys, wantKeys)
	}

	name, err := node.Lookup("Name")
	if err != nil {
		t.Fatal(err)
	}
	if got := value(t, name); got != "vectors" {
		t.Errorf("Name is %q but want %q", got, "vectors")
	}
	// Non-string scalars are exposed as strings.
	version, err := node.Lookup("Version")
	if err != nil {
		t.Fatal(err)
	}
	if got := value(t, version); got != "2.0" {
		t.Errorf("Version is %q but want %q", got, "2.0")
	}

	kernels, err := node.Lookup("Kernels")
	if err != nil {
		t.Fatal(err)
	}
	if kernels.Kind() != metadata.KindList {
		t.Fatalf("Kernels is a %v but want a list", kernels.Kind())
	}
	size, err := kernels.ListSize()
	if err != nil {
		t.Fatal(err)
	}
	if size != 2 {
		t.Fatalf("Kernels has %d elements but want 2", size)
	}
	second, err := kernels.Index(1)
	if err != nil {
		t.Fatal(err)
	}
	if got := value(t, second); got != "mul" {
		t.Errorf("Kernels[1] is %q but want %q", got, "mul")
	}
}

func TestFromYAMLEmptyDocument(t *testing.T) {
	node, err := metadata.FromYAML(nil)
	if err != nil {
		t.Fatal(err)
	}
	if node.Kind() != metadata.KindNull {
		t.Errorf("an empty document yields a %v node but want null", node.Kind())
	}
}

func TestLookupAbsentKey(t *testing.T) {
	node, err := metadata.FromYAML([]byte("Name: vectors\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = node.Lookup("NoSuchKey")
	if got := status.FromError(err); got != status.Error {
		t.Errorf("looking up an absent key = %v but want a generic error", err)
	}
}

func TestKindMismatch(t *testing.T) {
	node, err := metadata.FromYAML([]byte("Name: vectors\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := node.Value(); status.FromError(err) != status.InvalidArgument {
		t.Errorf("Value on a map node = %v but want an invalid argument error", err)
	}
	if _, err := node.ListSize(); status.FromError(err) != status.InvalidArgument {
		t.Errorf("ListSize on a map node = %v but want an invalid argument error", err)
	}
	if _, err := metadata.Null().MapSize(); status.FromError(err) != status.InvalidArgument {
		t.Errorf("MapSize on a null node = %v but want an invalid argument error", err)
	}
}

func TestListIndexOutOfRange(t *testing.T) {
	node, err := metadata.FromYAML([]byte("- a\n- b\n"))
	if err != nil {
		t.Fatal(err)
	}
	if node.Kind() != metadata.KindList {
		t.Fatalf("document root is a %v but want a list", node.Kind())
	}
	if _, err := node.Index(2); status.FromError(err) != status.InvalidArgument {
		t.Errorf("indexing past the end = %v but want an invalid argument error", err)
	}
	if _, err := node.Index(-1); status.FromError(err) != status.InvalidArgument {
		t.Errorf("indexing below zero = %v but want an invalid argument error", err)
	}
}

func TestEntriesEarlyStop(t *testing.T) {
	node, err := metadata.FromYAML([]byte("a: 1\nb: 2\nc: 3\n"))
	if err != nil {
		t.Fatal(err)
	}
	entries, err := node.Entries()
	if err != nil {
		t.Fatal(err)
	}
	var seen []string
	for key := range entries {
		seen = append(seen, key)
		if len(seen) == 2 {
			break
		}
	}
	if !cmp.Equal(seen, []string{"a", "b"}) {
		t.Errorf("early stop visited %v but want [a b]", seen)
	}
}

func TestFromObjectNote(t *testing.T) {
	doc := []byte("Version: \"1.0\"\nKernels:\n  - add\n")
	fixture := &elffixture.Object{
		Type:     elf.ET_REL,
		Static:   []elffixture.Symbol{{Name: "add", Type: elf.STT_FUNC}},
		Metadata: doc,
	}
	o, err := object.New(object.KindRelocatable)
	if err != nil {
		t.Fatal(err)
	}
	o.SetName("a.o")
	o.SetBytes(fixture.Build())

	node, err := metadata.FromObject(o)
	if err != nil {
		t.Fatal(err)
	}
	if node.Kind() != metadata.KindMap {
		t.Fatalf("object metadata is a %v node but want a map", node.Kind())
	}
	version, err := node.Lookup("Version")
	if err != nil {
		t.Fatal(err)
	}
	if got := value(t, version); got != "1.0" {
		t.Errorf("Version is %q but want %q", got, "1.0")
	}
}

func TestFromObjectWithoutMetadata(t *testing.T) {
	// A machine code object without a vendor note has no metadata.
	fixture := &elffixture.Object{
		Type:   elf.ET_REL,
		Static: []elffixture.Symbol{{Name: "add", Type: elf.STT_FUNC}},
	}
	o, err := object.New(object.KindRelocatable)
	if err != nil {
		t.Fatal(err)
	}
	o.SetBytes(fixture.Build())
	node, err := metadata.FromObject(o)
	if err != nil {
		t.Fatal(err)
	}
	if node.Kind() != metadata.KindNull {
		t.Errorf("object metadata is a %v node but want null", node.Kind())
	}

	// Non machine code objects have no metadata either.
	src, err := object.New(object.KindSource)
	if err != nil {
		t.Fatal(err)
	}
	src.SetBytes([]byte("kernel void add() {}"))
	node, err = metadata.FromObject(src)
	if err != nil {
		t.Fatal(err)
	}
	if node.Kind() != metadata.KindNull {
		t.Errorf("source metadata is a %v node but want null", node.Kind())
	}
}
