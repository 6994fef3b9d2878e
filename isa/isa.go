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

// Package isa is the static catalog of the instruction set architectures
// supported by the library.
//
// Each ISA has a name following the code object target identification
// string convention, a metadata document, and zero or more default device
// libraries. The catalog is built once and never mutated, so all accessors
// are safe for unsynchronized concurrent use.
package isa

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gx-org/comgr/action"
	"github.com/gx-org/comgr/metadata"
	"github.com/gx-org/comgr/object"
	"github.com/gx-org/comgr/status"
)

// deviceLib is one default device library: an immutable, pre-built data
// object linked into programs of a matching kind and language. A library
// with no languages is language independent.
type deviceLib struct {
	kind      object.Kind
	languages []action.Language
	obj       *object.Object
}

// serves reports whether the library belongs to the selection for a
// language. LanguageNone selects only language-independent libraries.
func (lib *deviceLib) serves(language action.Language) bool {
	if len(lib.languages) == 0 {
		return true
	}
	return slices.Contains(lib.languages, language)
}

type entry struct {
	name string
	doc  string
	libs []deviceLib
}

var registry = struct {
	once    sync.Once
	ordered []*entry
	byName  map[string]*entry
}{}

func initRegistry() {
	registry.byName = make(map[string]*entry, len(table))
	for i := range table {
		e := &table[i]
		for li := range e.libs {
			lib := &e.libs[li]
			o, err := object.New(lib.kind)
			if err != nil {
				panic(err)
			}
			o.SetName(lib.name)
			o.SetBytes(lib.bytes)
			if err := o.SetIsaName(e.name); err != nil {
				panic(err)
			}
			e.entry.libs = append(e.entry.libs, deviceLib{
				kind:      lib.kind,
				languages: lib.languages,
				obj:       o,
			})
		}
		e.entry.name = e.name
		e.entry.doc = e.doc
		registry.ordered = append(registry.ordered, &e.entry)
		registry.byName[e.name] = &e.entry
	}
}

func entries() []*entry {
	registry.once.Do(initRegistry)
	return registry.ordered
}

func lookup(name string) (*entry, bool) {
	registry.once.Do(initRegistry)
	e, ok := registry.byName[name]
	return e, ok
}

// Count returns the number of supported ISA names.
func Count() int {
	return len(entries())
}

// Name returns the Nth supported ISA name.
func Name(index int) (string, error) {
	all := entries()
	if index < 0 || index >= len(all) {
		return "", status.InvalidArgumentf("isa index %d out of range: %d isa names are supported", index, len(all))
	}
	return all[index].name, nil
}

// Supported reports whether name is a supported ISA name.
func Supported(name string) bool {
	_, ok := lookup(name)
	return ok
}

// Names returns all supported ISA names in catalog order.
func Names() []string {
	all := entries()
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = e.name
	}
	return names
}

// Metadata builds the metadata tree of an ISA. An ISA without metadata
// yields the null node.
func Metadata(name string) (*metadata.Node, error) {
	e, ok := lookup(name)
	if !ok {
		return nil, status.InvalidArgumentf("unsupported isa name %q", name)
	}
	if e.doc == "" {
		return metadata.Null(), nil
	}
	return metadata.FromYAML([]byte(e.doc))
}

// AddDefaultDeviceLibraries adds the default device libraries of an ISA for
// a data kind and a language to a result set. LanguageNone selects only the
// language-independent base libraries; any other language selects the base
// libraries plus the libraries of that language. Libraries already in the
// set are not added twice.
func AddDefaultDeviceLibraries(name string, kind object.Kind, language action.Language, result *object.Set) error {
	e, ok := lookup(name)
	if !ok {
		return status.InvalidArgumentf("unsupported isa name %q", name)
	}
	if !kind.Valid() || kind == object.KindUndef {
		return status.InvalidArgumentf("cannot select device libraries of kind %v", kind)
	}
	if !language.Valid() {
		return status.InvalidArgumentf("cannot select device libraries for language %d", language)
	}
	if result == nil {
		return status.InvalidArgumentf("a result set is required")
	}
	if !kind.IsaSpecific() {
		return nil
	}
	for i := range e.libs {
		lib := &e.libs[i]
		if lib.kind != kind || !lib.serves(language) {
			continue
		}
		if err := result.Add(lib.obj); err != nil {
			return err
		}
	}
	return nil
}

// Languages returns the languages for which at least one ISA carries a
// dedicated device library.
func Languages() []action.Language {
	langs := make(map[action.Language]bool)
	for _, e := range entries() {
		for i := range e.libs {
			for _, l := range e.libs[i].languages {
				langs[l] = true
			}
		}
	}
	ls := maps.Keys(langs)
	slices.Sort(ls)
	return ls
}
