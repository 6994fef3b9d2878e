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

// Package symtab provides read-only access to the symbol table of a machine
// code data object.
//
// Relocatable objects expose their static symbol table, executable objects
// their dynamic symbol table. Symbols are views keyed to the data object
// they were read from: they are only meaningful while that object is alive.
package symtab

import (
	"bytes"
	"debug/elf"

	"github.com/gx-org/comgr/object"
	"github.com/gx-org/comgr/status"
)

// Type classifies a symbol table entry.
type Type int

const (
	// TypeNone: the type of the symbol is not specified.
	TypeNone Type = iota
	// TypeObject: the symbol is associated with a data object.
	TypeObject
	// TypeFunc: the symbol is associated with executable code.
	TypeFunc
	// TypeSection: the symbol is associated with a section.
	TypeSection
	// TypeFile: the symbol names the source file of the object.
	TypeFile
	// TypeCommon: the symbol labels an uninitialized common block.
	TypeCommon
)

var typeNames = [...]string{
	TypeNone:    "notype",
	TypeObject:  "object",
	TypeFunc:    "func",
	TypeSection: "section",
	TypeFile:    "file",
	TypeCommon:  "common",
}

// String returns the name of the symbol type.
func (t Type) String() string {
	if t < TypeNone || t > TypeCommon {
		return "invalid"
	}
	return typeNames[t]
}

// Symbol is one entry of the symbol table of a machine code object.
type Symbol struct {
	owner *object.Object

	// Name of the symbol.
	Name string
	// Type of the symbol.
	Type Type
	// Size of the symbol, meaningful for variable symbols.
	Size uint64
	// Value of the symbol.
	Value uint64
	// Undefined reports whether the symbol is undefined in this object.
	Undefined bool
}

// Owner returns the data object the symbol was read from.
func (s *Symbol) Owner() *object.Object {
	return s.owner
}

// Table is the symbol table of one machine code object.
type Table struct {
	owner *object.Object
	syms  []*Symbol
}

// Load reads the symbol table of a machine code object: the static table of
// a relocatable, the dynamic table of an executable. Any other kind is a
// precondition violation.
func Load(o *object.Object) (*Table, error) {
	var dynamic bool
	switch o.Kind() {
	case object.KindRelocatable:
	case object.KindExecutable:
		dynamic = true
	default:
		return nil, status.InvalidArgumentf("data object of kind %v has no symbol table", o.Kind())
	}
	f, err := elf.NewFile(bytes.NewReader(o.Bytes()))
	if err != nil {
		return nil, status.Errorf("cannot read machine code object %q: %v", o.Name(), err)
	}
	defer f.Close()
	var elfSyms []elf.Symbol
	if dynamic {
		elfSyms, err = f.DynamicSymbols()
	} else {
		elfSyms, err = f.Symbols()
	}
	if err != nil {
		return nil, status.Errorf("cannot read the symbol table of %q: %v", o.Name(), err)
	}
	t := &Table{owner: o, syms: make([]*Symbol, len(elfSyms))}
	for i, sym := range elfSyms {
		t.syms[i] = &Symbol{
			owner:     o,
			Name:      sym.Name,
			Type:      symbolType(elf.ST_TYPE(sym.Info)),
			Size:      sym.Size,
			Value:     sym.Value,
			Undefined: sym.Section == elf.SHN_UNDEF,
		}
	}
	return t, nil
}

func symbolType(st elf.SymType) Type {
	switch st {
	case elf.STT_OBJECT:
		return TypeObject
	case elf.STT_FUNC:
		return TypeFunc
	case elf.STT_SECTION:
		return TypeSection
	case elf.STT_FILE:
		return TypeFile
	case elf.STT_COMMON:
		return TypeCommon
	}
	return TypeNone
}

// Size returns the number of symbols in the table.
func (t *Table) Size() int {
	return len(t.syms)
}

// Iter returns an iterator over the symbols in table order.
func (t *Table) Iter() func(func(*Symbol) bool) {
	return func(yield func(*Symbol) bool) {
		for _, sym := range t.syms {
			if !yield(sym) {
				return
			}
		}
	}
}

// Lookup returns the symbol with the given exact name. A name with no
// symbol is a domain error.
func (t *Table) Lookup(name string) (*Symbol, error) {
	for _, sym := range t.syms {
		if sym.Name == name {
			return sym, nil
		}
	}
	return nil, status.Errorf("machine code object %q has no symbol %q", t.owner.Name(), name)
}
