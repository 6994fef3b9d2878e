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

// Package elffixture builds minimal ELF machine code objects for tests:
// a static and a dynamic symbol table, and an optional vendor note
// carrying a metadata document.
package elffixture

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// Symbol describes one symbol table entry of a fixture object.
type Symbol struct {
	Name      string
	Type      elf.SymType
	Value     uint64
	Size      uint64
	Undefined bool
}

// Object describes a fixture machine code object.
type Object struct {
	// Type is the ELF file type: elf.ET_REL for a relocatable, elf.ET_DYN
	// or elf.ET_EXEC for an executable.
	Type elf.Type
	// Static is the content of the static symbol table (.symtab).
	Static []Symbol
	// Dynamic is the content of the dynamic symbol table (.dynsym).
	Dynamic []Symbol
	// Metadata, if not empty, is stored as the descriptor of an AMD
	// metadata note.
	Metadata []byte
}

const (
	headerSize     = 64
	sectionHdrSize = 64
	symSize        = 24

	machineAMDGPU = 224
	noteVendor    = "AMD"
	noteType      = 10
)

type section struct {
	name    string
	typ     elf.SectionType
	link    uint32
	entSize uint64
	data    []byte
}

// Build renders the fixture as ELF bytes readable by debug/elf.
func (o *Object) Build() []byte {
	// Section 0 is the null section.
	sections := []section{{}}
	if o.Static != nil {
		symData, strData := symbolTable(o.Static)
		sections = append(sections,
			section{name: ".symtab", typ: elf.SHT_SYMTAB, link: uint32(len(sections) + 1), entSize: symSize, data: symData},
			section{name: ".strtab", typ: elf.SHT_STRTAB, data: strData},
		)
	}
	if o.Dynamic != nil {
		symData, strData := symbolTable(o.Dynamic)
		sections = append(sections,
			section{name: ".dynsym", typ: elf.SHT_DYNSYM, link: uint32(len(sections) + 1), entSize: symSize, data: symData},
			section{name: ".dynstr", typ: elf.SHT_STRTAB, data: strData},
		)
	}
	if len(o.Metadata) > 0 {
		sections = append(sections, section{name: ".note", typ: elf.SHT_NOTE, data: note(o.Metadata)})
	}
	shstrndx := len(sections)
	sections = append(sections, section{name: ".shstrtab", typ: elf.SHT_STRTAB})
	sections[shstrndx].data = sectionNames(sections)

	// Layout: header, section data, section header table.
	offset := uint64(headerSize)
	offsets := make([]uint64, len(sections))
	for i, sec := range sections {
		offsets[i] = offset
		offset += uint64(len(sec.data))
	}
	shoff := offset

	buf := &bytes.Buffer{}
	writeHeader(buf, o.Type, shoff, len(sections), shstrndx)
	for _, sec := range sections {
		buf.Write(sec.data)
	}
	nameOff := uint32(1)
	for i, sec := range sections {
		var off uint32
		if i > 0 {
			off = nameOff
			nameOff += uint32(len(sec.name)) + 1
		}
		writeSectionHeader(buf, sec, off, offsets[i])
	}
	return buf.Bytes()
}

func writeHeader(buf *bytes.Buffer, typ elf.Type, shoff uint64, shnum, shstrndx int) {
	ident := [16]byte{0x7f, 'E', 'L', 'F',
		byte(elf.ELFCLASS64), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT)}
	buf.Write(ident[:])
	le := binary.LittleEndian
	binary.Write(buf, le, uint16(typ))
	binary.Write(buf, le, uint16(machineAMDGPU))
	binary.Write(buf, le, uint32(elf.EV_CURRENT))
	binary.Write(buf, le, uint64(0)) // entry
	binary.Write(buf, le, uint64(0)) // phoff
	binary.Write(buf, le, shoff)
	binary.Write(buf, le, uint32(0)) // flags
	binary.Write(buf, le, uint16(headerSize))
	binary.Write(buf, le, uint16(0)) // phentsize
	binary.Write(buf, le, uint16(0)) // phnum
	binary.Write(buf, le, uint16(sectionHdrSize))
	binary.Write(buf, le, uint16(shnum))
	binary.Write(buf, le, uint16(shstrndx))
}

func writeSectionHeader(buf *bytes.Buffer, sec section, nameOff uint32, offset uint64) {
	le := binary.LittleEndian
	binary.Write(buf, le, nameOff)
	binary.Write(buf, le, uint32(sec.typ))
	binary.Write(buf, le, uint64(0)) // flags
	binary.Write(buf, le, uint64(0)) // addr
	binary.Write(buf, le, offset)
	binary.Write(buf, le, uint64(len(sec.data)))
	binary.Write(buf, le, sec.link)
	binary.Write(buf, le, uint32(0)) // info
	binary.Write(buf, le, uint64(1)) // addralign
	binary.Write(buf, le, sec.entSize)
}

// symbolTable renders a symbol list as the bytes of a symbol table section
// and its string table section. Entry 0 of the table is the null symbol.
func symbolTable(syms []Symbol) (symData, strData []byte) {
	str := &bytes.Buffer{}
	str.WriteByte(0)
	table := &bytes.Buffer{}
	le := binary.LittleEndian
	table.Write(make([]byte, symSize))
	for _, sym := range syms {
		nameOff := uint32(str.Len())
		str.WriteString(sym.Name)
		str.WriteByte(0)
		shndx := uint16(1)
		if sym.Undefined {
			shndx = uint16(elf.SHN_UNDEF)
		}
		binary.Write(table, le, nameOff)
		table.WriteByte(byte(elf.ST_INFO(elf.STB_GLOBAL, sym.Type)))
		table.WriteByte(0) // other
		binary.Write(table, le, shndx)
		binary.Write(table, le, sym.Value)
		binary.Write(table, le, sym.Size)
	}
	return table.Bytes(), str.Bytes()
}

func note(desc []byte) []byte {
	buf := &bytes.Buffer{}
	le := binary.LittleEndian
	name := append([]byte(noteVendor), 0)
	binary.Write(buf, le, uint32(len(name)))
	binary.Write(buf, le, uint32(len(desc)))
	binary.Write(buf, le, uint32(noteType))
	buf.Write(pad4(name))
	buf.Write(pad4(desc))
	return buf.Bytes()
}

func pad4(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func sectionNames(sections []section) []byte {
	names := &bytes.Buffer{}
	names.WriteByte(0)
	for i, sec := range sections {
		if i == 0 {
			continue
		}
		names.WriteString(sec.name)
		names.WriteByte(0)
	}
	return names.Bytes()
}
