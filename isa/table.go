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

package isa

import (
	"fmt"

	"github.com/gx-org/comgr/action"
	"github.com/gx-org/comgr/object"
)

// tableLib describes one default device library of an ISA before the
// catalog is built. A library with no languages is language independent;
// otherwise it serves exactly the listed languages.
type tableLib struct {
	kind      object.Kind
	languages []action.Language
	name      string
	bytes     []byte
}

// tableEntry describes one supported ISA before the catalog is built.
type tableEntry struct {
	name string
	doc  string
	libs []tableLib

	entry entry
}

// bcBlob returns a bitcode wrapper blob carrying a marker. Device libraries
// are opaque to the engine: only the toolchain interprets their content.
func bcBlob(marker string) []byte {
	return append([]byte{'B', 'C', 0xc0, 0xde}, marker...)
}

func isaDoc(processor string, version int, xnack bool) string {
	supported := "0"
	if xnack {
		supported = "1"
	}
	return fmt.Sprintf(`Name: amdgcn-amd-amdhsa--%s
Architecture: amdgcn
Vendor: amd
OS: amdhsa
Processor: %s
Version: "%d"
XNACKSupported: "%s"
AddressableNumVGPRs: "256"
AddressableNumSGPRs: "102"
LDSBankCount: "32"
EUsPerCU: "4"
MaxWavesPerCU: "40"
MaxFlatWorkGroupSize: "1024"
`, processor, processor, version, supported)
}

func defaultLibs(version int) []tableLib {
	opencl := []action.Language{action.LanguageOpenCL12, action.LanguageOpenCL20}
	return []tableLib{
		{kind: object.KindBitcode, name: "ocml.bc", bytes: bcBlob("ocml")},
		{kind: object.KindBitcode, name: "ockl.bc", bytes: bcBlob("ockl")},
		{kind: object.KindBitcode,
			name:  fmt.Sprintf("oclc_isa_version_%d.bc", version),
			bytes: bcBlob(fmt.Sprintf("oclc_isa_version_%d", version))},
		{kind: object.KindBitcode, languages: opencl, name: "opencl.bc", bytes: bcBlob("opencl")},
		{kind: object.KindBitcode, languages: []action.Language{action.LanguageHC}, name: "hc.bc", bytes: bcBlob("hc")},
	}
}

var table = []tableEntry{
	{
		name: "amdgcn-amd-amdhsa--gfx803",
		doc:  isaDoc("gfx803", 803, false),
		libs: defaultLibs(803),
	},
	{
		name: "amdgcn-amd-amdhsa--gfx900",
		doc:  isaDoc("gfx900", 900, true),
		libs: defaultLibs(900),
	},
	{
		name: "amdgcn-amd-amdhsa--gfx906",
		doc:  isaDoc("gfx906", 906, true),
		libs: defaultLibs(906),
	},
	{
		name: "amdgcn-amd-amdhsa--gfx908",
		doc:  isaDoc("gfx908", 908, true),
		libs: defaultLibs(908),
	},
	{
		name: "amdgcn-amd-amdhsa--gfx1010",
		doc:  isaDoc("gfx1010", 1010, true),
		libs: defaultLibs(1010),
	},
	{
		name: "amdgcn-amd-amdhsa--gfx1030",
		doc:  isaDoc("gfx1030", 1030, false),
		libs: defaultLibs(1030),
	},
}
