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

// Language identifies the source language of a compilation.
type Language int

const (
	// LanguageNone: no high level language.
	LanguageNone Language = iota
	// LanguageOpenCL12: OpenCL 1.2.
	LanguageOpenCL12
	// LanguageOpenCL20: OpenCL 2.0.
	LanguageOpenCL20
	// LanguageHC: heterogeneous C++.
	LanguageHC

	languageLast = LanguageHC
)

var languageNames = [...]string{
	LanguageNone:     "none",
	LanguageOpenCL12: "opencl1.2",
	LanguageOpenCL20: "opencl2.0",
	LanguageHC:       "hc",
}

// Valid reports whether l is a recognized language, including LanguageNone.
func (l Language) Valid() bool {
	return l >= LanguageNone && l <= languageLast
}

// String returns the name of the language.
func (l Language) String() string {
	if !l.Valid() {
		return "invalid"
	}
	return languageNames[l]
}
