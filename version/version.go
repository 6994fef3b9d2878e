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

// Package version reports the interface version of the library.
//
// An interface is backward compatible with an implementation of equal major
// version and greater than or equal minor version.
package version

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// Interface version of the library.
const (
	Major = 1
	Minor = 0
)

// Interface returns the (major, minor) version pair of the library.
func Interface() (major, minor uint64) {
	return Major, Minor
}

// Compatible reports whether a caller expecting the given interface version
// can use this library.
func Compatible(major, minor uint64) bool {
	return major == Major && minor <= Minor
}

// CompatibleString reports whether a caller expecting the interface version
// given as a semantic version string (for example "v1.0") can use this
// library. An invalid version string is never compatible.
func CompatibleString(v string) bool {
	if !semver.IsValid(v) {
		return false
	}
	current := fmt.Sprintf("v%d.%d", Major, Minor)
	if semver.Major(v) != semver.Major(current) {
		return false
	}
	return semver.Compare(semver.MajorMinor(v), current) <= 0
}
