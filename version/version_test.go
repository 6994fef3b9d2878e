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

package version_test

import (
	"testing"

	"github.com/gx-org/comgr/version"
)

func TestInterface(t *testing.T) {
	major, minor := version.Interface()
	if major != 1 || minor != 0 {
		t.Errorf("Interface() = (%d, %d) but want (1, 0)", major, minor)
	}
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		major, minor uint64
		want         bool
	}{
		{major: 1, minor: 0, want: true},
		{major: 1, minor: 1, want: false},
		{major: 0, minor: 0, want: false},
		{major: 2, minor: 0, want: false},
	}
	for _, test := range tests {
		if got := version.Compatible(test.major, test.minor); got != test.want {
			t.Errorf("Compatible(%d, %d) = %v but want %v", test.major, test.minor, got, test.want)
		}
	}
}

func TestCompatibleString(t *testing.T) {
	tests := []struct {
		v    string
		want bool
	}{
		{v: "v1.0", want: true},
		{v: "v1", want: true},
		{v: "v1.1", want: false},
		{v: "v2.0", want: false},
		{v: "v0.9", want: false},
		{v: "1.0", want: false},
		{v: "not a version", want: false},
		{v: "", want: false},
	}
	for _, test := range tests {
		if got := version.CompatibleString(test.v); got != test.want {
			t.Errorf("CompatibleString(%q) = %v but want %v", test.v, got, test.want)
		}
	}
}
