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

import (
	"github.com/gx-org/comgr/status"
)

// Info parameterizes one invocation of an action. A new info has no ISA
// name, no language, empty options, an empty working directory, and logging
// disabled.
//
// No cross-field validation happens when a field is set: which fields an
// action requires differs per action kind and is checked at dispatch.
type Info struct {
	isaName    string
	language   Language
	options    string
	workingDir string
	logging    bool
}

// NewInfo returns an action info with default values.
func NewInfo() *Info {
	return &Info{}
}

// SetIsaName sets the ISA name. An empty name clears it. Whether the name
// is a supported ISA is checked by the caller against the ISA registry.
func (nfo *Info) SetIsaName(name string) {
	nfo.isaName = name
}

// IsaName returns the ISA name, or the empty string if not set.
func (nfo *Info) IsaName() string {
	return nfo.isaName
}

// SetLanguage sets the source language. LanguageNone clears it.
func (nfo *Info) SetLanguage(l Language) error {
	if !l.Valid() {
		return status.InvalidArgumentf("invalid language %d", l)
	}
	nfo.language = l
	return nil
}

// Language returns the source language, LanguageNone if not set.
func (nfo *Info) Language() Language {
	return nfo.language
}

// SetOptions sets the option string passed to the toolchain.
func (nfo *Info) SetOptions(options string) {
	nfo.options = options
}

// Options returns the option string.
func (nfo *Info) Options() string {
	return nfo.options
}

// SetWorkingDirectory sets the path against which actions resolve relative
// source and include names. An empty path clears it.
func (nfo *Info) SetWorkingDirectory(path string) {
	nfo.workingDir = path
}

// WorkingDirectory returns the working directory path.
func (nfo *Info) WorkingDirectory() string {
	return nfo.workingDir
}

// SetLogging enables or disables the log data object appended by dispatch.
func (nfo *Info) SetLogging(enabled bool) {
	nfo.logging = enabled
}

// Logging returns whether logging is enabled.
func (nfo *Info) Logging() bool {
	return nfo.logging
}
