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

package comgr

import (
	"github.com/gx-org/comgr/action"
	"github.com/gx-org/comgr/handle"
	"github.com/gx-org/comgr/isa"
	"github.com/gx-org/comgr/status"
)

func resolveActionInfo(a ActionInfo) (*action.Info, error) {
	return resolve[*action.Info](uint64(a), "action info")
}

// CreateActionInfo creates an action info object with default values: no
// ISA name, no language, empty options, empty working directory, logging
// disabled.
func CreateActionInfo() (ActionInfo, error) {
	return ActionInfo(handle.Wrap(action.NewInfo())), nil
}

// DestroyActionInfo invalidates an action info handle.
func DestroyActionInfo(a ActionInfo) error {
	if _, err := resolveActionInfo(a); err != nil {
		return err
	}
	handle.Release(handle.Handle(a))
	return nil
}

// ActionInfoSetIsaName sets the ISA name of an action info object. The name
// must be one supported by the ISA catalog; an empty name clears it.
func ActionInfoSetIsaName(a ActionInfo, isaName string) error {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return err
	}
	if isaName != "" && !isa.Supported(isaName) {
		return status.InvalidArgumentf("unsupported isa name %q", isaName)
	}
	nfo.SetIsaName(isaName)
	return nil
}

// ActionInfoGetIsaName copies the NUL-terminated ISA name of an action info
// object following the two-call protocol. An unset ISA name is the empty
// string.
func ActionInfoGetIsaName(a ActionInfo, size *uint64, buf []byte) error {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return err
	}
	return fillString(nfo.IsaName(), size, buf)
}

// ActionInfoSetLanguage sets the source language of an action info object.
// LanguageNone clears it.
func ActionInfoSetLanguage(a ActionInfo, language action.Language) error {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return err
	}
	return nfo.SetLanguage(language)
}

// ActionInfoGetLanguage returns the source language of an action info
// object, LanguageNone when not set.
func ActionInfoGetLanguage(a ActionInfo) (action.Language, error) {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return action.LanguageNone, err
	}
	return nfo.Language(), nil
}

// ActionInfoSetOptions sets the option string of an action info object. An
// empty string clears it.
func ActionInfoSetOptions(a ActionInfo, options string) error {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return err
	}
	nfo.SetOptions(options)
	return nil
}

// ActionInfoGetOptions copies the NUL-terminated option string of an action
// info object following the two-call protocol.
func ActionInfoGetOptions(a ActionInfo, size *uint64, buf []byte) error {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return err
	}
	return fillString(nfo.Options(), size, buf)
}

// ActionInfoSetWorkingDirectoryPath sets the path against which relative
// source and include names are resolved. An empty path clears it.
func ActionInfoSetWorkingDirectoryPath(a ActionInfo, path string) error {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return err
	}
	nfo.SetWorkingDirectory(path)
	return nil
}

// ActionInfoGetWorkingDirectoryPath copies the NUL-terminated working
// directory path of an action info object following the two-call protocol.
func ActionInfoGetWorkingDirectoryPath(a ActionInfo, size *uint64, buf []byte) error {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return err
	}
	return fillString(nfo.WorkingDirectory(), size, buf)
}

// ActionInfoSetLogging enables or disables the log data object appended to
// the result set by DoAction.
func ActionInfoSetLogging(a ActionInfo, logging bool) error {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return err
	}
	nfo.SetLogging(logging)
	return nil
}

// ActionInfoGetLogging returns whether logging is enabled on an action info
// object.
func ActionInfoGetLogging(a ActionInfo) (bool, error) {
	nfo, err := resolveActionInfo(a)
	if err != nil {
		return false, err
	}
	return nfo.Logging(), nil
}
