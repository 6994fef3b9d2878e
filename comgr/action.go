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
)

// DoAction performs an action: it validates the action kind against the
// action info and the input set, invokes the registered toolchain on the
// qualifying input objects in insertion order, and appends the produced
// objects to the result set.
//
// Input objects of kinds the action does not use are ignored. The result
// set is only appended to, never cleared: callers reusing a result set
// across independent invocations clear it themselves. When logging is
// enabled on the info, exactly one log data object summarizing the
// invocation is appended; diagnostics produced by the toolchain are
// appended regardless. On a toolchain failure the call reports Error and
// outputs already produced remain in the result set.
func DoAction(kind action.Kind, info ActionInfo, input, result DataSet) error {
	nfo, err := resolveActionInfo(info)
	if err != nil {
		return err
	}
	in, err := resolveDataSet(input)
	if err != nil {
		return err
	}
	out, err := resolveDataSet(result)
	if err != nil {
		return err
	}
	return action.Dispatch(kind, nfo, in, out)
}
