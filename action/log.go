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
	"fmt"
	"strings"
)

// invocationLog accumulates a textual account of one dispatch. When logging
// is enabled on the action info, the rendered log is appended to the result
// set as a single log data object.
type invocationLog struct {
	b strings.Builder
}

func newInvocationLog(kind Kind, req *Request) *invocationLog {
	l := &invocationLog{}
	fmt.Fprintf(&l.b, "action: %v\n", kind)
	if req.IsaName != "" {
		fmt.Fprintf(&l.b, "isa: %s\n", req.IsaName)
	}
	if req.Language != LanguageNone {
		fmt.Fprintf(&l.b, "language: %v\n", req.Language)
	}
	if req.Options != "" {
		fmt.Fprintf(&l.b, "options: %s\n", req.Options)
	}
	if req.WorkingDirectory != "" {
		fmt.Fprintf(&l.b, "working directory: %s\n", req.WorkingDirectory)
	}
	return l
}

// item records the outcome of processing one input.
func (l *invocationLog) item(name string, res *Result, err error) {
	if name == "" {
		name = "<unnamed>"
	}
	if err != nil {
		fmt.Fprintf(&l.b, "%s: error: %v\n", name, err)
	} else {
		fmt.Fprintf(&l.b, "%s: ok\n", name)
	}
	if res != nil && res.Log != "" {
		l.b.WriteString(res.Log)
		if !strings.HasSuffix(res.Log, "\n") {
			l.b.WriteString("\n")
		}
	}
}

func (l *invocationLog) bytes() []byte {
	return []byte(l.b.String())
}
