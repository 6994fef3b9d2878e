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

package metadata

import (
	"fmt"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/gx-org/comgr/base/ordered"
	"github.com/gx-org/comgr/status"
)

// FromYAML builds a metadata tree from a YAML document. Scalars become
// string nodes. Map entries keep the order of the document. An empty
// document yields the null node.
func FromYAML(doc []byte) (*Node, error) {
	if len(doc) == 0 {
		return Null(), nil
	}
	// yaml.MapSlice keeps the key order of mapping documents. Documents
	// whose top value is not a mapping are decoded generically.
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(doc, &ms); err == nil {
		if len(ms) == 0 {
			return Null(), nil
		}
		return convert(ms)
	}
	var v any
	if err := yaml.Unmarshal(doc, &v); err != nil {
		return nil, errors.Wrapf(status.Error, "cannot parse metadata document: %v", err)
	}
	return convert(v)
}

func convert(v any) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case yaml.MapSlice:
		m := ordered.NewMap[string, *Node]()
		for _, item := range val {
			child, err := convert(item.Value)
			if err != nil {
				return nil, err
			}
			m.Store(scalar(item.Key), child)
		}
		return newMap(m), nil
	case map[any]any:
		m := ordered.NewMap[string, *Node]()
		for k, item := range val {
			child, err := convert(item)
			if err != nil {
				return nil, err
			}
			m.Store(scalar(k), child)
		}
		return newMap(m), nil
	case []any:
		list := make([]*Node, len(val))
		for i, item := range val {
			child, err := convert(item)
			if err != nil {
				return nil, err
			}
			list[i] = child
		}
		return newList(list), nil
	default:
		return newString(scalar(val)), nil
	}
}

// scalar renders a YAML scalar as the string exposed by the tree.
func scalar(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
