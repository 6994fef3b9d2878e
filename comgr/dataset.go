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
	"github.com/gx-org/comgr/handle"
	"github.com/gx-org/comgr/object"
)

func resolveDataSet(ds DataSet) (*object.Set, error) {
	return resolve[*object.Set](uint64(ds), "data set")
}

// CreateDataSet creates an empty data set.
func CreateDataSet() (DataSet, error) {
	return DataSet(handle.Wrap(object.NewSet())), nil
}

// DestroyDataSet releases all members of a data set and invalidates its
// handle.
func DestroyDataSet(ds DataSet) error {
	s, err := resolveDataSet(ds)
	if err != nil {
		return err
	}
	handle.Release(handle.Handle(ds))
	s.Destroy()
	return nil
}

// DataSetAdd adds a data object to a data set and retains it. Adding an
// object already in the set leaves the set unchanged. The insertion order
// of distinct objects is preserved.
func DataSetAdd(ds DataSet, d Data) error {
	s, err := resolveDataSet(ds)
	if err != nil {
		return err
	}
	o, err := resolveData(d)
	if err != nil {
		return err
	}
	return s.Add(o)
}

// DataSetRemove releases and drops all members of the given kind from a
// data set. KindUndef removes all members.
func DataSetRemove(ds DataSet, kind object.Kind) error {
	s, err := resolveDataSet(ds)
	if err != nil {
		return err
	}
	return s.Remove(kind)
}

// ActionDataCount returns the number of members of the given kind in a data
// set.
func ActionDataCount(ds DataSet, kind object.Kind) (uint64, error) {
	s, err := resolveDataSet(ds)
	if err != nil {
		return 0, err
	}
	n, err := s.Count(kind)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// ActionDataGetData returns the member of the given kind at a zero-based
// insertion index. The returned handle holds a new reference to the object:
// the caller releases it with ReleaseData.
func ActionDataGetData(ds DataSet, kind object.Kind, index uint64) (Data, error) {
	s, err := resolveDataSet(ds)
	if err != nil {
		return 0, err
	}
	o, err := s.At(kind, int(index))
	if err != nil {
		return 0, err
	}
	o.Retain()
	return Data(handle.Wrap(o)), nil
}
