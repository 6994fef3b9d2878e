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

// Package status defines the status taxonomy shared by all comgr operations.
//
// Every failure returned by the engine wraps one of the sentinel statuses so
// that callers can classify it with errors.Is or FromError.
package status

import (
	"github.com/pkg/errors"
)

// Status is a code classifying the outcome of an operation.
type Status int

const (
	// Success: the operation has been executed successfully.
	Success Status = iota
	// Error: a well-formed request failed for domain reasons.
	Error
	// InvalidArgument: an actual argument does not meet a precondition.
	InvalidArgument
	// OutOfResources: the engine failed to allocate a necessary resource.
	OutOfResources
)

var descriptions = map[Status]string{
	Success:         "the operation has been executed successfully",
	Error:           "a generic error has occurred",
	InvalidArgument: "an argument does not meet a precondition",
	OutOfResources:  "failed to allocate the necessary resources",
}

// String returns a human-readable description of the status.
func (s Status) String() string {
	desc, ok := descriptions[s]
	if !ok {
		return "unknown status"
	}
	return desc
}

// Error makes a status usable as an error sentinel.
func (s Status) Error() string {
	return s.String()
}

// Errorf returns an error classified as Error.
func Errorf(format string, args ...any) error {
	return errors.Wrapf(Error, format, args...)
}

// InvalidArgumentf returns an error classified as InvalidArgument.
func InvalidArgumentf(format string, args ...any) error {
	return errors.Wrapf(InvalidArgument, format, args...)
}

// OutOfResourcesf returns an error classified as OutOfResources.
func OutOfResourcesf(format string, args ...any) error {
	return errors.Wrapf(OutOfResources, format, args...)
}

// WrapError classifies err as Error, keeping its message.
func WrapError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(Error, "%s", err.Error())
}

// FromError maps an error returned by the engine to its status code.
// A nil error maps to Success. An error that wraps no sentinel maps to Error.
func FromError(err error) Status {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, InvalidArgument):
		return InvalidArgument
	case errors.Is(err, OutOfResources):
		return OutOfResources
	default:
		return Error
	}
}
