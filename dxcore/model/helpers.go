/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package model

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates every model in models and returns all failures
// combined into a single error, or nil when every model is valid.
//
// Each failure is wrapped with the model's position in the slice and its type
// name, e.g. "model[2] (Requirement): ...", so that a caller loading a list
// of requirements from metadata can point at the exact offending entry. The
// whole slice is always processed; validation never stops at the first
// failure. Empty and nil slices are valid.
//
// Example:
//
//	if err := model.ValidateAll(reqs); err != nil {
//	    return fmt.Errorf("requires: %w", err)
//	}
func ValidateAll[T Model](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// MustValidate returns m unchanged if it is valid and panics otherwise.
//
// MustValidate is meant for static tables and test fixtures where an invalid
// value is a programming error. It MUST NOT be used on metadata read at
// runtime.
func MustValidate[T Model](m T) T {
	if err := m.Validate(); err != nil {
		panic(fmt.Sprintf("model validation failed for %s: %v", m.TypeName(), err))
	}
	return m
}

// ToJSON validates m and encodes it as JSON.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and encodes it as YAML.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes data into m and validates the result. A "null" document
// that leaves a pointer model nil is rejected with a ValidationError.
func FromJSON[T Model](data []byte, m *T) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if isNil(*m) {
		return fmt.Errorf("unmarshaled model is invalid: %w", nullDocument(*m))
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML decodes data into m and validates the result. A null document
// ("null" or "~") that leaves a pointer model nil is rejected with a
// ValidationError.
func FromYAML[T Model](data []byte, m *T) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if isNil(*m) {
		return fmt.Errorf("unmarshaled model is invalid: %w", nullDocument(*m))
	}
	if err := (*m).Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// Equal reports whether a and b have identical JSON encodings.
//
// Two values that fail to encode are never equal. Types that implement
// Comparable SHOULD be compared with their own Equal method instead; this
// helper exists for generic code.
func Equal[T Model](a, b T) bool {
	dataA, errA := json.Marshal(a)
	dataB, errB := json.Marshal(b)

	if errA != nil || errB != nil {
		return false
	}

	return string(dataA) == string(dataB)
}

// isNil reports whether m is a nil pointer, which is what a null document
// decodes to.
func isNil[T Model](m T) bool {
	v := reflect.ValueOf(m)
	return !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil())
}

func nullDocument[T Model](m T) error {
	return &errors.ValidationError{
		Type:   strings.TrimPrefix(fmt.Sprintf("%T", m), "*"),
		Reason: "document is null",
	}
}
