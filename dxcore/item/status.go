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

package item

import (
	"encoding/json"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Status is the satisfaction verdict for a single item.
//
// Status is always derived from the current dependency graph by StatusOf or
// Evaluate; it is never stored on an item.
type Status int

const (
	// StatusNotSatisfied means at least one dependency is not satisfied or at
	// least one requirement is not matched by a direct dependency.
	StatusNotSatisfied Status = iota

	// StatusSatisfied means every dependency is satisfied and every
	// requirement is matched by the capability of some direct dependency.
	StatusSatisfied
)

// Textual forms of Status. These appear verbatim in trace output and
// reports, right after the item identity.
const (
	StatusNotSatisfiedStr = "is NOT satisfied"
	StatusSatisfiedStr    = "is satisfied"
)

// ParseStatus converts text into a Status.
//
// Besides the canonical forms it accepts the keywords "satisfied" and
// "unsatisfied" (any case), which are convenient in configuration and on the
// command line:
//
//	"is satisfied",     "satisfied",   "SATISFIED"   -> StatusSatisfied
//	"is NOT satisfied", "unsatisfied", "UNSATISFIED" -> StatusNotSatisfied
//
// Any other input yields a *errors.ParseError.
func ParseStatus(s string) (Status, error) {
	switch s {
	case StatusSatisfiedStr, "satisfied", "Satisfied", "SATISFIED":
		return StatusSatisfied, nil
	case StatusNotSatisfiedStr, "unsatisfied", "Unsatisfied", "UNSATISFIED":
		return StatusNotSatisfied, nil
	default:
		return StatusNotSatisfied, &errors.ParseError{Type: "Status", Value: s}
	}
}

// StatusFromBool maps true to StatusSatisfied and false to
// StatusNotSatisfied.
func StatusFromBool(ok bool) Status {
	if ok {
		return StatusSatisfied
	}
	return StatusNotSatisfied
}

// String returns "is satisfied" or "is NOT satisfied", or "unknown" for a
// value outside the defined constants.
func (s Status) String() string {
	switch s {
	case StatusNotSatisfied:
		return StatusNotSatisfiedStr
	case StatusSatisfied:
		return StatusSatisfiedStr
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined constants.
func (s Status) Valid() bool {
	return s == StatusNotSatisfied || s == StatusSatisfied
}

// Satisfied reports whether s is StatusSatisfied.
func (s Status) Satisfied() bool {
	return s == StatusSatisfied
}

// TypeName returns "Status".
func (s Status) TypeName() string {
	return "Status"
}

// Redacted returns the same text as String.
func (s Status) Redacted() string {
	return s.String()
}

// IsZero reports whether s is StatusNotSatisfied, the zero value. The zero
// value is a valid Status.
func (s Status) IsZero() bool {
	return s == StatusNotSatisfied
}

// Equal reports whether other is a Status or *Status holding the same value.
func (s Status) Equal(other any) bool {
	switch v := other.(type) {
	case Status:
		return s == v
	case *Status:
		return v != nil && s == *v
	default:
		return false
	}
}

// Validate returns a *errors.ValidationError for values outside the defined
// constants.
func (s Status) Validate() error {
	if !s.Valid() {
		return &errors.ValidationError{Type: "Status", Reason: "invalid Status value", Value: int(s)}
	}
	return nil
}

// MarshalJSON encodes s as its textual form.
func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Status", Value: int(s)}
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts any form ParseStatus accepts, or the numbers 0 and 1.
func (s *Status) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Status", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return &errors.UnmarshalError{Type: "Status", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseStatus(str)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Status", Data: data, Reason: err.Error()}
	}
	if !Status(i).Valid() {
		return &errors.UnmarshalError{Type: "Status", Data: data, Reason: "invalid numeric value"}
	}
	*s = Status(i)
	return nil
}

// MarshalYAML encodes s as its textual form.
func (s Status) MarshalYAML() (any, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Status", Value: int(s)}
	}
	return s.String(), nil
}

// UnmarshalYAML decodes a scalar through ParseStatus.
func (s *Status) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Status", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &errors.MarshalError{Type: "Status", Value: int(s)}
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

var _ model.Model = (*Status)(nil)
