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

package capability

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Requirement states that a component needs, among the capabilities of its
// direct dependencies, a capability named Name whose value lies in the
// inclusive range [Min, Max].
//
// Requirements are immutable values obtained from ParseRequirement on the
// entries of a component's "requires" metadata. They serialize as their
// canonical text: "A(1-10)" for a range and the shorthand "A(5)" when Min
// equals Max.
//
// Invariant: Min <= Max. Name is never empty.
type Requirement struct {
	// Name is the required capability name.
	Name string

	// Min is the lowest acceptable capability value.
	Min int

	// Max is the highest acceptable capability value.
	Max int
}

// ParseRequirement parses "<name>(<min>-<max>)" or "<name>(<value>)" text
// into a Requirement.
//
// The name is everything before the first '(' and the range body is
// everything between the first '(' and the last ')'. If the body contains a
// '-' after its first character, it is split at the first such '-' into the
// minimum and maximum; otherwise the body is a single value used for both
// bounds. Text after the last ')' is ignored.
//
// Errors (all matching ErrMalformedRequirement):
//   - no '(' or no ')', or the last ')' precedes the first '('
//   - empty name
//   - a bound that is not a base-10 integer (also matches ErrNonNumeric)
//   - minimum greater than maximum
//
// Example:
//
//	r, _ := capability.ParseRequirement("A(1-10)") // {A 1 10}
//	r, _ = capability.ParseRequirement("B(3)")     // {B 3 3}
func ParseRequirement(spec string) (Requirement, error) {
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return Requirement{}, requirementError(spec, "missing '('", nil)
	}
	closing := strings.LastIndexByte(spec, ')')
	if closing < 0 {
		return Requirement{}, requirementError(spec, "missing ')'", nil)
	}
	if closing < open {
		return Requirement{}, requirementError(spec, "')' precedes '('", nil)
	}

	name := spec[:open]
	if name == "" {
		return Requirement{}, requirementError(spec, "missing capability name", nil)
	}

	body := spec[open+1 : closing]
	minText, maxText := body, body
	if dash := strings.IndexByte(body, '-'); dash > 0 {
		minText, maxText = body[:dash], body[dash+1:]
	}

	lo, err := strconv.Atoi(minText)
	if err != nil {
		return Requirement{}, requirementError(spec,
			fmt.Sprintf("minimum %q is not an integer", minText),
			fmt.Errorf("%w: %w", errors.ErrNonNumeric, err))
	}
	hi, err := strconv.Atoi(maxText)
	if err != nil {
		return Requirement{}, requirementError(spec,
			fmt.Sprintf("maximum %q is not an integer", maxText),
			fmt.Errorf("%w: %w", errors.ErrNonNumeric, err))
	}
	if lo > hi {
		return Requirement{}, requirementError(spec, fmt.Sprintf("minimum %d exceeds maximum %d", lo, hi), nil)
	}

	return Requirement{Name: name, Min: lo, Max: hi}, nil
}

func requirementError(spec, reason string, cause error) error {
	return &errors.ParseError{Type: "Requirement", Value: spec, Reason: reason, Err: cause}
}

// MustParseRequirement is like ParseRequirement but panics on error.
func MustParseRequirement(spec string) Requirement {
	r, err := ParseRequirement(spec)
	if err != nil {
		panic(err)
	}
	return r
}

// FormatRequirement renders r in canonical form. It is the inverse of
// ParseRequirement for canonical input.
func FormatRequirement(r Requirement) string {
	return r.String()
}

// Matches reports whether c satisfies r: same name and Min <= c.Value <= Max.
func (r Requirement) Matches(c Capability) bool {
	return r.Name == c.Name && r.Min <= c.Value && c.Value <= r.Max
}

// String returns the canonical text of the Requirement: "A(1-10)", or "A(5)"
// when Min equals Max.
func (r Requirement) String() string {
	if r.Min == r.Max {
		return r.Name + "(" + strconv.Itoa(r.Min) + ")"
	}
	return r.Name + "(" + strconv.Itoa(r.Min) + "-" + strconv.Itoa(r.Max) + ")"
}

// Redacted returns the same text as String.
func (r Requirement) Redacted() string {
	return r.String()
}

// TypeName returns "Requirement".
func (r Requirement) TypeName() string {
	return "Requirement"
}

// IsZero reports whether r is the zero Requirement.
func (r Requirement) IsZero() bool {
	return r.Name == "" && r.Min == 0 && r.Max == 0
}

// Equal reports whether r and other have the same name and bounds.
func (r Requirement) Equal(other Requirement) bool {
	return r.Name == other.Name && r.Min == other.Min && r.Max == other.Max
}

var _ model.Comparable[Requirement] = Requirement{}

// Validate checks that Name is set and Min does not exceed Max.
func (r Requirement) Validate() error {
	if r.Name == "" {
		return &errors.ValidationError{Type: "Requirement", Field: "Name", Reason: "must not be empty"}
	}
	if r.Min > r.Max {
		return &errors.ValidationError{
			Type:   "Requirement",
			Field:  "Min",
			Reason: fmt.Sprintf("must not exceed Max (%d)", r.Max),
			Value:  r.Min,
		}
	}
	return nil
}

// MarshalJSON encodes the Requirement as its canonical text.
func (r Requirement) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a JSON string through ParseRequirement.
func (r *Requirement) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Requirement", Data: data, Reason: err.Error()}
	}

	parsed, err := ParseRequirement(s)
	if err != nil {
		return err
	}

	*r = parsed
	return nil
}

// MarshalYAML encodes the Requirement as a YAML scalar.
func (r Requirement) MarshalYAML() (interface{}, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	return r.String(), nil
}

// UnmarshalYAML decodes a YAML scalar through ParseRequirement.
func (r *Requirement) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Requirement", Data: []byte(node.Value), Reason: err.Error()}
	}

	parsed, err := ParseRequirement(s)
	if err != nil {
		return err
	}

	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Requirement) MarshalText() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Requirement) UnmarshalText(text []byte) error {
	parsed, err := ParseRequirement(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

var _ model.Model = (*Requirement)(nil)
