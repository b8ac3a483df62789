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

// Package capability defines the two value types at the heart of dxcap and
// their textual grammar:
//
//   - Capability: "a component provides X at value V", written "<name><value>"
//     (for example "A5").
//   - Requirement: "a component needs capability X with a value in
//     [min,max]", written "<name>(<min>-<max>)" or "<name>(<value>)" (for
//     example "A(1-10)" or "A(5)").
//
// A Requirement matches a Capability iff the names are equal and the
// capability's value lies within the inclusive range.
//
// # Grammar limitations
//
// The grammar is deliberately small and these limitations are part of the
// contract:
//
//   - Capability names are exactly one character (one rune). "AB5" parses as
//     name "A" with the non-numeric remainder "B5" and is rejected.
//   - ParseRequirement splits on the FIRST '(' and the LAST ')'. A name that
//     itself contains parentheses is therefore split incorrectly, and any text
//     after the last ')' is ignored.
//   - A range is split on the first '-' that is not the leading character,
//     so "A(-5)" is the single value -5 while a range with a negative lower
//     bound ("A(-5--1)") cannot be expressed.
//
// All parse failures are *errors.ParseError values; use errors.Is with
// errors.ErrMalformedCapability, errors.ErrMalformedRequirement and
// errors.ErrNonNumeric to tell them apart.
package capability

import (
	"encoding/json"
	"fmt"
	"strconv"
	"unicode/utf8"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Capability is the single named, integer-valued property a component
// provides. Every component provides exactly one Capability.
//
// Capabilities are immutable values. They are normally obtained from
// ParseCapability on the "provides" metadata entry of a component and are
// serialized in JSON, YAML and TOML as their canonical text ("A5").
//
// The zero value is not a valid Capability.
type Capability struct {
	// Name is the one-character capability identifier.
	Name string

	// Value is the level at which the capability is provided.
	Value int
}

// ParseCapability parses "<name><value>" text into a Capability.
//
// The first rune of spec is the name and the remainder MUST be a base-10
// integer, optionally signed. spec MUST therefore be at least two runes long.
//
// Errors:
//   - spec shorter than two runes: ParseError matching ErrMalformedCapability.
//   - non-integer remainder: ParseError matching both ErrMalformedCapability
//     and ErrNonNumeric.
//
// Example:
//
//	c, err := capability.ParseCapability("A5")
//	// c == Capability{Name: "A", Value: 5}
func ParseCapability(spec string) (Capability, error) {
	_, size := utf8.DecodeRuneInString(spec)
	if size == 0 || size == len(spec) {
		return Capability{}, &errors.ParseError{
			Type:   "Capability",
			Value:  spec,
			Reason: "want a one-character name followed by an integer value",
		}
	}

	value, err := strconv.Atoi(spec[size:])
	if err != nil {
		return Capability{}, &errors.ParseError{
			Type:   "Capability",
			Value:  spec,
			Reason: fmt.Sprintf("value %q is not an integer", spec[size:]),
			Err:    fmt.Errorf("%w: %w", errors.ErrNonNumeric, err),
		}
	}

	return Capability{Name: spec[:size], Value: value}, nil
}

// MustParseCapability is like ParseCapability but panics on error. It is
// intended for static tables and tests.
func MustParseCapability(spec string) Capability {
	c, err := ParseCapability(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// FormatCapability renders c in its canonical "<name><value>" form. It is the
// inverse of ParseCapability for canonical input.
func FormatCapability(c Capability) string {
	return c.String()
}

// String returns the canonical text of the Capability, e.g. "A5".
func (c Capability) String() string {
	return c.Name + strconv.Itoa(c.Value)
}

// Redacted returns the same text as String; capabilities carry no sensitive
// data.
func (c Capability) Redacted() string {
	return c.String()
}

// TypeName returns "Capability".
func (c Capability) TypeName() string {
	return "Capability"
}

// IsZero reports whether c is the zero Capability.
func (c Capability) IsZero() bool {
	return c.Name == "" && c.Value == 0
}

// Equal reports whether c and other have the same name and value.
func (c Capability) Equal(other Capability) bool {
	return c.Name == other.Name && c.Value == other.Value
}

var _ model.Comparable[Capability] = Capability{}

// Validate checks that Name is exactly one rune, which is what the grammar
// can express.
func (c Capability) Validate() error {
	if utf8.RuneCountInString(c.Name) != 1 {
		return &errors.ValidationError{
			Type:   "Capability",
			Field:  "Name",
			Reason: "must be exactly one character",
			Value:  c.Name,
		}
	}
	return nil
}

// MarshalJSON encodes the Capability as its canonical text.
func (c Capability) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a JSON string through ParseCapability.
func (c *Capability) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Capability", Data: data, Reason: err.Error()}
	}

	parsed, err := ParseCapability(s)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

// MarshalYAML encodes the Capability as a YAML scalar holding its canonical
// text.
func (c Capability) MarshalYAML() (interface{}, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	return c.String(), nil
}

// UnmarshalYAML decodes a YAML scalar through ParseCapability.
func (c *Capability) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Capability", Data: []byte(node.Value), Reason: err.Error()}
	}

	parsed, err := ParseCapability(s)
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler, used by TOML manifests.
func (c Capability) MarshalText() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", c.TypeName(), err)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Capability) UnmarshalText(text []byte) error {
	parsed, err := ParseCapability(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var _ model.Model = (*Capability)(nil)
