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

// Package errors provides the error taxonomy shared by every dxcap package.
//
// dxcap has exactly two classes of failure, both caused by bad static
// metadata rather than by transient faults:
//
//   - ParseError
//     Returned when capability, requirement or enum text cannot be parsed.
//     The three parse failure classes are distinguishable with errors.Is
//     against ErrMalformedCapability, ErrMalformedRequirement and
//     ErrNonNumeric.
//
//   - ConfigurationError
//     Returned when a component cannot be constructed because its mandatory
//     metadata (the provided capability or the version) is missing or
//     unreadable, or when a manifest references an unknown component.
//     Every ConfigurationError matches ErrConfiguration.
//
// In addition the package carries the value-type contract errors used by the
// model packages:
//
//   - ValidationError, returned by Validate() methods.
//   - MarshalError, returned when an invalid value is serialized.
//   - UnmarshalError, returned when serialized data cannot be decoded.
//
// None of these errors is retryable. Callers SHOULD surface them to whoever
// supplied the offending metadata.
//
// # Usage
//
//	c, err := capability.ParseCapability("A")
//	if errors.Is(err, dxerrors.ErrMalformedCapability) {
//	    // spec too short
//	}
//
//	var perr *dxerrors.ParseError
//	if errors.As(err, &perr) {
//	    fmt.Println(perr.Type, perr.Value)
//	}
package errors

import (
	stderrors "errors"
	"strconv"
)

var (
	// ErrMalformedCapability matches every ParseError raised while parsing
	// capability text ("A5").
	ErrMalformedCapability = stderrors.New("malformed capability")

	// ErrMalformedRequirement matches every ParseError raised while parsing
	// requirement text ("A(1-10)").
	ErrMalformedRequirement = stderrors.New("malformed requirement")

	// ErrNonNumeric matches ParseErrors whose cause is a value or bound that
	// is not a base-10 integer.
	ErrNonNumeric = stderrors.New("non-numeric value")

	// ErrConfiguration matches every ConfigurationError.
	ErrConfiguration = stderrors.New("configuration error")

	// ErrUnknownVariant is the cause of a ConfigurationError raised when a
	// metadata source or manifest has no entry for the requested variant.
	ErrUnknownVariant = stderrors.New("unknown variant")
)

// ParseError is returned when parsing text into a dxcap value fails.
//
// Type identifies the logical type being parsed ("Capability",
// "Requirement", "Status"), Value holds the exact text that was rejected and
// Reason, when set, names the grammar rule that failed. Err carries the
// underlying cause, typically ErrNonNumeric wrapping a strconv error.
//
// A ParseError for Type "Capability" matches ErrMalformedCapability and one
// for Type "Requirement" matches ErrMalformedRequirement, independently of
// Err, so callers can branch on the class of input first and on the cause
// second.
type ParseError struct {
	// Type is the logical name of the type being parsed.
	Type string

	// Value is the invalid textual representation that was provided.
	Value string

	// Reason is a short description of the violated grammar rule. Empty for
	// simple enum parse failures.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface for ParseError.
//
// The format is:
//
//	"dxcap: invalid {Type} value: {Value}"
//	"dxcap: invalid {Type} value: {Value}: {Reason}"   (when Reason is set)
func (e *ParseError) Error() string {
	msg := "dxcap: invalid " + e.Type + " value: " + strconv.Quote(e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target names the input class of this error.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrMalformedCapability:
		return e.Type == "Capability"
	case ErrMalformedRequirement:
		return e.Type == "Requirement"
	}
	return false
}

// ConfigurationError is returned when a component cannot participate in the
// model because its static metadata is missing or unreadable.
//
// Variant names the component kind whose metadata is broken, Resource names
// the metadata entry ("version", "provides", "dependencies"), and Reason
// explains what is wrong with it. Err carries the underlying cause, for
// example an fs.ErrNotExist from the metadata store or a ParseError.
//
// ConfigurationErrors are construction-time failures. A component without a
// declared capability or version is never built.
type ConfigurationError struct {
	// Variant is the concrete component kind being configured.
	Variant string

	// Resource is the metadata entry that is missing or invalid.
	Resource string

	// Reason is a short human-readable explanation.
	Reason string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface for ConfigurationError.
//
// The format is:
//
//	"dxcap: {Variant}: {Resource}: {Reason}"
//	"dxcap: {Variant}: {Resource}: {Reason}: {Err}"   (when Err is set)
func (e *ConfigurationError) Error() string {
	msg := "dxcap: " + e.Variant + ": " + e.Resource + ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// MarshalError is returned when marshaling an enum-like value that does not
// correspond to a known constant.
//
// A MarshalError almost always indicates a programming error, such as a
// Status constructed by integer conversion.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that was rejected.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The format is:
//
//	"dxcap: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxcap: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when serialized data cannot be decoded into a
// dxcap value.
//
// Data holds the raw payload and is deliberately left out of Error() to keep
// log lines short; callers MAY log it separately.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The format is:
//
//	"dxcap: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "dxcap: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when a value violates one of its invariants.
//
// Field MAY be empty when the error applies to the whole value.
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	Field string

	// Reason is a short, human-readable explanation.
	Reason string

	// Value optionally contains the invalid value.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The format is:
//
//	"dxcap: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxcap: invalid {Type}: {Reason}"         (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxcap: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxcap: invalid " + e.Type + ": " + e.Reason
}
