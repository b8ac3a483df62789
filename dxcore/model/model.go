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

// Package model defines the contract that every dxcap value type MUST
// implement: capabilities, requirements, satisfaction statuses, versions and
// trace records.
//
// The contract is split into small interfaces (Validatable, Serializable,
// Loggable, Identifiable, ZeroCheckable) and combined into Model. Types that
// implement Model can be handled by the generic helpers of this package
// (ValidateAll, MustValidate, ToJSON, ToYAML, FromJSON, FromYAML, Equal),
// which are used by the metadata loaders and the trace sinks.
//
// dxcap value types are immutable once constructed. Concurrent reads are
// safe; the only mutating methods are the Unmarshal* methods, which callers
// MUST NOT invoke concurrently on the same receiver.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining the fundamental contracts required of
// dxcap value types.
//
// Implementations SHOULD add a compile-time assertion next to the type:
//
//	var _ model.Model = (*Capability)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable is implemented by types that check their own invariants.
//
// Validate MUST return nil if and only if every invariant holds, for example
// Requirement.Min <= Requirement.Max. It MUST be fast, deterministic and free
// of side effects; it MUST NOT perform I/O. Errors SHOULD be
// *errors.ValidationError values naming the offending field.
//
// Callers SHOULD validate at trust boundaries: after decoding metadata from
// files and before emitting values into reports.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants.
	Validate() error
}

// Serializable is implemented by types with JSON and YAML representations.
//
// Marshal methods MUST validate the receiver first and refuse to encode an
// invalid value. Unmarshal methods MUST validate what they decoded and
// return the validation error instead of leaving an invalid value behind.
// A value encoded in either format and decoded again MUST equal the
// original.
//
// Capability and requirement values serialize as their canonical text
// ("A5", "B(1-3)") so that manifests stay readable.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable is implemented by types with human-readable representations.
//
// String returns the full representation. Redacted returns a representation
// that is safe for production logs. dxcap values carry no secrets, so the
// two are identical for every type in this module, but both are kept so that
// host applications embedding dxcap values in richer types can rely on the
// same contract.
type Loggable interface {
	// Redacted returns a string representation safe for logging.
	Redacted() string

	// String returns a human-readable representation of the instance.
	String() string
}

// Identifiable is implemented by types that report a constant, CamelCase
// type name without a package prefix ("Capability", "Requirement").
//
// Type names appear in error messages (errors.ParseError.Type) and in the
// aggregated errors produced by ValidateAll. For component items the type
// name doubles as the variant half of the "<variant>-<version>" identity.
type Identifiable interface {
	// TypeName returns the canonical name of this type.
	TypeName() string
}

// ZeroCheckable is implemented by types that can report whether they hold
// no meaningful data.
//
// IsZero MUST be fast and side-effect free. A zero value usually fails
// Validate.
type ZeroCheckable interface {
	// IsZero reports whether this instance is in a zero or empty state.
	IsZero() bool
}

// Comparable is implemented by value types that support equality checks.
//
// Equal MUST be reflexive, symmetric and transitive, and MUST compare every
// semantically significant field.
type Comparable[T any] interface {
	// Equal reports whether this instance equals other.
	Equal(other T) bool
}
