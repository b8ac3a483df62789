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
	"fmt"
	"strings"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/model"
	"dirpx.dev/dxcap/dxcore/model/capability"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// Record is the trace entry emitted for one item by Traverse.
type Record struct {
	// Identity is "<variant>-<version>".
	Identity string `json:"identity" yaml:"identity"`

	// Dependencies holds the identities of the direct dependencies.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`

	// Provides is the item's capability.
	Provides capability.Capability `json:"provides" yaml:"provides"`

	// Requires lists the item's requirements.
	Requires capability.Requirements `json:"requires" yaml:"requires"`

	// Status is the item's satisfaction verdict at emission time.
	Status Status `json:"status" yaml:"status"`
}

// NewRecord snapshots it, computing its status.
func NewRecord(it Item) Record {
	reqs := it.Requirements()
	if reqs == nil {
		reqs = capability.Requirements{}
	}
	return Record{
		Identity:     Identity(it),
		Dependencies: Identities(it.Dependencies()),
		Provides:     it.Capability(),
		Requires:     reqs,
		Status:       StatusOf(it),
	}
}

// Text renders the record as the classic trace block: identity,
// dependencies, provided capability, requirements and status on separate
// lines, followed by an empty line.
func (r Record) Text() string {
	var b strings.Builder
	b.WriteString(r.Identity + "\n")
	b.WriteString("Dependencies: [" + strings.Join(r.Dependencies, ", ") + "]\n")
	b.WriteString("Provides: " + r.Provides.String() + "\n")
	b.WriteString("Requires: " + r.Requires.String() + "\n")
	b.WriteString(r.Status.String() + "\n")
	b.WriteString("\n")
	return b.String()
}

// String returns "<identity> <status>", e.g. "ItemA-1.0 is satisfied".
func (r Record) String() string {
	return r.Identity + " " + r.Status.String()
}

// Redacted returns the same text as String.
func (r Record) Redacted() string {
	return r.String()
}

// TypeName returns "Record".
func (r Record) TypeName() string {
	return "Record"
}

// IsZero reports whether r carries no data.
func (r Record) IsZero() bool {
	return r.Identity == "" && len(r.Dependencies) == 0 && r.Provides.IsZero() &&
		len(r.Requires) == 0 && r.Status.IsZero()
}

// Validate checks every field and reports all failures together.
func (r Record) Validate() error {
	c := rxmerr.NewCollector()

	if r.Identity == "" {
		c.Append(&errors.ValidationError{Type: "Record", Field: "Identity", Reason: "must not be empty"})
	}
	for i, dep := range r.Dependencies {
		if dep == "" {
			c.Append(&errors.ValidationError{
				Type:   "Record",
				Field:  fmt.Sprintf("Dependencies[%d]", i),
				Reason: "must not be empty",
			})
		}
	}
	if err := r.Provides.Validate(); err != nil {
		c.Append(err)
	}
	if err := r.Requires.Validate(); err != nil {
		c.Append(err)
	}
	if err := r.Status.Validate(); err != nil {
		c.Append(err)
	}

	return c.Err()
}

// MarshalJSON validates r and encodes it as a JSON object.
func (r Record) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	type alias Record
	return json.Marshal(alias(r))
}

// UnmarshalJSON decodes a JSON object and validates the result.
func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if err := Record(a).Validate(); err != nil {
		return err
	}
	*r = Record(a)
	return nil
}

// MarshalYAML validates r and encodes it as a YAML mapping.
func (r Record) MarshalYAML() (interface{}, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	type alias Record
	return alias(r), nil
}

// UnmarshalYAML decodes a YAML mapping and validates the result.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	type alias Record
	var a alias
	if err := node.Decode(&a); err != nil {
		return err
	}
	if err := Record(a).Validate(); err != nil {
		return err
	}
	*r = Record(a)
	return nil
}

var _ model.Model = (*Record)(nil)
