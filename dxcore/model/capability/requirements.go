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
	"fmt"
	"strings"

	"dirpx.dev/dxcap/dxcore/model"
)

// Requirements is the ordered list of requirements declared by a component.
type Requirements []Requirement

// ParseRequirements parses a comma-separated list such as "A(1-10), B(3)".
// Entries are trimmed and empty entries are skipped, so "" yields an empty
// list. Parsing stops at the first malformed entry; the returned error wraps
// its *errors.ParseError with the entry's position.
func ParseRequirements(list string) (Requirements, error) {
	var out Requirements
	for i, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		r, err := ParseRequirement(entry)
		if err != nil {
			return nil, fmt.Errorf("requires[%d]: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// MustParseRequirements is like ParseRequirements but panics on error.
func MustParseRequirements(list string) Requirements {
	rs, err := ParseRequirements(list)
	if err != nil {
		panic(err)
	}
	return rs
}

// String renders the list as "[A(1-10), B(3)]"; an empty list is "[]".
func (rs Requirements) String() string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Validate validates every entry and aggregates the failures.
func (rs Requirements) Validate() error {
	ptrs := make([]*Requirement, len(rs))
	for i := range rs {
		ptrs[i] = &rs[i]
	}
	return model.ValidateAll(ptrs)
}

// MatchedBy reports whether some capability in caps matches r.
func (r Requirement) MatchedBy(caps []Capability) bool {
	for _, c := range caps {
		if r.Matches(c) {
			return true
		}
	}
	return false
}

// Unmatched returns the requirements of rs that no capability in caps
// matches, in declaration order. The result is nil when all are matched.
func (rs Requirements) Unmatched(caps []Capability) Requirements {
	var out Requirements
	for _, r := range rs {
		if !r.MatchedBy(caps) {
			out = append(out, r)
		}
	}
	return out
}
