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
	"dirpx.dev/dxcap/dxcore/model/capability"
)

// Satisfied reports whether it and its whole dependency tree are
// consistent.
//
// Every dependency is evaluated, in declaration order and without
// short-circuiting, then every requirement is checked against the
// capabilities of the direct dependencies. The result is the conjunction of
// all of those checks.
func Satisfied(it Item) bool {
	return newEvaluator().satisfied(it)
}

// StatusOf returns the Status corresponding to Satisfied(it).
func StatusOf(it Item) Status {
	return StatusFromBool(Satisfied(it))
}

// Result explains the verdict for a single item.
type Result struct {
	// Identity of the evaluated item.
	Identity string

	// Status is StatusSatisfied iff both lists below are empty.
	Status Status

	// UnsatisfiedDependencies holds the identities of direct dependencies
	// that are not satisfied, in declaration order.
	UnsatisfiedDependencies []string

	// UnmatchedRequirements holds the requirements that no direct
	// dependency's capability matches, in declaration order.
	UnmatchedRequirements capability.Requirements
}

// Evaluate computes Satisfied(it) and reports which direct dependencies and
// which requirements caused a negative verdict.
func Evaluate(it Item) Result {
	e := newEvaluator()
	id := Identity(it)
	e.path[id] = true

	res := Result{Identity: id}
	deps := it.Dependencies()
	for _, d := range deps {
		if !e.satisfied(d) {
			res.UnsatisfiedDependencies = append(res.UnsatisfiedDependencies, Identity(d))
		}
	}
	res.UnmatchedRequirements = it.Requirements().Unmatched(capabilities(deps))
	res.Status = StatusFromBool(len(res.UnsatisfiedDependencies) == 0 && len(res.UnmatchedRequirements) == 0)
	return res
}

// evaluator tracks the identities on the current evaluation path.
type evaluator struct {
	path map[string]bool
}

func newEvaluator() *evaluator {
	return &evaluator{path: make(map[string]bool)}
}

func (e *evaluator) satisfied(it Item) bool {
	id := Identity(it)
	if e.path[id] {
		// back edge of a cycle
		return true
	}
	e.path[id] = true
	defer delete(e.path, id)

	ok := true
	deps := it.Dependencies()
	for _, d := range deps {
		if !e.satisfied(d) {
			ok = false
		}
	}

	caps := capabilities(deps)
	for _, r := range it.Requirements() {
		if !r.MatchedBy(caps) {
			ok = false
		}
	}
	return ok
}

func capabilities(deps []Item) []capability.Capability {
	caps := make([]capability.Capability, len(deps))
	for i, d := range deps {
		caps[i] = d.Capability()
	}
	return caps
}
