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

// Package item evaluates whether a component's dependency tree is
// internally consistent.
//
// Every component (an Item) provides exactly one capability, may declare
// requirements, and lists its dependencies. An item is satisfied when all of
// its dependencies are satisfied and every one of its requirements is matched
// by the capability of at least one DIRECT dependency. Capabilities of
// transitive dependencies never count.
//
// Satisfaction is recomputed on every call; nothing is cached on the item.
// Evaluation terminates on cyclic declarations: an item that is already
// being evaluated further up the current path counts as satisfied for the
// back edge, while its own requirements are still checked in its own frame.
//
// Traverse walks a tree in post-order and hands one Record per distinct item
// to a Sink. Sinks in this package render records as the classic text block,
// as JSON lines or as YAML documents, or simply collect them.
//
// Graphs are treated as read-only for the duration of a call. The package
// performs no locking and no I/O beyond what a Sink does.
package item

import (
	"fmt"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/metadata"
	"dirpx.dev/dxcap/dxcore/model/capability"
)

// Item is a component in a dependency graph.
type Item interface {
	// Variant is the kind of component, e.g. "ItemA".
	Variant() string

	// Version is the component's version string.
	Version() string

	// Capability is the single capability the component provides.
	Capability() capability.Capability

	// Requirements lists what the component needs from its direct
	// dependencies. It may be empty.
	Requirements() capability.Requirements

	// Dependencies lists the component's direct dependencies in
	// declaration order.
	Dependencies() []Item
}

// Identity returns "<variant>-<version>", the key under which it is
// deduplicated during traversal and shown in reports.
func Identity(it Item) string {
	return it.Variant() + "-" + it.Version()
}

// Identities returns the identities of items in order.
func Identities(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = Identity(it)
	}
	return out
}

// Descriptor is the parsed metadata of one variant.
type Descriptor struct {
	Variant  string
	Version  string
	Provides capability.Capability
	Requires capability.Requirements
}

// Describe reads the version and declaration of variant from the two
// collaborators and parses them.
//
// It fails fast with the collaborator's *errors.ConfigurationError, with a
// ConfigurationError when the declaration has no provided capability, or
// with the *errors.ParseError of the first malformed capability or
// requirement list.
func Describe(variant string, versions metadata.VersionProvider, source metadata.Source) (Descriptor, error) {
	version, err := versions.Version(variant)
	if err != nil {
		return Descriptor{}, err
	}
	if version == "" {
		return Descriptor{}, &errors.ConfigurationError{Variant: variant, Resource: "version", Reason: "empty"}
	}

	decl, err := source.Metadata(variant)
	if err != nil {
		return Descriptor{}, err
	}
	if decl.Provides == "" {
		return Descriptor{}, &errors.ConfigurationError{Variant: variant, Resource: "provides", Reason: "missing"}
	}

	provides, err := capability.ParseCapability(decl.Provides)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: provides: %w", variant, err)
	}
	requires, err := capability.ParseRequirements(decl.Requires)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: requires: %w", variant, err)
	}

	return Descriptor{Variant: variant, Version: version, Provides: provides, Requires: requires}, nil
}

// Component is the Item implementation backed by a Descriptor and a fixed
// list of dependencies.
type Component struct {
	desc Descriptor
	deps []Item
}

// NewComponent describes variant through versions and source and returns a
// Component depending on deps. See Describe for the failure modes.
func NewComponent(variant string, versions metadata.VersionProvider, source metadata.Source, deps ...Item) (*Component, error) {
	desc, err := Describe(variant, versions, source)
	if err != nil {
		return nil, err
	}
	return New(desc, deps...), nil
}

// New returns a Component for an already parsed descriptor.
func New(desc Descriptor, deps ...Item) *Component {
	return &Component{desc: desc, deps: deps}
}

// Variant implements Item.
func (c *Component) Variant() string { return c.desc.Variant }

// Version implements Item.
func (c *Component) Version() string { return c.desc.Version }

// Capability implements Item.
func (c *Component) Capability() capability.Capability { return c.desc.Provides }

// Requirements implements Item.
func (c *Component) Requirements() capability.Requirements { return c.desc.Requires }

// Dependencies implements Item.
func (c *Component) Dependencies() []Item { return c.deps }

// String returns the identity.
func (c *Component) String() string { return Identity(c) }

var _ Item = (*Component)(nil)
