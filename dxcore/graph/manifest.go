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

package graph

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/metadata"
	"dirpx.dev/dxcap/dxcore/model"
	"dirpx.dev/rxmerr"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Manifest formats accepted by DecodeManifest.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Entry declares one component of a manifest.
//
// Version, Provides and Requires are optional. When Provides is empty the
// capability metadata comes from the catalog passed to Build, and likewise
// for an empty Version.
type Entry struct {
	Variant      string   `json:"variant" yaml:"variant" toml:"variant"`
	Version      string   `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Provides     string   `json:"provides,omitempty" yaml:"provides,omitempty" toml:"provides,omitempty"`
	Requires     string   `json:"requires,omitempty" yaml:"requires,omitempty" toml:"requires,omitempty"`
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
}

// Manifest is the static declaration of a dependency graph: its components,
// the names of their direct dependencies, and optionally the roots to check.
//
//	roots: [ItemX]
//	items:
//	  - variant: ItemX
//	    version: "1.0"
//	    provides: X1
//	    requires: C(1-5)
//	    dependencies: [ItemY]
//	  - variant: ItemY
//	    version: "1.0"
//	    provides: C2
type Manifest struct {
	Roots []string `json:"roots,omitempty" yaml:"roots,omitempty" toml:"roots,omitempty"`
	Items []Entry  `json:"items" yaml:"items" toml:"items"`
}

// ManifestFor returns a manifest listing variants without dependencies.
func ManifestFor(variants []string) Manifest {
	m := Manifest{Items: make([]Entry, len(variants))}
	for i, v := range variants {
		m.Items[i] = Entry{Variant: v}
	}
	return m
}

// Validate checks that every entry has a unique, non-empty variant, that
// dependency names are non-empty, and that every root is declared. All
// failures are reported together.
func (m Manifest) Validate() error {
	c := rxmerr.NewCollector()
	seen := make(map[string]bool, len(m.Items))

	for i, e := range m.Items {
		switch {
		case e.Variant == "":
			c.Append(&errors.ValidationError{Type: "Manifest", Field: fmt.Sprintf("Items[%d].Variant", i), Reason: "must not be empty"})
		case seen[e.Variant]:
			c.Append(&errors.ValidationError{Type: "Manifest", Field: fmt.Sprintf("Items[%d].Variant", i), Reason: "duplicate variant", Value: e.Variant})
		}
		seen[e.Variant] = true

		for j, dep := range e.Dependencies {
			if dep == "" {
				c.Append(&errors.ValidationError{Type: "Manifest", Field: fmt.Sprintf("Items[%d].Dependencies[%d]", i, j), Reason: "must not be empty"})
			}
		}
	}

	for i, r := range m.Roots {
		if !seen[r] {
			c.Append(&errors.ValidationError{Type: "Manifest", Field: fmt.Sprintf("Roots[%d]", i), Reason: "not declared in items", Value: r})
		}
	}

	return c.Err()
}

// String returns a short summary, e.g. "Manifest{3 items, roots [ItemX]}".
func (m Manifest) String() string {
	return fmt.Sprintf("Manifest{%d items, roots [%s]}", len(m.Items), strings.Join(m.Roots, ", "))
}

// Redacted returns the same text as String.
func (m Manifest) Redacted() string {
	return m.String()
}

// TypeName returns "Manifest".
func (m Manifest) TypeName() string {
	return "Manifest"
}

// IsZero reports whether the manifest declares nothing.
func (m Manifest) IsZero() bool {
	return len(m.Items) == 0 && len(m.Roots) == 0
}

// Catalog exposes the inline metadata of the manifest entries. Entries
// without a version or provided capability are unknown to it for that
// resource, so a metadata.Chain falls through to the next catalog.
func (m Manifest) Catalog() metadata.Catalog {
	return entryCatalog(m.Items)
}

// MarshalJSON validates m and encodes it.
func (m Manifest) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	type alias Manifest
	return json.Marshal(alias(m))
}

// UnmarshalJSON decodes and validates a manifest.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	type alias Manifest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if err := Manifest(a).Validate(); err != nil {
		return err
	}
	*m = Manifest(a)
	return nil
}

// MarshalYAML validates m and encodes it.
func (m Manifest) MarshalYAML() (interface{}, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	type alias Manifest
	return alias(m), nil
}

// UnmarshalYAML decodes and validates a manifest.
func (m *Manifest) UnmarshalYAML(node *yaml.Node) error {
	type alias Manifest
	var a alias
	if err := node.Decode(&a); err != nil {
		return err
	}
	if err := Manifest(a).Validate(); err != nil {
		return err
	}
	*m = Manifest(a)
	return nil
}

var _ model.Model = (*Manifest)(nil)

// DecodeManifest decodes data in the given format and validates it.
func DecodeManifest(data []byte, format string) (Manifest, error) {
	m := new(Manifest)
	switch format {
	case FormatYAML:
		if err := model.FromYAML(data, &m); err != nil {
			return Manifest{}, err
		}
	case FormatJSON:
		if err := model.FromJSON(data, &m); err != nil {
			return Manifest{}, err
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, m); err != nil {
			return Manifest{}, fmt.Errorf("cannot unmarshal TOML: %w", err)
		}
		if err := m.Validate(); err != nil {
			return Manifest{}, fmt.Errorf("unmarshaled model is invalid: %w", err)
		}
	default:
		return Manifest{}, &errors.ParseError{Type: "Format", Value: format, Reason: "want yaml, toml or json"}
	}
	return *m, nil
}

// FormatOf maps a manifest file name to its format by extension.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", &errors.ParseError{Type: "Format", Value: filepath.Ext(path), Reason: "unsupported manifest extension"}
	}
}

// LoadManifest reads and decodes the manifest at path on fsys, choosing the
// format from the file extension.
func LoadManifest(fsys afero.Fs, path string) (Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Manifest{}, err
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Manifest{}, &errors.ConfigurationError{Variant: "*", Resource: path, Reason: "cannot read manifest", Err: err}
	}
	m, err := DecodeManifest(data, format)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

type entryCatalog []Entry

func (ec entryCatalog) find(variant string) (Entry, bool) {
	for _, e := range ec {
		if e.Variant == variant {
			return e, true
		}
	}
	return Entry{}, false
}

func (ec entryCatalog) Version(variant string) (string, error) {
	e, ok := ec.find(variant)
	if !ok || e.Version == "" {
		return "", &errors.ConfigurationError{Variant: variant, Resource: metadata.VersionFile, Reason: "not inline", Err: errors.ErrUnknownVariant}
	}
	return metadata.Inline{variant: {Version: e.Version}}.Version(variant)
}

func (ec entryCatalog) Metadata(variant string) (metadata.Declaration, error) {
	e, ok := ec.find(variant)
	if !ok || e.Provides == "" {
		return metadata.Declaration{}, &errors.ConfigurationError{Variant: variant, Resource: metadata.CapReqFile, Reason: "not inline", Err: errors.ErrUnknownVariant}
	}
	return metadata.Declaration{Provides: e.Provides, Requires: e.Requires}, nil
}
