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

package metadata

import (
	"strings"

	"dirpx.dev/dxcap/dxcore/errors"
)

// Entry is the inline metadata of one variant.
type Entry struct {
	Version     string `json:"version" yaml:"version" toml:"version"`
	Declaration `yaml:",inline"`
}

// Inline is an in-memory catalog keyed by variant.
type Inline map[string]Entry

// Version implements VersionProvider.
func (m Inline) Version(variant string) (string, error) {
	e, ok := m[variant]
	if !ok {
		return "", unknown(variant, VersionFile)
	}
	v := strings.TrimSpace(e.Version)
	if i := strings.IndexAny(v, "\r\n"); i >= 0 {
		v = strings.TrimSpace(v[:i])
	}
	if v == "" {
		return "", &errors.ConfigurationError{Variant: variant, Resource: VersionFile, Reason: "empty"}
	}
	return v, nil
}

// Metadata implements Source.
func (m Inline) Metadata(variant string) (Declaration, error) {
	e, ok := m[variant]
	if !ok {
		return Declaration{}, unknown(variant, CapReqFile)
	}
	d := Declaration{
		Provides: strings.TrimSpace(e.Provides),
		Requires: strings.TrimSpace(e.Requires),
	}
	if d.Provides == "" {
		return Declaration{}, missingProvides(variant)
	}
	return d, nil
}
