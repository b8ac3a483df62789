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

// Package metadata supplies the per-variant facts a component is built from:
// its version string and its raw capability/requirement declaration.
//
// Two contracts are consumed by the item package, VersionProvider and Source.
// This package ships a filesystem catalog (FS), an in-memory catalog
// (Inline), a fallback combinator (Chain) and a SemVer guard (Strict).
//
// Failures are always *errors.ConfigurationError values. A catalog that has
// no entry at all for a variant reports errors.ErrUnknownVariant as the
// cause, which is what Chain uses to fall through to the next catalog.
package metadata

import (
	stderrors "errors"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/model/semver"
)

// Declaration is the raw capability metadata of one variant.
type Declaration struct {
	// Provides is the capability text, e.g. "A5". Mandatory.
	Provides string `json:"provides" yaml:"provides" toml:"provides"`

	// Requires is a comma-separated requirement list, e.g.
	// "A(1-10), B(3)". Empty when the variant requires nothing.
	Requires string `json:"requires,omitempty" yaml:"requires,omitempty" toml:"requires,omitempty"`
}

// VersionProvider returns the version string of a variant.
//
// Version MUST return a single-line, non-empty string or a
// *errors.ConfigurationError.
type VersionProvider interface {
	Version(variant string) (string, error)
}

// Source returns the capability declaration of a variant.
//
// Metadata MUST return a Declaration with a non-empty Provides or a
// *errors.ConfigurationError.
type Source interface {
	Metadata(variant string) (Declaration, error)
}

// Catalog is a VersionProvider and a Source in one.
type Catalog interface {
	VersionProvider
	Source
}

// Chain consults its catalogs in order. The first catalog that knows a
// variant answers for it; any error other than an unknown variant stops the
// lookup.
type Chain []Catalog

// Version implements VersionProvider.
func (c Chain) Version(variant string) (string, error) {
	for _, cat := range c {
		v, err := cat.Version(variant)
		if stderrors.Is(err, errors.ErrUnknownVariant) {
			continue
		}
		return v, err
	}
	return "", unknown(variant, "version")
}

// Metadata implements Source.
func (c Chain) Metadata(variant string) (Declaration, error) {
	for _, cat := range c {
		d, err := cat.Metadata(variant)
		if stderrors.Is(err, errors.ErrUnknownVariant) {
			continue
		}
		return d, err
	}
	return Declaration{}, unknown(variant, "capreq")
}

// Strict wraps a catalog so that every version it returns must be a valid
// semantic version. Versions are returned in canonical form, so "v1.2.3"
// becomes "1.2.3".
func Strict(c Catalog) Catalog {
	return strict{c}
}

type strict struct {
	Catalog
}

func (s strict) Version(variant string) (string, error) {
	v, err := s.Catalog.Version(variant)
	if err != nil {
		return "", err
	}
	parsed, err := semver.ParseVersion(v)
	if err != nil {
		return "", &errors.ConfigurationError{
			Variant:  variant,
			Resource: "version",
			Reason:   "not a semantic version",
			Err:      err,
		}
	}
	return parsed.String(), nil
}

func unknown(variant, resource string) error {
	return &errors.ConfigurationError{
		Variant:  variant,
		Resource: resource,
		Reason:   "no metadata",
		Err:      errors.ErrUnknownVariant,
	}
}

func missingProvides(variant string) error {
	return &errors.ConfigurationError{Variant: variant, Resource: "provides", Reason: "missing"}
}
