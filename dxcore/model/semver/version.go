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

// Package semver offers a SemVer 2.0.0 view of component version strings.
//
// dxcap itself treats a component version as an opaque, non-empty string:
// it only ever appears in the "<variant>-<version>" identity. Catalogs that
// want stronger guarantees enable strict versions, in which case every
// version string read from metadata MUST parse with ParseVersion.
package semver

import (
	"encoding/json"
	"fmt"
	"strings"

	dxerrors "dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/model"
	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// Version is a parsed semantic version: Major.Minor.Patch[-Prerelease][+Metadata].
//
// Parsing and precedence are delegated to github.com/blang/semver/v4. The
// zero value is 0.0.0.
type Version struct {
	Major int
	Minor int
	Patch int

	// Prerelease holds the dot-separated identifiers after '-', e.g. "rc.1".
	Prerelease string

	// Metadata holds the dot-separated build identifiers after '+'. It does
	// not take part in precedence.
	Metadata string
}

// ParseVersion parses s as a SemVer 2.0.0 version. A leading "v" is
// tolerated and stripped.
//
//	ParseVersion("1.2.3")       // {1 2 3 "" ""}
//	ParseVersion("v2.0.0-rc.1") // {2 0 0 "rc.1" ""}
//
// On failure it returns a *errors.ParseError with Type "Version".
func ParseVersion(s string) (Version, error) {
	bv, err := bsemver.Parse(strings.TrimPrefix(s, "v"))
	if err != nil {
		return Version{}, &dxerrors.ParseError{Type: "Version", Value: s, Reason: "not a semantic version", Err: err}
	}
	return fromBlang(bv), nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical text without a "v" prefix.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

func (v Version) toBlang() (bsemver.Version, error) {
	return bsemver.Parse(v.String())
}

func fromBlang(bv bsemver.Version) Version {
	pre := make([]string, len(bv.Pre))
	for i, p := range bv.Pre {
		pre[i] = p.String()
	}
	return Version{
		Major:      int(bv.Major),
		Minor:      int(bv.Minor),
		Patch:      int(bv.Patch),
		Prerelease: strings.Join(pre, "."),
		Metadata:   strings.Join(bv.Build, "."),
	}
}

// Redacted returns the same text as String.
func (v Version) Redacted() string {
	return v.String()
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// IsZero reports whether v is exactly 0.0.0 without prerelease or metadata.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Validate checks that the numeric components are non-negative and that the
// prerelease and metadata identifiers are well-formed.
func (v Version) Validate() error {
	for _, c := range []struct {
		field string
		n     int
	}{{"Major", v.Major}, {"Minor", v.Minor}, {"Patch", v.Patch}} {
		if c.n < 0 {
			return &dxerrors.ValidationError{Type: "Version", Field: c.field, Reason: "must be non-negative", Value: c.n}
		}
	}
	if _, err := v.toBlang(); err != nil {
		return &dxerrors.ValidationError{Type: "Version", Reason: err.Error(), Value: v.String()}
	}
	return nil
}

// Equal reports whether v and other have the same SemVer precedence. Build
// metadata is ignored. Versions blang cannot represent are equal only when
// their numeric core and prerelease text match.
func (v Version) Equal(other Version) bool {
	a, errA := v.toBlang()
	b, errB := other.toBlang()
	if errA == nil && errB == nil {
		return a.Equals(b)
	}
	return v.Major == other.Major && v.Minor == other.Minor && v.Patch == other.Patch && v.Prerelease == other.Prerelease
}

var _ model.Comparable[Version] = Version{}

// MarshalJSON encodes v as a JSON string.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string through ParseVersion.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes v as a YAML scalar.
func (v Version) MarshalYAML() (interface{}, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML decodes a YAML scalar through ParseVersion.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &dxerrors.UnmarshalError{Type: "Version", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var _ model.Model = (*Version)(nil)
