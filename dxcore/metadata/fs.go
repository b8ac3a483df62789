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
	"bufio"
	"bytes"
	"path/filepath"
	"sort"
	"strings"

	"dirpx.dev/dxcap/dxcore/errors"
	"github.com/spf13/afero"
	"github.com/subosito/gotenv"
)

// Resource file names inside a variant directory.
const (
	VersionFile = "version"
	CapReqFile  = "capreq"
)

// FS reads metadata from a directory tree with one directory per variant:
//
//	<root>/<variant>/version   first line is the version
//	<root>/<variant>/capreq    provides=A5
//	                           requires=B(1-3), C(2)
//
// The capreq file uses KEY=value lines; '#' starts a comment and values may
// be quoted.
type FS struct {
	fs   afero.Fs
	root string
}

// NewFS returns a catalog rooted at root on fsys. A nil fsys means the
// operating system filesystem.
func NewFS(fsys afero.Fs, root string) *FS {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &FS{fs: fsys, root: root}
}

// Root returns the catalog root directory.
func (f *FS) Root() string {
	return f.root
}

// Variants lists the variant directories under the root in lexical order.
func (f *FS) Variants() ([]string, error) {
	infos, err := afero.ReadDir(f.fs, f.root)
	if err != nil {
		return nil, &errors.ConfigurationError{Variant: "*", Resource: f.root, Reason: "cannot list catalog", Err: err}
	}
	var out []string
	for _, info := range infos {
		if info.IsDir() {
			out = append(out, info.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// Version implements VersionProvider. It returns the first line of the
// variant's version file with surrounding whitespace removed.
func (f *FS) Version(variant string) (string, error) {
	data, err := f.read(variant, VersionFile)
	if err != nil {
		return "", err
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	line := ""
	if sc.Scan() {
		line = strings.TrimSpace(sc.Text())
	}
	if line == "" {
		return "", &errors.ConfigurationError{Variant: variant, Resource: VersionFile, Reason: "empty"}
	}
	return line, nil
}

// Metadata implements Source.
func (f *FS) Metadata(variant string) (Declaration, error) {
	data, err := f.read(variant, CapReqFile)
	if err != nil {
		return Declaration{}, err
	}

	env, err := gotenv.StrictParse(bytes.NewReader(data))
	if err != nil {
		return Declaration{}, &errors.ConfigurationError{Variant: variant, Resource: CapReqFile, Reason: "malformed", Err: err}
	}

	d := Declaration{
		Provides: strings.TrimSpace(env["provides"]),
		Requires: strings.TrimSpace(env["requires"]),
	}
	if d.Provides == "" {
		return Declaration{}, missingProvides(variant)
	}
	return d, nil
}

func (f *FS) read(variant, name string) ([]byte, error) {
	dir := filepath.Join(f.root, variant)
	if ok, _ := afero.DirExists(f.fs, dir); !ok {
		return nil, unknown(variant, name)
	}

	path := filepath.Join(dir, name)
	data, err := afero.ReadFile(f.fs, path)
	if err != nil {
		return nil, &errors.ConfigurationError{Variant: variant, Resource: name, Reason: "cannot read " + path, Err: err}
	}
	return data, nil
}
