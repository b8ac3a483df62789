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

package graph_test

import (
	"bytes"
	"testing"

	"dirpx.dev/dxcap/dxcore/graph"
	"dirpx.dev/dxcap/dxcore/item"
	"dirpx.dev/dxcap/dxcore/metadata"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestYAML = `
roots: [ItemX]
items:
  - variant: ItemX
    version: "1.0"
    provides: X1
    requires: C(1-5)
    dependencies: [ItemY]
  - variant: ItemY
    version: "1.0"
    provides: C2
`

const manifestTOML = `
roots = ["ItemX"]

[[items]]
variant = "ItemX"
version = "1.0"
provides = "X1"
requires = "C(1-5)"
dependencies = ["ItemY"]

[[items]]
variant = "ItemY"
version = "1.0"
provides = "C2"
`

const manifestJSON = `{
  "roots": ["ItemX"],
  "items": [
    {"variant": "ItemX", "version": "1.0", "provides": "X1", "requires": "C(1-5)", "dependencies": ["ItemY"]},
    {"variant": "ItemY", "version": "1.0", "provides": "C2"}
  ]
}`

func writeFiles(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

func build(t *testing.T, m graph.Manifest, opts ...graph.Option) *graph.Graph {
	t.Helper()

	g, err := graph.Build(m, opts...)
	require.NoError(t, err)
	require.NotNil(t, g)
	return g
}

func TestLoadManifest_Formats(t *testing.T) {
	fsys := writeFiles(t, map[string]string{
		"/m/dxcap.yaml": manifestYAML,
		"/m/dxcap.yml":  manifestYAML,
		"/m/dxcap.toml": manifestTOML,
		"/m/dxcap.json": manifestJSON,
	})

	var want graph.Manifest
	for _, path := range []string{"/m/dxcap.yaml", "/m/dxcap.yml", "/m/dxcap.toml", "/m/dxcap.json"} {
		t.Run(path, func(t *testing.T) {
			m, err := graph.LoadManifest(fsys, path)
			require.NoError(t, err)
			assert.Equal(t, []string{"ItemX"}, m.Roots)
			require.Len(t, m.Items, 2)
			assert.Equal(t, []string{"ItemY"}, m.Items[0].Dependencies)
			if want.IsZero() {
				want = m
			}
			assert.Equal(t, want, m)

			g := build(t, m)
			x, ok := g.Lookup("ItemX")
			require.True(t, ok)
			assert.True(t, item.Satisfied(x))
		})
	}
}

func TestLoadManifest_Errors(t *testing.T) {
	fsys := writeFiles(t, map[string]string{
		"/m/bad.yaml":   "items: [",
		"/m/dup.json":   `{"items": [{"variant": "A"}, {"variant": "A"}]}`,
		"/m/root.toml":  "roots = [\"Z\"]\n[[items]]\nvariant = \"A\"\n",
		"/m/dxcap.ini":  "",
		"/m/empty.yaml": "",
	})

	tests := []struct {
		path    string
		wantMsg string
	}{
		{"/m/bad.yaml", "/m/bad.yaml"},
		{"/m/dup.json", "duplicate variant"},
		{"/m/root.toml", "not declared in items"},
		{"/m/dxcap.ini", "unsupported manifest extension"},
		{"/m/missing.yaml", "cannot read manifest"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := graph.LoadManifest(fsys, tt.path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	m, err := graph.LoadManifest(fsys, "/m/empty.yaml")
	require.NoError(t, err)
	assert.True(t, m.IsZero())
}

func TestDecodeManifest_NullDocument(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{graph.FormatJSON, "null"},
		{graph.FormatYAML, "null"},
		{graph.FormatYAML, "~"},
	}
	for _, tt := range tests {
		t.Run(tt.format+" "+tt.data, func(t *testing.T) {
			var (
				m   graph.Manifest
				err error
			)
			require.NotPanics(t, func() { m, err = graph.DecodeManifest([]byte(tt.data), tt.format) })
			require.Error(t, err)
			assert.Contains(t, err.Error(), "document is null")
			assert.True(t, m.IsZero())
		})
	}

	fsys := writeFiles(t, map[string]string{"/m/null.yaml": "null\n"})
	_, err := graph.LoadManifest(fsys, "/m/null.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/m/null.yaml")
}

func TestFormatOf(t *testing.T) {
	tests := map[string]string{
		"a.yaml":      graph.FormatYAML,
		"a.YML":       graph.FormatYAML,
		"dir/a.toml":  graph.FormatTOML,
		"/abs/a.json": graph.FormatJSON,
	}
	for path, want := range tests {
		got, err := graph.FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := graph.FormatOf("manifest")
	assert.Error(t, err)
}

func TestManifest_Validate(t *testing.T) {
	m := graph.Manifest{
		Roots: []string{"Nope"},
		Items: []graph.Entry{
			{Variant: ""},
			{Variant: "A", Dependencies: []string{""}},
			{Variant: "A"},
		},
	}

	err := m.Validate()
	require.Error(t, err)
	for _, want := range []string{"Items[0].Variant", "Items[1].Dependencies[0]", "duplicate variant", "Roots[0]"} {
		assert.Contains(t, err.Error(), want)
	}

	_, err = graph.DecodeManifest([]byte("items: []"), "xml")
	assert.Error(t, err)
}

func TestManifest_Model(t *testing.T) {
	m := graph.ManifestFor([]string{"A", "B"})
	assert.Equal(t, "Manifest{2 items, roots []}", m.String())
	assert.Equal(t, m.String(), m.Redacted())
	assert.Equal(t, "Manifest", m.TypeName())
	assert.False(t, m.IsZero())
	assert.True(t, graph.Manifest{}.IsZero())
	assert.NoError(t, m.Validate())
}

func TestBuild_CatalogFallback(t *testing.T) {
	fsys := writeFiles(t, map[string]string{
		"/catalog/ItemC/version": "1.0\n",
		"/catalog/ItemC/capreq":  "provides=C1\nrequires=D(1-3), E(3)\n",
		"/catalog/ItemD/version": "1.0\n",
		"/catalog/ItemD/capreq":  "provides=D2\n",
		"/catalog/ItemE/version": "1.0\n",
		"/catalog/ItemE/capreq":  "provides=E3\n",
	})

	m := graph.Manifest{Items: []graph.Entry{
		{Variant: "ItemC", Dependencies: []string{"ItemD", "ItemE"}},
		{Variant: "ItemD"},
		// Inline metadata wins over the catalog.
		{Variant: "ItemE", Version: "2.0", Provides: "E4"},
	}}

	g := build(t, m, graph.WithCatalog(metadata.NewFS(fsys, "/catalog")))
	assert.Equal(t, 3, g.Len())

	c, ok := g.Lookup("ItemC")
	require.True(t, ok)
	assert.Equal(t, "ItemC-1.0", c.String())
	assert.Equal(t, "[D(1-3), E(3)]", c.Requirements().String())
	assert.Equal(t, []string{"ItemD-1.0", "ItemE-2.0"}, item.Identities(c.Dependencies()))

	// E4 does not satisfy E(3).
	assert.False(t, item.Satisfied(c))
	res := item.Evaluate(c)
	assert.Equal(t, "[E(3)]", res.UnmatchedRequirements.String())

	assert.Equal(t, []string{"ItemC-1.0"}, item.Identities(g.Roots()))
	assert.Equal(t, []string{"ItemC-1.0", "ItemD-1.0", "ItemE-2.0"}, item.Identities(g.Items()))

	_, ok = g.Lookup("ItemZ")
	assert.False(t, ok)
}

func TestBuild_Errors(t *testing.T) {
	var logs bytes.Buffer
	logger := log.New(&logs)

	m := graph.Manifest{Items: []graph.Entry{
		{Variant: "A", Version: "1", Provides: "A1", Dependencies: []string{"Ghost", "B", "C"}},
		{Variant: "B", Version: "1"},
		{Variant: "C", Version: "1", Provides: "C1", Requires: "D(3-1)"},
	}}

	g, err := graph.Build(m, graph.WithLogger(logger))
	require.Error(t, err)
	assert.Nil(t, g)

	msg := err.Error()
	assert.Contains(t, msg, "undeclared dependency Ghost")
	assert.Contains(t, msg, "B: capreq")
	assert.Contains(t, msg, "C: requires")
	assert.Contains(t, logs.String(), "skipping item")
}

func TestBuild_InvalidManifest(t *testing.T) {
	_, err := graph.Build(graph.Manifest{Items: []graph.Entry{{Variant: "A"}, {Variant: "A"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate variant")
}

func TestBuild_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		requires string
		want     item.Status
		trace    string
	}{
		{
			name:     "satisfied",
			requires: "C(1-5)",
			want:     item.StatusSatisfied,
			trace:    "ItemY-1.0\nDependencies: []\nProvides: C2\nRequires: []\nis satisfied\n\n" + "ItemX-1.0\nDependencies: [ItemY-1.0]\nProvides: X1\nRequires: [C(1-5)]\nis satisfied\n\n",
		},
		{
			name:     "unsatisfied",
			requires: "C(6-10), D(3)",
			want:     item.StatusNotSatisfied,
			trace:    "ItemY-1.0\nDependencies: []\nProvides: C2\nRequires: []\nis satisfied\n\n" + "ItemX-1.0\nDependencies: [ItemY-1.0]\nProvides: X1\nRequires: [C(6-10), D(3)]\nis NOT satisfied\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, graph.Manifest{Items: []graph.Entry{
				{Variant: "ItemX", Version: "1.0", Provides: "X1", Requires: tt.requires, Dependencies: []string{"ItemY"}},
				{Variant: "ItemY", Version: "1.0", Provides: "C2"},
			}})

			x, _ := g.Lookup("ItemX")
			assert.Equal(t, tt.want, item.StatusOf(x))

			var out bytes.Buffer
			require.NoError(t, item.TraverseAll(g.Roots(), item.NewTextSink(&out)))
			assert.Equal(t, tt.trace, out.String())
		})
	}
}

func TestBuild_Cycles(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Level: log.DebugLevel})

	m := graph.Manifest{Items: []graph.Entry{
		{Variant: "A", Version: "1", Provides: "A1", Requires: "B(1)", Dependencies: []string{"B"}},
		{Variant: "B", Version: "1", Provides: "B1", Requires: "A(1)", Dependencies: []string{"A"}},
		{Variant: "S", Version: "1", Provides: "S1", Dependencies: []string{"S"}},
		{Variant: "T", Version: "1", Provides: "T1", Requires: "Z(1)", Dependencies: []string{"A"}},
	}}

	g := build(t, m, graph.WithLogger(logger))
	assert.Equal(t, [][]string{{"A", "B"}, {"S"}}, g.Cycles())
	assert.Contains(t, logs.String(), "dependency cycle")
	assert.Contains(t, logs.String(), "graph built")

	// T is the only non-depended node; S sits on its own cycle and is
	// added as a root because T cannot reach it.
	assert.Equal(t, []string{"T-1", "S-1"}, item.Identities(g.Roots()))

	a, _ := g.Lookup("A")
	assert.True(t, item.Satisfied(a))
	tNode, _ := g.Lookup("T")
	assert.False(t, item.Satisfied(tNode))

	var c item.Collector
	require.NoError(t, item.TraverseAll(g.Roots(), &c))
	assert.Equal(t, []string{"B-1", "A-1", "T-1", "S-1"}, c.Identities())
}

func TestBuild_AllOnCycle(t *testing.T) {
	g := build(t, graph.Manifest{Items: []graph.Entry{
		{Variant: "A", Version: "1", Provides: "A1", Dependencies: []string{"B"}},
		{Variant: "B", Version: "1", Provides: "B1", Dependencies: []string{"A"}},
	}})
	assert.Equal(t, []string{"A-1"}, item.Identities(g.Roots()))
}

func TestBuild_ExplicitRoots(t *testing.T) {
	g := build(t, graph.Manifest{
		Roots: []string{"Y", "X"},
		Items: []graph.Entry{
			{Variant: "X", Version: "1", Provides: "X1", Dependencies: []string{"Y"}},
			{Variant: "Y", Version: "1", Provides: "Y1"},
		},
	})
	assert.Equal(t, []string{"Y-1", "X-1"}, item.Identities(g.Roots()))
	assert.Empty(t, g.Cycles())
}

func TestBuild_StrictVersions(t *testing.T) {
	m := graph.Manifest{Items: []graph.Entry{
		{Variant: "A", Version: "1.0.0", Provides: "A1"},
		{Variant: "B", Version: "1.0", Provides: "B1"},
	}}

	build(t, m)

	_, err := graph.Build(m, graph.WithStrictVersions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "B: version: not a semantic version")
	assert.NotContains(t, err.Error(), "A: version")
}
