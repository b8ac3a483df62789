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

package config_test

import (
	"testing"

	"dirpx.dev/dxcap/internal/config"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.NewLoader().WithFs(afero.NewMemMapFs()).Load()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoad_SearchPaths(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "/etc/dxcap/dxcap.yaml", "catalog:\n  root: /srv/catalog\n  manifest: /srv/manifest.toml\noutput:\n  format: json\n  log_level: debug\nversions:\n  strict: true\n"},
		{"toml", "/etc/dxcap/dxcap.toml", "[catalog]\nroot = \"/srv/catalog\"\nmanifest = \"/srv/manifest.toml\"\n[output]\nformat = \"json\"\nlog_level = \"debug\"\n[versions]\nstrict = true\n"},
		{"json", "/etc/dxcap/dxcap.json", `{"catalog": {"root": "/srv/catalog", "manifest": "/srv/manifest.toml"}, "output": {"format": "JSON", "log_level": "debug"}, "versions": {"strict": true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fsys, tt.file, []byte(tt.content), 0o644))

			l := config.NewLoader().WithFs(fsys).WithSearchPaths("/etc/dxcap")
			cfg, err := l.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.file, l.ConfigFileUsed())
			assert.Equal(t, "/srv/catalog", cfg.Catalog.Root)
			assert.Equal(t, "/srv/manifest.toml", cfg.Catalog.Manifest)
			assert.Equal(t, "json", cfg.Output.Format)
			assert.Equal(t, "debug", cfg.Output.LogLevel)
			assert.True(t, cfg.Versions.Strict)
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/cfg/custom.yml", []byte("output:\n  format: yaml\n"), 0o644))

	cfg, err := config.NewLoader().WithFs(fsys).WithConfigPath("/cfg/custom.yml").Load()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "catalog", cfg.Catalog.Root)

	_, err = config.NewLoader().WithFs(fsys).WithConfigPath("/cfg/missing.yml").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/cfg/missing.yml")
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DXCAP_OUTPUT_FORMAT", "yaml")
	t.Setenv("DXCAP_CATALOG_MANIFEST", "/env/manifest.json")
	t.Setenv("DXCAP_VERSIONS_STRICT", "true")

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "dxcap.yaml", []byte("output:\n  format: json\n"), 0o644))

	cfg, err := config.NewLoader().WithFs(fsys).Load()
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Equal(t, "/env/manifest.json", cfg.Catalog.Manifest)
	assert.True(t, cfg.Versions.Strict)
}

func TestLoad_FlagOverride(t *testing.T) {
	t.Setenv("DXCAP_OUTPUT_FORMAT", "yaml")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("format", "text", "")
	require.NoError(t, flags.Parse([]string{"--format", "json"}))

	l := config.NewLoader().WithFs(afero.NewMemMapFs())
	require.NoError(t, l.BindFlag("output.format", flags.Lookup("format")))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_Invalid(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "dxcap.yaml", []byte("output:\n  format: xml\n  log_level: loud\n"), 0o644))

	_, err := config.NewLoader().WithFs(fsys).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")
	assert.Contains(t, err.Error(), "output.log_level")
}

func TestValidate(t *testing.T) {
	assert.NoError(t, config.Validate(config.DefaultConfig()))
	assert.Error(t, config.Validate(nil))

	cfg := config.DefaultConfig()
	cfg.Catalog.Root = ""
	err := config.Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root or manifest must be set")

	cfg.Catalog.Manifest = "manifest.yaml"
	assert.NoError(t, config.Validate(cfg))

	for _, level := range config.LogLevels {
		cfg.Output.LogLevel = level
		assert.NoError(t, config.Validate(cfg), level)
	}
}
