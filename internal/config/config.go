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

// Package config loads the dxcap host configuration.
package config

import (
	"fmt"
	"slices"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/item"
	"dirpx.dev/rxmerr"
)

// EnvPrefix is the prefix of environment overrides, e.g. DXCAP_OUTPUT_FORMAT.
const EnvPrefix = "DXCAP"

// ConfigFileNames to search for.
var ConfigFileNames = []string{
	"dxcap",
}

// ConfigFileExtensions supported by Viper.
var ConfigFileExtensions = []string{
	"yaml",
	"yml",
	"toml",
	"json",
}

// LogLevels accepted in Output.LogLevel.
var LogLevels = []string{"debug", "info", "warn", "error"}

// Config is the complete host configuration.
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Output   OutputConfig   `mapstructure:"output"`
	Versions VersionsConfig `mapstructure:"versions"`
}

// CatalogConfig locates component metadata.
type CatalogConfig struct {
	// Root is the directory holding one sub-directory per variant with
	// its version and capreq files.
	Root string `mapstructure:"root"`

	// Manifest is the path of a dependency manifest. When empty every
	// variant found under Root is loaded without dependencies.
	Manifest string `mapstructure:"manifest"`
}

// OutputConfig controls what the CLI prints.
type OutputConfig struct {
	Format   string `mapstructure:"format"`
	LogLevel string `mapstructure:"log_level"`
}

// VersionsConfig controls version checks.
type VersionsConfig struct {
	// Strict rejects versions that are not semantic versions.
	Strict bool `mapstructure:"strict"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Root: "catalog",
		},
		Output: OutputConfig{
			Format:   item.FormatText,
			LogLevel: "warn",
		},
	}
}

// Validate reports every invalid setting of cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &errors.ValidationError{Type: "Config", Reason: "must not be nil"}
	}

	c := rxmerr.NewCollector()
	if cfg.Catalog.Root == "" && cfg.Catalog.Manifest == "" {
		c.Append(&errors.ValidationError{Type: "Config", Field: "catalog", Reason: "root or manifest must be set"})
	}
	if _, err := item.NewSink(cfg.Output.Format, nil); err != nil {
		c.Append(&errors.ValidationError{Type: "Config", Field: "output.format", Reason: fmt.Sprintf("unknown format %q", cfg.Output.Format), Value: cfg.Output.Format})
	}
	if !slices.Contains(LogLevels, cfg.Output.LogLevel) {
		c.Append(&errors.ValidationError{Type: "Config", Field: "output.log_level", Reason: fmt.Sprintf("unknown level %q", cfg.Output.LogLevel), Value: cfg.Output.LogLevel})
	}
	return c.Err()
}
