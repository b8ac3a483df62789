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

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Loader handles configuration loading and merging.
type Loader struct {
	v           *viper.Viper
	fs          afero.Fs
	configPath  string
	searchPaths []string
}

// NewLoader creates a loader reading DXCAP_* environment variables and
// config files from the OS filesystem.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:           v,
		fs:          afero.NewOsFs(),
		searchPaths: []string{"."},
	}
}

// WithFs makes the loader read config files from fsys.
func (l *Loader) WithFs(fsys afero.Fs) *Loader {
	l.fs = fsys
	l.v.SetFs(fsys)
	return l
}

// WithConfigPath sets an explicit config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for config files.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// BindFlag binds a configuration key to a command-line flag. A flag set on
// the command line overrides the environment and the config file.
func (l *Loader) BindFlag(key string, flag *pflag.Flag) error {
	return l.v.BindPFlag(key, flag)
}

// Load reads the configuration and validates it.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	if err := l.loadConfigFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Output.LogLevel = strings.ToLower(cfg.Output.LogLevel)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigFileUsed returns the config file read by Load, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("catalog.root", defaults.Catalog.Root)
	l.v.SetDefault("catalog.manifest", defaults.Catalog.Manifest)

	l.v.SetDefault("output.format", defaults.Output.Format)
	l.v.SetDefault("output.log_level", defaults.Output.LogLevel)

	l.v.SetDefault("versions.strict", defaults.Versions.Strict)
}

func (l *Loader) loadConfigFile() error {
	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", l.configPath, err)
		}
		return nil
	}

	for _, searchPath := range l.searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if ok, _ := afero.Exists(l.fs, configFile); !ok {
					continue
				}
				l.v.SetConfigFile(configFile)
				if err := l.v.ReadInConfig(); err != nil {
					return fmt.Errorf("reading config file %s: %w", configFile, err)
				}
				return nil
			}
		}
	}

	// No config file: defaults and environment only.
	return nil
}
