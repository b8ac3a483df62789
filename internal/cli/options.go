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

// Package cli provides the dxcap command-line interface.
package cli

import (
	"io"
	"os"

	"dirpx.dev/dxcap/internal/config"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Options holds the CLI runtime options and dependencies.
type Options struct {
	Version VersionInfo

	// ConfigFile is the --config flag.
	ConfigFile string

	// Runtime state
	Config *config.Config
	Logger *log.Logger
	Fs     afero.Fs

	// I/O streams (for testing)
	Stdout io.Writer
	Stderr io.Writer
}

// VersionInfo holds version metadata.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewOptions creates an Options instance bound to the process streams and
// the OS filesystem.
func NewOptions() *Options {
	return &Options{
		Version: VersionInfo{Version: "dev", Commit: "none", Date: "unknown"},
		Fs:      afero.NewOsFs(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Logger: log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Level:           log.WarnLevel,
		}),
	}
}
