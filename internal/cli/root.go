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

package cli

import (
	stderrors "errors"
	"fmt"

	"dirpx.dev/dxcap/internal/config"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// ErrNotSatisfied is returned by check when a checked root is not
// satisfied. It only sets the exit status; the report has been printed.
var ErrNotSatisfied = stderrors.New("not satisfied")

// configKeys maps persistent flags to configuration keys.
var configKeys = map[string]string{
	"catalog":   "catalog.root",
	"manifest":  "catalog.manifest",
	"format":    "output.format",
	"log-level": "output.log_level",
	"strict":    "versions.strict",
}

// NewRootCommand builds the dxcap command tree around opts.
func NewRootCommand(opts *Options) *cobra.Command {
	root := &cobra.Command{
		Use:   "dxcap",
		Short: "Check capability requirements across a component graph",
		Long: `dxcap checks that every component in a dependency graph has its
requirements met by the capabilities of its direct dependencies.

Components are described by a manifest (YAML, TOML or JSON) and by a
catalog directory holding a version file and a capreq file per variant.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !needsConfig(cmd) {
				return nil
			}
			return opts.loadConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.ConfigFile, "config", "c", "", "config file (default: dxcap.{yaml,yml,toml,json})")
	flags.String("catalog", "", "catalog root directory")
	flags.StringP("manifest", "m", "", "dependency manifest")
	flags.StringP("format", "o", "", "output format (text, json, yaml)")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.Bool("strict", false, "require semantic versions")

	root.AddCommand(
		newCheckCommand(opts),
		newStatusCommand(opts),
		newParseCommand(opts),
		newMatchCommand(opts),
		newVersionCommand(opts),
	)
	return root
}

// Execute runs the command tree with args and returns the process exit
// status.
func Execute(opts *Options, args []string) int {
	root := NewRootCommand(opts)
	root.SetArgs(args)
	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)

	if err := root.Execute(); err != nil {
		if !stderrors.Is(err, ErrNotSatisfied) {
			opts.Logger.Error("dxcap failed", "err", err)
		}
		return 1
	}
	return 0
}

func needsConfig(cmd *cobra.Command) bool {
	return cmd.Annotations["config"] == "required"
}

func (o *Options) loadConfig(cmd *cobra.Command) error {
	loader := config.NewLoader().WithFs(o.Fs)
	if o.ConfigFile != "" {
		loader.WithConfigPath(o.ConfigFile)
	}

	flags := cmd.Root().PersistentFlags()
	for name, key := range configKeys {
		if err := loader.BindFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}

	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.Config = cfg

	level, err := log.ParseLevel(cfg.Output.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	o.Logger.SetLevel(level)
	o.Logger.Debug("config loaded", "file", loader.ConfigFileUsed(), "catalog", cfg.Catalog.Root, "manifest", cfg.Catalog.Manifest)
	return nil
}
