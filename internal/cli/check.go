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
	"fmt"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/graph"
	"dirpx.dev/dxcap/dxcore/item"
	"dirpx.dev/dxcap/dxcore/metadata"
	"github.com/spf13/cobra"
)

var requiresConfig = map[string]string{"config": "required"}

func newCheckCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [variant]",
		Short: "Trace a component tree and report every item",
		Long: `check builds the configured graph and walks it from the given variant,
or from every root when no variant is given. Each distinct item is reported
once, dependencies first. The exit status is 1 when a checked root is not
satisfied.`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: requiresConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.buildGraph()
			if err != nil {
				return err
			}

			roots := g.Roots()
			if len(args) == 1 {
				n, err := lookup(g, args[0])
				if err != nil {
					return err
				}
				roots = []item.Item{n}
			}

			sink, err := item.NewSink(opts.Config.Output.Format, opts.Stdout)
			if err != nil {
				return err
			}
			if err := item.TraverseAll(roots, sink); err != nil {
				return err
			}

			failed := 0
			for _, r := range roots {
				if !item.Satisfied(r) {
					failed++
					opts.Logger.Info("root not satisfied", "item", item.Identity(r))
				}
			}
			if failed > 0 {
				return ErrNotSatisfied
			}
			return nil
		},
	}
}

func newStatusCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:         "status <variant>",
		Short:       "Print whether a component is satisfied",
		Args:        cobra.ExactArgs(1),
		Annotations: requiresConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := opts.buildGraph()
			if err != nil {
				return err
			}
			n, err := lookup(g, args[0])
			if err != nil {
				return err
			}

			res := item.Evaluate(n)
			fmt.Fprintf(opts.Stdout, "%s %s\n", res.Identity, res.Status)
			for _, id := range res.UnsatisfiedDependencies {
				fmt.Fprintf(opts.Stdout, "  unsatisfied dependency: %s\n", id)
			}
			for _, r := range res.UnmatchedRequirements {
				fmt.Fprintf(opts.Stdout, "  unmatched requirement: %s\n", r)
			}
			return nil
		},
	}
}

// buildGraph loads the configured manifest, or lists the catalog when no
// manifest is configured, and builds it against the catalog.
func (o *Options) buildGraph() (*graph.Graph, error) {
	cfg := o.Config

	var fsCat *metadata.FS
	if cfg.Catalog.Root != "" {
		fsCat = metadata.NewFS(o.Fs, cfg.Catalog.Root)
	}

	var m graph.Manifest
	if cfg.Catalog.Manifest != "" {
		var err error
		if m, err = graph.LoadManifest(o.Fs, cfg.Catalog.Manifest); err != nil {
			return nil, err
		}
	} else {
		variants, err := fsCat.Variants()
		if err != nil {
			return nil, err
		}
		m = graph.ManifestFor(variants)
	}

	buildOpts := []graph.Option{graph.WithLogger(o.Logger)}
	if fsCat != nil {
		buildOpts = append(buildOpts, graph.WithCatalog(fsCat))
	}
	if cfg.Versions.Strict {
		buildOpts = append(buildOpts, graph.WithStrictVersions())
	}
	return graph.Build(m, buildOpts...)
}

func lookup(g *graph.Graph, variant string) (*graph.Node, error) {
	n, ok := g.Lookup(variant)
	if !ok {
		return nil, &errors.ConfigurationError{Variant: variant, Resource: "graph", Reason: "not declared", Err: errors.ErrUnknownVariant}
	}
	return n, nil
}
