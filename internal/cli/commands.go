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

	"dirpx.dev/dxcap/dxcore/model/capability"
	"github.com/spf13/cobra"
)

func newParseCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse capability or requirement specs and print their canonical form",
	}
	cmd.AddCommand(
		newParseSubcommand(opts, "capability", "e.g. C2", func(s string) (fmt.Stringer, error) {
			return capability.ParseCapability(s)
		}),
		newParseSubcommand(opts, "requirement", "e.g. C(1-5)", func(s string) (fmt.Stringer, error) {
			return capability.ParseRequirement(s)
		}),
		newParseSubcommand(opts, "requirements", `e.g. "A(1-10), B(3)"`, func(s string) (fmt.Stringer, error) {
			return capability.ParseRequirements(s)
		}),
	)
	return cmd
}

// newParseSubcommand prints one canonical form per argument. Malformed
// arguments are reported on stderr and make the command fail after every
// argument has been tried.
func newParseSubcommand(opts *Options, kind, example string, parse func(string) (fmt.Stringer, error)) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <spec>...",
		Short: "Parse " + kind + " specs (" + example + ")",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, arg := range args {
				v, err := parse(arg)
				if err != nil {
					failed++
					fmt.Fprintln(opts.Stderr, err)
					continue
				}
				fmt.Fprintln(opts.Stdout, v)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d %s specs are malformed", failed, len(args), kind)
			}
			return nil
		},
	}
}

func newMatchCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "match <capability> <requirement>",
		Short: "Print whether a capability satisfies a requirement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := capability.ParseCapability(args[0])
			if err != nil {
				return err
			}
			r, err := capability.ParseRequirement(args[1])
			if err != nil {
				return err
			}

			verb := "does not match"
			if r.Matches(c) {
				verb = "matches"
			}
			fmt.Fprintf(opts.Stdout, "%s %s %s\n", c, verb, r)
			return nil
		},
	}
}

func newVersionCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of dxcap",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			v := opts.Version
			fmt.Fprintf(opts.Stdout, "dxcap version %s (commit %s, built %s)\n", v.Version, v.Commit, v.Date)
		},
	}
}
