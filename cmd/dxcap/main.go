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

// Command dxcap checks capability requirements across a component graph.
package main

import (
	"os"

	"dirpx.dev/dxcap/internal/cli"
)

// Set by -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	opts := cli.NewOptions()
	opts.Version = cli.VersionInfo{Version: version, Commit: commit, Date: date}
	os.Exit(cli.Execute(opts, os.Args[1:]))
}
