// Copyright (C) 2022  Shanhu Tech Inc.
//
// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the
// Free Software Foundation, either version 3 of the License, or (at your
// option) any later version.
//
// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU Affero General Public License
// for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package buildmxbin

import (
	"fmt"
	"io"
	"os"

	"shanhu.io/misc/subcmd"
)

const usage = `buildmx configures one build directory per toolchain and build type.

Usage:
  buildmx <dir> [flags]      configure the matrix described by <dir>/buildmx.jsonx
  buildmx run [flags] <dir>  same as above
  buildmx config [-force]    write a default buildmx.jsonx in the current directory
  buildmx help               print this message

Run flags:
  -strict    exit with a non-zero code when any cell fails
  -dry_run   print the planned commands without running them

Exit codes:
  0  success
  1  config directory or file missing, unreadable or invalid
  2  build description missing in the project root
  3  build directory cannot be created
  4  some cells failed in strict mode
  5  other failure
`

func printUsage(w io.Writer) { fmt.Fprint(w, usage) }

func cmd() *subcmd.List {
	c := subcmd.New()
	c.Add("run", "configures the build matrix of a directory", cmdRun)
	c.Add("config", "writes a default config file", cmdConfig)
	return c
}

func isHelp(arg string) bool {
	switch arg {
	case "help", "-h", "-help", "--help":
		return true
	}
	return false
}

// Main is the entrance for the buildmx binary.
func Main() {
	args := os.Args[1:]
	if len(args) == 0 || isHelp(args[0]) {
		printUsage(os.Stdout)
		return
	}
	switch args[0] {
	case "run", "config":
		cmd().Main()
	default:
		os.Exit(runMatrix(os.Stdout, os.Stderr, args))
	}
}
