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
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"shanhu.io/buildmx"
	"shanhu.io/text/lexing"
)

// Exit codes of a run.
const (
	exitOK          = 0
	exitConfig      = 1
	exitNoBuildFile = 2
	exitDirectory   = 3
	exitFailedCells = 4
	exitOther       = 5
)

func exitCode(err error) int {
	var (
		notFound  *buildmx.ConfigNotFoundError
		parseErr  *buildmx.ConfigParseError
		noBuild   *buildmx.MissingBuildDescriptionError
		dirErr    *buildmx.DirectoryCreateError
		failedErr *buildmx.FailedCellsError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &notFound), errors.As(err, &parseErr):
		return exitConfig
	case errors.As(err, &noBuild):
		return exitNoBuildFile
	case errors.As(err, &dirErr):
		return exitDirectory
	case errors.As(err, &failedErr):
		return exitFailedCells
	}
	return exitOther
}

// splitArgs moves flags in front of positional arguments, so that flags
// may follow the directory.
func splitArgs(args []string) (flags, pos []string) {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
		} else {
			pos = append(pos, arg)
		}
	}
	return flags, pos
}

func printErr(w io.Writer, err error) {
	wd, _ := os.Getwd()
	lexing.FprintErrs(w, lexing.SingleErr(err), wd)
}

func runDir(stdout, stderr io.Writer, dir string, f *runFlags) int {
	m, err := buildmx.LoadConfig(dir)
	if err != nil {
		printErr(stderr, err)
		return exitCode(err)
	}
	log.Printf("project root: %s", m.ProjectRoot)

	opts := &buildmx.Options{
		Strict: f.strict,
		DryRun: f.dryRun,
	}
	if _, err := buildmx.NewMatrix(m, stdout, opts).Run(); err != nil {
		printErr(stderr, err)
		return exitCode(err)
	}
	return exitOK
}

func runMatrix(stdout, stderr io.Writer, args []string) int {
	flagArgs, pos := splitArgs(args)
	flags := cmdFlags.New()
	f := new(runFlags)
	declareRunFlags(flags, f)
	flags.ParseArgs(flagArgs)

	if len(pos) != 1 {
		fmt.Fprintln(stderr, "expect exactly one config directory")
		printUsage(stderr)
		return exitConfig
	}
	return runDir(stdout, stderr, pos[0], f)
}

func cmdRun(args []string) error {
	if code := runMatrix(os.Stdout, os.Stderr, args); code != exitOK {
		os.Exit(code)
	}
	return nil
}
