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
	"shanhu.io/misc/flagutil"
)

var cmdFlags = flagutil.NewFactory("buildmx")

type runFlags struct {
	strict bool
	dryRun bool
}

func declareRunFlags(flags *flagutil.FlagSet, f *runFlags) {
	flags.BoolVar(
		&f.strict, "strict", false,
		"exit with a non-zero code when any cell fails",
	)
	flags.BoolVar(
		&f.dryRun, "dry_run", false,
		"print the planned commands without running them",
	)
}
