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
	"log"

	"shanhu.io/buildmx"
	"shanhu.io/misc/errcode"
)

func cmdConfig(args []string) error {
	flags := cmdFlags.New()
	force := flags.Bool("force", false, "overwrite an existing config file")
	flags.ParseArgs(args)

	f, err := buildmx.WriteDefaultConfig(".", *force)
	if err != nil {
		return errcode.Annotate(err, "write default config")
	}
	log.Printf("config written to %s", f)
	return nil
}
