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

package buildmx

import (
	"os"
)

const dirPerm = 0755

// Provision creates the directory of every cell, with parents. Existing
// directories are left alone. Directories created before a failure are
// kept.
func Provision(cells []*Cell) error {
	for _, c := range cells {
		if err := os.MkdirAll(c.Dir, dirPerm); err != nil {
			return &DirectoryCreateError{Dir: c.Dir, Err: err}
		}
	}
	return nil
}
