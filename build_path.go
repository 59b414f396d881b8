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
	"path"
	"path/filepath"
	"strings"

	"shanhu.io/misc/errcode"
)

// cleanRelPath cleans a slash separated path that must stay under the
// directory it is relative to. It rejects absolute paths and paths that
// climb out with "..".
func cleanRelPath(f string) (string, error) {
	f = filepath.ToSlash(f)
	if path.IsAbs(f) || filepath.IsAbs(filepath.FromSlash(f)) {
		return "", errcode.InvalidArgf("%q is an absolute path", f)
	}
	f = path.Clean(f)
	if f == ".." || strings.HasPrefix(f, "../") {
		return "", errcode.InvalidArgf("%q escapes the project root", f)
	}
	return f, nil
}

// isUnder checks if p is dir itself or a path inside dir. Both must be
// clean absolute paths.
func isUnder(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
