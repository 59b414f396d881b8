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
)

// env holds the resolved directories of one matrix run.
type env struct {
	rootDir  string // absolute project root
	buildDir string // build root, relative to rootDir
}

func newEnv(m *Model) *env {
	return &env{
		rootDir:  m.ProjectRoot,
		buildDir: m.BuildRoot,
	}
}

func (e *env) root(ps ...string) string {
	if len(ps) == 0 {
		return e.rootDir
	}
	p := path.Join(ps...)
	return filepath.Join(e.rootDir, filepath.FromSlash(p))
}

func (e *env) build(ps ...string) string {
	p := path.Join(append([]string{e.buildDir}, ps...)...)
	return e.root(p)
}
