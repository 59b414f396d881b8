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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, p, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

// newProject creates a project directory with a config file and, when
// withBuildFile is set, an empty build description.
func newProject(t *testing.T, config string, withBuildFile bool) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFile), config)
	if withBuildFile {
		writeFile(t, filepath.Join(dir, DefaultBuildFile), "")
	}
	return dir
}

func loadModel(t *testing.T, config string) *Model {
	t.Helper()
	m, err := LoadConfig(newProject(t, config, true))
	require.NoError(t, err)
	return m
}

// fakeRunner records the commands it is given and fails the cells whose
// directory base name is in fail.
type fakeRunner struct {
	fail  map[string]bool
	calls []string
}

func (r *fakeRunner) Run(dir string, argv, env []string) (int, []byte, error) {
	name := filepath.Base(dir)
	r.calls = append(r.calls, name)
	if r.fail[name] {
		return 1, []byte("configure " + name + ": no compiler\n"), nil
	}
	return 0, []byte("configure " + name + ": done\n"), nil
}
