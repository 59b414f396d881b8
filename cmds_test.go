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
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func lookPath(t *testing.T, name string) string {
	t.Helper()
	p, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not found: %v", name, err)
	}
	return p
}

func TestExecRunner(t *testing.T) {
	sh := lookPath(t, "sh")
	dir := t.TempDir()

	code, out, err := ExecRunner{}.Run(
		dir,
		[]string{sh, "-c", "pwd; echo out; echo err >&2; echo $MARK"},
		[]string{"MARK=set"},
	)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	got := string(out)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	require.True(t,
		strings.Contains(got, dir) || strings.Contains(got, resolved),
		"output %q", got,
	)
	require.Contains(t, got, "out\n")
	require.Contains(t, got, "err\n")
	require.Contains(t, got, "set\n")
}

func TestExecRunnerExitCode(t *testing.T) {
	sh := lookPath(t, "sh")
	code, out, err := ExecRunner{}.Run(
		t.TempDir(), []string{sh, "-c", "echo broken; exit 3"}, nil,
	)
	require.Error(t, err)
	require.Equal(t, 3, code)
	require.Equal(t, "broken\n", string(out))
}

func TestExecRunnerNotFound(t *testing.T) {
	code, _, err := ExecRunner{}.Run(
		t.TempDir(), []string{"buildmx-no-such-tool"}, nil,
	)
	require.Error(t, err)
	require.Equal(t, -1, code)
}

func TestExecRunnerArgsNotInterpolated(t *testing.T) {
	sh := lookPath(t, "sh")
	arg := "-DNAME=$(echo injected) 'quoted' ; x"
	_, out, err := ExecRunner{}.Run(
		t.TempDir(), []string{sh, "-c", `printf '%s' "$1"`, "sh", arg}, nil,
	)
	require.NoError(t, err)
	require.Equal(t, arg, string(out))
}
