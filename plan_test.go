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
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestPlanCells(t *testing.T) {
	m := loadModel(t, "{}")
	cells := Plan(m)
	require.Len(t, cells, len(Toolchains)*len(BuildTypes))
	require.Len(t, cells, 6)

	var names []string
	dirs := make(map[string]bool)
	for _, c := range cells {
		names = append(names, c.Name())
		require.False(t, dirs[c.Dir], "duplicate dir %q", c.Dir)
		dirs[c.Dir] = true

		require.Equal(t, filepath.Join(m.BuildRootDir(), c.Name()), c.Dir)
		require.True(t, isUnder(m.ProjectRoot, c.Dir))
		require.Equal(t, m.ProjectRoot, c.Command[1])
	}

	want := []string{
		"gcc-release", "gcc-debug",
		"clang-release", "clang-debug",
		"cross-mingw64-release", "cross-mingw64-debug",
	}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("cell order mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanTokenOrder(t *testing.T) {
	m := loadModel(t, `{
		"Options": ["-DGLOBAL_A=1", "-DGLOBAL_B=1"],
		"Toolchains": {
			"gcc": {"Options": ["-DTC_GCC=1"]},
			"clang": {"Options": ["-DTC_CLANG=1"]},
			"cross-mingw64": {"Options": ["-DTC_MINGW=1"]}
		}
	}`)

	tcMarkers := map[Toolchain]string{
		GCC:          "-DTC_GCC=1",
		Clang:        "-DTC_CLANG=1",
		CrossMinGW64: "-DTC_MINGW=1",
	}

	for _, c := range Plan(m) {
		t.Run(c.Name(), func(t *testing.T) {
			var want []string
			want = append(want, executable(m, c.Toolchain), m.ProjectRoot)
			want = append(want, c.Toolchain.CompilerFlags()...)
			want = append(want, "-DGLOBAL_A=1", "-DGLOBAL_B=1")
			want = append(want, "-DBUILD_TYPE="+string(c.BuildType))
			want = append(want, tcMarkers[c.Toolchain])
			if diff := cmp.Diff(want, c.Command); diff != "" {
				t.Errorf("command mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPlanScenario(t *testing.T) {
	dir := newProject(t, `{
		"BuildRoot": "out",
		"Options": ["-DX=1"],
		"Toolchains": {"gcc": {"Options": ["-DY=2"]}}
	}`, true)
	m, err := LoadConfig(dir)
	require.NoError(t, err)

	cells := Plan(m)
	byName := make(map[string]*Cell)
	for _, c := range cells {
		byName[c.Name()] = c
	}

	release := byName["gcc-release"]
	require.NotNil(t, release)
	require.Equal(t, filepath.Join(m.ProjectRoot, "out", "gcc-release"), release.Dir)
	require.NotNil(t, byName["gcc-debug"])
	require.Equal(t, filepath.Join(m.ProjectRoot, "out", "gcc-debug"), byName["gcc-debug"].Dir)

	n := len(release.Command)
	require.GreaterOrEqual(t, n, 3)
	suffix := release.Command[n-3:]
	want := []string{"-DX=1", "-DBUILD_TYPE=release", "-DY=2"}
	if diff := cmp.Diff(want, suffix); diff != "" {
		t.Errorf("command suffix mismatch (-want +got):\n%s", diff)
	}

	// Other toolchains get the global option but not the gcc one.
	clang := byName["clang-debug"]
	require.Equal(t, "-DBUILD_TYPE=debug", clang.Command[len(clang.Command)-1])
	require.NotContains(t, clang.Command, "-DY=2")
	require.Contains(t, clang.Command, "-DX=1")
}

func TestPlanLastFlagWins(t *testing.T) {
	m := loadModel(t, `{
		"Options": ["-DOPT=global"],
		"Toolchains": {"clang": {"Options": ["-DOPT=clang"]}}
	}`)
	for _, c := range Plan(m) {
		last := ""
		for _, tok := range c.Command {
			if len(tok) > 5 && tok[:5] == "-DOPT" {
				last = tok
			}
		}
		want := "-DOPT=global"
		if c.Toolchain == Clang {
			want = "-DOPT=clang"
		}
		require.Equal(t, want, last, c.Name())
	}
}

func TestPlanExecutable(t *testing.T) {
	m := loadModel(t, `{
		"Toolchains": {
			"clang": {"Executable": "/opt/cmake/bin/cmake"}
		}
	}`)
	for _, c := range Plan(m) {
		switch c.Toolchain {
		case Clang:
			require.Equal(t, "/opt/cmake/bin/cmake", c.Command[0])
		default:
			require.Equal(t, c.Toolchain.DefaultExecutable(), c.Command[0])
		}
	}

	// A model built by hand without executables falls back to defaults.
	bare := &Model{
		ProjectRoot:  "/src",
		BuildRoot:    "build",
		BuildTypeVar: DefaultBuildTypeVar,
	}
	for _, c := range Plan(bare) {
		require.Equal(t, c.Toolchain.DefaultExecutable(), c.Command[0])
	}
}

func TestPlanUnknownToolchain(t *testing.T) {
	m := loadModel(t, `{
		"Toolchains": {"clnag": {"Options": ["-DTYPO=1"]}}
	}`)
	cells := Plan(m)
	require.Len(t, cells, 6)
	for _, c := range cells {
		require.NotContains(t, c.Command, "-DTYPO=1")
		_, ok := KnownToolchain(string(c.Toolchain))
		require.True(t, ok)
	}
}

func TestPlanEnv(t *testing.T) {
	m := loadModel(t, `{
		"Env": {"B": "1", "A": "1"},
		"Toolchains": {"gcc": {"Env": {"A": "gcc"}}}
	}`)
	for _, c := range Plan(m) {
		want := []string{"A=1", "B=1"}
		if c.Toolchain == GCC {
			want = append(want, "A=gcc")
		}
		if diff := cmp.Diff(want, c.Env); diff != "" {
			t.Errorf("%s env mismatch (-want +got):\n%s", c.Name(), diff)
		}
	}
}
