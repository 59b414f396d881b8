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
	"fmt"
	"sort"
)

// Cell is one (toolchain, build type) unit of work: a directory and the
// command that configures it.
type Cell struct {
	Toolchain Toolchain
	BuildType BuildType

	// Dir is the absolute directory the command runs in.
	Dir string

	// Command is the argv of the configuration tool. Command[0] is the
	// executable and Command[1] is the absolute project root.
	Command []string

	// Env holds extra KEY=VALUE pairs for the command.
	Env []string
}

// DirName returns the base name of the cell directory.
func DirName(t Toolchain, bt BuildType) string {
	return fmt.Sprintf("%s-%s", t, bt)
}

// Name returns "{toolchain}-{buildType}".
func (c *Cell) Name() string { return DirName(c.Toolchain, c.BuildType) }

// Label returns "{toolchain} ({buildType})".
func (c *Cell) Label() string {
	return fmt.Sprintf("%s (%s)", c.Toolchain, c.BuildType)
}

func buildTypeFlag(m *Model, bt BuildType) string {
	return fmt.Sprintf("-D%s=%s", m.BuildTypeVar, bt)
}

func envList(env map[string]string) []string {
	var keys []string
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var ret []string
	for _, k := range keys {
		ret = append(ret, k+"="+env[k])
	}
	return ret
}

func executable(m *Model, t Toolchain) string {
	if exe := m.Executables[t]; exe != "" {
		return exe
	}
	return t.DefaultExecutable()
}

// planCell resolves one cell. Token order is significant: the tool takes
// the last value of a repeated flag.
func planCell(e *env, m *Model, t Toolchain, bt BuildType) *Cell {
	cmd := []string{executable(m, t), e.root()}
	cmd = append(cmd, t.CompilerFlags()...)
	cmd = append(cmd, m.Options...)
	cmd = append(cmd, buildTypeFlag(m, bt))
	cmd = append(cmd, m.ToolchainOptions[t]...)

	// Toolchain variables come last so they win over global ones.
	var env []string
	env = append(env, envList(m.Env)...)
	env = append(env, envList(m.ToolchainEnv[t])...)

	return &Cell{
		Toolchain: t,
		BuildType: bt,
		Dir:       e.build(DirName(t, bt)),
		Command:   cmd,
		Env:       env,
	}
}

// Plan returns one cell per known (toolchain, build type) pair, toolchain
// major, in the order of Toolchains and BuildTypes.
func Plan(m *Model) []*Cell {
	e := newEnv(m)
	var cells []*Cell
	for _, t := range Toolchains {
		for _, bt := range BuildTypes {
			cells = append(cells, planCell(e, m, t, bt))
		}
	}
	return cells
}
