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

	"shanhu.io/misc/osutil"
)

// Outcome is the result of running one cell.
type Outcome struct {
	Cell *Cell

	// ExitCode is the exit code of the command, or -1 if it never ran.
	ExitCode int

	// Output is the combined stdout and stderr of the command.
	Output []byte

	// Err is a *CellError when the cell failed.
	Err error
}

// OK checks if the cell command exited with 0.
func (o *Outcome) OK() bool { return o.Err == nil && o.ExitCode == 0 }

// Executor runs cells one at a time.
type Executor struct {
	projectRoot string
	buildFile   string
	runner      Runner
}

// NewExecutor creates an executor for the project in m. A nil runner runs
// real processes.
func NewExecutor(m *Model, runner Runner) *Executor {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Executor{
		projectRoot: m.ProjectRoot,
		buildFile:   m.BuildFile,
		runner:      runner,
	}
}

// CheckBuildFile checks that the project root has a build description.
func (x *Executor) CheckBuildFile() error {
	p := filepath.Join(x.projectRoot, filepath.FromSlash(x.buildFile))
	ok, err := osutil.IsRegular(p)
	if err != nil || !ok {
		return &MissingBuildDescriptionError{Path: p}
	}
	return nil
}

// Execute runs the command of c in c.Dir. A failing command does not
// return an error; the failure is recorded in the outcome.
func (x *Executor) Execute(c *Cell) *Outcome {
	code, out, err := x.runner.Run(c.Dir, c.Command, c.Env)
	o := &Outcome{
		Cell:     c,
		ExitCode: code,
		Output:   out,
	}
	if err != nil || code != 0 {
		o.Err = &CellError{Cell: c, ExitCode: code, Err: err}
	}
	return o
}
