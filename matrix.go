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

// Package buildmx configures a matrix of out-of-tree build directories, one
// per toolchain and build type, from a single jsonx config file.
package buildmx

import (
	"errors"
	"fmt"
	"io"
)

// Options are run time switches of a matrix run.
type Options struct {
	// Strict makes Run return a *FailedCellsError when any cell fails.
	// It is also turned on by the Strict field of the config.
	Strict bool

	// DryRun prints the planned commands and runs nothing. The build
	// description is still checked.
	DryRun bool

	// Runner runs the cell commands. Nil runs real processes.
	Runner Runner
}

// Result is the outcome of a matrix run.
type Result struct {
	Cells    []*Cell
	Outcomes []*Outcome
	LogFile  string
}

// Failed returns the outcomes of the cells that failed.
func (r *Result) Failed() []*Outcome {
	var ret []*Outcome
	for _, o := range r.Outcomes {
		if !o.OK() {
			ret = append(ret, o)
		}
	}
	return ret
}

// FailedCellsError is returned by a strict run when some cells failed.
type FailedCellsError struct {
	Failed []*Outcome
	Total  int
}

func (e *FailedCellsError) Error() string {
	return fmt.Sprintf("%d of %d cells failed", len(e.Failed), e.Total)
}

// Matrix configures all cells of a project.
type Matrix struct {
	model *Model
	term  io.Writer
	opts  *Options
}

// NewMatrix creates a matrix run for m that prints progress to term.
func NewMatrix(m *Model, term io.Writer, opts *Options) *Matrix {
	if opts == nil {
		opts = new(Options)
	}
	return &Matrix{
		model: m,
		term:  term,
		opts:  opts,
	}
}

func (x *Matrix) strict() bool { return x.opts.Strict || x.model.Strict }

// Cells returns the planned cells.
func (x *Matrix) Cells() []*Cell { return Plan(x.model) }

func (x *Matrix) dryRun(cells []*Cell) *Result {
	for _, c := range cells {
		fmt.Fprintf(x.term, "%s: cd %s && %s\n",
			c.Name(), c.Dir, commandLine(c.Command),
		)
	}
	return &Result{Cells: cells}
}

// configure runs the cells of res in order and closes r. A log write error
// stops the run; it is returned together with the close error, if any.
func configure(r *Reporter, exec *Executor, res *Result) error {
	for _, c := range res.Cells {
		r.Start(c)
		o := exec.Execute(c)
		res.Outcomes = append(res.Outcomes, o)
		if err := r.Record(o); err != nil {
			return errors.Join(err, r.Close())
		}
	}
	return r.Close()
}

// Run configures every cell in order. The build description check and the
// directory creation abort the run before any cell starts; a failing cell
// does not stop the cells after it.
func (x *Matrix) Run() (*Result, error) {
	cells := x.Cells()
	exec := NewExecutor(x.model, x.opts.Runner)
	if err := exec.CheckBuildFile(); err != nil {
		return nil, err
	}
	if x.opts.DryRun {
		return x.dryRun(cells), nil
	}

	if err := Provision(cells); err != nil {
		return nil, err
	}

	r, err := NewReporter(x.term, x.model.LogPath())
	if err != nil {
		return nil, err
	}

	res := &Result{
		Cells:   cells,
		LogFile: r.LogPath(),
	}
	if err := configure(r, exec, res); err != nil {
		return res, err
	}

	if failed := res.Failed(); len(failed) > 0 && x.strict() {
		return res, &FailedCellsError{Failed: failed, Total: len(cells)}
	}
	return res, nil
}
