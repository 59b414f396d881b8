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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gookit/color"
	"github.com/kballard/go-shellquote"
	"shanhu.io/misc/errcode"
)

// Reporter writes progress lines to the terminal and cell blocks to the run
// log.
type Reporter struct {
	term    io.Writer
	colored bool
	logPath string
	log     *os.File
}

// NewReporter creates or truncates the log file at logPath. Terminal lines
// are colored only when term is a terminal.
func NewReporter(term io.Writer, logPath string) (*Reporter, error) {
	abs, err := filepath.Abs(logPath)
	if err != nil {
		return nil, errcode.Annotate(err, "log path")
	}
	f, err := os.Create(abs)
	if err != nil {
		return nil, errcode.Annotate(err, "create log file")
	}
	return &Reporter{
		term:    term,
		colored: isTerminal(term),
		logPath: abs,
		log:     f,
	}, nil
}

// LogPath returns the absolute path of the log file.
func (r *Reporter) LogPath() string { return r.logPath }

func (r *Reporter) printLine(th *color.Theme, format string, a ...any) {
	line := fmt.Sprintf(format, a...)
	if r.colored {
		line = th.Sprint(line)
	}
	fmt.Fprintln(r.term, line)
}

// Start prints the progress line of c.
func (r *Reporter) Start(c *Cell) {
	r.printLine(color.Info, "configuring %s (%s)", c.Toolchain, c.BuildType)
}

func commandLine(argv []string) string {
	return shellquote.Join(argv...)
}

// Record appends the block of o to the log.
func (r *Reporter) Record(o *Outcome) error {
	c := o.Cell
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "==== %s ====\n", c.Label())
	fmt.Fprintf(buf, "dir: %s\n", c.Dir)
	for _, kv := range c.Env {
		fmt.Fprintf(buf, "env: %s\n", kv)
	}
	fmt.Fprintf(buf, "$ %s\n", commandLine(c.Command))
	buf.Write(o.Output)
	if n := len(o.Output); n > 0 && o.Output[n-1] != '\n' {
		buf.WriteString("\n")
	}
	if o.ExitCode < 0 && o.Err != nil {
		fmt.Fprintf(buf, "==== %s: %s ====\n\n", c.Name(), o.Err)
	} else {
		fmt.Fprintf(buf, "==== %s: exit %d ====\n\n", c.Name(), o.ExitCode)
	}

	if _, err := r.log.Write(buf.Bytes()); err != nil {
		return errcode.Annotatef(err, "write log of %s", c.Name())
	}

	if !o.OK() {
		r.printLine(color.Danger, "%s failed, see log", c.Label())
	}
	return nil
}

// Close closes the log and prints its path.
func (r *Reporter) Close() error {
	if err := r.log.Close(); err != nil {
		return errcode.Annotate(err, "close log file")
	}
	fmt.Fprintf(r.term, "log: %s\n", r.logPath)
	return nil
}
