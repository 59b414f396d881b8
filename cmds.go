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
	"errors"
	"io"
	"os/exec"

	"shanhu.io/misc/osutil"
)

// Variables copied from the calling process into every command.
var inheritedEnv = []string{
	"HOME",
	"PATH",
	"USER",
	"TMPDIR",
	"LANG",
	"SSH_AUTH_SOCK",
}

type execJob struct {
	dir  string
	bin  string
	args []string
	env  []string
	out  io.Writer
}

func (j *execJob) command() *exec.Cmd {
	cmd := exec.Command(j.bin, j.args...)
	cmd.Dir = j.dir
	cmd.Stdout = j.out
	cmd.Stderr = j.out
	cmd.Env = []string{}
	for _, k := range inheritedEnv {
		osutil.CmdCopyEnv(cmd, k)
	}
	cmd.Env = append(cmd.Env, j.env...)
	return cmd
}

// Runner runs one command in a directory, and returns its exit code and its
// combined stdout and stderr. A command that fails to start returns exit
// code -1 and the start error.
type Runner interface {
	Run(dir string, argv, env []string) (int, []byte, error)
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

// Run runs argv in dir.
func (ExecRunner) Run(dir string, argv, env []string) (int, []byte, error) {
	out := new(bytes.Buffer)
	j := &execJob{
		dir:  dir,
		bin:  argv[0],
		args: argv[1:],
		env:  env,
		out:  out,
	}
	if err := j.command().Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), out.Bytes(), err
		}
		return -1, out.Bytes(), err
	}
	return 0, out.Bytes(), nil
}
