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
)

// ConfigNotFoundError is returned when the config directory or the config
// file inside it is missing or cannot be read.
type ConfigNotFoundError struct {
	Path string
	Err  error
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("config %q not found: %s", e.Path, e.Err)
}

func (e *ConfigNotFoundError) Unwrap() error { return e.Err }

// ConfigParseError is returned when the config file cannot be decoded, or
// when one of its fields holds an invalid value. Field is empty when the
// error is not tied to a single field.
type ConfigParseError struct {
	File  string
	Field string
	Err   error
}

func (e *ConfigParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parse %s: %s", e.File, e.Err)
	}
	return fmt.Sprintf("parse %s: field %s: %s", e.File, e.Field, e.Err)
}

func (e *ConfigParseError) Unwrap() error { return e.Err }

// MissingBuildDescriptionError is returned when the project root has no
// build description file. It aborts a run before any cell starts.
type MissingBuildDescriptionError struct {
	Path string
}

func (e *MissingBuildDescriptionError) Error() string {
	return fmt.Sprintf("build description %q not found", e.Path)
}

// DirectoryCreateError is returned when a cell directory cannot be created.
type DirectoryCreateError struct {
	Dir string
	Err error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("create directory %q: %s", e.Dir, e.Err)
}

func (e *DirectoryCreateError) Unwrap() error { return e.Err }

// CellError records a failed cell. It is stored in the cell's outcome and
// never aborts the run.
type CellError struct {
	Cell     *Cell
	ExitCode int
	Err      error
}

func (e *CellError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %s", e.Cell.Label(), e.Err)
	}
	return fmt.Sprintf(
		"%s: exit status %d", e.Cell.Label(), e.ExitCode,
	)
}

func (e *CellError) Unwrap() error { return e.Err }
