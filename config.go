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
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shanhu.io/misc/errcode"
	"shanhu.io/misc/jsonx"
	"shanhu.io/misc/osutil"
	"shanhu.io/text/lexing"
)

// ConfigFile is the name of the config file inside a config directory.
const ConfigFile = "buildmx.jsonx"

// Defaults for unset config fields.
const (
	DefaultBuildRoot    = "build"
	DefaultBuildTypeVar = "BUILD_TYPE"
	DefaultBuildFile    = "CMakeLists.txt"
	DefaultLogFile      = "buildmx.log"
)

// Config is the structure of the buildmx.jsonx file.
type Config struct {
	// Project root. Relative paths are relative to the config directory.
	// Defaults to the config directory.
	ProjectRoot string `json:",omitempty"`

	// Build root, relative to the project root.
	BuildRoot string `json:",omitempty"`

	// Options applied to every cell, before toolchain options.
	Options []string `json:",omitempty"`

	// Extra environment for every cell.
	Env map[string]string `json:",omitempty"`

	// Per toolchain settings, keyed by toolchain name. Keys that are not
	// known toolchains are ignored.
	Toolchains map[string]*ToolchainConfig `json:",omitempty"`

	// Name of the cache variable that carries the build type.
	BuildTypeVar string `json:",omitempty"`

	// Build description file that must exist in the project root.
	BuildFile string `json:",omitempty"`

	// Run log file name, created in the build root.
	LogFile string `json:",omitempty"`

	// Strict makes a run fail when any cell fails.
	Strict bool `json:",omitempty"`
}

// ToolchainConfig holds the settings of one toolchain.
type ToolchainConfig struct {
	Executable *string           `json:",omitempty"`
	Options    []string          `json:",omitempty"`
	Env        map[string]string `json:",omitempty"`
}

// Model is the resolved config of a run. It is not modified after
// LoadConfig returns.
type Model struct {
	ProjectRoot string // absolute
	BuildRoot   string // clean, relative to ProjectRoot

	Options []string
	Env     map[string]string

	ToolchainOptions map[Toolchain][]string
	ToolchainEnv     map[Toolchain]map[string]string
	Executables      map[Toolchain]string

	BuildTypeVar string
	BuildFile    string
	LogFile      string
	Strict       bool
}

// BuildRootDir returns the absolute build root.
func (m *Model) BuildRootDir() string {
	return filepath.Join(m.ProjectRoot, filepath.FromSlash(m.BuildRoot))
}

// LogPath returns the absolute path of the run log.
func (m *Model) LogPath() string {
	return filepath.Join(m.BuildRootDir(), m.LogFile)
}

// LoadConfig reads the config file in dir and resolves it into a Model.
func LoadConfig(dir string) (*Model, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, &ConfigNotFoundError{Path: dir, Err: err}
	}
	isDir, err := osutil.IsDir(absDir)
	if err != nil {
		return nil, &ConfigNotFoundError{Path: absDir, Err: err}
	}
	if !isDir {
		return nil, &ConfigNotFoundError{
			Path: absDir,
			Err:  errcode.NotFoundf("not a directory"),
		}
	}

	f := filepath.Join(absDir, ConfigFile)
	isFile, err := osutil.IsRegular(f)
	if err != nil {
		return nil, &ConfigNotFoundError{Path: f, Err: err}
	}
	if !isFile {
		return nil, &ConfigNotFoundError{
			Path: f,
			Err:  errcode.NotFoundf("not a regular file"),
		}
	}
	if err := checkReadable(f); err != nil {
		return nil, &ConfigNotFoundError{Path: f, Err: err}
	}

	c := new(Config)
	if err := jsonx.ReadFile(f, c); err != nil {
		return nil, &ConfigParseError{
			File:  f,
			Field: typeErrorField(f, err),
			Err:   err,
		}
	}
	return newModel(absDir, f, c)
}

// typeErrorField returns the dotted path of the field that failed to
// decode, or "" when err is not a type error. jsonx reports decode errors
// wrapped in a *lexing.Error.
func typeErrorField(f string, err error) string {
	var lexErr *lexing.Error
	if errors.As(err, &lexErr) && lexErr.Err != nil {
		err = lexErr.Err
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return ""
	}
	if typeErr.Field == "Toolchains" ||
		strings.HasPrefix(typeErr.Field, "Toolchains.") {
		if field := toolchainTypeErrorField(f); field != "" {
			return field
		}
	}
	return typeErr.Field
}

// toolchainTypeErrorField decodes the toolchain entries of f one by one,
// since encoding/json leaves map keys out of a type error's field path.
func toolchainTypeErrorField(f string) string {
	var raw struct {
		Toolchains map[string]json.RawMessage
	}
	if err := jsonx.ReadFile(f, &raw); err != nil {
		return ""
	}
	var names []string
	for name := range raw.Toolchains {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tc := new(ToolchainConfig)
		err := json.Unmarshal(raw.Toolchains[name], tc)
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			continue
		}
		if typeErr.Field == "" {
			return "Toolchains." + name
		}
		return "Toolchains." + name + "." + typeErr.Field
	}
	return ""
}

func isCellDirName(name string) bool {
	for _, t := range Toolchains {
		for _, bt := range BuildTypes {
			if name == DirName(t, bt) {
				return true
			}
		}
	}
	return false
}

func checkReadable(f string) error {
	file, err := os.Open(f)
	if err != nil {
		return err
	}
	return file.Close()
}

func fieldErr(file, field string, err error) *ConfigParseError {
	return &ConfigParseError{File: file, Field: field, Err: err}
}

func checkOptions(file, field string, opts []string) error {
	for i, opt := range opts {
		if strings.TrimSpace(opt) == "" {
			return fieldErr(
				file, field, errcode.InvalidArgf("option %d is empty", i),
			)
		}
	}
	return nil
}

func checkEnv(file, field string, env map[string]string) error {
	for k := range env {
		if k == "" || strings.ContainsAny(k, "= \t\n") {
			return fieldErr(
				file, field, errcode.InvalidArgf("bad variable name %q", k),
			)
		}
	}
	return nil
}

func copyStrings(s []string) []string {
	return append([]string{}, s...)
}

func copyEnv(env map[string]string) map[string]string {
	ret := make(map[string]string, len(env))
	for k, v := range env {
		ret[k] = v
	}
	return ret
}

func newModel(dir, file string, c *Config) (*Model, error) {
	root := dir
	if c.ProjectRoot != "" {
		root = c.ProjectRoot
		if !filepath.IsAbs(root) {
			root = filepath.Join(dir, root)
		}
		root = filepath.Clean(root)
	}

	buildRoot := c.BuildRoot
	if buildRoot == "" {
		buildRoot = DefaultBuildRoot
	}
	buildRoot, err := cleanRelPath(buildRoot)
	if err != nil {
		return nil, fieldErr(file, "BuildRoot", err)
	}
	if !isUnder(root, filepath.Join(root, filepath.FromSlash(buildRoot))) {
		return nil, fieldErr(
			file, "BuildRoot",
			errcode.InvalidArgf("%q escapes the project root", buildRoot),
		)
	}

	if err := checkOptions(file, "Options", c.Options); err != nil {
		return nil, err
	}
	if err := checkEnv(file, "Env", c.Env); err != nil {
		return nil, err
	}

	m := &Model{
		ProjectRoot:      root,
		BuildRoot:        buildRoot,
		Options:          copyStrings(c.Options),
		Env:              copyEnv(c.Env),
		ToolchainOptions: make(map[Toolchain][]string),
		ToolchainEnv:     make(map[Toolchain]map[string]string),
		Executables:      make(map[Toolchain]string),
		BuildTypeVar:     DefaultBuildTypeVar,
		BuildFile:        DefaultBuildFile,
		LogFile:          DefaultLogFile,
		Strict:           c.Strict,
	}

	if c.BuildTypeVar != "" {
		if strings.ContainsAny(c.BuildTypeVar, "= \t\n") {
			return nil, fieldErr(
				file, "BuildTypeVar",
				errcode.InvalidArgf("bad variable name %q", c.BuildTypeVar),
			)
		}
		m.BuildTypeVar = c.BuildTypeVar
	}
	if c.BuildFile != "" {
		f, err := cleanRelPath(c.BuildFile)
		if err != nil {
			return nil, fieldErr(file, "BuildFile", err)
		}
		m.BuildFile = f
	}
	if c.LogFile != "" {
		if c.LogFile != filepath.Base(c.LogFile) || c.LogFile == "." ||
			c.LogFile == ".." {
			return nil, fieldErr(
				file, "LogFile",
				errcode.InvalidArgf("%q is not a plain file name", c.LogFile),
			)
		}
		if isCellDirName(c.LogFile) {
			return nil, fieldErr(
				file, "LogFile",
				errcode.InvalidArgf("%q is a cell directory", c.LogFile),
			)
		}
		m.LogFile = c.LogFile
	}

	for _, t := range Toolchains {
		m.Executables[t] = t.DefaultExecutable()
		m.ToolchainOptions[t] = nil
		m.ToolchainEnv[t] = make(map[string]string)
	}

	for name, tc := range c.Toolchains {
		t, ok := KnownToolchain(name)
		if !ok || tc == nil {
			continue
		}
		field := "Toolchains." + name
		if err := checkOptions(file, field+".Options", tc.Options); err != nil {
			return nil, err
		}
		if err := checkEnv(file, field+".Env", tc.Env); err != nil {
			return nil, err
		}
		if tc.Executable != nil && *tc.Executable != "" {
			m.Executables[t] = *tc.Executable
		}
		m.ToolchainOptions[t] = copyStrings(tc.Options)
		m.ToolchainEnv[t] = copyEnv(tc.Env)
	}

	return m, nil
}
