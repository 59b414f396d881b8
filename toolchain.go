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

// Toolchain names a compiler configuration in the build matrix.
type Toolchain string

// Known toolchains.
const (
	GCC          Toolchain = "gcc"
	Clang        Toolchain = "clang"
	CrossMinGW64 Toolchain = "cross-mingw64"
)

// Toolchains lists all known toolchains in matrix order.
var Toolchains = []Toolchain{GCC, Clang, CrossMinGW64}

// BuildType names a build profile passed to the configuration tool.
type BuildType string

// Known build types.
const (
	Release BuildType = "release"
	Debug   BuildType = "debug"
)

// BuildTypes lists all known build types in matrix order.
var BuildTypes = []BuildType{Release, Debug}

type toolchainInfo struct {
	executable string
	cc         string
	cxx        string
}

var toolchainInfos = map[Toolchain]*toolchainInfo{
	GCC: {
		executable: "cmake",
		cc:         "gcc",
		cxx:        "g++",
	},
	Clang: {
		executable: "cmake",
		cc:         "clang",
		cxx:        "clang++",
	},
	CrossMinGW64: {
		executable: "mingw64-cmake",
		cc:         "x86_64-w64-mingw32-gcc",
		cxx:        "x86_64-w64-mingw32-g++",
	},
}

// KnownToolchain returns the toolchain with the given name, and false if the
// name is not one of the known toolchains.
func KnownToolchain(name string) (Toolchain, bool) {
	t := Toolchain(name)
	if _, ok := toolchainInfos[t]; !ok {
		return "", false
	}
	return t, true
}

// DefaultExecutable returns the configuration tool invoked for t when the
// config does not override it.
func (t Toolchain) DefaultExecutable() string {
	if info, ok := toolchainInfos[t]; ok {
		return info.executable
	}
	return ""
}

// CompilerFlags returns the flags that select the C and C++ compilers of t.
// The returned slice is a fresh copy.
func (t Toolchain) CompilerFlags() []string {
	info, ok := toolchainInfos[t]
	if !ok {
		return nil
	}
	return []string{
		"-DCMAKE_C_COMPILER=" + info.cc,
		"-DCMAKE_CXX_COMPILER=" + info.cxx,
	}
}
