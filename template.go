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
	"os"
	"path/filepath"

	"shanhu.io/misc/errcode"
)

// DefaultConfig is the commented config written by "buildmx config".
const DefaultConfig = `// buildmx configuration.
//
// Every run configures one build directory per toolchain and build type
// under BuildRoot, named {toolchain}-{buildType}. Known toolchains are
// gcc, clang and cross-mingw64; build types are release and debug.
{
	// Project root holding the build description. Relative to this
	// directory. Defaults to this directory.
	// ProjectRoot: ".",

	// Build root, relative to the project root.
	BuildRoot: "build",

	// Options for every cell. They come before the build type flag and
	// the toolchain options, so toolchain options win.
	Options: [
		// "-GNinja",
	],

	// Cache variable that receives the build type, as in
	// -DBUILD_TYPE=release.
	// BuildTypeVar: "BUILD_TYPE",

	// Build description that must exist in the project root.
	// BuildFile: "CMakeLists.txt",

	// Extra environment for every cell.
	// Env: { CCACHE_DIR: "/tmp/ccache" },

	// Per toolchain settings. Executable overrides the configuration
	// tool; it defaults to cmake, or mingw64-cmake for cross-mingw64.
	Toolchains: {
		"gcc": {
			Options: [],
		},
		"clang": {
			Options: [],
		},
		"cross-mingw64": {
			// Executable: "mingw64-cmake",
			Options: [],
		},
	},

	// Exit with a non-zero code when any cell fails.
	Strict: false,
}
`

// WriteDefaultConfig writes DefaultConfig into dir. It does not replace an
// existing config unless force is set.
func WriteDefaultConfig(dir string, force bool) (string, error) {
	f := filepath.Join(dir, ConfigFile)
	if !force {
		if _, err := os.Stat(f); err == nil {
			return "", errcode.InvalidArgf("%q already exists", f)
		} else if !os.IsNotExist(err) {
			return "", errcode.Annotate(err, "check config file")
		}
	}
	if err := os.WriteFile(f, []byte(DefaultConfig), 0644); err != nil {
		return "", errcode.Annotate(err, "write config file")
	}
	return f, nil
}
