// This file is part of highgpu.
//
// highgpu is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// highgpu is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with highgpu.  If not, see <https://www.gnu.org/licenses/>.

// Package version reports the version of the highgpu module that has been
// built into the running program.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the backend.
const ApplicationName = "highgpu"

// ModulePath is the import path of the module.
const ModulePath = "github.com/jetsetilly/highgpu"

var version string
var revision string

// Version returns the version string and the revision string.
//
// If the module is a dependency of the running program then the version is
// the version of the dependency. If the module is the main module then the
// version is "unreleased" and the revision is the vcs revision, if
// available. If there is no build information at all then the version is
// "local".
func Version() (string, string) {
	return version, revision
}

func init() {
	version, revision = fromBuildInfo(debug.ReadBuildInfo())
}

func fromBuildInfo(info *debug.BuildInfo, ok bool) (string, string) {
	if !ok {
		return "local", "no revision information"
	}

	for _, d := range info.Deps {
		if d.Path == ModulePath {
			return d.Version, "no revision information"
		}
	}

	var vcsRevision string
	var vcsModified bool
	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.revision":
			vcsRevision = v.Value
		case "vcs.modified":
			vcsModified = v.Value == "true"
		}
	}

	if vcsRevision == "" {
		return "unreleased", "no revision information"
	}
	if vcsModified {
		vcsRevision = fmt.Sprintf("%s+dirty", vcsRevision)
	}
	return "unreleased", vcsRevision
}
