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

// Package paths contains functions to prepare paths for highgpu resources.
//
// The ResourcePath() function modifies the supplied resource string such
// that it is prepended with the appropriate config directory. A local
// ".highgpu" directory in the current working directory takes precedence
// over the user's config directory.
//
// UniqueFilename() creates a file name, without path or extension, that is
// unlikely to collide with an existing file. It is used for frame dumps.
package paths
