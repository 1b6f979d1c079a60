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

// Package invalidate defines the kinds of cache invalidation that can be
// requested of the graphics backend.
package invalidate

// Kind of invalidation.
type Kind int

// List of valid Kind values.
const (
	// All forces the unconditional invalidation of the region.
	All Kind = iota

	// Hint is an optimistic notice that the region may have changed. A cache
	// may choose to verify the contents before discarding anything.
	Hint

	// Safe is a conservative request. It must always be honoured regardless
	// of any optimisation preferences.
	Safe
)

func (k Kind) String() string {
	switch k {
	case All:
		return "all"
	case Hint:
		return "hint"
	case Safe:
		return "safe"
	}
	return "unknown"
}
