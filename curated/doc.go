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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. Patterns that are checked for in this way should be
// stored as an exported const string, suitably named. For example:
//
//	const OutOfRange = "memory: address out of range (%#08x)"
//
//	e := curated.Errorf(OutOfRange, addr)
//
//	if curated.Is(e, OutOfRange) {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	f := curated.Errorf("gpu: %v", e)
//
//	curated.Has(f, OutOfRange) // true
//	curated.Is(f, OutOfRange)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of the difference between a curated and an
// uncurated error as being 'expected' and 'unexpected'.
//
// The Error() function implementation for curated errors ensures that the
// error chain is normalised. Specifically, that the chain does not contain
// duplicate adjacent parts. For the purposes of this package we think of
// chains as being composed of parts separated by the sub-string ': '.
//
//	gpu: gpu: not ready
//
// is normalised to
//
//	gpu: not ready
package curated
