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

// Package prefs facilitates the storage of preference values. Every pref type
// stores its value atomically so that a value can be set by one goroutine
// (eg. a user interface) and read by another (eg. the GPU goroutine).
//
// Values can be set with the native Go type or with a string. Hook functions
// can be registered with SetHookPre() and SetHookPost() which run either side
// of the value being stored.
//
// Persistence of values is not handled by this package.
package prefs
