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

// Package host defines the operations the graphics backend needs of the host
// graphics API. The package gl32 contains an OpenGL implementation.
//
// A Host must only be used by the goroutine that owns the host graphics
// context.
package host

// Name of a descriptive host string.
type Name int

// List of valid Name values.
const (
	Vendor Name = iota
	Renderer
	Version
	ShadingLanguageVersion
	Extensions
)

func (n Name) String() string {
	switch n {
	case Vendor:
		return "vendor"
	case Renderer:
		return "renderer"
	case Version:
		return "version"
	case ShadingLanguageVersion:
		return "shading language version"
	case Extensions:
		return "extensions"
	}
	return "unknown"
}

// Host is the host graphics API.
type Host interface {
	SetDepthWrite(enabled bool)
	SetColorMask(r, g, b, a bool)
	ClearColor(r, g, b, a float32)

	// Clear the buffers indicated by the arguments
	Clear(color, depth, stencil bool)

	SetViewport(x, y, width, height int)

	// SwapIntervalSupported returns true if the host has explicit control
	// over the swap interval. If it returns false then SetSwapInterval() does
	// nothing.
	SwapIntervalSupported() bool
	SetSwapInterval(interval int)

	// String returns a descriptive string from the host. The empty string is
	// returned if the host does not supply the value.
	String(name Name) string
}
