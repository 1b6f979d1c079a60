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

package caches

// TextureCounter is an optional interface for TextureCache implementations
// that can report the number of textures they hold.
type TextureCounter interface {
	NumLoadedTextures() int
}

// FramebufferCounter is an optional interface for FramebufferManager
// implementations.
type FramebufferCounter interface {
	NumVFBs() int
}

// ProgramCounter is an optional interface for ShaderManager implementations.
type ProgramCounter interface {
	NumPrograms() int
}
