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

// Package caches defines the contracts of the resource caches used by the
// graphics backend. The caches own host GPU resources (textures, framebuffer
// objects, shader programs) and are keyed by descriptors derived from the
// console GPU state.
//
// The backend decides when caches are invalidated, cleared or destroyed. It
// never owns the lifetime of a host resource directly.
//
// Implementations must only be used by the goroutine that owns the host
// graphics context.
package caches

import (
	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/gpu/invalidate"
)

// Handle is an opaque reference to a host resource. The meaning of a handle
// is private to the cache that issued it.
type Handle uint32

// NoHandle indicates the absence of a resource.
const NoHandle Handle = 0

// TextureCache owns host textures created from texture data in emulated
// memory.
type TextureCache interface {
	// StartFrame advances the frame counter of the cache. Textures that have
	// not been used for some time may be released.
	StartFrame()

	// Invalidate marks textures overlapping the range [addr, addr+size) as
	// stale.
	Invalidate(addr uint32, size int, kind invalidate.Kind)

	// InvalidateAll marks every texture as stale.
	InvalidateAll(kind invalidate.Kind)

	// Clear forgets every texture. Host textures are deleted only if hard is
	// true. A soft clear is used when the host handles are already invalid.
	Clear(hard bool)

	// Resolve returns the host texture for the descriptor, creating or
	// refreshing it as required.
	Resolve(tex command.Texture) Handle
}

// FramebufferManager owns the host framebuffer objects (FBOs) that back
// emulated framebuffers.
type FramebufferManager interface {
	BeginFrame()
	EndFrame()
	DestroyAllFBOs()

	// Resized is called when the display dimensions or the backend options
	// have changed.
	Resized()

	// DeviceLost is called when the host graphics context has been lost. All
	// held host handles must be assumed to be invalid.
	DeviceLost()

	// MayIntersectFramebuffer returns true if the address may be inside the
	// memory backing a live framebuffer.
	MayIntersectFramebuffer(addr uint32) bool

	// UpdateFromMemory refreshes framebuffers in the range from emulated
	// memory.
	UpdateFromMemory(addr uint32, size int, safe bool)

	// NotifyFramebufferCopy offers a copy (or a fill if isFill is true) to
	// the manager. Returns true if the manager serviced the operation itself
	// (eg. with a blit). When it returns true emulated memory must not be
	// touched by the caller.
	NotifyFramebufferCopy(src uint32, dst uint32, size int, isFill bool) bool

	NotifyStencilUpload(dst uint32, size int)

	RebindFramebuffer()
	CopyDisplayToOutput()

	// Resolve returns the FBO for the framebuffer descriptor, creating it if
	// necessary.
	Resolve(fb command.Framebuf) Handle

	// SetRenderTarget binds the FBO for subsequent draws.
	SetRenderTarget(fbo Handle)
}

// ShaderManager owns the host shader programs.
type ShaderManager interface {
	// ClearCache forgets every program. Host programs are deleted only if
	// hard is true.
	ClearCache(hard bool)

	// DirtyShader forces the current program to be rebound on the next draw.
	DirtyShader()

	// DirtyLastShader forgets the most recently used program. Used when the
	// program binding may have been changed outside of the manager.
	DirtyLastShader()

	// Apply returns the program for the draw state and primitive, binding it
	// if necessary.
	Apply(state command.DrawState, prim command.Type) Handle
}

// DepalShaderCache owns the shaders used to convert paletted textures.
type DepalShaderCache interface {
	// Decimate releases shaders that have not been used recently. The
	// amount of work done by each call is bounded.
	Decimate()
	Clear()
}

// FragmentTestCache owns the lookup textures used to emulate fragment tests.
type FragmentTestCache interface {
	Clear(hard bool)
}

// VertexDecoder converts vertex data from the console layout into the host
// layout.
type VertexDecoder interface {
	// VertexSize returns the number of bytes in emulated memory occupied by
	// one vertex of the format.
	VertexSize(format command.VertexFormat) int

	// Decode count vertices from src, using the indices if they are not nil.
	// The decoded data is appended to dst and the extended slice returned.
	Decode(format command.VertexFormat, src []byte, indices []byte, count int, dst []byte) []byte
}

// Draw is a single draw submission. The Vertices field refers to the working
// buffer of the executor and is only valid for the duration of the Submit()
// call.
type Draw struct {
	Prim     command.Type
	Program  Handle
	Framebuf Handle
	Texture  Handle
	Vertices []byte
	Count    int
	Bones    [][12]float32
	State    *command.DrawState

	// the texture must be bound even if it is the same as the texture used
	// by the previous draw
	TextureChanged bool
}

// DrawEngine submits draws to the host.
type DrawEngine interface {
	Submit(draw Draw)

	// Flush commits every submitted draw. Nothing submitted after the flush
	// begins until the flush has completed
	Flush()
}

// Bindings is GPU state shared between the parts of the backend.
type Bindings struct {
	// the currently bound texture can no longer be assumed to be correct
	TextureChanged bool
}
