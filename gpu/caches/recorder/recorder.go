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

// Package recorder implements every collaborator interface in the caches
// package, and the host.Host interface, by recording the calls made to them.
// All collaborators in a Set share the same call log so the ordering of calls
// across collaborators can be checked.
//
// The package is intended for testing and for running the GPU without a host
// graphics context. It is safe to use from a single goroutine only.
package recorder

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/gpu/host"
	"github.com/jetsetilly/highgpu/gpu/invalidate"
)

// Log is the list of calls made to the collaborators in a Set. Each call is
// recorded as the collaborator name and method name separated by a dot. The
// arguments, if any, follow in parentheses.
type Log struct {
	calls []string
}

func (l *Log) record(name string, args ...any) {
	if len(args) == 0 {
		l.calls = append(l.calls, name)
		return
	}
	s := make([]string, len(args))
	for i, a := range args {
		s[i] = fmt.Sprintf("%v", a)
	}
	l.calls = append(l.calls, fmt.Sprintf("%s(%s)", name, strings.Join(s, ",")))
}

// Calls returns a copy of the list of recorded calls.
func (l *Log) Calls() []string {
	c := make([]string, len(l.calls))
	copy(c, l.calls)
	return c
}

// Count returns the number of recorded calls that begin with prefix.
func (l *Log) Count(prefix string) int {
	var n int
	for _, c := range l.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// Index returns the position of the first recorded call that begins with
// prefix. Returns -1 if there is no such call.
func (l *Log) Index(prefix string) int {
	for i, c := range l.calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

// Reset forgets all recorded calls.
func (l *Log) Reset() {
	l.calls = l.calls[:0]
}

func (l *Log) String() string {
	return strings.Join(l.calls, "; ")
}

// Set is a complete set of recording collaborators.
type Set struct {
	Log *Log

	Textures     *TextureCache
	Framebuffers *FramebufferManager
	Shaders      *ShaderManager
	Depal        *DepalShaderCache
	FragmentTest *FragmentTestCache
	Decoder      *VertexDecoder
	Engine       *DrawEngine
	Memory       *Memory
	Host         *Host
}

// NewSet is the preferred method of initialisation for the Set type.
func NewSet() *Set {
	l := &Log{}
	return &Set{
		Log:          l,
		Textures:     &TextureCache{log: l},
		Framebuffers: &FramebufferManager{log: l},
		Shaders:      &ShaderManager{log: l},
		Depal:        &DepalShaderCache{log: l},
		FragmentTest: &FragmentTestCache{log: l},
		Decoder:      &VertexDecoder{log: l, Size: 4},
		Engine:       &DrawEngine{log: l},
		Memory:       &Memory{log: l},
		Host:         &Host{log: l, SwapControl: true},
	}
}

// TextureCache implements the caches.TextureCache interface.
type TextureCache struct {
	log *Log
}

func (c *TextureCache) StartFrame() {
	c.log.record("tex.StartFrame")
}

func (c *TextureCache) Invalidate(addr uint32, size int, kind invalidate.Kind) {
	c.log.record("tex.Invalidate", fmt.Sprintf("%#08x", addr), size, kind)
}

func (c *TextureCache) InvalidateAll(kind invalidate.Kind) {
	c.log.record("tex.InvalidateAll", kind)
}

func (c *TextureCache) Clear(hard bool) {
	c.log.record("tex.Clear", hard)
}

func (c *TextureCache) Resolve(tex command.Texture) caches.Handle {
	c.log.record("tex.Resolve", fmt.Sprintf("%#08x", tex.Addr))
	return caches.Handle(tex.Addr>>8) + 1
}

// FramebufferManager implements the caches.FramebufferManager interface.
type FramebufferManager struct {
	log *Log

	// MayIntersectFramebuffer() returns true for addresses in this range
	Start uint32
	End   uint32

	// the value returned by NotifyFramebufferCopy()
	ServiceCopies bool
}

func (f *FramebufferManager) BeginFrame() {
	f.log.record("fbm.BeginFrame")
}

func (f *FramebufferManager) EndFrame() {
	f.log.record("fbm.EndFrame")
}

func (f *FramebufferManager) DestroyAllFBOs() {
	f.log.record("fbm.DestroyAllFBOs")
}

func (f *FramebufferManager) Resized() {
	f.log.record("fbm.Resized")
}

func (f *FramebufferManager) DeviceLost() {
	f.log.record("fbm.DeviceLost")
}

func (f *FramebufferManager) MayIntersectFramebuffer(addr uint32) bool {
	return addr >= f.Start && addr < f.End
}

func (f *FramebufferManager) UpdateFromMemory(addr uint32, size int, safe bool) {
	f.log.record("fbm.UpdateFromMemory", fmt.Sprintf("%#08x", addr), size, safe)
}

func (f *FramebufferManager) NotifyFramebufferCopy(src uint32, dst uint32, size int, isFill bool) bool {
	f.log.record("fbm.NotifyFramebufferCopy", fmt.Sprintf("%#08x", src), fmt.Sprintf("%#08x", dst), size, isFill)
	return f.ServiceCopies
}

func (f *FramebufferManager) NotifyStencilUpload(dst uint32, size int) {
	f.log.record("fbm.NotifyStencilUpload", fmt.Sprintf("%#08x", dst), size)
}

func (f *FramebufferManager) RebindFramebuffer() {
	f.log.record("fbm.RebindFramebuffer")
}

func (f *FramebufferManager) CopyDisplayToOutput() {
	f.log.record("fbm.CopyDisplayToOutput")
}

func (f *FramebufferManager) Resolve(fb command.Framebuf) caches.Handle {
	f.log.record("fbm.Resolve", fmt.Sprintf("%#08x", fb.Addr))
	return caches.Handle(fb.Addr>>8) + 1
}

func (f *FramebufferManager) SetRenderTarget(fbo caches.Handle) {
	f.log.record("fbm.SetRenderTarget", fbo)
}

// ShaderManager implements the caches.ShaderManager interface.
type ShaderManager struct {
	log *Log
}

func (s *ShaderManager) ClearCache(hard bool) {
	s.log.record("shader.ClearCache", hard)
}

func (s *ShaderManager) DirtyShader() {
	s.log.record("shader.DirtyShader")
}

func (s *ShaderManager) DirtyLastShader() {
	s.log.record("shader.DirtyLastShader")
}

func (s *ShaderManager) Apply(state command.DrawState, prim command.Type) caches.Handle {
	s.log.record("shader.Apply", prim)
	return caches.Handle(state.ShaderID&0xffff) + 1
}

// DepalShaderCache implements the caches.DepalShaderCache interface.
type DepalShaderCache struct {
	log *Log
}

func (d *DepalShaderCache) Decimate() {
	d.log.record("depal.Decimate")
}

func (d *DepalShaderCache) Clear() {
	d.log.record("depal.Clear")
}

// FragmentTestCache implements the caches.FragmentTestCache interface.
type FragmentTestCache struct {
	log *Log
}

func (f *FragmentTestCache) Clear(hard bool) {
	f.log.record("fragtest.Clear", hard)
}

// VertexDecoder implements the caches.VertexDecoder interface. Decoded
// vertices are a straight copy of the source vertices.
type VertexDecoder struct {
	log *Log

	// the value returned by VertexSize()
	Size int
}

func (v *VertexDecoder) VertexSize(format command.VertexFormat) int {
	return v.Size
}

func (v *VertexDecoder) Decode(format command.VertexFormat, src []byte, indices []byte, count int, dst []byte) []byte {
	v.log.record("decoder.Decode", count)
	return append(dst, src...)
}

// DrawEngine implements the caches.DrawEngine interface.
type DrawEngine struct {
	log *Log

	// every draw submitted to the engine
	Submitted []caches.Draw

	// the number of draws in Submitted at the time of each flush
	Flushed []int
}

func (e *DrawEngine) Submit(draw caches.Draw) {
	e.log.record("engine.Submit", draw.Prim, draw.Count)
	e.Submitted = append(e.Submitted, draw)
}

func (e *DrawEngine) Flush() {
	e.log.record("engine.Flush")
	e.Flushed = append(e.Flushed, len(e.Submitted))
}

// Memory implements the coherence.Memory interface. No memory is copied.
type Memory struct {
	log *Log

	// the value returned by Memcpy()
	Err error
}

func (m *Memory) Memcpy(dst uint32, src uint32, size int) error {
	m.log.record("mem.Memcpy", fmt.Sprintf("%#08x", dst), fmt.Sprintf("%#08x", src), size)
	return m.Err
}

// Host implements the host.Host interface.
type Host struct {
	log *Log

	// the value returned by SwapIntervalSupported()
	SwapControl bool

	// the values returned by String()
	Strings map[host.Name]string
}

func (h *Host) SetDepthWrite(enabled bool) {
	h.log.record("host.SetDepthWrite", enabled)
}

func (h *Host) SetColorMask(r, g, b, a bool) {
	h.log.record("host.SetColorMask", r, g, b, a)
}

func (h *Host) ClearColor(r, g, b, a float32) {
	h.log.record("host.ClearColor", r, g, b, a)
}

func (h *Host) Clear(color, depth, stencil bool) {
	h.log.record("host.Clear", color, depth, stencil)
}

func (h *Host) SetViewport(x, y, width, height int) {
	h.log.record("host.SetViewport", x, y, width, height)
}

func (h *Host) SwapIntervalSupported() bool {
	return h.SwapControl
}

func (h *Host) SetSwapInterval(interval int) {
	h.log.record("host.SetSwapInterval", interval)
}

func (h *Host) String(name host.Name) string {
	return h.Strings[name]
}
