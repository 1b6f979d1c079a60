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

package high

import (
	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/diagnostics"
	"github.com/jetsetilly/highgpu/gpu/lifecycle"
)

// DumpNextFrame arms the dumping of every packet in the next frame.
func (g *GPU) DumpNextFrame() {
	g.dumpNextFrame = true
}

// Dumping returns true if packets in the current frame are being dumped.
func (g *GPU) Dumping() bool {
	return g.dumpThisFrame
}

// Resized should be called when the host display has changed size. The swap
// interval is reapplied at the start of the next frame.
func (g *GPU) Resized() {
	g.resized = true
}

// DeviceLost should be called when the host graphics context has been lost
// and recreated. It must be called from the goroutine that owns the GPU. See
// lifecycle.Controller.DeviceLost() for details.
func (g *GPU) DeviceLost() error {
	if err := g.lifecycle.DeviceLost(); err != nil {
		return err
	}

	// host implementations that shadow context state must reload it
	if h, ok := g.host.(interface{ DeviceLost() }); ok {
		h.DeviceLost()
	}

	g.lastTexture = caches.NoHandle
	g.lifecycle.VsyncPacing(g.config(), true)
	return nil
}

// Teardown releases all host resources. The GPU should not be used afterwards.
func (g *GPU) Teardown() {
	g.lifecycle.Teardown()
	g.lastTexture = caches.NoHandle
	g.bindings.TextureChanged = true
}

// DoState prepares the GPU for the saving or loading of a snapshot.
func (g *GPU) DoState(dir lifecycle.Direction) {
	g.lifecycle.SnapshotApply(dir, g.core.Frozen)
}

// ReportingInfo returns the description of the host graphics context.
func (g *GPU) ReportingInfo() diagnostics.ReportingInfo {
	return g.info
}

// Vsync returns the current pacing state.
func (g *GPU) Vsync() lifecycle.VsyncState {
	return g.lifecycle.Vsync()
}

// Stats is a summary of the work done by the GPU.
type Stats struct {
	Packets int
	Draws   int
	Skipped int
	Flushes int
	Events  int
	Frames  int

	// frame rate measured over recent frames
	FPS float64

	// these values are only filled in if the collaborator can count them.
	// otherwise the value is -1
	Textures     int
	Framebuffers int
	Programs     int
}

// Stats returns the current statistics.
func (g *GPU) Stats() Stats {
	s := g.stats
	s.Textures = -1
	s.Framebuffers = -1
	s.Programs = -1
	s.FPS, _ = g.meter.FPS()

	if c, ok := g.collab.Textures.(caches.TextureCounter); ok {
		s.Textures = c.NumLoadedTextures()
	}
	if c, ok := g.collab.Framebuffers.(caches.FramebufferCounter); ok {
		s.Framebuffers = c.NumVFBs()
	}
	if c, ok := g.collab.Shaders.(caches.ProgramCounter); ok {
		s.Programs = c.NumPrograms()
	}

	return s
}
