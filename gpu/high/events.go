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
	"github.com/jetsetilly/highgpu/gpu/event"
	"github.com/jetsetilly/highgpu/logger"
)

// ProcessEvent performs the work for the event. Events are not queued. The
// function returns false if the event type is not recognised.
func (g *GPU) ProcessEvent(ev event.Event) bool {
	cfg := g.config()

	switch ev.Type {
	case event.InitClear:
		if !cfg.RenderingMode.PreservesBackbuffer() {
			g.host.SetDepthWrite(true)
			g.host.SetColorMask(true, true, true, true)
			g.host.ClearColor(0, 0, 0, 1)
			g.host.Clear(true, true, true)
		}
		g.host.SetViewport(0, 0, cfg.PixelWidth, cfg.PixelHeight)

	case event.BeginFrame:
		g.lifecycle.VsyncPacing(cfg, g.resized)
		g.resized = false

		g.collab.Textures.StartFrame()
		g.collab.Depal.Decimate()

		if g.dumpNextFrame {
			logger.Log(logger.Allow, "high", "dumping this frame")
			g.dumpThisFrame = true
			g.dumpNextFrame = false
		} else if g.dumpThisFrame {
			g.dumpThisFrame = false
		}

		g.collab.Shaders.DirtyShader()
		g.collab.Framebuffers.BeginFrame()
		g.stats.Frames++
		g.meter.Frame()

	case event.CopyDisplayToOutput:
		g.collab.Framebuffers.RebindFramebuffer()
		g.collab.Shaders.DirtyLastShader()
		g.host.SetDepthWrite(true)
		g.host.SetColorMask(true, true, true, true)
		g.collab.Framebuffers.CopyDisplayToOutput()
		g.collab.Framebuffers.EndFrame()
		g.bindings.TextureChanged = true

	case event.InvalidateCache:
		g.coherence.InvalidateCache(cfg, ev.Invalidate.Addr, ev.Invalidate.Size, ev.Invalidate.Kind)

	case event.MemCopy:
		g.coherence.PerformMemoryCopy(cfg, ev.MemCopy.Dst, ev.MemCopy.Src, ev.MemCopy.Size)

	case event.MemSet:
		g.coherence.PerformMemorySet(cfg, ev.MemSet.Dst, ev.MemSet.Value, ev.MemSet.Size)

	case event.StencilUpload:
		g.coherence.PerformStencilUpload(ev.StencilUpload.Dst, ev.StencilUpload.Size)

	case event.Reinitialize:
		g.collab.Textures.Clear(true)
		g.collab.Depal.Clear()
		g.collab.Framebuffers.DestroyAllFBOs()
		g.collab.Framebuffers.Resized()

		// host texture names may be reused after a hard clear
		g.lastTexture = caches.NoHandle
		g.bindings.TextureChanged = true

	default:
		return false
	}

	g.stats.Events++
	return true
}
