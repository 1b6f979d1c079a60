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

// Package coherence keeps the GPU-side caches consistent with emulated
// memory. The emulation writes to memory freely and then notifies the GPU
// through invalidation, copy and fill events. The Manager type translates
// those notifications into actions on the texture cache and the framebuffer
// manager.
//
// The Manager must only be used from the goroutine that owns the host
// graphics context.
package coherence

import (
	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/config"
	"github.com/jetsetilly/highgpu/gpu/invalidate"
	"github.com/jetsetilly/highgpu/logger"
	"github.com/jetsetilly/highgpu/memory/memorymap"
)

// Memory is the emulated memory that raw copies are performed on.
type Memory interface {
	Memcpy(dst uint32, src uint32, size int) error
}

// Manager is the coherence core of the GPU.
type Manager struct {
	textures     caches.TextureCache
	framebuffers caches.FramebufferManager
	mem          Memory
}

// NewManager is the preferred method of initialisation for the Manager type.
func NewManager(textures caches.TextureCache, framebuffers caches.FramebufferManager, mem Memory) *Manager {
	return &Manager{
		textures:     textures,
		framebuffers: framebuffers,
		mem:          mem,
	}
}

// InvalidateCache marks the region [addr, addr+size) as stale. A size of zero
// invalidates the entire texture cache.
//
// Framebuffers overlapping the region are refreshed from memory unless the
// kind is invalidate.All. When block transfers are performed by the
// framebuffer manager then only invalidate.Safe causes a refresh.
func (m *Manager) InvalidateCache(cfg config.Config, addr uint32, size int, kind invalidate.Kind) {
	if size > 0 {
		m.textures.Invalidate(addr, size, kind)
	} else {
		m.textures.InvalidateAll(kind)
	}

	if kind == invalidate.All {
		return
	}

	if !m.framebuffers.MayIntersectFramebuffer(addr) {
		return
	}

	if !cfg.BlockTransferGPU || kind == invalidate.Safe {
		m.framebuffers.UpdateFromMemory(addr, size, kind == invalidate.Safe)
	}
}

// PerformMemoryCopy copies size bytes from src to dst. The framebuffer
// manager is given the chance to perform the copy itself. The destination is
// always invalidated afterwards with invalidate.Hint.
func (m *Manager) PerformMemoryCopy(cfg config.Config, dst uint32, src uint32, size int) {
	if !m.framebuffers.NotifyFramebufferCopy(src, dst, size, false) {
		// the source and destination are the same physical memory
		if !memorymap.IsVRAMMirror(dst, src) {
			err := m.mem.Memcpy(dst, src, size)
			if err != nil {
				logger.Logf(logger.Allow, "coherence", "memcpy: %v", err)
			}
		}
	}
	m.InvalidateCache(cfg, dst, size, invalidate.Hint)
}

// PerformMemorySet fills size bytes at dst. Only the framebuffer manager
// performs fills. If it declines then memory is not written and the
// destination is invalidated with invalidate.Hint.
func (m *Manager) PerformMemorySet(cfg config.Config, dst uint32, v uint8, size int) {
	if !m.framebuffers.NotifyFramebufferCopy(dst, dst, size, true) {
		m.InvalidateCache(cfg, dst, size, invalidate.Hint)
	}
}

// PerformStencilUpload forwards the upload to the framebuffer manager.
func (m *Manager) PerformStencilUpload(dst uint32, size int) {
	m.framebuffers.NotifyStencilUpload(dst, size)
}
