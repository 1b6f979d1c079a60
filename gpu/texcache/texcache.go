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

// Package texcache is an implementation of the caches.TextureCache interface.
// It tracks which textures have been uploaded to the host and whether the
// emulated memory backing them has changed. The upload itself is the job of
// an Uploader.
//
// Changes to memory are detected by hashing. A texture is only rehashed when
// it has been invalidated. A texture that has been invalidated with
// invalidate.All is uploaded again without comparing the hash.
package texcache

import (
	"github.com/cespare/xxhash"
	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/gpu/invalidate"
	"github.com/jetsetilly/highgpu/logger"
)

// DefaultKillAge is the number of frames an unused texture is kept for.
const DefaultKillAge = 200

// maximum number of times InvalidateAll() has an effect in a single frame
const maxInvalidateAllPerFrame = 5

// Memory is the emulated memory that textures are read from.
type Memory interface {
	Slice(addr uint32, size int) ([]byte, error)
}

// Uploader creates and deletes host textures.
type Uploader interface {
	// Upload the texture data. If existing is not caches.NoHandle then the
	// existing texture may be reused.
	Upload(tex command.Texture, data []byte, clut []byte, existing caches.Handle) caches.Handle

	Delete(h caches.Handle)
}

type status int

const (
	reliable status = iota
	rehash
	invalid
)

type entry struct {
	handle    caches.Handle
	hash      uint64
	lastFrame int
	status    status
}

// Cache implements the caches.TextureCache interface.
type Cache struct {
	mem      Memory
	uploader Uploader

	entries map[command.Texture]*entry
	frame   int

	invalidatedAll int

	// number of frames a texture can be unused before it is deleted
	KillAge int

	// statistics
	Uploads       int
	Invalidations int
}

// NewCache is the preferred method of initialisation for the Cache type.
func NewCache(mem Memory, uploader Uploader) *Cache {
	return &Cache{
		mem:      mem,
		uploader: uploader,
		entries:  make(map[command.Texture]*entry),
		KillAge:  DefaultKillAge,
	}
}

// clutSize returns the number of bytes in the colour lookup table used by
// the texture
func clutSize(tex command.Texture) int {
	if !tex.IsPaletted() {
		return 0
	}
	n := 256
	if tex.Format == command.TexFormatClut4 {
		n = 16
	}
	// clut format 3 is 32bit colour. the others are 16bit
	if tex.ClutFormat == 3 {
		return n * 4
	}
	return n * 2
}

func overlaps(tex command.Texture, addr uint32, size int) bool {
	end := uint64(addr) + uint64(size)
	if uint64(tex.Addr) < end && uint64(tex.Addr)+uint64(tex.Size()) > uint64(addr) {
		return true
	}
	if n := clutSize(tex); n > 0 {
		return uint64(tex.ClutAddr) < end && uint64(tex.ClutAddr)+uint64(n) > uint64(addr)
	}
	return false
}

func mark(e *entry, kind invalidate.Kind) {
	switch kind {
	case invalidate.All:
		e.status = invalid
	default:
		if e.status == reliable {
			e.status = rehash
		}
	}
}

// StartFrame implements the caches.TextureCache interface.
func (c *Cache) StartFrame() {
	c.frame++
	c.invalidatedAll = 0

	for k, e := range c.entries {
		if c.frame-e.lastFrame > c.KillAge {
			c.uploader.Delete(e.handle)
			delete(c.entries, k)
		}
	}
}

// Invalidate implements the caches.TextureCache interface.
func (c *Cache) Invalidate(addr uint32, size int, kind invalidate.Kind) {
	for k, e := range c.entries {
		if overlaps(k, addr, size) {
			mark(e, kind)
			c.Invalidations++
		}
	}
}

// InvalidateAll implements the caches.TextureCache interface.
func (c *Cache) InvalidateAll(kind invalidate.Kind) {
	// some software hints that everything has changed very frequently. after
	// a few times in a frame there is nothing to gain by doing it again.
	// safe and all invalidations are always honoured
	if kind == invalidate.Hint {
		if c.invalidatedAll >= maxInvalidateAllPerFrame {
			return
		}
		c.invalidatedAll++
	}

	for _, e := range c.entries {
		mark(e, kind)
	}
	c.Invalidations += len(c.entries)
}

// Clear implements the caches.TextureCache interface.
func (c *Cache) Clear(hard bool) {
	if hard {
		for _, e := range c.entries {
			c.uploader.Delete(e.handle)
		}
	}
	clear(c.entries)
}

func (c *Cache) read(tex command.Texture) ([]byte, []byte, uint64, error) {
	data, err := c.mem.Slice(tex.Addr, tex.Size())
	if err != nil {
		return nil, nil, 0, err
	}

	var clut []byte
	if n := clutSize(tex); n > 0 {
		clut, err = c.mem.Slice(tex.ClutAddr, n)
		if err != nil {
			return nil, nil, 0, err
		}
	}

	h := xxhash.New()
	_, _ = h.Write(data)
	_, _ = h.Write(clut)
	return data, clut, h.Sum64(), nil
}

// Resolve implements the caches.TextureCache interface.
func (c *Cache) Resolve(tex command.Texture) caches.Handle {
	e, ok := c.entries[tex]
	if ok && e.status == reliable {
		e.lastFrame = c.frame
		return e.handle
	}

	data, clut, hash, err := c.read(tex)
	if err != nil {
		logger.Logf(logger.Allow, "texcache", "%v", err)
		return caches.NoHandle
	}

	if !ok {
		e = &entry{}
		c.entries[tex] = e
	} else if e.status == rehash && e.hash == hash {
		e.status = reliable
		e.lastFrame = c.frame
		return e.handle
	}

	e.handle = c.uploader.Upload(tex, data, clut, e.handle)
	e.hash = hash
	e.status = reliable
	e.lastFrame = c.frame
	c.Uploads++

	return e.handle
}

// NumLoadedTextures implements the caches.TextureCounter interface.
func (c *Cache) NumLoadedTextures() int {
	return len(c.entries)
}
