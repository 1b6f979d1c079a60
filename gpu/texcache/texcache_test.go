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

package texcache_test

import (
	"testing"

	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/gpu/invalidate"
	"github.com/jetsetilly/highgpu/gpu/texcache"
	"github.com/jetsetilly/highgpu/memory"
	"github.com/jetsetilly/highgpu/test"
)

type uploader struct {
	next    caches.Handle
	uploads int
	deleted []caches.Handle
}

func (u *uploader) Upload(tex command.Texture, data []byte, clut []byte, existing caches.Handle) caches.Handle {
	u.uploads++
	if existing != caches.NoHandle {
		return existing
	}
	u.next++
	return u.next
}

func (u *uploader) Delete(h caches.Handle) {
	u.deleted = append(u.deleted, h)
}

var tex = command.Texture{
	Addr:   0x08100000,
	Stride: 16,
	Format: command.TexFormat8888,
	Width:  16,
	Height: 16,
}

func newCache() (*texcache.Cache, *uploader, *memory.Memory) {
	mem := memory.NewMemory()
	up := &uploader{}
	return texcache.NewCache(mem, up), up, mem
}

func TestResolve(t *testing.T) {
	c, up, _ := newCache()

	h := c.Resolve(tex)
	test.ExpectInequality(t, h, caches.NoHandle)
	test.ExpectEquality(t, up.uploads, 1)

	// same texture is not uploaded again
	test.ExpectEquality(t, c.Resolve(tex), h)
	test.ExpectEquality(t, up.uploads, 1)
	test.ExpectEquality(t, c.NumLoadedTextures(), 1)

	// a texture in a bad part of memory cannot be resolved
	bad := tex
	bad.Addr = 0x00000000
	test.ExpectEquality(t, c.Resolve(bad), caches.NoHandle)
	test.ExpectEquality(t, c.NumLoadedTextures(), 1)
}

func TestHintUnchanged(t *testing.T) {
	c, up, _ := newCache()
	h := c.Resolve(tex)

	// invalidated but memory has not changed
	c.Invalidate(tex.Addr, 64, invalidate.Hint)
	test.ExpectEquality(t, c.Resolve(tex), h)
	test.ExpectEquality(t, up.uploads, 1)

	// safe invalidation rehashes in the same way
	c.Invalidate(tex.Addr, 64, invalidate.Safe)
	test.ExpectEquality(t, c.Resolve(tex), h)
	test.ExpectEquality(t, up.uploads, 1)
}

func TestHintChanged(t *testing.T) {
	c, up, mem := newCache()
	h := c.Resolve(tex)

	test.DemandSuccess(t, mem.Write32(tex.Addr+16, 0xffffffff))
	c.Invalidate(tex.Addr+16, 4, invalidate.Safe)
	test.ExpectEquality(t, c.Resolve(tex), h)
	test.ExpectEquality(t, up.uploads, 2)
}

func TestInvalidateAll(t *testing.T) {
	c, up, _ := newCache()
	c.Resolve(tex)

	// uploaded again even though memory has not changed
	c.Invalidate(tex.Addr, 4, invalidate.All)
	c.Resolve(tex)
	test.ExpectEquality(t, up.uploads, 2)

	c.InvalidateAll(invalidate.All)
	c.Resolve(tex)
	test.ExpectEquality(t, up.uploads, 3)
}

func TestInvalidateAllLimit(t *testing.T) {
	c, up, _ := newCache()
	c.Resolve(tex)

	for i := 0; i < 5; i++ {
		c.InvalidateAll(invalidate.Hint)
		c.Resolve(tex)
	}
	test.ExpectEquality(t, up.uploads, 1)

	// further hints in the same frame are ignored
	c.InvalidateAll(invalidate.Hint)
	test.ExpectEquality(t, c.Invalidations, 5)

	c.InvalidateAll(invalidate.All)
	c.Resolve(tex)
	test.ExpectEquality(t, up.uploads, 2)

	c.InvalidateAll(invalidate.All)
	c.Resolve(tex)
	test.ExpectEquality(t, up.uploads, 3)

	// the limit is reset at the start of a frame
	c.StartFrame()
	c.InvalidateAll(invalidate.Hint)
	test.ExpectEquality(t, c.Invalidations, 8)
}

func TestInvalidateOutsideTexture(t *testing.T) {
	c, up, _ := newCache()
	c.Resolve(tex)

	c.Invalidate(tex.Addr+uint32(tex.Size()), 4, invalidate.All)
	c.Invalidate(tex.Addr-4, 4, invalidate.All)
	c.Resolve(tex)
	test.ExpectEquality(t, up.uploads, 1)
}

func TestClut(t *testing.T) {
	c, up, mem := newCache()

	paletted := command.Texture{
		Addr:       0x08100000,
		Stride:     16,
		Format:     command.TexFormatClut8,
		Width:      16,
		Height:     16,
		ClutAddr:   0x08200000,
		ClutFormat: 3,
	}
	c.Resolve(paletted)

	// changing the palette changes the texture
	test.DemandSuccess(t, mem.Write32(0x08200000+1020, 0x12345678))
	c.Invalidate(0x08200000+1020, 4, invalidate.Hint)
	c.Resolve(paletted)
	test.ExpectEquality(t, up.uploads, 2)
}

func TestKillAge(t *testing.T) {
	c, up, _ := newCache()
	c.KillAge = 2

	h := c.Resolve(tex)
	c.StartFrame()
	c.StartFrame()
	test.ExpectEquality(t, c.NumLoadedTextures(), 1)
	c.StartFrame()
	test.ExpectEquality(t, c.NumLoadedTextures(), 0)
	test.DemandEquality(t, len(up.deleted), 1)
	test.ExpectEquality(t, up.deleted[0], h)
}

func TestClear(t *testing.T) {
	c, up, _ := newCache()

	c.Resolve(tex)
	c.Clear(false)
	test.ExpectEquality(t, c.NumLoadedTextures(), 0)
	test.ExpectEquality(t, len(up.deleted), 0)

	c.Resolve(tex)
	c.Clear(true)
	test.ExpectEquality(t, c.NumLoadedTextures(), 0)
	test.ExpectEquality(t, len(up.deleted), 1)
}
