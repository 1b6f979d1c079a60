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

// Package memory implements the emulated address space shared by the CPU
// emulation and the graphics backend.
//
// There is no locking. The CPU emulation may write to memory at any time and
// the graphics backend learns about those writes through later invalidation
// events.
package memory

import (
	"github.com/jetsetilly/highgpu/curated"
	"github.com/jetsetilly/highgpu/memory/memorymap"
)

// OutOfRange is the curated error pattern for memory accesses that fall
// outside of backed memory.
const OutOfRange = "memory: range out of bounds (%#08x, %d bytes)"

// Memory is the backing store for the emulated address space.
type Memory struct {
	Scratchpad []byte
	VRAM       []byte
	RAM        []byte
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() *Memory {
	return &Memory{
		Scratchpad: make([]byte, memorymap.SizeScratchpad),
		VRAM:       make([]byte, memorymap.SizeVRAM),
		RAM:        make([]byte, memorymap.SizeRAM),
	}
}

func (mem *Memory) area(area memorymap.Area) []byte {
	switch area {
	case memorymap.Scratchpad:
		return mem.Scratchpad
	case memorymap.VRAM:
		return mem.VRAM
	case memorymap.RAM:
		return mem.RAM
	}
	return nil
}

// Slice returns a view of the memory in the range [addr, addr+size). The
// returned slice shares the backing store so writes to it are writes to
// emulated memory.
func (mem *Memory) Slice(addr uint32, size int) ([]byte, error) {
	if !memorymap.IsValidRange(addr, size) {
		return nil, curated.Errorf(OutOfRange, addr, size)
	}
	offset, area := memorymap.MapAddress(addr)
	b := mem.area(area)
	if uint64(offset)+uint64(size) > uint64(len(b)) {
		return nil, curated.Errorf(OutOfRange, addr, size)
	}
	return b[offset : offset+uint32(size)], nil
}

// Memcpy copies size bytes from src to dst. Overlapping ranges are handled
// correctly. Nothing is copied if either range is out of bounds.
func (mem *Memory) Memcpy(dst uint32, src uint32, size int) error {
	s, err := mem.Slice(src, size)
	if err != nil {
		return err
	}
	d, err := mem.Slice(dst, size)
	if err != nil {
		return err
	}
	copy(d, s)
	return nil
}

// Memset fills size bytes at dst with the value v. Nothing is written if the
// range is out of bounds.
func (mem *Memory) Memset(dst uint32, v uint8, size int) error {
	d, err := mem.Slice(dst, size)
	if err != nil {
		return err
	}
	for i := range d {
		d[i] = v
	}
	return nil
}

// Read32 returns the little-endian word at addr.
func (mem *Memory) Read32(addr uint32) (uint32, error) {
	b, err := mem.Slice(addr, 4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// Write32 writes the little-endian word to addr.
func (mem *Memory) Write32(addr uint32, v uint32) error {
	b, err := mem.Slice(addr, 4)
	if err != nil {
		return err
	}
	b[0] = uint8(v)
	b[1] = uint8(v >> 8)
	b[2] = uint8(v >> 16)
	b[3] = uint8(v >> 24)
	return nil
}
