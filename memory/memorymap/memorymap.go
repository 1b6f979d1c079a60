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

package memorymap

// Area represents the different areas of memory.
type Area int

// The different areas of memory.
const (
	Undefined Area = iota
	Scratchpad
	VRAM
	RAM
)

func (a Area) String() string {
	switch a {
	case Scratchpad:
		return "scratchpad"
	case VRAM:
		return "VRAM"
	case RAM:
		return "RAM"
	}
	return "undefined"
}

// The origin and size of each area of memory.
const (
	OriginScratchpad = uint32(0x00010000)
	SizeScratchpad   = uint32(0x00004000)
	OriginVRAM       = uint32(0x04000000)
	SizeVRAM         = uint32(0x00200000)
	OriginRAM        = uint32(0x08000000)
	SizeRAM          = uint32(0x02000000)
)

// SegmentMask removes the bits that select the cached, uncached or kernel
// view of an address.
const SegmentMask = uint32(0x3fffffff)

// VRAMMirrorOffset is the distance between an address in VRAM and the mirrored
// address used by games to upload and download framebuffer data.
const VRAMMirrorOffset = uint32(0x00400000)

// masks used to identify the area of an address. the VRAM mask covers all four
// mirrors.
const (
	maskScratchpad = uint32(0x3fff0000)
	maskVRAM       = uint32(0x3f800000)
	maskRAM        = uint32(0x3e000000)
)

// IsVRAMAddress returns true if the address is in VRAM or one of its mirrors.
func IsVRAMAddress(addr uint32) bool {
	return addr&maskVRAM == OriginVRAM
}

// IsRAMAddress returns true if the address is in main memory.
func IsRAMAddress(addr uint32) bool {
	return addr&maskRAM == OriginRAM
}

// IsScratchpadAddress returns true if the address is in the scratchpad.
func IsScratchpadAddress(addr uint32) bool {
	return addr&maskScratchpad == OriginScratchpad && addr&SegmentMask-OriginScratchpad < SizeScratchpad
}

// IsValidAddress returns true if the address refers to backed memory.
func IsValidAddress(addr uint32) bool {
	return IsRAMAddress(addr) || IsVRAMAddress(addr) || IsScratchpadAddress(addr)
}

// MapAddress translates the address argument to an offset into the area
// of memory it refers to. VRAM mirrors all map to the same offset. Returns
// the Undefined area if the address is not backed by memory.
func MapAddress(addr uint32) (uint32, Area) {
	switch {
	case IsVRAMAddress(addr):
		return addr & (SizeVRAM - 1), VRAM
	case IsRAMAddress(addr):
		return addr & (SizeRAM - 1), RAM
	case IsScratchpadAddress(addr):
		return addr&SegmentMask - OriginScratchpad, Scratchpad
	}
	return 0, Undefined
}

// AreaSize returns the number of bytes backing the area.
func AreaSize(area Area) uint32 {
	switch area {
	case Scratchpad:
		return SizeScratchpad
	case VRAM:
		return SizeVRAM
	case RAM:
		return SizeRAM
	}
	return 0
}

// IsValidRange returns true if the entire range [addr, addr+size) is backed
// by a single contiguous area of memory. A range that crosses the boundary
// of a VRAM mirror is not valid.
func IsValidRange(addr uint32, size int) bool {
	if size < 0 {
		return false
	}
	offset, area := MapAddress(addr)
	if area == Undefined {
		return false
	}
	return uint64(offset)+uint64(size) <= uint64(AreaSize(area))
}

// IsVRAMMirror returns true if dst is a VRAM address and src is the same
// address in the mirror at VRAMMirrorOffset. The two addresses refer to the
// same physical memory.
func IsVRAMMirror(dst uint32, src uint32) bool {
	return IsVRAMAddress(dst) && dst^VRAMMirrorOffset == src
}
