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

// Package memorymap describes the layout of the console address space. The
// address space is sparse. Only three areas are backed by memory: the
// scratchpad, video memory (VRAM) and main memory (RAM).
//
// The top two bits of an address select between the cached, uncached and
// kernel views of the same memory. MapAddress() discards these bits.
//
// VRAM is mirrored. The four 2MiB mirrors in the region 0x04000000 to
// 0x047fffff all refer to the same physical memory. Games use the mirror at
// VRAMMirrorOffset to upload/download framebuffer data and, because the
// memory is identical, a copy between an address and its mirror does not
// change anything.
package memorymap
