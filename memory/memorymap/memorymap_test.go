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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/highgpu/memory/memorymap"
	"github.com/jetsetilly/highgpu/test"
)

func TestAreas(t *testing.T) {
	tests := []struct {
		addr   uint32
		area   memorymap.Area
		offset uint32
	}{
		{addr: 0x00010000, area: memorymap.Scratchpad, offset: 0},
		{addr: 0x00013fff, area: memorymap.Scratchpad, offset: 0x3fff},
		{addr: 0x00014000, area: memorymap.Undefined},
		{addr: 0x04000000, area: memorymap.VRAM, offset: 0},
		{addr: 0x04088000, area: memorymap.VRAM, offset: 0x88000},
		{addr: 0x04488000, area: memorymap.VRAM, offset: 0x88000},
		{addr: 0x44088000, area: memorymap.VRAM, offset: 0x88000},
		{addr: 0x04800000, area: memorymap.Undefined},
		{addr: 0x08000000, area: memorymap.RAM, offset: 0},
		{addr: 0x48804000, area: memorymap.RAM, offset: 0x804000},
		{addr: 0x89ffffff, area: memorymap.RAM, offset: 0x1ffffff},
		{addr: 0x0a000000, area: memorymap.Undefined},
		{addr: 0x00000000, area: memorymap.Undefined},
	}

	for _, tt := range tests {
		offset, area := memorymap.MapAddress(tt.addr)
		test.ExpectEquality(t, area, tt.area, tt.addr)
		if area != memorymap.Undefined {
			test.ExpectEquality(t, offset, tt.offset, tt.addr)
		}
		test.ExpectEquality(t, memorymap.IsValidAddress(tt.addr), tt.area != memorymap.Undefined, tt.addr)
	}
}

func TestValidRange(t *testing.T) {
	test.ExpectSuccess(t, memorymap.IsValidRange(0x04000000, 0x1000))
	test.ExpectSuccess(t, memorymap.IsValidRange(0x04000000, int(memorymap.SizeVRAM)))
	test.ExpectFailure(t, memorymap.IsValidRange(0x04000000, int(memorymap.SizeVRAM)+1))
	test.ExpectFailure(t, memorymap.IsValidRange(0x041ff000, 0x2000))
	test.ExpectSuccess(t, memorymap.IsValidRange(0x08000000, 0))
	test.ExpectFailure(t, memorymap.IsValidRange(0x08000000, -1))
	test.ExpectFailure(t, memorymap.IsValidRange(0x00000000, 4))
}

func TestVRAMMirror(t *testing.T) {
	test.ExpectSuccess(t, memorymap.IsVRAMMirror(0x04000000, 0x04400000))
	test.ExpectSuccess(t, memorymap.IsVRAMMirror(0x04400000, 0x04000000))
	test.ExpectSuccess(t, memorymap.IsVRAMMirror(0x04088000, 0x04488000))
	test.ExpectFailure(t, memorymap.IsVRAMMirror(0x04088000, 0x04088000))
	test.ExpectFailure(t, memorymap.IsVRAMMirror(0x04088000, 0x04288000))
	test.ExpectFailure(t, memorymap.IsVRAMMirror(0x08000000, 0x08400000))
}
