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

package command

import (
	"fmt"
	"strings"
)

// VertexFormat describes the layout of vertex data in emulated memory. The
// bit layout follows the vertex type register of the console GPU.
type VertexFormat uint32

// List of bit fields in VertexFormat.
const (
	FormatTexMask    VertexFormat = 0x3 << 0
	FormatColorMask  VertexFormat = 0x7 << 2
	FormatNormalMask VertexFormat = 0x3 << 5
	FormatPosMask    VertexFormat = 0x3 << 7
	FormatWeightMask VertexFormat = 0x3 << 9
	FormatIndexMask  VertexFormat = 0x3 << 11
	FormatWeightNum  VertexFormat = 0x7 << 14
	FormatThrough    VertexFormat = 0x1 << 23
)

// IndexSize returns the number of bytes used by each index. A value of zero
// indicates that the vertices are not indexed.
func (f VertexFormat) IndexSize() int {
	switch (f & FormatIndexMask) >> 11 {
	case 1:
		return 1
	case 2:
		return 2
	case 3:
		return 4
	}
	return 0
}

// HasWeights returns true if the vertices carry skinning weights.
func (f VertexFormat) HasWeights() bool {
	return f&FormatWeightMask != 0
}

// NumWeights returns the number of skinning weights for each vertex.
func (f VertexFormat) NumWeights() int {
	if !f.HasWeights() {
		return 0
	}
	return int((f&FormatWeightNum)>>14) + 1
}

// HasTexCoords returns true if the vertices carry texture coordinates.
func (f VertexFormat) HasTexCoords() bool {
	return f&FormatTexMask != 0
}

// Through returns true if the vertices are in screen space and bypass the
// transform stage.
func (f VertexFormat) Through() bool {
	return f&FormatThrough != 0
}

func (f VertexFormat) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%06x", uint32(f)))
	if f.Through() {
		s.WriteString(" through")
	}
	if n := f.NumWeights(); n > 0 {
		s.WriteString(fmt.Sprintf(" weights=%d", n))
	}
	if n := f.IndexSize(); n > 0 {
		s.WriteString(fmt.Sprintf(" index=%d", n))
	}
	return s.String()
}

// Vertices identifies the vertex and index data for a draw command.
type Vertices struct {
	Addr      uint32
	IndexAddr uint32
	Count     int
	Format    VertexFormat
}
