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

// Type of command.
type Type int

// List of valid command types.
const (
	DrawTriangles Type = iota
	DrawLines
	DrawPoints
	DrawRectangles

	// Sync is a full pipeline barrier. Everything sequenced before a sync
	// must be committed before anything sequenced after it begins.
	Sync
)

func (t Type) String() string {
	switch t {
	case DrawTriangles:
		return "tri"
	case DrawLines:
		return "line"
	case DrawPoints:
		return "point"
	case DrawRectangles:
		return "rect"
	case Sync:
		return "sync"
	}
	return "unknown"
}

// IsDraw returns true if the command type draws geometry.
func (t Type) IsDraw() bool {
	return t >= DrawTriangles && t <= DrawRectangles
}

// Table index values used when a command does not use a texture or does not
// use bone matrices.
const (
	NoTexture = -1
	NoBones   = -1
)

// Command is a single entry in a Packet.
type Command struct {
	Type Type

	// indexes into the packet tables
	State    int
	Framebuf int
	Texture  int
	Bones    int

	Vertices Vertices
}

func (cmd Command) String() string {
	if cmd.Type == Sync {
		return cmd.Type.String()
	}
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s state=%d fb=%d", cmd.Type, cmd.State, cmd.Framebuf))
	if cmd.Texture != NoTexture {
		s.WriteString(fmt.Sprintf(" tex=%d", cmd.Texture))
	}
	if cmd.Bones != NoBones {
		s.WriteString(fmt.Sprintf(" bones=%d", cmd.Bones))
	}
	s.WriteString(fmt.Sprintf(" verts=%#08x count=%d fmt=%s", cmd.Vertices.Addr, cmd.Vertices.Count, cmd.Vertices.Format))
	if cmd.Vertices.Format.IndexSize() > 0 {
		s.WriteString(fmt.Sprintf(" inds=%#08x", cmd.Vertices.IndexAddr))
	}
	return s.String()
}
