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

// DrawState is the subset of console GPU state that determines which shader
// program and fixed function state a draw requires. The fields are the raw
// register values and are interpreted by the shader manager.
type DrawState struct {
	// hash of the registers that affect shader selection
	ShaderID uint64

	// raw register values needed by the shader manager. the meaning of each
	// register is not the concern of this package
	Registers [16]uint32
}

// Framebuf describes a framebuffer in emulated memory.
type Framebuf struct {
	Addr    uint32
	Stride  int
	Format  int
	Width   int
	Height  int
	ZAddr   uint32
	ZStride int
}

// Texture describes a texture in emulated memory.
type Texture struct {
	Addr       uint32
	Stride     int
	Format     int
	Width      int
	Height     int
	ClutAddr   uint32
	ClutFormat int
}

// Size returns the number of bytes of emulated memory occupied by the
// texture data. The bits per pixel are determined by the texture format.
func (tex Texture) Size() int {
	var bpp int
	switch tex.Format {
	case TexFormat4444, TexFormat5551, TexFormat565:
		bpp = 16
	case TexFormat8888:
		bpp = 32
	case TexFormatClut4:
		bpp = 4
	case TexFormatClut8:
		bpp = 8
	case TexFormatClut16:
		bpp = 16
	case TexFormatClut32:
		bpp = 32
	default:
		// compressed formats are 4 or 8 bits per pixel. using 8 errs on the
		// side of caution
		bpp = 8
	}
	return tex.Stride * tex.Height * bpp / 8
}

// IsPaletted returns true if the texture is indexed into a colour lookup
// table (CLUT).
func (tex Texture) IsPaletted() bool {
	return tex.Format >= TexFormatClut4 && tex.Format <= TexFormatClut32
}

// List of texture formats.
const (
	TexFormat565 = iota
	TexFormat5551
	TexFormat4444
	TexFormat8888
	TexFormatClut4
	TexFormatClut8
	TexFormatClut16
	TexFormatClut32
	TexFormatDXT1
	TexFormatDXT3
	TexFormatDXT5
)

// BoneSet is the set of skinning matrices used by a draw. Each matrix is 4x3
// in row-major order.
type BoneSet struct {
	Matrices [][12]float32
}

// Packet is an ordered sequence of commands and the tables they refer to.
type Packet struct {
	Commands  []Command
	States    []DrawState
	Framebufs []Framebuf
	Textures  []Texture
	BoneSets  []BoneSet
}

// Validate checks that every command refers to existing table entries. It
// returns an error describing the first bad command.
func (p *Packet) Validate() error {
	for i, cmd := range p.Commands {
		if cmd.Type == Sync {
			continue
		}
		if !cmd.Type.IsDraw() {
			return fmt.Errorf("command: %d: unknown type (%d)", i, cmd.Type)
		}
		if cmd.State < 0 || cmd.State >= len(p.States) {
			return fmt.Errorf("command: %d: state index out of range (%d)", i, cmd.State)
		}
		if cmd.Framebuf < 0 || cmd.Framebuf >= len(p.Framebufs) {
			return fmt.Errorf("command: %d: framebuffer index out of range (%d)", i, cmd.Framebuf)
		}
		if cmd.Texture != NoTexture && (cmd.Texture < 0 || cmd.Texture >= len(p.Textures)) {
			return fmt.Errorf("command: %d: texture index out of range (%d)", i, cmd.Texture)
		}
		if cmd.Bones != NoBones && (cmd.Bones < 0 || cmd.Bones >= len(p.BoneSets)) {
			return fmt.Errorf("command: %d: bone set index out of range (%d)", i, cmd.Bones)
		}
	}
	return nil
}

// String returns a multi-line description of the packet. One line for every
// command.
func (p *Packet) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("packet: %d commands, %d states, %d framebufs, %d textures, %d bone sets\n",
		len(p.Commands), len(p.States), len(p.Framebufs), len(p.Textures), len(p.BoneSets)))
	for i, cmd := range p.Commands {
		s.WriteString(fmt.Sprintf("%4d: %s\n", i, cmd))
	}
	return s.String()
}
