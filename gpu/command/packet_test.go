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

package command_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/test"
)

func newPacket() *command.Packet {
	return &command.Packet{
		States:    []command.DrawState{{ShaderID: 1}},
		Framebufs: []command.Framebuf{{Addr: 0x04000000, Stride: 512, Width: 480, Height: 272}},
		Textures:  []command.Texture{{Addr: 0x04100000, Stride: 256, Width: 256, Height: 256, Format: command.TexFormat8888}},
		BoneSets:  []command.BoneSet{{Matrices: make([][12]float32, 2)}},
	}
}

func TestValidate(t *testing.T) {
	p := newPacket()
	p.Commands = []command.Command{
		{Type: command.DrawTriangles, Texture: 0, Bones: command.NoBones},
		{Type: command.Sync},
		{Type: command.DrawLines, Texture: command.NoTexture, Bones: 0},
	}
	test.ExpectSuccess(t, p.Validate())

	p.Commands = append(p.Commands, command.Command{Type: command.DrawPoints, Texture: 1, Bones: command.NoBones})
	test.ExpectFailure(t, p.Validate())

	p.Commands[3] = command.Command{Type: command.DrawPoints, Framebuf: 2, Texture: command.NoTexture, Bones: command.NoBones}
	test.ExpectFailure(t, p.Validate())

	p.Commands[3] = command.Command{Type: command.Type(99)}
	test.ExpectFailure(t, p.Validate())
}

func TestPacketString(t *testing.T) {
	p := newPacket()
	p.Commands = []command.Command{
		{Type: command.DrawTriangles, Texture: 0, Bones: command.NoBones, Vertices: command.Vertices{Addr: 0x08800000, Count: 3}},
		{Type: command.Sync},
	}
	s := strings.Split(strings.TrimSpace(p.String()), "\n")
	test.DemandEquality(t, len(s), 3)
	test.ExpectEquality(t, s[2], "   1: sync")
	test.ExpectSuccess(t, strings.Contains(s[1], "tri state=0 fb=0 tex=0"))
}

func TestTextureSize(t *testing.T) {
	tex := command.Texture{Stride: 256, Height: 128, Format: command.TexFormat8888}
	test.ExpectEquality(t, tex.Size(), 256*128*4)
	tex.Format = command.TexFormatClut4
	test.ExpectEquality(t, tex.Size(), 256*128/2)
	test.ExpectSuccess(t, tex.IsPaletted())
	tex.Format = command.TexFormat565
	test.ExpectFailure(t, tex.IsPaletted())
}

func TestVertexFormat(t *testing.T) {
	var f command.VertexFormat
	test.ExpectEquality(t, f.IndexSize(), 0)
	test.ExpectFailure(t, f.HasWeights())

	f = 2<<11 | 1<<9 | 3<<14
	test.ExpectEquality(t, f.IndexSize(), 2)
	test.ExpectEquality(t, f.NumWeights(), 4)

	f = 3 << 11
	test.ExpectEquality(t, f.IndexSize(), 4)
}
