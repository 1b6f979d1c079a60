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

package high

import (
	"encoding/binary"
	"strings"

	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/logger"
)

// prepared is the result of the first two passes for a single command
type prepared struct {
	skip bool

	framebuf caches.Handle
	texture  caches.Handle

	// range of the decoded vertices in the working buffer
	start int
	end   int
	count int

	bones [][12]float32
}

// Execute the packet. Returns when every draw in the packet has been
// submitted to the draw engine and the engine has been flushed.
//
// Draws that refer to memory outside of the emulated address space are
// skipped. A packet that refers to table entries that do not exist is not
// executed at all.
func (g *GPU) Execute(p *command.Packet) {
	g.printCommandPacket(p)

	if err := p.Validate(); err != nil {
		logger.Logf(logger.Allow, "high", "packet not executed: %v", err)
		return
	}

	g.stats.Packets++

	if cap(g.prepared) < len(p.Commands) {
		g.prepared = make([]prepared, len(p.Commands))
	}
	g.prepared = g.prepared[:len(p.Commands)]
	clear(g.prepared)

	g.resolveResources(p)
	g.decodeGeometry(p)
	g.submit(p)
}

func (g *GPU) printCommandPacket(p *command.Packet) {
	if !g.dumpThisFrame {
		return
	}
	if g.dumper == nil {
		for _, l := range strings.Split(strings.TrimSpace(p.String()), "\n") {
			logger.Log(logger.Allow, "dump", l)
		}
		return
	}
	if err := g.dumper.Packet(p); err != nil {
		logger.Log(logger.Allow, "high", err)
	}
}

// pass 1. resolve every framebuffer and texture used by the packet. each
// table entry is resolved at most once
func (g *GPU) resolveResources(p *command.Packet) {
	framebufs := make([]caches.Handle, len(p.Framebufs))
	textures := make([]caches.Handle, len(p.Textures))
	fbDone := make([]bool, len(p.Framebufs))
	texDone := make([]bool, len(p.Textures))

	for i, cmd := range p.Commands {
		if !cmd.Type.IsDraw() {
			continue
		}

		if !fbDone[cmd.Framebuf] {
			framebufs[cmd.Framebuf] = g.collab.Framebuffers.Resolve(p.Framebufs[cmd.Framebuf])
			fbDone[cmd.Framebuf] = true
		}
		g.prepared[i].framebuf = framebufs[cmd.Framebuf]

		if cmd.Texture == command.NoTexture {
			continue
		}
		if !texDone[cmd.Texture] {
			textures[cmd.Texture] = g.collab.Textures.Resolve(p.Textures[cmd.Texture])
			texDone[cmd.Texture] = true
		}
		g.prepared[i].texture = textures[cmd.Texture]
	}
}

// numVertices returns the number of vertices in memory that are referred to
// by the indices
func numVertices(indices []byte, size int) int {
	var mx uint32
	for i := 0; i+size <= len(indices); i += size {
		var v uint32
		switch size {
		case 1:
			v = uint32(indices[i])
		case 2:
			v = uint32(binary.LittleEndian.Uint16(indices[i:]))
		case 4:
			v = binary.LittleEndian.Uint32(indices[i:])
		}
		if v > mx {
			mx = v
		}
	}
	return int(mx) + 1
}

// pass 2. decode the vertices of every draw into the working buffer and
// collect the skinning matrices
func (g *GPU) decodeGeometry(p *command.Packet) {
	g.decoded = g.decoded[:0]

	for i, cmd := range p.Commands {
		if !cmd.Type.IsDraw() {
			continue
		}

		pr := &g.prepared[i]
		v := cmd.Vertices

		if v.Count <= 0 {
			pr.skip = true
			continue
		}

		var indices []byte
		n := v.Count
		if sz := v.Format.IndexSize(); sz > 0 {
			var err error
			indices, err = g.mem.Slice(v.IndexAddr, v.Count*sz)
			if err != nil {
				logger.Logf(logger.Allow, "high", "draw %d skipped: indices: %v", i, err)
				pr.skip = true
				continue
			}
			n = numVertices(indices, sz)
		}

		src, err := g.mem.Slice(v.Addr, n*g.collab.Decoder.VertexSize(v.Format))
		if err != nil {
			logger.Logf(logger.Allow, "high", "draw %d skipped: vertices: %v", i, err)
			pr.skip = true
			continue
		}

		pr.start = len(g.decoded)
		g.decoded = g.collab.Decoder.Decode(v.Format, src, indices, v.Count, g.decoded)
		pr.end = len(g.decoded)
		pr.count = v.Count

		if cmd.Bones != command.NoBones {
			pr.bones = p.BoneSets[cmd.Bones].Matrices
		}
	}
}

// pass 3. submit the draws in order. a sync command flushes everything
// submitted before it
func (g *GPU) submit(p *command.Packet) {
	lastFramebuf := caches.NoHandle

	for i, cmd := range p.Commands {
		if cmd.Type == command.Sync {
			g.collab.Engine.Flush()
			g.stats.Flushes++
			continue
		}

		pr := &g.prepared[i]
		if pr.skip {
			g.stats.Skipped++
			continue
		}

		state := &p.States[cmd.State]
		program := g.collab.Shaders.Apply(*state, cmd.Type)

		if pr.framebuf != lastFramebuf {
			g.collab.Framebuffers.SetRenderTarget(pr.framebuf)
			lastFramebuf = pr.framebuf
		}

		changed := g.bindings.TextureChanged || pr.texture != g.lastTexture
		g.bindings.TextureChanged = false
		g.lastTexture = pr.texture

		g.collab.Engine.Submit(caches.Draw{
			Prim:           cmd.Type,
			Program:        program,
			Framebuf:       pr.framebuf,
			Texture:        pr.texture,
			Vertices:       g.decoded[pr.start:pr.end],
			Count:          pr.count,
			Bones:          pr.bones,
			State:          state,
			TextureChanged: changed,
		})
		g.stats.Draws++
	}

	g.collab.Engine.Flush()
	g.stats.Flushes++
}
