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

package high_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/highgpu/assert"
	"github.com/jetsetilly/highgpu/curated"
	"github.com/jetsetilly/highgpu/gpu/caches/recorder"
	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/gpu/config"
	"github.com/jetsetilly/highgpu/gpu/dump"
	"github.com/jetsetilly/highgpu/gpu/event"
	"github.com/jetsetilly/highgpu/gpu/high"
	"github.com/jetsetilly/highgpu/gpu/invalidate"
	"github.com/jetsetilly/highgpu/gpu/lifecycle"
	"github.com/jetsetilly/highgpu/memory"
	"github.com/jetsetilly/highgpu/test"
)

func collaborators(set *recorder.Set) high.Collaborators {
	return high.Collaborators{
		Textures:     set.Textures,
		Framebuffers: set.Framebuffers,
		Shaders:      set.Shaders,
		Depal:        set.Depal,
		FragmentTest: set.FragmentTest,
		Decoder:      set.Decoder,
		Engine:       set.Engine,
	}
}

func newGPU(t *testing.T) (*high.GPU, *recorder.Set, *memory.Memory, *config.Preferences) {
	t.Helper()
	set := recorder.NewSet()
	mem := memory.NewMemory()
	prefs := config.NewPreferences()
	g, err := high.NewGPU(collaborators(set), set.Host, mem, prefs, config.Core{PixelWidth: 480, PixelHeight: 272})
	test.DemandSuccess(t, err)
	set.Log.Reset()
	return g, set, mem, prefs
}

func draw(typ command.Type, count int) command.Command {
	return command.Command{
		Type:    typ,
		Texture: command.NoTexture,
		Bones:   command.NoBones,
		Vertices: command.Vertices{
			Addr:  0x08000000,
			Count: count,
		},
	}
}

func packet(cmds ...command.Command) *command.Packet {
	return &command.Packet{
		Commands:  cmds,
		States:    []command.DrawState{{ShaderID: 1}},
		Framebufs: []command.Framebuf{{Addr: 0x04000000, Stride: 512, Width: 480, Height: 272}},
		Textures:  []command.Texture{{Addr: 0x08100000, Stride: 16, Format: command.TexFormat8888, Width: 16, Height: 16}},
	}
}

func TestNewGPU(t *testing.T) {
	set := recorder.NewSet()
	collab := collaborators(set)
	collab.Engine = nil
	_, err := high.NewGPU(collab, set.Host, memory.NewMemory(), config.NewPreferences(), config.Core{})
	test.ExpectFailure(t, err)

	_, err = high.NewGPU(collaborators(set), nil, memory.NewMemory(), config.NewPreferences(), config.Core{})
	test.ExpectFailure(t, err)
}

func TestExecuteOrder(t *testing.T) {
	g, set, _, _ := newGPU(t)

	g.Execute(packet(
		draw(command.DrawTriangles, 3),
		draw(command.DrawTriangles, 3),
		command.Command{Type: command.Sync},
		draw(command.DrawLines, 2),
	))

	test.ExpectEquality(t, set.Log.String(), strings.Join([]string{
		"fbm.Resolve(0x04000000)",
		"decoder.Decode(3)",
		"decoder.Decode(3)",
		"decoder.Decode(2)",
		"shader.Apply(tri)",
		"fbm.SetRenderTarget(262145)",
		"engine.Submit(tri,3)",
		"shader.Apply(tri)",
		"engine.Submit(tri,3)",
		"engine.Flush",
		"shader.Apply(line)",
		"engine.Submit(line,2)",
		"engine.Flush",
	}, "; "))

	// both triangles were submitted before the sync flush and the line was
	// submitted after it
	test.DemandEquality(t, len(set.Engine.Flushed), 2)
	test.ExpectEquality(t, set.Engine.Flushed[0], 2)
	test.ExpectEquality(t, set.Engine.Flushed[1], 3)

	stats := g.Stats()
	test.ExpectEquality(t, stats.Packets, 1)
	test.ExpectEquality(t, stats.Draws, 3)
	test.ExpectEquality(t, stats.Flushes, 2)
	test.ExpectEquality(t, stats.Textures, -1)
}

func TestExecuteResources(t *testing.T) {
	g, set, _, _ := newGPU(t)

	a := draw(command.DrawTriangles, 3)
	a.Texture = 0
	b := draw(command.DrawTriangles, 3)
	b.Texture = 0
	g.Execute(packet(a, b))

	// the texture is resolved once, before any draw is decoded
	test.ExpectEquality(t, set.Log.Count("tex.Resolve"), 1)
	test.ExpectEquality(t, set.Log.Count("fbm.Resolve"), 1)
	test.ExpectSuccess(t, set.Log.Index("tex.Resolve") < set.Log.Index("decoder.Decode"))

	test.DemandEquality(t, len(set.Engine.Submitted), 2)
	test.ExpectSuccess(t, set.Engine.Submitted[0].TextureChanged)
	test.ExpectFailure(t, set.Engine.Submitted[1].TextureChanged)
	test.ExpectEquality(t, set.Engine.Submitted[0].Texture, set.Engine.Submitted[1].Texture)

	// presenting the display means the next draw must rebind the texture
	test.ExpectSuccess(t, g.ProcessEvent(event.New(event.CopyDisplayToOutput)))
	set.Engine.Submitted = set.Engine.Submitted[:0]
	g.Execute(packet(a))
	test.DemandEquality(t, len(set.Engine.Submitted), 1)
	test.ExpectSuccess(t, set.Engine.Submitted[0].TextureChanged)
}

func TestExecuteBones(t *testing.T) {
	g, set, _, _ := newGPU(t)

	p := packet(draw(command.DrawTriangles, 3))
	p.BoneSets = []command.BoneSet{{Matrices: make([][12]float32, 8)}}
	p.Commands[0].Bones = 0
	g.Execute(p)

	test.DemandEquality(t, len(set.Engine.Submitted), 1)
	test.ExpectEquality(t, len(set.Engine.Submitted[0].Bones), 8)
}

func TestExecuteIndexed(t *testing.T) {
	g, set, mem, _ := newGPU(t)

	indices, err := mem.Slice(0x08010000, 6)
	test.DemandSuccess(t, err)
	copy(indices, []byte{0x00, 0x00, 0x05, 0x00, 0x02, 0x00})

	cmd := draw(command.DrawTriangles, 3)
	cmd.Vertices.IndexAddr = 0x08010000
	cmd.Vertices.Format = 2 << 11
	g.Execute(packet(cmd))

	// six vertices of four bytes each are needed to satisfy the indices
	test.DemandEquality(t, len(set.Engine.Submitted), 1)
	test.ExpectEquality(t, len(set.Engine.Submitted[0].Vertices), 24)
	test.ExpectEquality(t, set.Engine.Submitted[0].Count, 3)
}

func TestExecuteBadMemory(t *testing.T) {
	g, set, _, _ := newGPU(t)

	bad := draw(command.DrawTriangles, 3)
	bad.Vertices.Addr = 0x00000000
	badIndices := draw(command.DrawTriangles, 3)
	badIndices.Vertices.Format = 1 << 11
	badIndices.Vertices.IndexAddr = 0x0a000000

	g.Execute(packet(bad, draw(command.DrawPoints, 1), badIndices))

	test.DemandEquality(t, len(set.Engine.Submitted), 1)
	test.ExpectEquality(t, set.Engine.Submitted[0].Prim, command.DrawPoints)
	test.ExpectEquality(t, g.Stats().Skipped, 2)
}

func TestExecuteMalformed(t *testing.T) {
	g, set, _, _ := newGPU(t)

	cmd := draw(command.DrawTriangles, 3)
	cmd.State = 10
	g.Execute(packet(cmd))
	test.ExpectEquality(t, len(set.Log.Calls()), 0)
	test.ExpectEquality(t, g.Stats().Packets, 0)
}

func TestInitClear(t *testing.T) {
	g, set, _, prefs := newGPU(t)

	test.ExpectSuccess(t, g.ProcessEvent(event.New(event.InitClear)))
	test.ExpectEquality(t, set.Log.String(), "host.SetViewport(0,0,480,272)")

	set.Log.Reset()
	test.DemandSuccess(t, prefs.RenderingMode.Set(int(config.NonBuffered)))
	test.ExpectSuccess(t, g.ProcessEvent(event.New(event.InitClear)))
	test.ExpectEquality(t, set.Log.String(), strings.Join([]string{
		"host.SetDepthWrite(true)",
		"host.SetColorMask(true,true,true,true)",
		"host.ClearColor(0,0,0,1)",
		"host.Clear(true,true,true)",
		"host.SetViewport(0,0,480,272)",
	}, "; "))
}

func TestBeginFrame(t *testing.T) {
	g, set, _, _ := newGPU(t)

	test.ExpectSuccess(t, g.ProcessEvent(event.New(event.BeginFrame)))
	test.ExpectEquality(t, set.Log.String(), strings.Join([]string{
		"host.SetSwapInterval(1)",
		"tex.StartFrame",
		"depal.Decimate",
		"shader.DirtyShader",
		"fbm.BeginFrame",
	}, "; "))

	// swap interval is unchanged
	set.Log.Reset()
	g.ProcessEvent(event.New(event.BeginFrame))
	test.ExpectEquality(t, set.Log.Count("host.SetSwapInterval"), 0)

	// a resize forces the swap interval to be reapplied
	set.Log.Reset()
	g.Resized()
	g.ProcessEvent(event.New(event.BeginFrame))
	test.ExpectEquality(t, set.Log.Count("host.SetSwapInterval(1)"), 1)

	// but only once
	set.Log.Reset()
	g.ProcessEvent(event.New(event.BeginFrame))
	test.ExpectEquality(t, set.Log.Count("host.SetSwapInterval"), 0)

	// change of core parameters
	set.Log.Reset()
	g.SetCore(config.Core{Unthrottle: true, PixelWidth: 480, PixelHeight: 272})
	g.ProcessEvent(event.New(event.BeginFrame))
	test.ExpectEquality(t, set.Log.Count("host.SetSwapInterval(0)"), 1)
	test.ExpectEquality(t, g.Vsync().LastApplied, 0)
}

func TestDumpFrame(t *testing.T) {
	g, _, _, _ := newGPU(t)

	var text bytes.Buffer
	g.SetDumper(dump.NewDumper(&text, nil))

	g.DumpNextFrame()
	test.ExpectFailure(t, g.Dumping())

	g.ProcessEvent(event.New(event.BeginFrame))
	test.ExpectSuccess(t, g.Dumping())
	g.Execute(packet(draw(command.DrawTriangles, 3)))
	test.ExpectSuccess(t, strings.HasPrefix(text.String(), "dump 0: packet: 1 commands"))

	g.ProcessEvent(event.New(event.BeginFrame))
	test.ExpectFailure(t, g.Dumping())
	text.Reset()
	g.Execute(packet(draw(command.DrawTriangles, 3)))
	test.ExpectEquality(t, text.Len(), 0)
}

func TestCopyDisplayToOutput(t *testing.T) {
	g, set, _, _ := newGPU(t)

	test.ExpectSuccess(t, g.ProcessEvent(event.New(event.CopyDisplayToOutput)))
	test.ExpectEquality(t, set.Log.String(), strings.Join([]string{
		"fbm.RebindFramebuffer",
		"shader.DirtyLastShader",
		"host.SetDepthWrite(true)",
		"host.SetColorMask(true,true,true,true)",
		"fbm.CopyDisplayToOutput",
		"fbm.EndFrame",
	}, "; "))
}

func TestCoherenceEvents(t *testing.T) {
	g, set, mem, _ := newGPU(t)

	test.ExpectSuccess(t, g.ProcessEvent(event.NewInvalidateCache(0x08000000, 0, invalidate.Hint)))
	test.ExpectEquality(t, set.Log.String(), "tex.InvalidateAll(hint)")

	test.DemandSuccess(t, mem.Write32(0x08001000, 0xcafef00d))

	set.Log.Reset()
	test.ExpectSuccess(t, g.ProcessEvent(event.NewMemCopy(0x08002000, 0x08001000, 4)))
	test.ExpectEquality(t, set.Log.Count("tex.Invalidate(0x08002000,4,hint)"), 1)
	v, err := mem.Read32(0x08002000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xcafef00d)

	// memory is not filled if the framebuffer manager does not service the
	// fill
	set.Log.Reset()
	test.ExpectSuccess(t, g.ProcessEvent(event.NewMemSet(0x08001000, 0x00, 4)))
	test.ExpectEquality(t, set.Log.Count("tex.Invalidate(0x08001000,4,hint)"), 1)
	v, err = mem.Read32(0x08001000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xcafef00d)

	set.Log.Reset()
	test.ExpectSuccess(t, g.ProcessEvent(event.NewStencilUpload(0x04000000, 0x1000)))
	test.ExpectEquality(t, set.Log.String(), "fbm.NotifyStencilUpload(0x04000000,4096)")
}

func TestReinitialize(t *testing.T) {
	g, set, _, _ := newGPU(t)
	test.ExpectSuccess(t, g.ProcessEvent(event.New(event.Reinitialize)))
	test.ExpectEquality(t, set.Log.String(), "tex.Clear(true); depal.Clear; fbm.DestroyAllFBOs; fbm.Resized")
}

func TestReinitializeRebindsTexture(t *testing.T) {
	g, set, _, _ := newGPU(t)

	a := draw(command.DrawTriangles, 3)
	a.Texture = 0
	g.Execute(packet(a))
	g.Execute(packet(a))
	test.DemandEquality(t, len(set.Engine.Submitted), 2)
	test.ExpectFailure(t, set.Engine.Submitted[1].TextureChanged)

	// the texture cache is hard cleared. the recreated texture has the same
	// handle but must still be rebound
	test.ExpectSuccess(t, g.ProcessEvent(event.New(event.Reinitialize)))
	set.Engine.Submitted = set.Engine.Submitted[:0]
	g.Execute(packet(a))
	test.DemandEquality(t, len(set.Engine.Submitted), 1)
	test.ExpectSuccess(t, set.Engine.Submitted[0].TextureChanged)
}

func TestUnknownEvent(t *testing.T) {
	g, set, _, _ := newGPU(t)
	test.ExpectFailure(t, g.ProcessEvent(event.New(event.Type(99))))
	test.ExpectEquality(t, len(set.Log.Calls()), 0)
	test.ExpectEquality(t, g.Stats().Events, 0)
}

func TestDeviceLost(t *testing.T) {
	g, set, _, _ := newGPU(t)

	result := make(chan error)
	go func() {
		result <- g.DeviceLost()
	}()
	err := <-result
	test.ExpectSuccess(t, curated.Is(err, assert.WrongGoroutine))
	test.ExpectEquality(t, len(set.Log.Calls()), 0)

	test.ExpectSuccess(t, g.DeviceLost())
	test.ExpectEquality(t, set.Log.String(), strings.Join([]string{
		"shader.ClearCache(false)",
		"tex.Clear(false)",
		"fragtest.Clear(false)",
		"depal.Clear",
		"fbm.DeviceLost",
		"host.SetSwapInterval(1)",
	}, "; "))
}

func TestDoState(t *testing.T) {
	g, set, _, _ := newGPU(t)

	g.DoState(lifecycle.Save)
	test.ExpectEquality(t, len(set.Log.Calls()), 0)

	g.DoState(lifecycle.Load)
	test.ExpectEquality(t, set.Log.String(), "tex.Clear(true); depal.Clear; fbm.DestroyAllFBOs; shader.ClearCache(true)")

	set.Log.Reset()
	g.SetCore(config.Core{Frozen: true, PixelWidth: 480, PixelHeight: 272})
	g.DoState(lifecycle.Load)
	test.ExpectEquality(t, len(set.Log.Calls()), 0)
}

func TestTeardown(t *testing.T) {
	g, set, _, _ := newGPU(t)
	g.Teardown()
	test.ExpectEquality(t, set.Log.Index("fbm.DestroyAllFBOs"), 0)
	test.ExpectEquality(t, set.Log.Count("host.SetSwapInterval(0)"), 1)
}

func TestTeardownRebindsTexture(t *testing.T) {
	g, set, _, _ := newGPU(t)

	a := draw(command.DrawTriangles, 3)
	a.Texture = 0
	g.Execute(packet(a))
	g.Teardown()

	set.Engine.Submitted = set.Engine.Submitted[:0]
	g.Execute(packet(a))
	test.DemandEquality(t, len(set.Engine.Submitted), 1)
	test.ExpectSuccess(t, set.Engine.Submitted[0].TextureChanged)
}
