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

// Package high is the high level GPU backend. Rather than interpreting the
// console GPU's display lists command by command, the backend is given
// pre-digested command packets to execute and a stream of events that keep
// the host resources coherent with emulated memory.
//
// The GPU type must be created, and then used exclusively, on the goroutine
// that owns the host graphics context. The emulation goroutine communicates
// with the GPU only through packets and events. The runner package provides
// a suitable channel.
package high

import (
	"fmt"

	"github.com/jetsetilly/highgpu/assert"
	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/coherence"
	"github.com/jetsetilly/highgpu/gpu/config"
	"github.com/jetsetilly/highgpu/gpu/diagnostics"
	"github.com/jetsetilly/highgpu/gpu/dump"
	"github.com/jetsetilly/highgpu/gpu/host"
	"github.com/jetsetilly/highgpu/gpu/lifecycle"
	"github.com/jetsetilly/highgpu/logger"
	"github.com/jetsetilly/highgpu/performance"
	"github.com/jetsetilly/highgpu/version"
)

// Collaborators is the set of caches and engines that the GPU drives. Every
// field must be set.
type Collaborators struct {
	Textures     caches.TextureCache
	Framebuffers caches.FramebufferManager
	Shaders      caches.ShaderManager
	Depal        caches.DepalShaderCache
	FragmentTest caches.FragmentTestCache
	Decoder      caches.VertexDecoder
	Engine       caches.DrawEngine
}

func (c Collaborators) check() error {
	switch {
	case c.Textures == nil:
		return fmt.Errorf("high: no texture cache")
	case c.Framebuffers == nil:
		return fmt.Errorf("high: no framebuffer manager")
	case c.Shaders == nil:
		return fmt.Errorf("high: no shader manager")
	case c.Depal == nil:
		return fmt.Errorf("high: no depal shader cache")
	case c.FragmentTest == nil:
		return fmt.Errorf("high: no fragment test cache")
	case c.Decoder == nil:
		return fmt.Errorf("high: no vertex decoder")
	case c.Engine == nil:
		return fmt.Errorf("high: no draw engine")
	}
	return nil
}

// Memory is the emulated memory as seen by the GPU.
type Memory interface {
	coherence.Memory
	Slice(addr uint32, size int) ([]byte, error)
}

// GPU is the high level GPU backend.
type GPU struct {
	collab Collaborators
	host   host.Host
	mem    Memory
	prefs  *config.Preferences
	core   config.Core

	owner     assert.Owner
	bindings  caches.Bindings
	coherence *coherence.Manager
	lifecycle *lifecycle.Controller
	info      diagnostics.ReportingInfo

	// pass 2 working storage. reused between packets
	decoded  []byte
	prepared []prepared

	// the texture used by the most recent draw
	lastTexture caches.Handle

	// dumper is optional. if it is nil then packets in a dumped frame are
	// written to the log
	dumper *dump.Dumper

	dumpNextFrame bool
	dumpThisFrame bool

	// the display has been resized since the last frame
	resized bool

	stats Stats
	meter *performance.Meter
}

// NewGPU is the preferred method of initialisation for the GPU type. It must
// be called on the goroutine that owns the host graphics context. That
// goroutine becomes the owner of the GPU.
func NewGPU(collab Collaborators, h host.Host, mem Memory, prefs *config.Preferences, core config.Core) (*GPU, error) {
	if err := collab.check(); err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("high: no host")
	}
	if mem == nil {
		return nil, fmt.Errorf("high: no memory")
	}
	if prefs == nil {
		return nil, fmt.Errorf("high: no preferences")
	}

	g := &GPU{
		collab: collab,
		host:   h,
		mem:    mem,
		prefs:  prefs,
		core:   core,
		meter:  performance.NewMeter(performance.DefaultWindow, nil),
	}
	g.owner.Claim()

	g.coherence = coherence.NewManager(collab.Textures, collab.Framebuffers, mem)
	g.lifecycle = lifecycle.NewController(lifecycle.Caches{
		Textures:     collab.Textures,
		Framebuffers: collab.Framebuffers,
		Shaders:      collab.Shaders,
		Depal:        collab.Depal,
		FragmentTest: collab.FragmentTest,
	}, h, &g.owner, &g.bindings)

	v, r := version.Version()
	logger.Logf(logger.Allow, "high", "%s %s (%s)", version.ApplicationName, v, r)

	g.info = diagnostics.NewReportingInfo(h)
	logger.Logf(logger.Allow, "high", "host: %s", g.info.Full())
	logger.Logf(logger.Allow, "high", "preferences: %s", prefs)

	return g, nil
}

// config returns the configuration in effect for the next event or packet.
func (g *GPU) config() config.Config {
	return g.prefs.Snapshot(g.core)
}

// SetCore changes the core parameters of the emulation.
func (g *GPU) SetCore(core config.Core) {
	if core.PixelWidth != g.core.PixelWidth || core.PixelHeight != g.core.PixelHeight {
		g.resized = true
	}
	g.core = core
}

// SetDumper attaches a dumper to the GPU. A nil dumper causes packets in
// dumped frames to be written to the log.
func (g *GPU) SetDumper(d *dump.Dumper) {
	g.dumper = d
}

// Owner returns the owner of the GPU.
func (g *GPU) Owner() *assert.Owner {
	return &g.owner
}
