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

// Package config contains the preferences and runtime parameters of the
// graphics backend. The backend never reads preferences directly. A Config
// snapshot is taken once per frame or event and passed to the functions that
// need it.
package config

import (
	"fmt"

	"github.com/jetsetilly/highgpu/prefs"
)

// RenderingMode determines how emulated framebuffers are presented.
type RenderingMode int

// List of valid RenderingMode values.
const (
	// NonBuffered draws directly to the backbuffer. The contents of the
	// backbuffer are not preserved between frames.
	NonBuffered RenderingMode = iota

	// Buffered draws to offscreen framebuffers that are copied to the display.
	Buffered

	// ReadToMemoryCPU and ReadToMemoryGPU are buffered modes that also write
	// framebuffer contents back to emulated memory.
	ReadToMemoryCPU
	ReadToMemoryGPU
)

func (m RenderingMode) String() string {
	switch m {
	case NonBuffered:
		return "non-buffered"
	case Buffered:
		return "buffered"
	case ReadToMemoryCPU:
		return "read to memory (cpu)"
	case ReadToMemoryGPU:
		return "read to memory (gpu)"
	}
	return "unknown"
}

// PreservesBackbuffer returns true if the backing buffer survives from frame
// to frame.
func (m RenderingMode) PreservesBackbuffer() bool {
	return m != NonBuffered
}

// Preferences are the user-facing preferences of the graphics backend.
type Preferences struct {
	RenderingMode prefs.Int

	// synchronise display with the host monitor refresh
	VSync prefs.Bool

	// the alternative speed. zero indicates unlimited
	FrameRateLimit prefs.Int

	// block transfers are handled by the framebuffer manager. when this is
	// true a refresh from memory after a block transfer is redundant
	BlockTransferGPU prefs.Bool
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() *Preferences {
	p := &Preferences{}
	p.SetDefaults()
	p.RenderingMode.SetHookPre(func(v prefs.Value) error {
		m := RenderingMode(v.(int))
		if m < NonBuffered || m > ReadToMemoryGPU {
			return fmt.Errorf("config: unknown rendering mode (%d)", v.(int))
		}
		return nil
	})
	p.FrameRateLimit.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 {
			return fmt.Errorf("config: frame rate limit cannot be negative (%d)", v.(int))
		}
		return nil
	})
	return p
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.RenderingMode.Set(int(Buffered))
	_ = p.VSync.Set(true)
	_ = p.FrameRateLimit.Set(0)
	_ = p.BlockTransferGPU.Set(true)
}

func (p *Preferences) String() string {
	return fmt.Sprintf("mode=%s vsync=%s fpslimit=%s blocktransfer=%s",
		RenderingMode(p.RenderingMode.Get().(int)), &p.VSync, &p.FrameRateLimit, &p.BlockTransferGPU)
}

// Core contains the runtime parameters of the emulation core. Unlike
// Preferences these are not chosen by the user directly.
type Core struct {
	// emulation is running as fast as possible
	Unthrottle bool

	// the alternative speed (the FrameRateLimit preference) is active
	AltSpeed bool

	// dimensions of the display in host pixels
	PixelWidth  int
	PixelHeight int

	// emulation is in freeze-frame mode. snapshot loading must not disturb
	// GPU state in this mode
	Frozen bool
}

// Config is an immutable snapshot of the preferences and core parameters.
type Config struct {
	RenderingMode    RenderingMode
	VSync            bool
	FrameRateLimit   int
	BlockTransferGPU bool
	Core
}

// Snapshot creates a Config from the current preferences and the supplied
// core parameters.
func (p *Preferences) Snapshot(core Core) Config {
	return Config{
		RenderingMode:    RenderingMode(p.RenderingMode.Get().(int)),
		VSync:            p.VSync.Get().(bool),
		FrameRateLimit:   p.FrameRateLimit.Get().(int),
		BlockTransferGPU: p.BlockTransferGPU.Get().(bool),
		Core:             core,
	}
}
