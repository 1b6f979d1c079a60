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

// Package gl32 implements the host.Host interface with OpenGL 3.2 core. The
// swap interval is controlled through SDL.
//
// The OpenGL context must have been created and made current, on the calling
// goroutine, before calling NewHost(). The goroutine must be locked to its
// OS thread.
package gl32

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.2-core/gl"
	"github.com/jetsetilly/highgpu/gpu/host"
	"github.com/jetsetilly/highgpu/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// list of swap interval values. these are values defined and expected by the
// SDL.GLSetSwapInterval() function
const (
	syncImmediateUpdate     = 0
	syncWithVerticalRetrace = 1
	syncAdaptive            = -1
)

// shadowed GL state. GL calls are only made when the value changes
type state struct {
	depthWrite bool
	colorMask  [4]bool
	clearColor [4]float32
	viewport   [4]int32
}

// Host is an OpenGL implementation of host.Host.
type Host struct {
	state state

	// whether the SDL video driver allows the swap interval to be changed
	swapControl bool
}

var _ host.Host = (*Host)(nil)

// NewHost is the preferred method of initialisation for the Host type.
func NewHost() (*Host, error) {
	err := gl.Init()
	if err != nil {
		return nil, fmt.Errorf("gl32: %w", err)
	}

	h := &Host{}
	h.restoreState()

	// if the swap interval can be queried then we assume that it can be set
	_, err = sdl.GLGetSwapInterval()
	h.swapControl = err == nil
	if !h.swapControl {
		logger.Logf(logger.Allow, "gl32", "no swap interval control: %v", err)
	}

	logger.Logf(logger.Allow, "gl32", "vendor: %s", h.String(host.Vendor))
	logger.Logf(logger.Allow, "gl32", "renderer: %s", h.String(host.Renderer))
	logger.Logf(logger.Allow, "gl32", "driver: %s", h.String(host.Version))

	return h, nil
}

// restoreState reads the current GL state into the shadow state
func (h *Host) restoreState() {
	gl.GetBooleanv(gl.DEPTH_WRITEMASK, &h.state.depthWrite)

	var mask [4]bool
	gl.GetBooleanv(gl.COLOR_WRITEMASK, &mask[0])
	h.state.colorMask = mask

	gl.GetFloatv(gl.COLOR_CLEAR_VALUE, &h.state.clearColor[0])
	gl.GetIntegerv(gl.VIEWPORT, &h.state.viewport[0])
}

// DeviceLost should be called when the GL context has been recreated. The
// shadow state is reloaded from the new context.
func (h *Host) DeviceLost() {
	h.restoreState()
}

// SetDepthWrite implements the host.Host interface.
func (h *Host) SetDepthWrite(enabled bool) {
	if h.state.depthWrite == enabled {
		return
	}
	h.state.depthWrite = enabled
	gl.DepthMask(enabled)
}

// SetColorMask implements the host.Host interface.
func (h *Host) SetColorMask(r, g, b, a bool) {
	mask := [4]bool{r, g, b, a}
	if h.state.colorMask == mask {
		return
	}
	h.state.colorMask = mask
	gl.ColorMask(r, g, b, a)
}

// ClearColor implements the host.Host interface.
func (h *Host) ClearColor(r, g, b, a float32) {
	col := [4]float32{r, g, b, a}
	if h.state.clearColor == col {
		return
	}
	h.state.clearColor = col
	gl.ClearColor(r, g, b, a)
}

// Clear implements the host.Host interface.
func (h *Host) Clear(color, depth, stencil bool) {
	var mask uint32
	if color {
		mask |= gl.COLOR_BUFFER_BIT
	}
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	if stencil {
		mask |= gl.STENCIL_BUFFER_BIT
	}
	if mask != 0 {
		gl.Clear(mask)
	}
}

// SetViewport implements the host.Host interface.
func (h *Host) SetViewport(x, y, width, height int) {
	vp := [4]int32{int32(x), int32(y), int32(width), int32(height)}
	if h.state.viewport == vp {
		return
	}
	h.state.viewport = vp
	gl.Viewport(vp[0], vp[1], vp[2], vp[3])
}

// SwapIntervalSupported implements the host.Host interface.
func (h *Host) SwapIntervalSupported() bool {
	return h.swapControl
}

// SetSwapInterval implements the host.Host interface.
func (h *Host) SetSwapInterval(interval int) {
	if !h.swapControl {
		return
	}

	switch interval {
	case syncImmediateUpdate, syncWithVerticalRetrace, syncAdaptive:
	default:
		logger.Logf(logger.Allow, "gl32", "unusual swap interval (%d)", interval)
	}

	err := sdl.GLSetSwapInterval(interval)
	if err != nil {
		logger.Logf(logger.Allow, "gl32", "GLSetSwapInterval(%d): %s", interval, err.Error())
	}
}

// String implements the host.Host interface.
func (h *Host) String(name host.Name) string {
	switch name {
	case host.Vendor:
		return getString(gl.VENDOR)
	case host.Renderer:
		return getString(gl.RENDERER)
	case host.Version:
		return getString(gl.VERSION)
	case host.ShadingLanguageVersion:
		return getString(gl.SHADING_LANGUAGE_VERSION)
	case host.Extensions:
		// the core profile does not allow extensions to be queried as a
		// single string
		var n int32
		gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
		ext := make([]string, 0, n)
		for i := int32(0); i < n; i++ {
			if s := gl.GetStringi(gl.EXTENSIONS, uint32(i)); s != nil {
				ext = append(ext, gl.GoStr(s))
			}
		}
		return strings.Join(ext, " ")
	}
	return ""
}

func getString(name uint32) string {
	s := gl.GetString(name)
	if s == nil {
		return ""
	}
	return gl.GoStr(s)
}
