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

// Package lifecycle manages the GPU-side resources when the host graphics
// context is lost, when the GPU is shut down and when emulation state is
// restored from a snapshot. It also paces the host display with the swap
// interval.
package lifecycle

import (
	"github.com/jetsetilly/highgpu/assert"
	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/config"
	"github.com/jetsetilly/highgpu/gpu/host"
	"github.com/jetsetilly/highgpu/logger"
)

// Direction of a snapshot operation.
type Direction int

// List of valid Direction values.
const (
	Save Direction = iota
	Load
)

func (d Direction) String() string {
	switch d {
	case Save:
		return "save"
	case Load:
		return "load"
	}
	return "unknown"
}

// Unapplied is the value of VsyncState.LastApplied before any swap interval
// has been applied to the host.
const Unapplied = -1

// VsyncState records the swap interval that was most recently applied to the
// host and the interval most recently asked for.
type VsyncState struct {
	LastApplied int
	Desired     int
}

// Caches is the set of collaborators managed by the Controller.
type Caches struct {
	Textures     caches.TextureCache
	Framebuffers caches.FramebufferManager
	Shaders      caches.ShaderManager
	Depal        caches.DepalShaderCache
	FragmentTest caches.FragmentTestCache
}

// Controller is the resource lifecycle controller.
type Controller struct {
	caches   Caches
	host     host.Host
	owner    *assert.Owner
	bindings *caches.Bindings

	vsync VsyncState
	force bool
}

// NewController is the preferred method of initialisation for the Controller
// type. The owner is used to enforce the goroutine affinity of DeviceLost().
// The bindings are updated when a snapshot is loaded.
func NewController(c Caches, h host.Host, owner *assert.Owner, bindings *caches.Bindings) *Controller {
	return &Controller{
		caches:   c,
		host:     h,
		owner:    owner,
		bindings: bindings,
		vsync: VsyncState{
			LastApplied: Unapplied,
		},
	}
}

// DeviceLost must be called when the host graphics context has become
// unusable. Every collaborator is told to forget its host handles and the
// swap interval will be reapplied on the next call to VsyncPacing().
//
// DeviceLost must be called from the goroutine that owns the host graphics
// context. If it is not then no work is done and an error matching the
// assert.WrongGoroutine pattern is returned.
func (ctl *Controller) DeviceLost() error {
	if err := ctl.owner.Check(); err != nil {
		return err
	}

	logger.Log(logger.Allow, "lifecycle", "device lost")

	ctl.caches.Shaders.ClearCache(false)
	ctl.caches.Textures.Clear(false)
	ctl.caches.FragmentTest.Clear(false)
	ctl.caches.Depal.Clear()

	// it is not known whether framebuffer objects survive the loss of a
	// context so the framebuffer manager is always told
	ctl.caches.Framebuffers.DeviceLost()

	ctl.force = true
	return nil
}

// Teardown releases every host resource and disables pacing. The Controller
// should not be used after Teardown.
func (ctl *Controller) Teardown() {
	ctl.caches.Framebuffers.DestroyAllFBOs()
	ctl.caches.Shaders.ClearCache(true)
	ctl.caches.Depal.Clear()
	ctl.caches.FragmentTest.Clear(true)

	if ctl.host.SwapIntervalSupported() {
		ctl.host.SetSwapInterval(0)
		ctl.vsync.LastApplied = 0
	}
}

// SnapshotApply prepares the GPU for a snapshot operation. Loading a snapshot
// makes every cache stale, unless emulation is frozen. Saving a snapshot
// does not change anything.
func (ctl *Controller) SnapshotApply(dir Direction, frozen bool) {
	if dir != Load || frozen {
		return
	}

	ctl.caches.Textures.Clear(true)
	ctl.caches.Depal.Clear()
	ctl.bindings.TextureChanged = true
	ctl.caches.Framebuffers.DestroyAllFBOs()
	ctl.caches.Shaders.ClearCache(true)
}

// DesiredInterval returns the swap interval for the configuration.
func DesiredInterval(cfg config.Config) int {
	if !cfg.VSync || cfg.Unthrottle {
		return 0
	}

	// an alternative speed that is a clean factor of 60 can still use vsync
	if cfg.AltSpeed {
		switch cfg.FrameRateLimit {
		case 15, 30, 60:
		default:
			return 0
		}
	}

	return 1
}

// ForceVsync causes the next call to VsyncPacing() to reapply the swap
// interval even if it has not changed.
func (ctl *Controller) ForceVsync() {
	ctl.force = true
}

// VsyncPacing applies the swap interval for the configuration to the host.
// The host is only called if the interval has changed, or if force is true,
// or if ForceVsync() has been called since the previous pacing.
//
// Has no effect if the host does not support swap interval control.
func (ctl *Controller) VsyncPacing(cfg config.Config, force bool) {
	if !ctl.host.SwapIntervalSupported() {
		return
	}

	force = force || ctl.force
	ctl.force = false

	ctl.vsync.Desired = DesiredInterval(cfg)
	if ctl.vsync.Desired != ctl.vsync.LastApplied || force {
		ctl.host.SetSwapInterval(ctl.vsync.Desired)
		ctl.vsync.LastApplied = ctl.vsync.Desired
	}
}

// Vsync returns the current pacing state.
func (ctl *Controller) Vsync() VsyncState {
	return ctl.vsync
}
