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

// Package event defines the lifecycle events that the emulation sends to the
// graphics backend. Exactly one payload is meaningful for any event and is
// determined by the Type field. Events should be created with the
// constructor functions.
package event

import (
	"fmt"

	"github.com/jetsetilly/highgpu/gpu/invalidate"
)

// Type of event.
type Type int

// List of valid event types.
const (
	InitClear Type = iota
	BeginFrame
	CopyDisplayToOutput
	InvalidateCache
	MemCopy
	MemSet
	StencilUpload
	Reinitialize
)

func (t Type) String() string {
	switch t {
	case InitClear:
		return "init clear"
	case BeginFrame:
		return "begin frame"
	case CopyDisplayToOutput:
		return "copy display to output"
	case InvalidateCache:
		return "invalidate cache"
	case MemCopy:
		return "memcpy"
	case MemSet:
		return "memset"
	case StencilUpload:
		return "stencil upload"
	case Reinitialize:
		return "reinitialize"
	}
	return fmt.Sprintf("unknown (%d)", int(t))
}

// InvalidatePayload is the payload for the InvalidateCache event. A size of
// zero means the entire cacheable range.
type InvalidatePayload struct {
	Addr uint32
	Size int
	Kind invalidate.Kind
}

// MemCopyPayload is the payload for the MemCopy event.
type MemCopyPayload struct {
	Dst  uint32
	Src  uint32
	Size int
}

// MemSetPayload is the payload for the MemSet event.
type MemSetPayload struct {
	Dst   uint32
	Value uint8
	Size  int
}

// StencilUploadPayload is the payload for the StencilUpload event.
type StencilUploadPayload struct {
	Dst  uint32
	Size int
}

// Event is sent by the emulation to the graphics backend.
type Event struct {
	Type Type

	Invalidate    InvalidatePayload
	MemCopy       MemCopyPayload
	MemSet        MemSetPayload
	StencilUpload StencilUploadPayload
}

// New creates an event that has no payload. Events that do require a payload
// should be created with the specific constructor.
func New(typ Type) Event {
	return Event{Type: typ}
}

// NewInvalidateCache creates an InvalidateCache event.
func NewInvalidateCache(addr uint32, size int, kind invalidate.Kind) Event {
	return Event{
		Type:       InvalidateCache,
		Invalidate: InvalidatePayload{Addr: addr, Size: size, Kind: kind},
	}
}

// NewMemCopy creates a MemCopy event.
func NewMemCopy(dst uint32, src uint32, size int) Event {
	return Event{
		Type:    MemCopy,
		MemCopy: MemCopyPayload{Dst: dst, Src: src, Size: size},
	}
}

// NewMemSet creates a MemSet event.
func NewMemSet(dst uint32, v uint8, size int) Event {
	return Event{
		Type:   MemSet,
		MemSet: MemSetPayload{Dst: dst, Value: v, Size: size},
	}
}

// NewStencilUpload creates a StencilUpload event.
func NewStencilUpload(dst uint32, size int) Event {
	return Event{
		Type:          StencilUpload,
		StencilUpload: StencilUploadPayload{Dst: dst, Size: size},
	}
}

func (ev Event) String() string {
	switch ev.Type {
	case InvalidateCache:
		return fmt.Sprintf("%s: %#08x %d (%s)", ev.Type, ev.Invalidate.Addr, ev.Invalidate.Size, ev.Invalidate.Kind)
	case MemCopy:
		return fmt.Sprintf("%s: %#08x <- %#08x %d", ev.Type, ev.MemCopy.Dst, ev.MemCopy.Src, ev.MemCopy.Size)
	case MemSet:
		return fmt.Sprintf("%s: %#08x = %#02x %d", ev.Type, ev.MemSet.Dst, ev.MemSet.Value, ev.MemSet.Size)
	case StencilUpload:
		return fmt.Sprintf("%s: %#08x %d", ev.Type, ev.StencilUpload.Dst, ev.StencilUpload.Size)
	}
	return ev.Type.String()
}
