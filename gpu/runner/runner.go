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

// Package runner services a GPU on a dedicated goroutine. The goroutine is
// locked to its OS thread, which is a requirement of most host graphics
// APIs. The emulation pushes packets, events and functions to the Runner
// and they are serviced in the order they were pushed.
package runner

import (
	"context"
	"runtime"

	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/gpu/event"
	"github.com/jetsetilly/highgpu/gpu/high"
	"github.com/jetsetilly/highgpu/logger"
)

// DefaultQueueLength is the number of items that can be pushed to the Runner
// before a push will block.
const DefaultQueueLength = 64

// work is a single item pushed to the runner. only one field is set
type work struct {
	packet *command.Packet
	event  *event.Event
	fn     func(*high.GPU)
}

// Runner owns a GPU and services it on a single goroutine.
type Runner struct {
	create func() (*high.GPU, error)
	queue  chan work
}

// NewRunner is the preferred method of initialisation for the Runner type.
// The create function is called by Run() on the servicing goroutine. The
// host graphics context should be created by the function.
func NewRunner(create func() (*high.GPU, error), queueLength int) *Runner {
	if queueLength <= 0 {
		queueLength = DefaultQueueLength
	}
	return &Runner{
		create: create,
		queue:  make(chan work, queueLength),
	}
}

// Run creates the GPU and services pushed work until the context is
// cancelled. The GPU is torn down before Run returns. Work that is still
// queued when the context is cancelled is not serviced.
func (r *Runner) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	g, err := r.create()
	if err != nil {
		return err
	}
	defer g.Teardown()

	for {
		select {
		case <-ctx.Done():
			return nil
		case w := <-r.queue:
			r.service(g, w)
		}
	}
}

func (r *Runner) service(g *high.GPU, w work) {
	switch {
	case w.packet != nil:
		g.Execute(w.packet)
	case w.event != nil:
		if !g.ProcessEvent(*w.event) {
			logger.Logf(logger.Allow, "runner", "unhandled event: %s", w.event)
		}
	case w.fn != nil:
		w.fn(g)
	}
}

func (r *Runner) push(ctx context.Context, w work) error {
	select {
	case r.queue <- w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PushPacket queues the packet for execution. The packet must not be
// modified by the caller after it has been pushed.
func (r *Runner) PushPacket(ctx context.Context, p *command.Packet) error {
	return r.push(ctx, work{packet: p})
}

// PushEvent queues the event for processing.
func (r *Runner) PushEvent(ctx context.Context, ev event.Event) error {
	return r.push(ctx, work{event: &ev})
}

// PushFunction queues a function to be run on the servicing goroutine. The
// function is the only way of calling GPU functions other than Execute() and
// ProcessEvent().
func (r *Runner) PushFunction(ctx context.Context, fn func(*high.GPU)) error {
	return r.push(ctx, work{fn: fn})
}
