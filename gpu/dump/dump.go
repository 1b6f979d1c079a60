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

// Package dump writes out the command packets executed during a frame that
// has been marked for dumping. Each packet is written as text and,
// optionally, as a graphviz graph of the packet structure.
package dump

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/paths"
)

// DefaultDirectory is the resource directory used by Create() when no
// directory is specified.
const DefaultDirectory = "dumps"

// Dumper writes packets to the text and graph writers.
type Dumper struct {
	text  io.Writer
	graph io.Writer

	// number of packets dumped
	count int

	// files opened by Create()
	files []*os.File
}

// NewDumper is the preferred method of initialisation for the Dumper type.
// The graph writer can be nil, in which case no graphs are written.
func NewDumper(text io.Writer, graph io.Writer) *Dumper {
	return &Dumper{
		text:  text,
		graph: graph,
	}
}

// Create opens a pair of uniquely named files in the directory and returns a
// Dumper that writes to them. If dir is empty then the DefaultDirectory in
// the resource path is used. The Dumper should be closed when it is no longer
// required.
func Create(dir string) (*Dumper, error) {
	if dir == "" {
		dir = paths.ResourcePath(DefaultDirectory)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}

	fn := filepath.Join(dir, paths.UniqueFilename("packets", time.Now()))

	text, err := os.Create(fn + ".txt")
	if err != nil {
		return nil, fmt.Errorf("dump: %w", err)
	}
	graph, err := os.Create(fn + ".dot")
	if err != nil {
		text.Close()
		return nil, fmt.Errorf("dump: %w", err)
	}

	d := NewDumper(text, graph)
	d.files = []*os.File{text, graph}
	return d, nil
}

// Close any files opened by Create().
func (d *Dumper) Close() error {
	var err error
	for _, f := range d.files {
		err = errors.Join(err, f.Close())
	}
	d.files = nil
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	return nil
}

// Packet writes the packet to the dumper's outputs.
func (d *Dumper) Packet(p *command.Packet) error {
	_, err := fmt.Fprintf(d.text, "dump %d: %s", d.count, p.String())
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	if d.graph != nil {
		memviz.Map(d.graph, p)
	}
	d.count++
	return nil
}

// Count returns the number of packets dumped.
func (d *Dumper) Count() int {
	return d.count
}
