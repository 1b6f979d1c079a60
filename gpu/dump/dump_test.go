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

package dump_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/highgpu/gpu/command"
	"github.com/jetsetilly/highgpu/gpu/dump"
	"github.com/jetsetilly/highgpu/test"
)

func TestDumper(t *testing.T) {
	var text bytes.Buffer
	var graph bytes.Buffer
	d := dump.NewDumper(&text, &graph)

	p := &command.Packet{
		Commands: []command.Command{
			{Type: command.Sync},
		},
	}
	test.ExpectSuccess(t, d.Packet(p))
	test.ExpectSuccess(t, d.Packet(p))
	test.ExpectEquality(t, d.Count(), 2)

	test.ExpectSuccess(t, strings.HasPrefix(text.String(), "dump 0: packet: 1 commands"))
	test.ExpectSuccess(t, strings.Contains(text.String(), "dump 1: packet: 1 commands"))
	test.ExpectSuccess(t, strings.Contains(graph.String(), "digraph"))
}

func TestDumperNoGraph(t *testing.T) {
	var text bytes.Buffer
	d := dump.NewDumper(&text, nil)
	test.ExpectSuccess(t, d.Packet(&command.Packet{}))
	test.ExpectEquality(t, text.String(), "dump 0: packet: 0 commands, 0 states, 0 framebufs, 0 textures, 0 bone sets\n")
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	d, err := dump.Create(dir)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, d.Packet(&command.Packet{}))
	test.ExpectSuccess(t, d.Close())

	txt, err := filepath.Glob(filepath.Join(dir, "packets_*.txt"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(txt), 1)

	dot, err := filepath.Glob(filepath.Join(dir, "packets_*.dot"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(dot), 1)
}
