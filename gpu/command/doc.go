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

// Package command defines the command packet. A command packet is a sequence
// of commands produced by the upstream decoder of the console's display
// lists. A packet is executed exactly once and then discarded.
//
// Commands do not carry GPU state directly. Instead they refer by index to
// the tables in the Packet. Many commands share the same draw state,
// framebuffer or texture so this keeps packets small.
//
// An index that is out of range for its table is a violation of the packet
// contract. The executor does not check for this. The Validate() function is
// provided for the benefit of the decoder and for testing.
package command
