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

// Package assert contains functions that help enforce the goroutine affinity
// of types that must only be used from a single goroutine.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/jetsetilly/highgpu/curated"
)

// GetGoRoutineID returns an identifier for a goroutine. it returns a result
// that is (a) different between goroutines and (b) consistent for a given
// goroutine. It should only ever be used for debugging or for enforcing
// preconditions.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// WrongGoroutine is the curated error pattern returned by Owner.Check() when
// the calling goroutine is not the owner.
const WrongGoroutine = "assert: called from goroutine %d but owned by goroutine %d"

// Owner records the goroutine that owns a resource. The zero value has no
// owner and the first call to Claim() sets it.
type Owner struct {
	id atomic.Uint64
}

// Claim makes the calling goroutine the owner.
func (o *Owner) Claim() {
	o.id.Store(GetGoRoutineID())
}

// Owned returns true if an owner has been set.
func (o *Owner) Owned() bool {
	return o.id.Load() != 0
}

// Check returns an error if the calling goroutine is not the owner. If there
// is no owner then the check always succeeds.
func (o *Owner) Check() error {
	owner := o.id.Load()
	if owner == 0 {
		return nil
	}
	if id := GetGoRoutineID(); id != owner {
		return curated.Errorf(WrongGoroutine, id, owner)
	}
	return nil
}
