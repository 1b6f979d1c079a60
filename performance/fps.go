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

package performance

import (
	"time"
)

// RefreshRate is the refresh rate of the console display.
const RefreshRate = 59.94

// CalcFPS takes the the number of frames and duration (in seconds) and returns
// the frames-per-second and the accuracy of that value as a percentage.
func CalcFPS(numFrames int, duration float64) (fps float64, accuracy float64) {
	if duration <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / RefreshRate
	return fps, accuracy
}

// DefaultWindow is the number of frames the Meter measures over.
const DefaultWindow = 60

// Meter measures the frame rate over the most recent frames.
type Meter struct {
	// ring of frame times. start is the oldest entry
	times []time.Time
	start int
	n     int

	// now is the clock used by Frame(). defaults to time.Now
	now func() time.Time
}

// NewMeter is the preferred method of initialisation for the Meter type. A
// nil clock means the system clock is used.
func NewMeter(window int, clock func() time.Time) *Meter {
	if window < 2 {
		window = DefaultWindow
	}
	if clock == nil {
		clock = time.Now
	}
	return &Meter{
		times: make([]time.Time, window),
		now:   clock,
	}
}

// Frame records the start of a new frame.
func (m *Meter) Frame() {
	t := m.now()
	if m.n < len(m.times) {
		m.times[(m.start+m.n)%len(m.times)] = t
		m.n++
		return
	}
	m.times[m.start] = t
	m.start = (m.start + 1) % len(m.times)
}

// FPS returns the frame rate and the accuracy of the frame rate compared to
// the RefreshRate. Both values are zero until at least two frames have been
// recorded.
func (m *Meter) FPS() (fps float64, accuracy float64) {
	if m.n < 2 {
		return 0, 0
	}
	first := m.times[m.start]
	last := m.times[(m.start+m.n-1)%len(m.times)]
	return CalcFPS(m.n-1, last.Sub(first).Seconds())
}

// Reset forgets all recorded frames.
func (m *Meter) Reset() {
	m.start = 0
	m.n = 0
}
