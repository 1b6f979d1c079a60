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

// Package diagnostics describes the host graphics context for the benefit of
// the user and for bug reports.
package diagnostics

import (
	"fmt"

	"github.com/jetsetilly/highgpu/gpu/host"
)

// unknown is used in place of any string the host did not provide
const unknown = "?"

// ReportingInfo is a description of the host graphics context. The
// information is captured once, when the type is created.
type ReportingInfo struct {
	Vendor                 string
	Renderer               string
	Version                string
	ShadingLanguageVersion string
	Extensions             string

	primary string
	full    string
}

func query(h host.Host, name host.Name) string {
	s := h.String(name)
	if s == "" {
		return unknown
	}
	return s
}

// NewReportingInfo is the preferred method of initialisation for the
// ReportingInfo type. It must be called on the goroutine that owns the host
// graphics context.
func NewReportingInfo(h host.Host) ReportingInfo {
	ri := ReportingInfo{
		Vendor:                 query(h, host.Vendor),
		Renderer:               query(h, host.Renderer),
		Version:                query(h, host.Version),
		ShadingLanguageVersion: query(h, host.ShadingLanguageVersion),
		Extensions:             query(h, host.Extensions),
	}
	ri.primary = ri.Vendor
	ri.full = fmt.Sprintf("%s (%s %s), %s (extensions: %s)",
		ri.Version, ri.Vendor, ri.Renderer, ri.ShadingLanguageVersion, ri.Extensions)
	return ri
}

// Primary returns the short description of the host.
func (ri ReportingInfo) Primary() string {
	return ri.primary
}

// Full returns the complete description of the host.
func (ri ReportingInfo) Full() string {
	return ri.full
}

func (ri ReportingInfo) String() string {
	return ri.full
}
