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

package diagnostics_test

import (
	"testing"

	"github.com/jetsetilly/highgpu/gpu/caches/recorder"
	"github.com/jetsetilly/highgpu/gpu/diagnostics"
	"github.com/jetsetilly/highgpu/gpu/host"
	"github.com/jetsetilly/highgpu/test"
)

func TestReportingInfo(t *testing.T) {
	set := recorder.NewSet()
	set.Host.Strings = map[host.Name]string{
		host.Vendor:                 "ACME",
		host.Renderer:               "Rocket 3000",
		host.Version:                "3.2.0",
		host.ShadingLanguageVersion: "1.50",
		host.Extensions:             "GL_ARB_one GL_ARB_two",
	}

	ri := diagnostics.NewReportingInfo(set.Host)
	test.ExpectEquality(t, ri.Primary(), "ACME")
	test.ExpectEquality(t, ri.Full(), "3.2.0 (ACME Rocket 3000), 1.50 (extensions: GL_ARB_one GL_ARB_two)")

	// information is not requeried
	set.Host.Strings[host.Vendor] = "Other"
	test.ExpectEquality(t, ri.Primary(), "ACME")
}

func TestReportingInfoMissing(t *testing.T) {
	set := recorder.NewSet()
	set.Host.Strings = map[host.Name]string{
		host.Version: "3.2.0",
	}

	ri := diagnostics.NewReportingInfo(set.Host)
	test.ExpectEquality(t, ri.Primary(), "?")
	test.ExpectEquality(t, ri.Full(), "3.2.0 (? ?), ? (extensions: ?)")
}
