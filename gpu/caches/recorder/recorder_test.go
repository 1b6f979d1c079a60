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

package recorder_test

import (
	"testing"

	"github.com/jetsetilly/highgpu/gpu/caches"
	"github.com/jetsetilly/highgpu/gpu/caches/recorder"
	"github.com/jetsetilly/highgpu/gpu/host"
	"github.com/jetsetilly/highgpu/gpu/invalidate"
	"github.com/jetsetilly/highgpu/test"
)

func TestImplements(t *testing.T) {
	set := recorder.NewSet()
	test.ExpectImplements[caches.TextureCache](t, set.Textures)
	test.ExpectImplements[caches.FramebufferManager](t, set.Framebuffers)
	test.ExpectImplements[caches.ShaderManager](t, set.Shaders)
	test.ExpectImplements[caches.DepalShaderCache](t, set.Depal)
	test.ExpectImplements[caches.FragmentTestCache](t, set.FragmentTest)
	test.ExpectImplements[caches.VertexDecoder](t, set.Decoder)
	test.ExpectImplements[caches.DrawEngine](t, set.Engine)
	test.ExpectImplements[host.Host](t, set.Host)
}

func TestSharedLog(t *testing.T) {
	set := recorder.NewSet()
	set.Textures.StartFrame()
	set.Framebuffers.BeginFrame()
	set.Textures.InvalidateAll(invalidate.Hint)

	test.ExpectEquality(t, set.Log.String(), "tex.StartFrame; fbm.BeginFrame; tex.InvalidateAll(hint)")
	test.ExpectEquality(t, set.Log.Count("tex."), 2)
	test.ExpectEquality(t, set.Log.Index("fbm."), 1)
	test.ExpectEquality(t, set.Log.Index("shader."), -1)

	set.Log.Reset()
	test.ExpectEquality(t, len(set.Log.Calls()), 0)
}
