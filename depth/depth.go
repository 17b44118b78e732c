/*
Package depth converts the normalized depth buffers produced by the mesh
renderer into metric depth and into images suitable for display.
*/
package depth

import (
	"math"

	"github.com/swdee/go-regiontrack/frame"
)

// NoDepth marks pixels of a PrettyDepth output where no surface was rendered
const NoDepth = -1

// LinearizeDepth converts a normalized depth buffer value zb in [0, 1] of a
// perspective projection with the given near and far clip planes into
// metric depth
func LinearizeDepth(zb, near, far float32) float32 {
	ndc := 2*zb - 1
	return 2 * near * far / (far + near - ndc*(far-near))
}

// LinearizeDepthMap converts every value of a normalized depth buffer into
// metric depth
func LinearizeDepthMap(zbuffer *frame.Plane, near, far float32) *frame.Plane {

	out := frame.NewPlane(zbuffer.Rows, zbuffer.Cols)

	frame.ParallelRows(0, zbuffer.Rows, 0, 0, func(from, to int) {
		for i := from; i < to; i++ {
			src := zbuffer.Row(i)
			dst := out.Row(i)

			for j, zb := range src {
				dst[j] = LinearizeDepth(zb, near, far)
			}
		}
	})

	return out
}

// PrettyDepth converts a normalized depth buffer into metric depth divided by
// the far plane, so rendered surfaces fall in (0, 1].  Pixels without a
// surface (zb outside the open interval (0, 1)) are set to NoDepth.
func PrettyDepth(zbuffer *frame.Plane, near, far float32) *frame.Plane {

	out := frame.NewPlane(zbuffer.Rows, zbuffer.Cols)

	frame.ParallelRows(0, zbuffer.Rows, 0, 0, func(from, to int) {
		for i := from; i < to; i++ {
			src := zbuffer.Row(i)
			dst := out.Row(i)

			for j, zb := range src {
				if zb > 0 && zb < 1 {
					dst[j] = LinearizeDepth(zb, near, far) / far
				} else {
					dst[j] = NoDepth
				}
			}
		}
	})

	return out
}

// ContrastStretch maps a plane onto 8-bit grayscale using the minimum and
// maximum over the plane.  NaN, Inf and NoDepth values are ignored when
// finding the range and are written as 0.
//
// Output layout is row-major grayscale: out[y*w + x]
func ContrastStretch(p *frame.Plane, invert bool) []uint8 {

	out := make([]uint8, len(p.Data))

	minV := float32(math.Inf(1))
	maxV := float32(math.Inf(-1))

	for _, v := range p.Data {
		if !valid(v) {
			continue
		}

		minV = min(minV, v)
		maxV = max(maxV, v)
	}

	// all invalid or constant, return a black image
	den := maxV - minV
	if !(den > 0) {
		return out
	}

	for i, v := range p.Data {
		if !valid(v) {
			continue
		}

		n := (v - minV) / den

		if invert {
			n = 1 - n
		}

		out[i] = uint8(math.Round(float64(n * 255)))
	}

	return out
}

// valid returns true if v is finite and not the NoDepth marker
func valid(v float32) bool {
	return v != NoDepth && !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
