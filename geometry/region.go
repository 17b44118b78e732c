package geometry

import (
	"image"
	"math"
)

// iouEpsilon stands in for a zero union so IntersectionOverUnion never divides
// by zero
const iouEpsilon = 1e-6

// Region represents an axis aligned rectangle in pixel coordinates with
// (x, y, width, height) format.  Pixels covered are [X, X+Width) by
// [Y, Y+Height).
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// NewRegion creates a new Region with given coordinates
func NewRegion(x, y, width, height int) Region {
	return Region{X: x, Y: y, Width: width, Height: height}
}

// FromRect converts an image.Rectangle to a Region
func FromRect(r image.Rectangle) Region {
	r = r.Canon()
	return Region{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// TLX returns the top-left x coordinate of the region
func (r Region) TLX() int {
	return r.X
}

// TLY returns the top-left y coordinate of the region
func (r Region) TLY() int {
	return r.Y
}

// BRX returns the exclusive bottom-right x coordinate of the region
func (r Region) BRX() int {
	return r.X + r.Width
}

// BRY returns the exclusive bottom-right y coordinate of the region
func (r Region) BRY() int {
	return r.Y + r.Height
}

// Area returns the number of pixels covered by the region
func (r Region) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the region covers no pixels
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether pixel (x, y) lies inside the region
func (r Region) Contains(x, y int) bool {
	return x >= r.X && x < r.BRX() && y >= r.Y && y < r.BRY()
}

// Rect converts the region to an image.Rectangle for drawing
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.BRX(), r.BRY())
}

// Intersect returns the overlap of two regions, a zero Region if they do
// not overlap
func (r Region) Intersect(other Region) Region {

	x0 := max(r.X, other.X)
	y0 := max(r.Y, other.Y)
	x1 := min(r.BRX(), other.BRX())
	y1 := min(r.BRY(), other.BRY())

	if x1 <= x0 || y1 <= y0 {
		return Region{}
	}

	return Region{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Clip restricts the region to [0, cols) x [0, rows).  A region lying fully
// outside the image collapses to zero size at the nearest image edge.
func (r Region) Clip(rows, cols int) Region {

	x0 := clamp(r.X, 0, cols)
	y0 := clamp(r.Y, 0, rows)
	x1 := clamp(r.BRX(), 0, cols)
	y1 := clamp(r.BRY(), 0, rows)

	return Region{X: x0, Y: y0, Width: max(x1-x0, 0), Height: max(y1-y0, 0)}
}

// IntersectionOverUnion calculates the Intersection over Union (IoU) of two
// regions.  Regions that do not overlap on either axis, including ones that
// only share an edge, and regions covering no pixels return exactly 0.
func IntersectionOverUnion(r1, r2 Region) float64 {

	if r1.Empty() || r2.Empty() {
		return 0
	}

	if r1.X > r2.X {
		r1, r2 = r2, r1
	}

	if r1.BRX() <= r2.X {
		return 0
	}

	tlx := max(r1.X, r2.X)
	brx := min(r1.BRX(), r2.BRX())

	if r1.Y > r2.Y {
		r1, r2 = r2, r1
	}

	if r1.BRY() <= r2.Y {
		return 0
	}

	tly := max(r1.Y, r2.Y)
	bry := min(r1.BRY(), r2.BRY())

	inter := float64((brx - tlx) * (bry - tly))
	union := float64(r1.Area()+r2.Area()) - inter

	if union <= 0 {
		union = iouEpsilon
	}

	return inter / union
}

// InflateRect grows the region by pad pixels on every side and clips the
// result to the image.  A pad of zero or less leaves the region unexpanded.
func InflateRect(r Region, rows, cols, pad int) Region {

	if pad > 0 {
		r = Region{
			X:      r.X - pad,
			Y:      r.Y - pad,
			Width:  r.Width + 2*pad,
			Height: r.Height + 2*pad,
		}
	}

	return r.Clip(rows, cols)
}

// EnclosingRect returns the tightest region containing every point, clipped
// to the image.  An empty point list yields a zero sized region at the
// origin.
func EnclosingRect(points []image.Point, rows, cols int) Region {

	if len(points) == 0 {
		return Region{}
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY

	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}

	return Region{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}.Clip(rows, cols)
}

// BoxArea returns the area of a box given by its top-left and bottom-right
// corners in either order
func BoxArea(tlx, tly, brx, bry float64) float64 {
	return math.Abs((tlx - brx) * (tly - bry))
}

// clamp restricts val to the range [lo, hi]
func clamp(val, lo, hi int) int {

	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}
