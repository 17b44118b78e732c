package posterior

import (
	"math"

	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/geometry"
)

// Class indexes the planes of a Field
type Class int

const (
	// Foreground is the object class
	Foreground Class = 0
	// Background is the surrounding scene class
	Background Class = 1
)

// Field is a dense two class posterior over an image
type Field struct {
	// Foreground holds the per pixel foreground score
	Foreground *frame.Plane
	// Background holds the per pixel background score
	Background *frame.Plane
	// Region is the area of the image that was evaluated, outside of it both
	// planes hold their priors
	Region geometry.Region

	pool *planePool
}

// Plane returns the plane for class c
func (f *Field) Plane(c Class) *frame.Plane {
	if c == Foreground {
		return f.Foreground
	}
	return f.Background
}

// Rows returns the image height covered by the field
func (f *Field) Rows() int {
	return f.Foreground.Rows
}

// Cols returns the image width covered by the field
func (f *Field) Cols() int {
	return f.Foreground.Cols
}

// Stats summarises a plane of a Field
type Stats struct {
	Min  float32
	Max  float32
	Mean float64
}

// Stats returns the minimum, maximum and mean of the plane for class c
func (f *Field) Stats(c Class) Stats {

	p := f.Plane(c)

	if len(p.Data) == 0 {
		return Stats{}
	}

	s := Stats{Min: float32(math.Inf(1)), Max: float32(math.Inf(-1))}
	sum := 0.0

	for _, v := range p.Data {
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
		sum += float64(v)
	}

	s.Mean = sum / float64(len(p.Data))

	return s
}

// Release hands the planes back to the engine for reuse when plane reuse is
// enabled.  The field must not be used afterwards.
func (f *Field) Release() {

	if f.pool == nil {
		return
	}

	f.pool.Put(f.Foreground.Rows, f.Foreground.Cols, f.Foreground.Data)
	f.pool.Put(f.Background.Rows, f.Background.Cols, f.Background.Data)

	f.Foreground, f.Background, f.pool = nil, nil, nil
}
