package frame

import (
	"github.com/pkg/errors"
)

// Plane is a row-major single channel float32 buffer, used for posterior
// probabilities and depth buffers
type Plane struct {
	Rows int
	Cols int
	Data []float32
}

// NewPlane allocates a zeroed Plane
func NewPlane(rows, cols int) *Plane {
	return &Plane{
		Rows: rows,
		Cols: cols,
		Data: make([]float32, rows*cols),
	}
}

// WrapPlane wraps data as a Plane.  The slice is not copied.
func WrapPlane(rows, cols int, data []float32) (*Plane, error) {

	if rows < 0 || cols < 0 {
		return nil, errors.Errorf("invalid plane size %dx%d", cols, rows)
	}

	if len(data) != rows*cols {
		return nil, errors.Errorf("plane buffer has %d values, expected %d",
			len(data), rows*cols)
	}

	return &Plane{Rows: rows, Cols: cols, Data: data}, nil
}

// At returns the value at (row, col)
func (p *Plane) At(row, col int) float32 {
	return p.Data[row*p.Cols+col]
}

// Set writes the value at (row, col)
func (p *Plane) Set(row, col int, v float32) {
	p.Data[row*p.Cols+col] = v
}

// Row returns the backing slice of a single row
func (p *Plane) Row(row int) []float32 {
	return p.Data[row*p.Cols : (row+1)*p.Cols]
}

// Fill sets every value of the plane to v
func (p *Plane) Fill(v float32) {
	for i := range p.Data {
		p.Data[i] = v
	}
}
