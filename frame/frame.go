// Package frame holds the in-memory pixel buffers shared by the appearance,
// posterior and depth packages.
package frame

import (
	"github.com/pkg/errors"
)

// Channels is the number of interleaved color channels in an Image
const Channels = 3

// ErrDimensionMismatch is returned when two buffers that must describe the
// same pixel grid have different sizes
var ErrDimensionMismatch = errors.New("buffer dimensions do not match")

// Image is a row-major 8-bit image with 3 interleaved channels in the order
// they were decoded (BGR for OpenCV sourced frames)
type Image struct {
	Rows int
	Cols int
	Pix  []uint8
}

// NewImage wraps pix as an Image.  The slice is not copied.
func NewImage(rows, cols int, pix []uint8) (*Image, error) {

	if rows < 0 || cols < 0 {
		return nil, errors.Errorf("invalid image size %dx%d", cols, rows)
	}

	if len(pix) != rows*cols*Channels {
		return nil, errors.Errorf("image buffer has %d bytes, expected %d",
			len(pix), rows*cols*Channels)
	}

	return &Image{Rows: rows, Cols: cols, Pix: pix}, nil
}

// NewBlankImage allocates a zeroed (black) Image
func NewBlankImage(rows, cols int) *Image {
	return &Image{
		Rows: rows,
		Cols: cols,
		Pix:  make([]uint8, rows*cols*Channels),
	}
}

// At returns the three channel values of the pixel at (row, col)
func (m *Image) At(row, col int) (uint8, uint8, uint8) {
	i := (row*m.Cols + col) * Channels
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// Set writes the three channel values of the pixel at (row, col)
func (m *Image) Set(row, col int, c0, c1, c2 uint8) {
	i := (row*m.Cols + col) * Channels
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = c0, c1, c2
}

// Mask is a row-major single channel 8-bit segmentation mask.  A value of 0
// marks object (foreground) pixels, any other value marks background.
type Mask struct {
	Rows int
	Cols int
	Pix  []uint8
}

// NewMask wraps pix as a Mask.  The slice is not copied.
func NewMask(rows, cols int, pix []uint8) (*Mask, error) {

	if rows < 0 || cols < 0 {
		return nil, errors.Errorf("invalid mask size %dx%d", cols, rows)
	}

	if len(pix) != rows*cols {
		return nil, errors.Errorf("mask buffer has %d bytes, expected %d",
			len(pix), rows*cols)
	}

	return &Mask{Rows: rows, Cols: cols, Pix: pix}, nil
}

// NewFilledMask allocates a Mask with every pixel set to val
func NewFilledMask(rows, cols int, val uint8) *Mask {
	m := &Mask{Rows: rows, Cols: cols, Pix: make([]uint8, rows*cols)}

	if val != 0 {
		for i := range m.Pix {
			m.Pix[i] = val
		}
	}

	return m
}

// At returns the mask value at (row, col)
func (m *Mask) At(row, col int) uint8 {
	return m.Pix[row*m.Cols+col]
}

// Set writes the mask value at (row, col)
func (m *Mask) Set(row, col int, val uint8) {
	m.Pix[row*m.Cols+col] = val
}

// CheckSameSize returns an error wrapping ErrDimensionMismatch if the image
// and mask do not cover the same pixel grid
func CheckSameSize(img *Image, mask *Mask) error {

	if img.Rows != mask.Rows || img.Cols != mask.Cols {
		return errors.Wrapf(ErrDimensionMismatch, "image is %dx%d, mask is %dx%d",
			img.Cols, img.Rows, mask.Cols, mask.Rows)
	}

	return nil
}
