package appearance

import (
	"image"

	"github.com/pkg/errors"

	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/geometry"
)

// RegionSeed defines how the object footprint is given to Build.  It is
// either a RectSeed or a MaskSeed.
type RegionSeed interface {
	build(img *frame.Image, p Params) (*Model, error)
}

// RectSeed seeds the footprint with a rectangle.  The background ring is
// the inflated rectangle minus the rectangle itself.
type RectSeed struct {
	Region geometry.Region
}

// MaskSeed seeds the footprint with a segmentation mask the same size as the
// image, 0 marking object pixels.  The background ring is every non-object
// pixel inside the inflated bounding box of the object pixels.
type MaskSeed struct {
	Mask *frame.Mask
}

// build samples histograms for a rectangular seed
func (s RectSeed) build(img *frame.Image, p Params) (*Model, error) {

	histf := NewColorHistogram(p.BinCount)
	histb := NewColorHistogram(p.BinCount)

	bbox := s.Region.Clip(img.Rows, img.Cols)
	accumulate(img, bbox, histf)

	inflated := geometry.InflateRect(bbox, img.Rows, img.Cols, p.InflateSize)
	accumulate(img, inflated, histb)

	// the ring is the inflated box minus the seed box, never below zero
	for k := range histb {
		for i := range histb[k] {
			histb[k][i] -= histf[k][i]

			if histb[k][i] < 0 {
				histb[k][i] = 0
			}
		}
	}

	histf.normalize(p.Epsilon)
	histb.normalize(p.Epsilon)

	return &Model{Foreground: histf, Background: histb, Region: inflated}, nil
}

// build samples histograms for a mask seed
func (s MaskSeed) build(img *frame.Image, p Params) (*Model, error) {

	if s.Mask == nil {
		return nil, errors.New("mask seed has nil mask")
	}

	if err := frame.CheckSameSize(img, s.Mask); err != nil {
		return nil, err
	}

	histf := NewColorHistogram(p.BinCount)
	histb := NewColorHistogram(p.BinCount)

	minX, minY := img.Cols, img.Rows
	maxX, maxY := -1, -1

	for i := 0; i < img.Rows; i++ {
		for j := 0; j < img.Cols; j++ {

			if s.Mask.At(i, j) != 0 {
				continue
			}

			histf.add(img.At(i, j))

			minX = min(minX, j)
			minY = min(minY, i)
			maxX = max(maxX, j)
			maxY = max(maxY, i)
		}
	}

	if maxX < 0 {
		// no object pixels, leave both histograms empty
		return &Model{Foreground: histf, Background: histb}, nil
	}

	bbox := geometry.EnclosingRect([]image.Point{{X: minX, Y: minY}, {X: maxX, Y: maxY}},
		img.Rows, img.Cols)
	inflated := geometry.InflateRect(bbox, img.Rows, img.Cols, p.InflateSize)

	for i := inflated.TLY(); i < inflated.BRY(); i++ {
		for j := inflated.TLX(); j < inflated.BRX(); j++ {
			if s.Mask.At(i, j) > 0 {
				histb.add(img.At(i, j))
			}
		}
	}

	histf.normalize(p.Epsilon)
	histb.normalize(p.Epsilon)

	return &Model{Foreground: histf, Background: histb, Region: inflated}, nil
}

// accumulate counts every pixel of img inside r into hist
func accumulate(img *frame.Image, r geometry.Region, hist ColorHistogram) {
	for i := r.TLY(); i < r.BRY(); i++ {
		for j := r.TLX(); j < r.BRX(); j++ {
			hist.add(img.At(i, j))
		}
	}
}
