/*
Package posterior turns a pair of foreground/background color histograms
into a dense per pixel probability field over an image, used as the energy
for segmentation and pose refinement.

Rows are evaluated in parallel.  Every pixel depends only on its own color
and the read only histograms, so the output is identical for any worker
count or chunk size.
*/
package posterior

import (
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/swdee/go-regiontrack/appearance"
	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/geometry"
)

// Params defines the posterior computation parameters
type Params struct {
	// AreaForeground is the expected foreground pixel count, dividing the
	// foreground likelihood
	AreaForeground float64
	// AreaBackground is the expected background pixel count, dividing the
	// background likelihood.  Its inverse is the background prior outside
	// the evaluated region.
	AreaBackground float64
	// Workers is the maximum number of goroutines used, 0 for GOMAXPROCS
	Workers int
	// RowsPerTask is the number of rows handed to a worker at a time
	RowsPerTask int
	// ReusePlanes recycles the planes of released fields between calls
	ReusePlanes bool
}

// DefaultParams returns the default posterior parameters
func DefaultParams() Params {
	return Params{
		AreaForeground: 500,
		AreaBackground: 100,
		Workers:        runtime.GOMAXPROCS(0),
		RowsPerTask:    frame.DefaultRowsPerTask,
		ReusePlanes:    false,
	}
}

// Validate returns every problem found with the parameters
func (p Params) Validate() error {

	var err error

	if !(p.AreaForeground > 0) {
		err = multierr.Append(err, fmt.Errorf("foreground area %g must be positive", p.AreaForeground))
	}

	if !(p.AreaBackground > 0) {
		err = multierr.Append(err, fmt.Errorf("background area %g must be positive", p.AreaBackground))
	}

	if p.Workers < 0 {
		err = multierr.Append(err, fmt.Errorf("worker count %d is negative", p.Workers))
	}

	if p.RowsPerTask < 0 {
		err = multierr.Append(err, fmt.Errorf("rows per task %d is negative", p.RowsPerTask))
	}

	return err
}

// Observer receives every Field computed, for debugging and visualization
type Observer interface {
	ObservePosterior(f *Field)
}

// Engine computes posterior fields
type Engine struct {
	params   Params
	observer Observer
	pool     *planePool
}

// NewEngine returns an Engine.  The observer may be nil.
func NewEngine(p Params, observer Observer) (*Engine, error) {

	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid posterior params")
	}

	e := &Engine{
		params:   p,
		observer: observer,
	}

	if p.ReusePlanes {
		e.pool = newPlanePool()
	}

	return e, nil
}

// Params returns the parameters the engine was created with
func (e *Engine) Params() Params {
	return e.params
}

// ComputeFull computes the posterior field over the whole image
func (e *Engine) ComputeFull(img *frame.Image, histf, histb appearance.ColorHistogram) (*Field, error) {

	if img == nil {
		return nil, errors.New("nil image")
	}

	return e.Compute(img, histf, histb, geometry.NewRegion(0, 0, img.Cols, img.Rows))
}

// Compute computes the posterior field of img for the given foreground and
// background histograms.  Pixels inside region (clipped to the image) hold
// the likelihood of each class divided by its expected area, pixels outside
// keep the priors: 0 for foreground and 1/AreaBackground for background.
func (e *Engine) Compute(img *frame.Image, histf, histb appearance.ColorHistogram,
	region geometry.Region) (*Field, error) {

	if img == nil {
		return nil, errors.New("nil image")
	}

	bins, err := checkHistograms(histf, histb)

	if err != nil {
		return nil, err
	}

	f := e.newField(img.Rows, img.Cols)
	f.Region = region.Clip(img.Rows, img.Cols)
	f.Foreground.Fill(0)
	f.Background.Fill(float32(1 / e.params.AreaBackground))

	k := kernel{
		img:    img,
		histf:  histf,
		histb:  histb,
		bins:   bins,
		areaF:  e.params.AreaForeground,
		areaB:  e.params.AreaBackground,
		region: f.Region,
		pf:     f.Foreground,
		pb:     f.Background,
	}

	frame.ParallelRows(f.Region.TLY(), f.Region.BRY(), e.params.Workers,
		e.params.RowsPerTask, k.run)

	if e.observer != nil {
		e.observer.ObservePosterior(f)
	}

	return f, nil
}

// newField allocates a field, from the pool if plane reuse is enabled
func (e *Engine) newField(rows, cols int) *Field {

	if e.pool == nil {
		return &Field{
			Foreground: frame.NewPlane(rows, cols),
			Background: frame.NewPlane(rows, cols),
		}
	}

	return &Field{
		Foreground: &frame.Plane{Rows: rows, Cols: cols, Data: e.pool.Get(rows, cols)},
		Background: &frame.Plane{Rows: rows, Cols: cols, Data: e.pool.Get(rows, cols)},
		pool:       e.pool,
	}
}

// checkHistograms verifies every channel of both histograms has the same
// bin count, between 1 and 256, and returns it
func checkHistograms(histf, histb appearance.ColorHistogram) (int, error) {

	bins := len(histf[0])

	if bins == 0 {
		return 0, errors.Wrap(appearance.ErrBinMismatch, "foreground histogram has no bins")
	}

	if bins > 256 {
		return 0, errors.Wrapf(appearance.ErrBinMismatch,
			"%d bins exceeds one bin per channel value", bins)
	}

	for k := 0; k < frame.Channels; k++ {
		if len(histf[k]) != bins || len(histb[k]) != bins {
			return 0, errors.Wrapf(appearance.ErrBinMismatch,
				"channel %d has %d foreground and %d background bins, expected %d",
				k, len(histf[k]), len(histb[k]), bins)
		}
	}

	return bins, nil
}

// kernel evaluates the per pixel posterior over a range of rows
type kernel struct {
	img          *frame.Image
	histf, histb appearance.ColorHistogram
	bins         int
	areaF, areaB float64
	region       geometry.Region
	pf, pb       *frame.Plane
}

// run evaluates rows [from, to) of the region
func (k *kernel) run(from, to int) {

	x0, x1 := k.region.TLX(), k.region.BRX()

	for i := from; i < to; i++ {
		rowF := k.pf.Row(i)
		rowB := k.pb.Row(i)

		for j := x0; j < x1; j++ {
			c0, c1, c2 := k.img.At(i, j)

			b0 := appearance.BinIndex(c0, k.bins)
			b1 := appearance.BinIndex(c1, k.bins)
			b2 := appearance.BinIndex(c2, k.bins)

			lf := k.histf[0][b0] * k.histf[1][b1] * k.histf[2][b2]
			lb := k.histb[0][b0] * k.histb[1][b1] * k.histb[2][b2]

			rowF[j] = float32(lf / k.areaF)
			rowB[j] = float32(lb / k.areaB)
		}
	}
}
