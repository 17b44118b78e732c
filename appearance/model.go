/*
Package appearance builds the foreground and background color histograms of
an object from a single frame.  The object footprint is seeded either by a
rectangle or by a binary segmentation mask, typically a rendered silhouette,
and the background is sampled from a ring around that footprint.

Models are rebuilt from scratch for every frame.
*/
package appearance

import (
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/geometry"
)

// ErrBinMismatch is returned when two histograms that must be compared bin
// for bin have different bin counts
var ErrBinMismatch = errors.New("histogram bin counts do not match")

// Params defines the histogram construction parameters
type Params struct {
	// BinCount is the number of bins per color channel, 1 to 256
	BinCount int
	// InflateSize is the width in pixels of the background ring sampled
	// around the object footprint
	InflateSize int
	// Epsilon is added to the normalization denominator so an empty class
	// does not divide by zero
	Epsilon float64
}

// DefaultParams returns the default histogram construction parameters
func DefaultParams() Params {
	return Params{
		BinCount:    16,
		InflateSize: 2,
		Epsilon:     1e-4,
	}
}

// Validate returns every problem found with the parameters
func (p Params) Validate() error {

	var err error

	if p.BinCount < 1 || p.BinCount > 256 {
		err = multierr.Append(err, fmt.Errorf("bin count %d outside [1, 256]", p.BinCount))
	}

	if p.InflateSize < 0 {
		err = multierr.Append(err, fmt.Errorf("inflate size %d is negative", p.InflateSize))
	}

	if p.Epsilon <= 0 {
		err = multierr.Append(err, fmt.Errorf("epsilon %g must be positive", p.Epsilon))
	}

	return err
}

// Model is the appearance of one object in one frame
type Model struct {
	// Foreground is the normalized color distribution of the object
	Foreground ColorHistogram
	// Background is the normalized color distribution of the surrounding ring
	Background ColorHistogram
	// Region is the inflated footprint the histograms were sampled from, and
	// the region the posterior should be evaluated over
	Region geometry.Region
}

// Observer receives every Model built, for debugging and visualization
type Observer interface {
	ObserveModel(m *Model)
}

// Builder builds appearance Models
type Builder struct {
	// Params are the histogram construction parameters
	Params   Params
	observer Observer
}

// NewBuilder returns a Builder.  The observer may be nil.
func NewBuilder(p Params, observer Observer) (*Builder, error) {

	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid appearance params")
	}

	return &Builder{Params: p, observer: observer}, nil
}

// Build samples the foreground and background histograms of img for the
// given seed
func (b *Builder) Build(img *frame.Image, seed RegionSeed) (*Model, error) {

	if img == nil {
		return nil, errors.New("nil image")
	}

	if seed == nil {
		return nil, errors.New("nil region seed")
	}

	m, err := seed.build(img, b.Params)

	if err != nil {
		return nil, err
	}

	if b.observer != nil {
		b.observer.ObserveModel(m)
	}

	return m, nil
}
