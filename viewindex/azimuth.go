// Package viewindex maps a continuous object heading onto one of the 360
// discretized azimuth bins used to pick a pre-rendered reference view of a
// CAD model, and back again.
package viewindex

import (
	"fmt"
	"math"
	"strings"
)

// NumBins is the number of one degree azimuth bins
const NumBins = 360

// twoPi is a full turn in radians
const twoPi = 2 * math.Pi

// maxWrapTurns bounds how many turns are removed one at a time before
// falling back to math.Mod
const maxWrapTurns = 1 << 16

// Convention selects which rotation direction increases the azimuth index
type Convention int

const (
	// Clockwise negates the heading before binning, so index increases as
	// the angle decreases
	Clockwise Convention = iota
	// CounterClockwise bins the heading as is
	CounterClockwise
)

// String returns the name of the convention
func (c Convention) String() string {
	switch c {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counterclockwise"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// ParseConvention converts a convention name, as returned by String, back
// into a Convention
func ParseConvention(s string) (Convention, error) {

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "clockwise", "cw":
		return Clockwise, nil
	case "counterclockwise", "counter-clockwise", "ccw":
		return CounterClockwise, nil
	}

	return Clockwise, fmt.Errorf("unknown azimuth convention %q", s)
}

// Valid reports whether c is one of the defined conventions
func (c Convention) Valid() bool {
	return c == Clockwise || c == CounterClockwise
}

// sign returns the multiplier applied to headings under this convention
func (c Convention) sign() float64 {
	if c == Clockwise {
		return -1
	}
	return 1
}

// Indexer converts between headings in radians and azimuth bins under a
// fixed Convention
type Indexer struct {
	Convention Convention
}

// NewIndexer returns an Indexer using the given convention
func NewIndexer(c Convention) Indexer {
	return Indexer{Convention: c}
}

// AzimuthIndex returns the azimuth bin in [0, 360) for the heading rad.
// Non-finite headings map to bin 0.
func (x Indexer) AzimuthIndex(rad float64) int {

	deg := math.Floor(x.Convention.sign() * rad / math.Pi * 180)

	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}

	// deg is integral here so the reduction is exact
	if math.Abs(deg) > maxWrapTurns*NumBins {
		deg = math.Mod(deg, NumBins)
	}

	index := int(deg)

	for index >= NumBins {
		index -= NumBins
	}

	for index < 0 {
		index += NumBins
	}

	return index
}

// AngleFromAzimuthIndex returns the heading in radians at the centre of bin
// index, so that AzimuthIndex(AngleFromAzimuthIndex(k)) == k
func (x Indexer) AngleFromAzimuthIndex(index int) float64 {

	deg := (float64(index) + 0.5) / 180 * math.Pi

	if x.Convention == Clockwise {
		return twoPi - deg
	}

	return deg
}

// NormalizeAngle wraps rad into [0, 2π).  Non-finite input returns 0.
func NormalizeAngle(rad float64) float64 {

	if math.IsNaN(rad) || math.IsInf(rad, 0) {
		return 0
	}

	if math.Abs(rad) > maxWrapTurns*twoPi {
		rad = math.Mod(rad, twoPi)
	}

	for rad >= twoPi {
		rad -= twoPi
	}

	for rad < 0 {
		rad += twoPi
	}

	// a tiny negative angle rounds up to exactly 2π when a turn is added
	if rad >= twoPi {
		rad = 0
	}

	return rad
}
