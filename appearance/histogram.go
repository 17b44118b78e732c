package appearance

import (
	"gonum.org/v1/gonum/floats"

	"github.com/swdee/go-regiontrack/frame"
)

// Histogram is the distribution of one color channel over a fixed number of
// equal width bins
type Histogram []float64

// ColorHistogram holds one Histogram per image channel
type ColorHistogram [frame.Channels]Histogram

// NewColorHistogram allocates a zeroed ColorHistogram with the given number
// of bins per channel
func NewColorHistogram(bins int) ColorHistogram {

	var h ColorHistogram

	for k := range h {
		h[k] = make(Histogram, bins)
	}

	return h
}

// BinIndex returns the histogram bin for channel value v with the given bin
// count.  Bin counts that do not divide 256 put the remainder values in the
// last bin, counts above 256 use one bin per value.
func BinIndex(v uint8, bins int) int {

	idx := int(v) / max(256/bins, 1)

	if idx >= bins {
		return bins - 1
	}

	return idx
}

// Sum returns the total of all bins
func (h Histogram) Sum() float64 {
	return floats.Sum(h)
}

// Peak returns the index of the largest bin
func (h Histogram) Peak() int {
	if len(h) == 0 {
		return -1
	}
	return floats.MaxIdx(h)
}

// Normalize scales the histogram in place to sum to one.  eps is added to
// the denominator so an empty histogram stays at zero instead of dividing by
// zero.
func (h Histogram) Normalize(eps float64) {
	floats.Scale(1/(h.Sum()+eps), h)
}

// Bins returns the number of bins per channel
func (c ColorHistogram) Bins() int {
	return len(c[0])
}

// Likelihood returns the product over channels of the bin values for the
// pixel color (c0, c1, c2)
func (c ColorHistogram) Likelihood(c0, c1, c2 uint8) float64 {
	bins := len(c[0])
	return c[0][BinIndex(c0, bins)] * c[1][BinIndex(c1, bins)] * c[2][BinIndex(c2, bins)]
}

// add counts the pixel color (c0, c1, c2) into the histogram
func (c ColorHistogram) add(c0, c1, c2 uint8) {
	bins := len(c[0])
	c[0][BinIndex(c0, bins)]++
	c[1][BinIndex(c1, bins)]++
	c[2][BinIndex(c2, bins)]++
}

// normalize normalizes every channel independently
func (c ColorHistogram) normalize(eps float64) {
	for k := range c {
		c[k].Normalize(eps)
	}
}
