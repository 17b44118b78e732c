package render

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/depth"
	"github.com/swdee/go-regiontrack/frame"
)

// PlaneView writes a display image of a score plane into dst.  Values are
// scaled by the plane maximum so zero stays black, then the colormap is
// applied.  Pass depth.GrayscaleMap to leave the output single channel.
func PlaneView(p *frame.Plane, dst *gocv.Mat, colormap gocv.ColormapTypes) error {

	maxV := float32(0)

	for _, v := range p.Data {
		if v > maxV && !math.IsInf(float64(v), 1) {
			maxV = v
		}
	}

	gray := make([]uint8, len(p.Data))

	if maxV > 0 {
		frame.ParallelRows(0, p.Rows, 0, 0, func(from, to int) {
			for i := from; i < to; i++ {
				row := p.Row(i)
				out := gray[i*p.Cols : (i+1)*p.Cols]

				for j, v := range row {
					if !(v > 0) {
						continue
					}
					out[j] = uint8(math.Round(float64(min(v/maxV, 1) * 255)))
				}
			}
		})
	}

	u8Mat, err := gocv.NewMatFromBytes(p.Rows, p.Cols, gocv.MatTypeCV8U, gray)

	if err != nil {
		return fmt.Errorf("failed to create plane mat: %w", err)
	}

	defer u8Mat.Close()

	if colormap == depth.GrayscaleMap {
		u8Mat.CopyTo(dst)
	} else {
		gocv.ApplyColorMap(u8Mat, dst, colormap)
	}

	return nil
}
