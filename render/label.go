package render

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/frame"
)

// LabelMap paints a row-major map of integer labels into dst as a BGR image.
// Label -1 marks background and is painted black, other labels take their
// ClassColor.
func LabelMap(labels []int32, rows, cols int, dst *gocv.Mat) error {

	if rows < 0 || cols < 0 || len(labels) != rows*cols {
		return fmt.Errorf("label map of %d values does not match %dx%d",
			len(labels), cols, rows)
	}

	imgData := make([]uint8, len(labels)*3)

	frame.ParallelRows(0, rows, 0, 0, func(from, to int) {
		for i := from * cols; i < to*cols; i++ {
			clr := ClassColor(int(labels[i]))

			imgData[i*3+0] = clr.B
			imgData[i*3+1] = clr.G
			imgData[i*3+2] = clr.R
		}
	})

	tmpImg, err := gocv.NewMatFromBytes(rows, cols, gocv.MatTypeCV8UC3, imgData)

	if err != nil {
		return fmt.Errorf("error creating label Mat: %w", err)
	}

	defer tmpImg.Close()
	tmpImg.CopyTo(dst)

	return nil
}
