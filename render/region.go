/*
Package render draws debugging visualizations of the tracker state with
GoCV: posterior planes, label maps, mask overlays and region boxes.
*/
package render

import (
	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/geometry"
)

// RegionBoxes renders a box around each region with an optional text label.
// labels may be shorter than regions, in which case the remaining boxes are
// drawn without a label.
func RegionBoxes(img *gocv.Mat, regions []geometry.Region, labels []string,
	font Font, lineThickness int) {

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0, len(labels))

	for i, r := range regions {

		if r.Empty() {
			continue
		}

		useClr := ClassColor(i)

		gocv.Rectangle(img, r.Rect(), useClr, lineThickness)

		if i >= len(labels) || labels[i] == "" {
			continue
		}

		boxLabels = append(boxLabels,
			font.place(labels[i], useClr, r.TLX(), r.BRX(), r.TLY(), lineThickness))
	}

	// draw all labels last so they are the top most layer and boxes of
	// neighbouring regions don't overlap them
	for _, l := range boxLabels {
		font.draw(img, l)
	}
}
