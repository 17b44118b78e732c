package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/preprocess"
)

// dilate grows a mask by one pixel in every direction
func dilate(src gocv.Mat) gocv.Mat {

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()

	dilated := gocv.NewMat()
	gocv.Dilate(src, &dilated, kernel)

	return dilated
}

// checkOverlayTarget verifies img is a BGR image of the given size
func checkOverlayTarget(img *gocv.Mat, rows, cols int) error {

	if img.Type() != gocv.MatTypeCV8UC3 {
		return fmt.Errorf("overlay target must be CV_8UC3, got %v", img.Type())
	}

	if img.Rows() != rows || img.Cols() != cols {
		return fmt.Errorf("overlay of %dx%d does not match image of %dx%d",
			cols, rows, img.Cols(), img.Rows())
	}

	return nil
}

// OverlayMask paints a dilated mask onto img.  Pixels where the mask is
// non-zero are painted, or with invert the pixels where the mask is zero.
// Painted pixels take clr, or the mask value as gray when clr is nil.
func OverlayMask(img *gocv.Mat, mask *frame.Mask, invert bool, clr *color.RGBA) error {

	if err := checkOverlayTarget(img, mask.Rows, mask.Cols); err != nil {
		return err
	}

	maskMat, err := gocv.NewMatFromBytes(mask.Rows, mask.Cols, gocv.MatTypeCV8U, mask.Pix)

	if err != nil {
		return fmt.Errorf("error creating mask Mat: %w", err)
	}

	defer maskMat.Close()

	dilated := dilate(maskMat)
	defer dilated.Close()

	maskData := dilated.ToBytes()

	// it is too slow to manipulate pixel by pixel using GoCV due to slowness
	// over CGO.  So we copy the bytes from the source image and manipulate
	// the bytes directly before copying back to a Mat
	imgData := img.ToBytes()

	for i, v := range maskData {

		if (v > 0) == invert {
			continue
		}

		if clr == nil {
			imgData[i*3+0], imgData[i*3+1], imgData[i*3+2] = v, v, v
		} else {
			imgData[i*3+0], imgData[i*3+1], imgData[i*3+2] = clr.B, clr.G, clr.R
		}
	}

	return copyBack(img, imgData)
}

// OverlayObject paints the object footprint of a mask, the pixels where the
// mask is 0, grown by one pixel onto img with clr
func OverlayObject(img *gocv.Mat, mask *frame.Mask, clr color.RGBA) error {

	object := frame.NewFilledMask(mask.Rows, mask.Cols, 0)

	for i, v := range mask.Pix {
		if v == 0 {
			object.Pix[i] = 255
		}
	}

	return OverlayMask(img, object, false, &clr)
}

// OverlayPlane paints a dilated score plane with values in [0, 1] onto img.
// Negative values are left unpainted.  Painted pixels are clr scaled by the
// value, or the value as gray when clr is nil.
func OverlayPlane(img *gocv.Mat, p *frame.Plane, clr *color.RGBA) error {

	if err := checkOverlayTarget(img, p.Rows, p.Cols); err != nil {
		return err
	}

	planeMat, err := preprocess.PlaneToMat(p)

	if err != nil {
		return fmt.Errorf("error creating plane Mat: %w", err)
	}

	defer planeMat.Close()

	dilated := dilate(planeMat)
	defer dilated.Close()

	values, err := dilated.DataPtrFloat32()

	if err != nil {
		return fmt.Errorf("error reading dilated plane: %w", err)
	}

	imgData := img.ToBytes()

	for i, v := range values {

		if v < 0 {
			continue
		}

		if clr == nil {
			g := scale(255, v)
			imgData[i*3+0], imgData[i*3+1], imgData[i*3+2] = g, g, g
		} else {
			imgData[i*3+0] = scale(clr.B, v)
			imgData[i*3+1] = scale(clr.G, v)
			imgData[i*3+2] = scale(clr.R, v)
		}
	}

	return copyBack(img, imgData)
}

// scale multiplies a channel value by v saturating at 255
func scale(c uint8, v float32) uint8 {
	return uint8(min(float32(c)*v, 255))
}

// copyBack replaces the contents of img with the BGR bytes in data
func copyBack(img *gocv.Mat, data []uint8) error {

	tmpImg, err := gocv.NewMatFromBytes(img.Rows(), img.Cols(), gocv.MatTypeCV8UC3, data)

	if err != nil {
		return fmt.Errorf("error creating overlay Mat: %w", err)
	}

	defer tmpImg.Close()
	tmpImg.CopyTo(img)

	return nil
}
