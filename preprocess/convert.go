/*
Package preprocess converts decoded OpenCV frames, masks and float buffers
to and from the in-memory buffers of package frame.
*/
package preprocess

import (
	"fmt"
	"unsafe"

	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/frame"
)

// ImageFromMat copies a CV_8UC3 Mat into a frame.Image keeping its channel
// order
func ImageFromMat(src gocv.Mat) (*frame.Image, error) {

	if src.Type() != gocv.MatTypeCV8UC3 {
		return nil, fmt.Errorf("image mat must be CV_8UC3, got %v", src.Type())
	}

	// it is too slow to read pixel by pixel over CGO so copy the bytes out
	// in one go
	return frame.NewImage(src.Rows(), src.Cols(), src.ToBytes())
}

// ImageToMat copies a frame.Image into a new CV_8UC3 Mat.  The caller must
// Close the returned Mat.
func ImageToMat(img *frame.Image) (gocv.Mat, error) {
	return cloneFromBytes(img.Rows, img.Cols, gocv.MatTypeCV8UC3, img.Pix)
}

// cloneFromBytes creates a Mat owning its own copy of data, as the Mat made by
// NewMatFromBytes refers to the Go slice
func cloneFromBytes(rows, cols int, mt gocv.MatType, data []byte) (gocv.Mat, error) {

	tmp, err := gocv.NewMatFromBytes(rows, cols, mt, data)

	if err != nil {
		return gocv.NewMat(), err
	}

	defer tmp.Close()

	return tmp.Clone(), nil
}

// MaskFromMat copies a segmentation mask Mat into a frame.Mask.  Three
// channel masks are converted to grayscale first.
func MaskFromMat(src gocv.Mat) (*frame.Mask, error) {

	switch src.Type() {
	case gocv.MatTypeCV8U:
		return frame.NewMask(src.Rows(), src.Cols(), src.ToBytes())

	case gocv.MatTypeCV8UC3:
		gray := gocv.NewMat()
		defer gray.Close()

		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

		return frame.NewMask(gray.Rows(), gray.Cols(), gray.ToBytes())
	}

	return nil, fmt.Errorf("mask mat must be CV_8U or CV_8UC3, got %v", src.Type())
}

// SilhouetteMask builds an object mask from a rendered silhouette, where
// object pixels are brighter than threshold.  Object pixels become 0 and all
// others 255, matching the convention of frame.Mask.
func SilhouetteMask(silhouette gocv.Mat, threshold float32) (*frame.Mask, error) {

	src := silhouette

	if silhouette.Channels() == 3 {
		gray := gocv.NewMat()
		defer gray.Close()

		gocv.CvtColor(silhouette, &gray, gocv.ColorBGRToGray)
		src = gray
	}

	bin := gocv.NewMat()
	defer bin.Close()

	gocv.Threshold(src, &bin, threshold, 255, gocv.ThresholdBinaryInv)

	if bin.Type() != gocv.MatTypeCV8U {
		conv := gocv.NewMat()
		defer conv.Close()

		bin.ConvertTo(&conv, gocv.MatTypeCV8U)

		return frame.NewMask(conv.Rows(), conv.Cols(), conv.ToBytes())
	}

	return frame.NewMask(bin.Rows(), bin.Cols(), bin.ToBytes())
}

// PlaneFromMat copies a CV_32F Mat into a frame.Plane
func PlaneFromMat(src gocv.Mat) (*frame.Plane, error) {

	if src.Type() != gocv.MatTypeCV32F {
		return nil, fmt.Errorf("plane mat must be CV_32F, got %v", src.Type())
	}

	data, err := src.DataPtrFloat32()

	if err != nil {
		return nil, fmt.Errorf("error reading plane mat: %w", err)
	}

	return frame.WrapPlane(src.Rows(), src.Cols(), append([]float32(nil), data...))
}

// PlaneToMat copies a frame.Plane into a new CV_32F Mat.  The caller must
// Close the returned Mat.
func PlaneToMat(p *frame.Plane) (gocv.Mat, error) {

	if len(p.Data) == 0 {
		return gocv.NewMatWithSize(p.Rows, p.Cols, gocv.MatTypeCV32F), nil
	}

	buf := unsafe.Slice((*byte)(unsafe.Pointer(&p.Data[0])), len(p.Data)*4)

	return cloneFromBytes(p.Rows, p.Cols, gocv.MatTypeCV32F, buf)
}
