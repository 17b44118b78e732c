package depth

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/frame"
)

// GrayscaleMap is used to not apply coloring to the output depth image, but
// to leave it as grayscale
const GrayscaleMap = gocv.ColormapTypes(9999)

// Params defines the depth display parameters
type Params struct {
	// Near is the renderer's near clip plane in metres
	Near float32
	// Far is the renderer's far clip plane in metres
	Far float32
	// Invert the depth image so near surfaces are bright
	Invert bool
	// Colormap to apply to the depth image, if you want it left as grayscale
	// then pass depth.GrayscaleMap
	Colormap gocv.ColormapTypes
}

// DefaultParams sets a 5cm to 20m frustum, non-inverting output and the Hot
// color scheme
func DefaultParams() Params {
	return Params{
		Near:     0.05,
		Far:      20,
		Invert:   false,
		Colormap: gocv.ColormapHot,
	}
}

// Validate checks the clip planes describe a usable frustum
func (p Params) Validate() error {

	if !(p.Near > 0) || !(p.Far > p.Near) {
		return fmt.Errorf("invalid clip planes near=%g far=%g", p.Near, p.Far)
	}

	return nil
}

// Renderer produces display images of renderer depth buffers
type Renderer struct {
	// Params are the depth display parameters
	Params Params
}

// NewRenderer returns a depth Renderer
func NewRenderer(p Params) *Renderer {
	return &Renderer{
		Params: p,
	}
}

// ColorMap writes a display image of a normalized depth buffer into dst
func (r *Renderer) ColorMap(zbuffer *frame.Plane, dst *gocv.Mat) error {

	pretty := PrettyDepth(zbuffer, r.Params.Near, r.Params.Far)

	return r.ColorMapPlane(pretty, dst)
}

// ColorMapPlane contrast stretches an arbitrary plane and writes it into dst
// with the configured colormap
func (r *Renderer) ColorMapPlane(p *frame.Plane, dst *gocv.Mat) error {

	gray := ContrastStretch(p, r.Params.Invert)

	// Make a Mat from bytes
	u8Mat, err := gocv.NewMatFromBytes(p.Rows, p.Cols, gocv.MatTypeCV8U, gray)

	if err != nil {
		return fmt.Errorf("failed to create depth mat: %w", err)
	}

	defer u8Mat.Close()

	if r.Params.Colormap == GrayscaleMap {
		// no coloring
		u8Mat.CopyTo(dst)

	} else {
		// apply colormap
		gocv.ApplyColorMap(u8Mat, dst, r.Params.Colormap)
	}

	return nil
}
