package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/depth"
	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/geometry"
)

func TestClassColor(t *testing.T) {

	assert.Equal(t, Black, ClassColor(-1))
	assert.Equal(t, classColors[0], ClassColor(0))
	assert.Equal(t, classColors[1], ClassColor(len(classColors)+1))
}

func TestPlaneView(t *testing.T) {

	p, err := frame.WrapPlane(1, 4, []float32{0, 0.5, 1, 2})
	require.NoError(t, err)

	gray := gocv.NewMat()
	defer gray.Close()

	require.NoError(t, PlaneView(p, &gray, depth.GrayscaleMap))
	assert.Equal(t, 1, gray.Channels())
	assert.Equal(t, []uint8{0, 64, 128, 255}, gray.ToBytes())

	colored := gocv.NewMat()
	defer colored.Close()

	require.NoError(t, PlaneView(p, &colored, gocv.ColormapJet))
	assert.Equal(t, 3, colored.Channels())

	zero := frame.NewPlane(2, 2)
	require.NoError(t, PlaneView(zero, &gray, depth.GrayscaleMap))
	assert.Equal(t, []uint8{0, 0, 0, 0}, gray.ToBytes())
}

func TestLabelMap(t *testing.T) {

	dst := gocv.NewMat()
	defer dst.Close()

	require.NoError(t, LabelMap([]int32{-1, 0, 1, 2}, 2, 2, &dst))

	data := dst.ToBytes()
	require.Len(t, data, 12)

	for i, label := range []int{-1, 0, 1, 2} {
		clr := ClassColor(label)
		assert.Equal(t, []uint8{clr.B, clr.G, clr.R}, data[i*3:i*3+3], "label %d", label)
	}

	assert.Error(t, LabelMap([]int32{0, 1, 2}, 2, 2, &dst))
}

func TestOverlayMask(t *testing.T) {

	red := color.RGBA{R: 255, A: 255}

	tests := []struct {
		name    string
		invert  bool
		clr     *color.RGBA
		inside  []uint8
		outside []uint8
	}{
		{"gray", false, nil, []uint8{255, 255, 255}, []uint8{0, 0, 0}},
		{"colored", false, &red, []uint8{0, 0, 255}, []uint8{0, 0, 0}},
		{"inverted", true, &red, []uint8{0, 0, 0}, []uint8{0, 0, 255}},
	}

	for _, tc := range tests {
		mask := frame.NewFilledMask(9, 9, 0)
		mask.Set(4, 4, 255)

		img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 9, 9, gocv.MatTypeCV8UC3)

		require.NoError(t, OverlayMask(&img, mask, tc.invert, tc.clr), tc.name)

		data := img.ToBytes()

		// dilation grows the single pixel into its 3x3 neighbourhood
		for _, px := range [][2]int{{4, 4}, {3, 3}, {5, 5}} {
			i := (px[0]*9 + px[1]) * 3
			assert.Equal(t, tc.inside, data[i:i+3], "%s pixel %v", tc.name, px)
		}

		for _, px := range [][2]int{{0, 0}, {2, 2}, {6, 6}} {
			i := (px[0]*9 + px[1]) * 3
			assert.Equal(t, tc.outside, data[i:i+3], "%s pixel %v", tc.name, px)
		}

		img.Close()
	}

	wrong := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 5, 5, gocv.MatTypeCV8UC3)
	defer wrong.Close()

	assert.Error(t, OverlayMask(&wrong, frame.NewFilledMask(9, 9, 0), false, nil))
}

func TestOverlayObjectGrowsFootprint(t *testing.T) {

	// object is the 3x3 block at rows and columns 3 to 5
	mask := frame.NewFilledMask(9, 9, 255)
	for i := 3; i <= 5; i++ {
		for j := 3; j <= 5; j++ {
			mask.Set(i, j, 0)
		}
	}

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 9, 9, gocv.MatTypeCV8UC3)
	defer img.Close()

	require.NoError(t, OverlayObject(&img, mask, Pink))

	data := img.ToBytes()
	pink := []uint8{Pink.B, Pink.G, Pink.R}

	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			want := []uint8{0, 0, 0}
			if i >= 2 && i <= 6 && j >= 2 && j <= 6 {
				want = pink
			}
			k := (i*9 + j) * 3
			assert.Equal(t, want, data[k:k+3], "pixel (%d,%d)", i, j)
		}
	}
}

func TestOverlayPlane(t *testing.T) {

	p := frame.NewPlane(5, 5)
	p.Fill(-1)
	p.Set(2, 2, 0.5)

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 5, 5, gocv.MatTypeCV8UC3)
	defer img.Close()

	require.NoError(t, OverlayPlane(&img, p, nil))

	data := img.ToBytes()
	assert.Equal(t, []uint8{127, 127, 127}, data[(2*5+2)*3:(2*5+2)*3+3])
	assert.Equal(t, []uint8{127, 127, 127}, data[(1*5+1)*3:(1*5+1)*3+3])
	assert.Equal(t, []uint8{0, 0, 0}, data[0:3])
}

func TestRegionBoxes(t *testing.T) {

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), 60, 80, gocv.MatTypeCV8UC3)
	defer img.Close()

	regions := []geometry.Region{
		geometry.NewRegion(10, 30, 20, 20),
		geometry.NewRegion(50, 5, 0, 10),
	}

	RegionBoxes(&img, regions, []string{"obj"}, DefaultFont(), 1)

	clr := ClassColor(0)
	data := img.ToBytes()

	// bottom edge of the first box
	i := (49*80 + 20) * 3
	assert.Equal(t, []uint8{clr.B, clr.G, clr.R}, data[i:i+3])

	// empty region is not drawn
	i = (10*80 + 50) * 3
	assert.Equal(t, []uint8{0, 0, 0}, data[i:i+3])
}
