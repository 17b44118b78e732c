package appearance

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/geometry"
)

// squareScene returns a 10x10 black image with a white 4x4 square covering
// rows and columns 3 to 6, and the matching object mask
func squareScene() (*frame.Image, *frame.Mask) {

	img := frame.NewBlankImage(10, 10)
	mask := frame.NewFilledMask(10, 10, 255)

	for i := 3; i <= 6; i++ {
		for j := 3; j <= 6; j++ {
			img.Set(i, j, 255, 255, 255)
			mask.Set(i, j, 0)
		}
	}

	return img, mask
}

// recordingObserver keeps every model it is given
type recordingObserver struct {
	models []*Model
}

func (r *recordingObserver) ObserveModel(m *Model) {
	r.models = append(r.models, m)
}

func TestBinIndex(t *testing.T) {

	tests := []struct {
		v        uint8
		bins     int
		expected int
	}{
		{0, 16, 0},
		{15, 16, 0},
		{16, 16, 1},
		{255, 16, 15},
		{255, 32, 31},
		{128, 1, 0},
		{200, 256, 200},
		{255, 24, 23},
		{239, 24, 23},
		{200, 512, 200},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, BinIndex(tc.v, tc.bins), "v=%d bins=%d", tc.v, tc.bins)
	}
}

func TestBuildSquareScene(t *testing.T) {

	img, mask := squareScene()

	seeds := map[string]RegionSeed{
		"rect": RectSeed{Region: geometry.NewRegion(3, 3, 4, 4)},
		"mask": MaskSeed{Mask: mask},
	}

	for name, seed := range seeds {
		t.Run(name, func(t *testing.T) {

			b, err := NewBuilder(DefaultParams(), nil)
			require.NoError(t, err)

			m, err := b.Build(img, seed)
			require.NoError(t, err)

			assert.Equal(t, geometry.NewRegion(1, 1, 8, 8), m.Region)

			for k := 0; k < frame.Channels; k++ {
				assert.Equal(t, 15, m.Foreground[k].Peak())
				assert.Equal(t, 0, m.Background[k].Peak())

				assert.InDelta(t, 1.0, m.Foreground[k].Sum(), 1e-4)
				assert.InDelta(t, 1.0, m.Background[k].Sum(), 1e-4)

				// all of the mass sits in a single bin
				assert.InDelta(t, m.Foreground[k].Sum(), m.Foreground[k][15], 1e-12)
				assert.InDelta(t, m.Background[k].Sum(), m.Background[k][0], 1e-12)
			}
		})
	}
}

func TestBuildRectSeedOutsideImageIsClipped(t *testing.T) {

	img, _ := squareScene()
	b, err := NewBuilder(Params{BinCount: 8, InflateSize: 3, Epsilon: 1e-4}, nil)
	require.NoError(t, err)

	m, err := b.Build(img, RectSeed{Region: geometry.NewRegion(7, 7, 10, 10)})
	require.NoError(t, err)

	assert.Equal(t, geometry.NewRegion(4, 4, 6, 6), m.Region)

	for k := 0; k < frame.Channels; k++ {
		assert.Len(t, m.Foreground[k], 8)
		assert.InDelta(t, 1.0, m.Foreground[k].Sum(), 1e-4)
		assert.InDelta(t, 1.0, m.Background[k].Sum(), 1e-4)

		for _, v := range m.Background[k] {
			assert.GreaterOrEqual(t, v, 0.0)
		}
	}
}

func TestBuildEmptyClass(t *testing.T) {

	img, _ := squareScene()
	b, err := NewBuilder(DefaultParams(), nil)
	require.NoError(t, err)

	// no object pixels in the mask
	m, err := b.Build(img, MaskSeed{Mask: frame.NewFilledMask(10, 10, 1)})
	require.NoError(t, err)
	assert.True(t, m.Region.Empty())

	for k := 0; k < frame.Channels; k++ {
		assert.Equal(t, 0.0, m.Foreground[k].Sum())
		assert.Equal(t, 0.0, m.Background[k].Sum())
	}

	// seed covering the whole image leaves an empty ring
	m, err = b.Build(img, RectSeed{Region: geometry.NewRegion(0, 0, 10, 10)})
	require.NoError(t, err)

	for k := 0; k < frame.Channels; k++ {
		assert.InDelta(t, 1.0, m.Foreground[k].Sum(), 1e-4)
		assert.Equal(t, 0.0, m.Background[k].Sum())
	}
}

func TestBuildMaskDimensionMismatch(t *testing.T) {

	img, _ := squareScene()
	b, err := NewBuilder(DefaultParams(), nil)
	require.NoError(t, err)

	_, err = b.Build(img, MaskSeed{Mask: frame.NewFilledMask(10, 11, 0)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, frame.ErrDimensionMismatch))

	_, err = b.Build(img, MaskSeed{})
	assert.Error(t, err)

	_, err = b.Build(img, nil)
	assert.Error(t, err)
}

func TestBuilderNotifiesObserver(t *testing.T) {

	img, mask := squareScene()
	obs := &recordingObserver{}

	b, err := NewBuilder(DefaultParams(), obs)
	require.NoError(t, err)

	m, err := b.Build(img, MaskSeed{Mask: mask})
	require.NoError(t, err)

	require.Len(t, obs.models, 1)
	assert.Same(t, m, obs.models[0])
}

func TestParamsValidate(t *testing.T) {

	assert.NoError(t, DefaultParams().Validate())

	err := Params{BinCount: 0, InflateSize: -1, Epsilon: 0}.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)

	_, err = NewBuilder(Params{BinCount: 300, Epsilon: 1}, nil)
	assert.Error(t, err)
}
