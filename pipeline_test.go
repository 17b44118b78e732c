package regiontrack

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/appearance"
	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/geometry"
	"github.com/swdee/go-regiontrack/posterior"
	"github.com/swdee/go-regiontrack/preprocess"
	"github.com/swdee/go-regiontrack/viewindex"
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

func TestPipelineSquareScene(t *testing.T) {

	img, mask := squareScene()

	cfg := DefaultConfig()
	cfg.Posterior.Workers = 3
	cfg.Posterior.RowsPerTask = 1

	p, err := NewPipeline(cfg, nil)
	require.NoError(t, err)

	seeds := []struct {
		name string
		seed appearance.RegionSeed
	}{
		{"rect", appearance.RectSeed{Region: geometry.NewRegion(3, 3, 4, 4)}},
		{"mask", appearance.MaskSeed{Mask: mask}},
	}

	for _, tc := range seeds {
		res, err := p.Update(img, tc.seed)
		require.NoError(t, err, tc.name)

		assert.Equal(t, geometry.NewRegion(1, 1, 8, 8), res.Field.Region, tc.name)

		pf := res.Field.Foreground
		pb := res.Field.Background

		for i := 0; i < 10; i++ {
			for j := 0; j < 10; j++ {
				inSquare := i >= 3 && i <= 6 && j >= 3 && j <= 6
				inRegion := res.Field.Region.Contains(j, i)

				switch {
				case inSquare:
					assert.Greater(t, pf.At(i, j), pb.At(i, j), "%s square (%d,%d)", tc.name, i, j)
				case inRegion:
					assert.Greater(t, pb.At(i, j), pf.At(i, j), "%s ring (%d,%d)", tc.name, i, j)
				default:
					assert.Equal(t, float32(0), pf.At(i, j), "%s outside (%d,%d)", tc.name, i, j)
					assert.Equal(t, float32(1.0/100), pb.At(i, j), "%s outside (%d,%d)", tc.name, i, j)
				}
			}
		}

		res.Release()
	}
}

func TestPipelineMatchesSerialEngine(t *testing.T) {

	img, mask := squareScene()

	parallel, err := NewPipeline(DefaultConfig(), nil)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Posterior.Workers = 1
	serial, err := NewPipeline(cfg, nil)
	require.NoError(t, err)

	a, err := parallel.Update(img, appearance.MaskSeed{Mask: mask})
	require.NoError(t, err)

	b, err := serial.Update(img, appearance.MaskSeed{Mask: mask})
	require.NoError(t, err)

	assert.Equal(t, b.Field.Foreground.Data, a.Field.Foreground.Data)
	assert.Equal(t, b.Field.Background.Data, a.Field.Background.Data)
}

func TestPipelineEmptyFootprint(t *testing.T) {

	img, _ := squareScene()

	core, logs := observer.New(zapcore.WarnLevel)

	p, err := NewPipeline(DefaultConfig(), zap.New(core).Sugar())
	require.NoError(t, err)

	res, err := p.Update(img, appearance.MaskSeed{Mask: frame.NewFilledMask(10, 10, 255)})
	require.NoError(t, err)

	assert.True(t, res.Model.Region.Empty())
	assert.Equal(t, 1, logs.FilterMessageSnippet("footprint is empty").Len())

	for _, v := range res.Field.Background.Data {
		assert.Equal(t, float32(1.0/100), v)
	}
}

func TestPipelineErrors(t *testing.T) {

	img, _ := squareScene()

	p, err := NewPipeline(DefaultConfig(), nil)
	require.NoError(t, err)

	_, err = p.Update(img, appearance.MaskSeed{Mask: frame.NewFilledMask(4, 4, 0)})
	assert.ErrorIs(t, err, frame.ErrDimensionMismatch)

	_, err = p.Update(nil, appearance.RectSeed{})
	assert.Error(t, err)
}

type countingObserver struct {
	n int
}

func (c *countingObserver) ObservePosterior(*posterior.Field) {
	c.n++
}

func TestPipelineObserversAndDebugLog(t *testing.T) {

	img, _ := squareScene()

	core, logs := observer.New(zapcore.DebugLevel)
	counter := &countingObserver{}

	p, err := NewPipeline(DefaultConfig(), zap.New(core).Sugar(), counter)
	require.NoError(t, err)

	_, err = p.Update(img, appearance.RectSeed{Region: geometry.NewRegion(3, 3, 4, 4)})
	require.NoError(t, err)

	assert.Equal(t, 1, counter.n)
	assert.Equal(t, 1, logs.FilterMessage("appearance model").Len())
	assert.Equal(t, 1, logs.FilterMessage("posterior field").Len())
}

func TestPipelineUpdateMat(t *testing.T) {

	img, _ := squareScene()

	mat, err := preprocess.ImageToMat(img)
	require.NoError(t, err)
	defer mat.Close()

	p, err := NewPipeline(DefaultConfig(), nil)
	require.NoError(t, err)

	res, err := p.UpdateMat(mat, appearance.RectSeed{Region: geometry.NewRegion(3, 3, 4, 4)})
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRegion(1, 1, 8, 8), res.Model.Region)

	gray := gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8U)
	defer gray.Close()

	_, err = p.UpdateMat(gray, appearance.RectSeed{})
	assert.Error(t, err)
}

func TestPipelineViewIndexAndDepth(t *testing.T) {

	p, err := NewPipeline(DefaultConfig(), nil)
	require.NoError(t, err)

	for idx := 0; idx < viewindex.NumBins; idx += 37 {
		assert.Equal(t, idx, p.ViewIndex(p.ViewAngle(idx)))
	}

	cfg := DefaultConfig()
	cfg.Azimuth = viewindex.CounterClockwise
	ccw, err := NewPipeline(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 90, ccw.ViewIndex(math.Pi/2+1e-9))

	zbuf := frame.NewPlane(3, 4)
	zbuf.Fill(0.5)

	dst := gocv.NewMat()
	defer dst.Close()

	require.NoError(t, p.DepthView(zbuf, &dst))
	assert.Equal(t, 3, dst.Rows())
	assert.Equal(t, 4, dst.Cols())
}

func TestConfigValidate(t *testing.T) {

	require.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.Appearance.BinCount = 0
	cfg.Posterior.AreaBackground = 0
	cfg.Azimuth = viewindex.Convention(7)
	cfg.Depth.Far = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)

	_, err = NewPipeline(cfg, nil)
	assert.Error(t, err)
}
