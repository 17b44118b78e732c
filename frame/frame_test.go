package frame

import (
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImage(t *testing.T) {

	img, err := NewImage(2, 3, make([]uint8, 18))
	require.NoError(t, err)

	img.Set(1, 2, 10, 20, 30)
	c0, c1, c2 := img.At(1, 2)
	assert.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{c0, c1, c2})
	assert.Equal(t, uint8(10), img.Pix[15])

	_, err = NewImage(2, 3, make([]uint8, 17))
	assert.Error(t, err)

	_, err = NewImage(-1, 3, nil)
	assert.Error(t, err)
}

func TestNewMask(t *testing.T) {

	m, err := NewMask(2, 2, []uint8{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, uint8(2), m.At(1, 0))

	_, err = NewMask(2, 2, []uint8{0})
	assert.Error(t, err)

	filled := NewFilledMask(3, 3, 255)
	for _, v := range filled.Pix {
		assert.Equal(t, uint8(255), v)
	}
}

func TestCheckSameSize(t *testing.T) {

	img := NewBlankImage(4, 5)

	assert.NoError(t, CheckSameSize(img, NewFilledMask(4, 5, 0)))

	err := CheckSameSize(img, NewFilledMask(5, 4, 0))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestPlane(t *testing.T) {

	p := NewPlane(3, 4)
	p.Fill(0.5)
	p.Set(2, 3, 7)

	assert.Equal(t, float32(0.5), p.At(0, 0))
	assert.Equal(t, []float32{0.5, 0.5, 0.5, 7}, p.Row(2))

	_, err := WrapPlane(3, 4, make([]float32, 11))
	assert.Error(t, err)
}

func TestParallelRowsVisitsEveryRowOnce(t *testing.T) {

	for _, tc := range []struct{ workers, chunk int }{
		{1, 1}, {3, 2}, {8, 5}, {0, 0}, {4, 100},
	} {
		var visits [50]int32

		ParallelRows(3, 47, tc.workers, tc.chunk, func(from, to int) {
			for i := from; i < to; i++ {
				atomic.AddInt32(&visits[i], 1)
			}
		})

		for i, v := range visits {
			want := int32(0)
			if i >= 3 && i < 47 {
				want = 1
			}
			assert.Equal(t, want, v, "row %d with %d workers, chunk %d", i, tc.workers, tc.chunk)
		}
	}

	called := false
	ParallelRows(5, 5, 2, 2, func(int, int) { called = true })
	assert.False(t, called)
}
