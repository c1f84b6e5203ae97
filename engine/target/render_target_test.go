package target

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPanicsOnInvalidSize(t *testing.T) {
	assert.Panics(t, func() { New("bad", 0, 4) })
	assert.Panics(t, func() { New("bad", 4, -1) })
}

func TestSampleAtTexelCentersIsExact(t *testing.T) {
	rt := New("t", 4, 2)
	rt.Set(2, 1, common.Color{R: 1, A: 1})

	assert.Equal(t, common.Color{R: 1, A: 1}, rt.Sample(2.5/4, 1.5/2))
	assert.Equal(t, common.Color{}, rt.Sample(0.5/4, 0.5/2))
}

func TestSampleBilinearAndClamp(t *testing.T) {
	rt := New("t", 2, 1)
	rt.Set(0, 0, common.Color{R: 0, A: 1})
	rt.Set(1, 0, common.Color{R: 1, A: 1})

	mid := rt.Sample(0.5, 0.5)
	assert.InDelta(t, 0.5, mid.R, 1e-6)

	// outside the image clamps to the edge texels
	assert.Equal(t, float32(0), rt.Sample(-3, 0.5).R)
	assert.Equal(t, float32(1), rt.Sample(7, 0.5).R)
}

func TestClearResetsDepth(t *testing.T) {
	rt := New("t", 3, 3)
	rt.SetDepth(1, 1, 0.2)
	rt.Clear(common.White)
	assert.Equal(t, float32(1), rt.Depth(1, 1))
	assert.Equal(t, common.White, rt.At(2, 2))

	rt.ClearRect(common.Viewport{X: 1, Y: 1, Width: 5, Height: 5}, common.Black)
	assert.Equal(t, common.White, rt.At(0, 0))
	assert.Equal(t, common.Black, rt.At(2, 2))
}

func TestCopyFromRequiresMatchingSize(t *testing.T) {
	a := New("a", 2, 2)
	b := New("b", 3, 2)
	assert.ErrorIs(t, a.CopyFrom(b), ErrSizeMismatch)

	c := New("c", 2, 2)
	c.Set(1, 1, common.White)
	require.NoError(t, a.CopyFrom(c))
	assert.True(t, a.Equal(c))
	assert.False(t, a.Equal(b))
}

func TestImageConversion(t *testing.T) {
	rt := New("t", 2, 2)
	rt.Set(1, 0, common.Color{R: 1, G: 0.5, B: 2, A: 1})
	img := rt.Image()

	px := img.NRGBAAt(1, 0)
	assert.Equal(t, uint8(255), px.R)
	assert.Equal(t, uint8(128), px.G)
	assert.Equal(t, uint8(255), px.B)
	assert.Equal(t, uint8(255), px.A)

	buf := rt.RGBA8(nil)
	assert.Len(t, buf, 16)
	assert.Equal(t, byte(128), buf[5])
}

func TestPoolReusesBySize(t *testing.T) {
	p := NewPool(2)
	a := p.Get(8, 8)
	assert.Same(t, a, p.Get(8, 8))
	assert.NotSame(t, a, p.Get(4, 8))

	p.Get(2, 2)
	assert.Equal(t, 2, p.Len())
	p.Purge()
	assert.Equal(t, 0, p.Len())
	assert.Panics(t, func() { NewPool(0) })
}
