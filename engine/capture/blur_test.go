package capture

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlurContext() RenderContext {
	return RenderContext{Renderer: renderer.NewRenderer(renderer.WithSize(8, 8), renderer.WithWorkers(2))}
}

func TestBlurRadius(t *testing.T) {
	assert.Equal(t, float32(0), BlurRadius(0))
	assert.InDelta(t, 1.0/256, BlurRadius(1), 1e-9)
	assert.InDelta(t, 4.0/256, BlurRadius(4), 1e-9)

	prev := BlurRadius(0)
	for a := float32(0.25); a <= 4; a += 0.25 {
		r := BlurRadius(a)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}
}

func TestBlurKernelIsNormalized(t *testing.T) {
	var sum float32
	for _, w := range material.BlurKernel {
		sum += w
	}
	assert.InDelta(t, 1, sum, 1e-4)
}

func TestSeparableBlur_ZeroAmountIsExactCopy(t *testing.T) {
	ctx := newBlurContext()
	src := target.New("src", 16, 16)
	src.Set(3, 4, common.White)
	src.Set(9, 9, common.Color{R: 0.25, G: 0.5, B: 0.75, A: 0.5})
	before := src.Clone()

	b := NewSeparableBlur(target.NewPool(4))
	require.NoError(t, b.Blur(ctx, src, src, 0))
	assert.True(t, src.Equal(before))

	dst := target.New("dst", 16, 16)
	require.NoError(t, b.Blur(ctx, src, dst, 0))
	assert.True(t, dst.Equal(before))

	assert.Equal(t, 0, ctx.Renderer.Stats().Submissions)
}

func TestSeparableBlur_SizeMismatch(t *testing.T) {
	b := NewSeparableBlur(target.NewPool(4))
	err := b.Blur(newBlurContext(), target.New("a", 4, 4), target.New("b", 8, 4), 1)
	assert.ErrorIs(t, err, target.ErrSizeMismatch)
}

func TestSeparableBlur_SpreadsImpulse(t *testing.T) {
	ctx := newBlurContext()
	pool := target.NewPool(4)
	rt := target.New("impulse", 64, 64)
	rt.Set(32, 32, common.White)

	// amount 4 spaces taps exactly one texel apart at 64 px
	b := NewSeparableBlur(pool)
	require.NoError(t, b.Blur(ctx, rt, rt, 4))

	center := material.BlurKernel[4]
	next := material.BlurKernel[5]
	assert.InDelta(t, center*center, rt.At(32, 32).R, 1e-4)
	assert.InDelta(t, center*next, rt.At(33, 32).R, 1e-4)
	assert.InDelta(t, center*next, rt.At(32, 31).R, 1e-4)
	assert.InDelta(t, 0, rt.At(40, 32).R, 1e-6)
	assert.InDelta(t, 0, rt.At(0, 0).A, 1e-6)

	assert.Equal(t, 2, ctx.Renderer.Stats().Submissions)
	assert.Equal(t, 1, pool.Len())
	assert.Same(t, rt, ctx.Renderer.RenderTarget())
}

func TestSeparableBlur_UniformImageUnchanged(t *testing.T) {
	ctx := newBlurContext()
	gray := common.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	rt := target.New("gray", 32, 32)
	rt.Clear(gray)

	require.NoError(t, NewSeparableBlur(target.NewPool(4)).Blur(ctx, rt, rt, 2))

	for _, p := range [][2]int{{0, 0}, {15, 16}, {31, 31}} {
		c := rt.At(p[0], p[1])
		assert.InDelta(t, 0.5, c.R, 1e-3)
		assert.InDelta(t, 1, c.A, 1e-3)
	}
}
