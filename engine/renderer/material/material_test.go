package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
	"github.com/stretchr/testify/assert"
)

func gradientTarget() *target.RenderTarget {
	rt := target.New("gradient", 1, 2)
	rt.Set(0, 0, common.Color{R: 1, A: 1}) // top row
	rt.Set(0, 1, common.Color{B: 1, A: 1}) // bottom row
	return rt
}

func TestBasicSamplesAndFlips(t *testing.T) {
	rt := gradientTarget()
	plain := NewBasic(WithMap(rt))
	flipped := NewBasic(WithMap(rt), WithFlipV(true), WithOpacity(0.5))

	top := &Fragment{UV: [2]float32{0.5, 0.25}}
	c, ok := plain.Shade(top)
	assert.True(t, ok)
	assert.Equal(t, common.Color{R: 1, A: 1}, c)

	c, _ = flipped.Shade(top)
	assert.Equal(t, common.Color{B: 1, A: 0.5}, c)

	assert.Equal(t, []*target.RenderTarget{rt}, plain.Textures())
	assert.Empty(t, NewBasic().Textures())
}

func TestBasicLuminanceAlpha(t *testing.T) {
	m := NewBasic(WithColor(common.White), WithLuminanceAlpha(true), WithOpacity(0.5))
	c, _ := m.Shade(&Fragment{})
	assert.Equal(t, float32(0), c.R)
	assert.InDelta(t, 0.5, c.A, 1e-6)
}

func TestDepthAlpha(t *testing.T) {
	m := NewDepthAlpha(0.8)
	c, ok := m.Shade(&Fragment{Depth: 0.25})
	assert.True(t, ok)
	assert.Equal(t, float32(0), c.R+c.G+c.B)
	assert.InDelta(t, 0.6, c.A, 1e-6)

	opts := m.Options()
	assert.True(t, opts.DepthTest)
	assert.True(t, opts.DepthWrite)
	assert.False(t, opts.Transparent)
	assert.Equal(t, SideDouble, opts.Side)
}

func TestBlurKernelSumsToOne(t *testing.T) {
	var sum float32
	for _, w := range BlurKernel {
		sum += w
	}
	assert.InDelta(t, 1, sum, 1e-5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, BlurKernel[i], BlurKernel[8-i])
	}
}

func TestBlurPreservesConstantImage(t *testing.T) {
	rt := target.New("flat", 8, 8)
	rt.Clear(common.Color{R: 0.25, G: 0.5, B: 0.75, A: 1})

	for _, dir := range []Direction{Horizontal, Vertical} {
		b := NewBlur(dir, WithMap(rt))
		b.Radius = 2.0 / 8
		c, _ := b.Shade(&Fragment{UV: [2]float32{0.5, 0.5}})
		assert.InDelta(t, 0.25, c.R, 1e-4)
		assert.InDelta(t, 1, c.A, 1e-4)
	}
}

func TestBlurSpreadsAlongAxisOnly(t *testing.T) {
	rt := target.New("dot", 9, 9)
	rt.Set(4, 4, common.White)

	h := NewBlur(Horizontal, WithMap(rt))
	h.Radius = 1.0 / 9
	// one texel right of the dot, same row
	c, _ := h.Shade(&Fragment{UV: [2]float32{5.5 / 9, 4.5 / 9}})
	assert.InDelta(t, BlurKernel[3], c.A, 1e-5)
	// one texel below: horizontal taps never reach the dot
	c, _ = h.Shade(&Fragment{UV: [2]float32{4.5 / 9, 5.5 / 9}})
	assert.InDelta(t, 0, c.A, 1e-5)
}

func TestReflectorRadialFade(t *testing.T) {
	rt := target.New("mirror", 2, 2)
	rt.Clear(common.Color{G: 1, A: 1})
	r := NewReflector(ReflectorFade, WithMap(rt))

	center := &Fragment{UV: [2]float32{0.5, 0.5}}
	c, ok := r.Shade(center)
	assert.True(t, ok)
	assert.InDelta(t, 0.4, c.A, 1e-6)
	assert.Equal(t, float32(1), c.G)

	_, ok = r.Shade(&Fragment{UV: [2]float32{0.5, 0.9}})
	assert.False(t, ok)
	assert.True(t, r.Options().Transparent)
}

func TestReflectorProjectsThroughMatrix(t *testing.T) {
	rt := target.New("mirror", 2, 1)
	rt.Set(0, 0, common.Color{R: 1, A: 1})
	rt.Set(1, 0, common.Color{B: 1, A: 1})
	r := NewReflector(ReflectorOverlay, WithMap(rt), WithColor(common.White))

	// u = x / w with w = 2
	r.TextureMatrix = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 2}
	c, ok := r.Shade(&Fragment{LocalPosition: [3]float32{1.5, 1, 0}})
	assert.True(t, ok)
	assert.Equal(t, float32(1), c.B)

	r.TextureMatrix[15] = -1
	_, ok = r.Shade(&Fragment{})
	assert.False(t, ok)
}

func TestOverlayBlend(t *testing.T) {
	assert.InDelta(t, 0.2, blendOverlay(0.2, 0.5), 1e-6)
	assert.InDelta(t, 0.8, blendOverlay(0.8, 0.5), 1e-6)
	assert.Equal(t, float32(0), blendOverlay(0, 1))
	assert.Equal(t, float32(1), blendOverlay(1, 0))
}

func TestLambertUsesFragmentLights(t *testing.T) {
	m := NewLambert(WithColor(common.Color{R: 1, G: 0.5, B: 0, A: 1}))
	sun := light.NewLight(light.LightTypeDirectional, light.WithDirection(0, -1, 0))

	c, _ := m.Shade(&Fragment{Normal: [3]float32{0, 1, 0}, Lights: []light.Light{sun}})
	assert.Equal(t, common.Color{R: 1, G: 0.5, B: 0, A: 1}, c)

	c, _ = m.Shade(&Fragment{Normal: [3]float32{0, 1, 0}})
	assert.Equal(t, common.Color{A: 1}, c)
}

func TestCustomStagesRunInOrder(t *testing.T) {
	m := New("custom", Options{},
		ColorStage(common.Color{R: 1, G: 1, B: 1, A: 0}),
		DiscardTransparentStage,
		ColorStage(common.Black),
	)
	_, ok := m.Shade(&Fragment{})
	assert.False(t, ok)
	assert.Nil(t, m.Textures())
}
