package demo

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/params"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDemo(t *testing.T) *Demo {
	t.Helper()
	hills := geometry.DefaultHillsConfig
	hills.Segments = 8
	r := renderer.NewRenderer(renderer.WithSize(32, 24), renderer.WithWorkers(2))
	return New(r, params.Default(),
		WithShadowResolution(16),
		WithContactResolution(16),
		WithHills(hills),
	)
}

func TestNew_RegistersComponentsInOrder(t *testing.T) {
	d := newTestDemo(t)

	assert.Equal(t, []capture.Component{d.ContactShadow(), d.SoftShadowFloor(), d.Mirror()}, d.Engine().Components())
	assert.InDelta(t, 32.0/24.0, d.Camera().Aspect(), 1e-6)
	for _, e := range []Effect{EffectContactShadow, EffectSoftShadowFloor, EffectReflection} {
		assert.True(t, d.Enabled(e))
	}
}

func TestDemo_FrameRunsEveryPass(t *testing.T) {
	d := newTestDemo(t)

	require.NoError(t, d.Engine().Frame(1.0/60))

	// contact shadow 1 + 2 + 2, soft floor 10 x (1 + 2), mirror 1, main pass 1
	assert.Equal(t, 37, d.Engine().FrameStats().Submissions)
	assert.True(t, d.Mirror().Visible())
	assert.Nil(t, d.Engine().Renderer().RenderTarget())
}

func TestDemo_Toggle(t *testing.T) {
	d := newTestDemo(t)

	d.Toggle(EffectSoftShadowFloor)
	assert.False(t, d.Enabled(EffectSoftShadowFloor))
	assert.False(t, d.SoftShadowFloor().Object().Enabled())
	assert.Equal(t, []capture.Component{d.ContactShadow(), d.Mirror()}, d.Engine().Components())

	require.NoError(t, d.Engine().Frame(1.0/60))
	assert.Equal(t, 7, d.Engine().FrameStats().Submissions)

	d.Toggle(EffectSoftShadowFloor)
	assert.True(t, d.SoftShadowFloor().Object().Enabled())
	assert.Equal(t, []capture.Component{d.ContactShadow(), d.SoftShadowFloor(), d.Mirror()}, d.Engine().Components())

	d.Toggle(Effect(42))
	assert.Len(t, d.Engine().Components(), 3)
}

func TestDemo_ApplyParams(t *testing.T) {
	d := newTestDemo(t)
	p := params.Default()
	p.Background = "#ff0000"
	p.Reflection.StartOpacity = 0.9
	p.SoftShadow.Quality = 2

	d.Apply(p)

	bg := d.Engine().Scene().Background()
	require.NotNil(t, bg)
	assert.Equal(t, common.Color{R: 1, A: 1}, *bg)
	assert.Equal(t, float32(0.9), d.Mirror().Material().StartOpacity)

	require.NoError(t, d.Engine().Frame(1.0/60))
	assert.Equal(t, 5+2*3+1+1, d.Engine().FrameStats().Submissions)
}

func TestDemo_StatueRotatesUnlessPaused(t *testing.T) {
	d := newTestDemo(t)

	require.NoError(t, d.Engine().Frame(0.5))
	_, ry, _ := d.Statue().Rotation()
	assert.InDelta(t, 0.05, ry, 1e-6)

	d.SetPaused(true)
	assert.True(t, d.Paused())
	require.NoError(t, d.Engine().Frame(0.5))
	_, ry, _ = d.Statue().Rotation()
	assert.InDelta(t, 0.05, ry, 1e-6)

	d.SetPaused(false)
	require.NoError(t, d.Engine().Frame(0.5))
	_, ry, _ = d.Statue().Rotation()
	assert.InDelta(t, 0.1, ry, 1e-6)
}
