package shadow

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(objects ...game_object.GameObject) capture.RenderContext {
	return capture.RenderContext{
		Renderer: renderer.NewRenderer(renderer.WithSize(32, 32), renderer.WithWorkers(2)),
		Scene:    scene.NewScene("shadow", scene.WithBackground(common.Hex(0x070758)), scene.WithObjects(objects...)),
	}
}

// occluder is a horizontal 1x1 quad at height y, offset along z.
func occluder(y, z float32) game_object.GameObject {
	return game_object.NewGameObject(
		game_object.WithName("occluder"),
		game_object.WithMesh(geometry.Plane(1, 1, 1, 1)),
		game_object.WithMaterial(material.NewLambert(material.WithName("occluder_mat"))),
		game_object.WithRotation(-math32.Pi/2, 0, 0),
		game_object.WithPosition(0, y, z),
	)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "CapturingDepth", CapturingDepth.String())
	assert.Equal(t, "Blurring", Blurring.String())
	assert.Equal(t, "State(7)", State(7).String())
}

func TestContactShadow_Defaults(t *testing.T) {
	cs := NewContactShadow(newContext(), nil)

	assert.Equal(t, 256, cs.Texture().Width())
	assert.Equal(t, float32(0.26), cs.width)
	assert.Equal(t, float32(0.26), cs.height)
	assert.Equal(t, float32(0.03), cs.depth)
	assert.Equal(t, float32(4), cs.blurAmount)
	assert.InDelta(t, 1.6, cs.blurSecondPass, 1e-6)
	assert.Equal(t, float32(1), cs.darkness)
	assert.Equal(t, float32(1), cs.opacity)
	assert.Equal(t, Idle, cs.State())
	assert.Contains(t, cs.Object().Children(), cs.Display())
}

func TestContactShadow_InvalidResolutionPanics(t *testing.T) {
	assert.Panics(t, func() { NewContactShadow(newContext(), nil, WithResolution(0)) })
}

func TestContactShadow_CircularFootprint(t *testing.T) {
	occ := occluder(1, 0)
	ctx := newContext(occ)
	cs := NewContactShadow(ctx, occ, WithResolution(64), WithSize(4, 4), WithDepth(2), WithBlur(4))
	ctx.Scene.Add(cs.Object())

	require.NoError(t, cs.Update(0.016, 0.016))

	tex := cs.Texture()
	center := tex.At(32, 32).A
	assert.InDelta(t, 0.5, center, 0.02)
	assert.InDelta(t, 0, tex.At(2, 2).A, 1e-4)
	assert.InDelta(t, 0, tex.At(61, 32).A, 1e-4)
	assert.InDelta(t, 0, tex.At(32, 61).A, 1e-4)

	// symmetric about the occluder, falling off toward the rim
	assert.InDelta(t, tex.At(24, 32).A, tex.At(39, 32).A, 1e-3)
	assert.InDelta(t, tex.At(32, 24).A, tex.At(32, 39).A, 1e-3)
	assert.Less(t, tex.At(24, 32).A, center)
	assert.Less(t, tex.At(22, 22).A, tex.At(26, 26).A)

	assert.Equal(t, float32(0), tex.At(32, 32).R)
}

func TestContactShadow_CaptureOrientation(t *testing.T) {
	occ := occluder(0.5, 1)
	ctx := newContext(occ)
	cs := NewContactShadow(ctx, occ, WithResolution(64), WithSize(4, 4), WithDepth(2), WithBlur(0))

	require.NoError(t, cs.Update(0, 0))

	// +Z lands in the top half of the capture
	tex := cs.Texture()
	assert.Greater(t, tex.At(32, 16).A, float32(0))
	assert.Equal(t, float32(0), tex.At(32, 48).A)
}

func TestContactShadow_StateMachine(t *testing.T) {
	var seen []State
	occ := occluder(0.01, 0)
	ctx := newContext(occ)
	cs := NewContactShadow(ctx, occ, WithResolution(16), WithTransitionHook(func(_, to State) {
		seen = append(seen, to)
	}))

	require.NoError(t, cs.Update(0, 0))
	assert.Equal(t, []State{CapturingDepth, Blurring, Idle}, seen)
	assert.Equal(t, Idle, cs.State())
}

func TestContactShadow_RestoresState(t *testing.T) {
	occ := occluder(0.01, 0)
	ctx := newContext(occ)
	cs := NewContactShadow(ctx, occ, WithResolution(16))
	ctx.Scene.Add(cs.Object())

	require.NoError(t, cs.Update(0, 0))

	r := ctx.Renderer
	assert.Nil(t, r.RenderTarget())
	assert.True(t, r.AutoClear())
	assert.Equal(t, common.Black, r.ClearColor())
	assert.Equal(t, common.Viewport{Width: 32, Height: 32}, r.Viewport())
	require.NotNil(t, ctx.Scene.Background())
	assert.Equal(t, "occluder_mat", occ.Material().Name())
	assert.True(t, cs.Display().Enabled())
}

func TestContactShadow_SecondPassSkippedAtZero(t *testing.T) {
	occ := occluder(0.01, 0)

	ctx := newContext(occ)
	cs := NewContactShadow(ctx, occ, WithResolution(16))
	require.NoError(t, cs.Update(0, 0))
	assert.Equal(t, 5, ctx.Renderer.Stats().Submissions)

	ctx = newContext(occ)
	cs = NewContactShadow(ctx, occ, WithResolution(16), WithBlurSecondPass(0))
	require.NoError(t, cs.Update(0, 0))
	assert.Equal(t, 3, ctx.Renderer.Stats().Submissions)
}

func TestContactShadow_DegenerateFootprintSkips(t *testing.T) {
	occ := occluder(0.01, 0)
	ctx := newContext(occ)
	cs := NewContactShadow(ctx, occ, WithSize(0, 1))

	err := cs.Update(0, 0)
	assert.ErrorIs(t, err, common.ErrDegenerate)
	assert.Equal(t, 0, ctx.Renderer.Stats().Submissions)
	assert.Equal(t, Idle, cs.State())
}

func TestContactShadow_SetResolution(t *testing.T) {
	cs := NewContactShadow(newContext(), nil, WithResolution(16))
	old := cs.Texture()

	cs.SetResolution(32)
	assert.NotSame(t, old, cs.Texture())
	assert.Equal(t, 32, cs.Texture().Width())
	assert.Same(t, cs.Texture(), cs.displayMat.Map)

	cs.SetResolution(0)
	assert.Equal(t, 32, cs.Texture().Width())
}

func TestSoftShadowFloor_Defaults(t *testing.T) {
	s := NewSoftShadowFloor(newContext())

	assert.Equal(t, 512, s.Texture().Width())
	assert.Equal(t, float32(3), s.width)
	assert.InDelta(t, 1.2, s.maxHeight, 1e-6)
	assert.Equal(t, 10, s.quality)
	assert.Equal(t, float32(0.3), s.blurAmount)
	assert.Equal(t, float32(0.5), s.opacity)
}

func TestSoftShadowFloor_QualityOneMatchesContactShadow(t *testing.T) {
	build := func() game_object.GameObject { return occluder(0.5, 0) }

	occA := build()
	ctxA := newContext(occA)
	soft := NewSoftShadowFloor(ctxA, WithResolution(32), WithSize(2, 2), WithDepth(1), WithQuality(1), WithBlur(2))
	ctxA.Scene.Add(soft.Object())
	require.NoError(t, soft.Update(0, 0))

	occB := build()
	ctxB := newContext(occB)
	cs := NewContactShadow(ctxB, occB,
		WithResolution(32), WithSize(2, 2), WithDepth(1), WithBlur(2), WithBlurSecondPass(0),
		WithOverrideMaterial(material.NewFlat()),
	)
	require.NoError(t, cs.Update(0, 0))

	assert.True(t, soft.Texture().Equal(cs.Texture()))
	assert.Greater(t, soft.Texture().At(16, 16).R, float32(0.9))
}

func TestSoftShadowFloor_SlicesSweepHeightAndColor(t *testing.T) {
	// one occluder low, one high: only the first slice sees the low one
	low := game_object.NewGameObject(
		game_object.WithMesh(geometry.Plane(0.5, 0.5, 1, 1)),
		game_object.WithMaterial(material.NewBasic()),
		game_object.WithRotation(-math32.Pi/2, 0, 0),
		game_object.WithPosition(-0.5, 0.1, 0),
	)
	high := game_object.NewGameObject(
		game_object.WithMesh(geometry.Plane(0.5, 0.5, 1, 1)),
		game_object.WithMaterial(material.NewBasic()),
		game_object.WithRotation(-math32.Pi/2, 0, 0),
		game_object.WithPosition(0.5, 0.9, 0),
	)
	ctx := newContext(low, high)
	var transitions int
	s := NewSoftShadowFloor(ctx, WithResolution(32), WithSize(2, 2), WithDepth(1), WithQuality(2), WithBlur(0),
		WithTransitionHook(func(_, _ State) { transitions++ }))
	ctx.Scene.Add(s.Object())

	require.NoError(t, s.Update(0, 0))

	tex := s.Texture()
	assert.InDelta(t, 1, tex.At(8, 16).R, 1e-6)    // low: white slice only
	assert.InDelta(t, 0.5, tex.At(24, 16).R, 1e-6) // high: overwritten by the second slice
	assert.Equal(t, common.Transparent, tex.At(16, 2))

	// two slices, blur 0 draws nothing extra
	assert.Equal(t, 2, ctx.Renderer.Stats().Submissions)
	assert.Equal(t, 5, transitions)
	assert.True(t, s.Display().Enabled())
	assert.Nil(t, ctx.Renderer.RenderTarget())
}

func TestSoftShadowFloor_LastSliceStopsBelowMaxHeight(t *testing.T) {
	tile := func(x, y float32) game_object.GameObject {
		return game_object.NewGameObject(
			game_object.WithMesh(geometry.Plane(0.5, 0.5, 1, 1)),
			game_object.WithMaterial(material.NewBasic()),
			game_object.WithRotation(-math32.Pi/2, 0, 0),
			game_object.WithPosition(x, y, 0),
		)
	}
	// four slices over (0.01, 1): the last one clips at 0.7525
	ctx := newContext(tile(-0.5, 0.7), tile(0.5, 0.8))
	s := NewSoftShadowFloor(ctx, WithResolution(32), WithSize(2, 2), WithDepth(1), WithQuality(4), WithBlur(0))
	ctx.Scene.Add(s.Object())

	require.NoError(t, s.Update(0, 0))

	tex := s.Texture()
	assert.InDelta(t, 0.5, tex.At(8, 16).R, 1e-6)
	assert.InDelta(t, 0.25, tex.At(24, 16).R, 1e-6)
}

func TestSoftShadowFloor_DegenerateHeight(t *testing.T) {
	ctx := newContext()
	s := NewSoftShadowFloor(ctx, WithDepth(0.5), WithFloorBias(0.5))

	assert.ErrorIs(t, s.Update(0, 0), common.ErrDegenerate)
	assert.Equal(t, 0, ctx.Renderer.Stats().Submissions)
}
