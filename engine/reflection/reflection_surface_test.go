package reflection

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
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

var red = common.Color{R: 1, A: 1}

func viewingCamera(eye, center, up [3]float32) *camera.VirtualCamera {
	var view, proj [16]float32
	common.LookAt(view[:], eye[0], eye[1], eye[2], center[0], center[1], center[2], up[0], up[1], up[2])
	common.Perspective(proj[:], math32.Pi/3, 1, 0.1, 100)
	return camera.NewVirtualCamera(view, proj, 0.1, 100)
}

func overhead() *camera.VirtualCamera {
	return viewingCamera([3]float32{0, 2, 0}, [3]float32{0, 0, 0}, [3]float32{0, 0, -1})
}

// newMirrorScene lays a mirror flat at y = 0.5 under a red ceiling tile at y = 1.5.
func newMirrorScene(cam camera.Camera, options ...ReflectionBuilderOption) (*ReflectionSurface, capture.RenderContext) {
	ceiling := game_object.NewGameObject(
		game_object.WithName("ceiling"),
		game_object.WithMesh(geometry.Plane(1, 1, 1, 1)),
		game_object.WithMaterial(material.NewBasic(material.WithColor(red), material.WithSide(material.SideDouble))),
		game_object.WithRotation(math32.Pi/2, 0, 0),
		game_object.WithPosition(0, 1.5, 0),
	)
	r := renderer.NewRenderer(renderer.WithSize(32, 32), renderer.WithWorkers(2))
	r.SetXREnabled(true)
	ctx := capture.RenderContext{
		Renderer: r,
		Scene: scene.NewScene("mirror",
			scene.WithBackground(common.Hex(0x070758)),
			scene.WithObjects(ceiling),
			scene.WithCamera(cam),
		),
	}
	s := NewReflectionSurface(ctx, options...)
	s.Object().SetRotation(-math32.Pi/2, 0, 0)
	s.Object().SetPosition(0, 0.5, 0)
	ctx.Scene.Add(s.Object())
	return s, ctx
}

func assertVec(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d", i)
	}
}

func TestReflectionSurface_Defaults(t *testing.T) {
	s, _ := newMirrorScene(overhead())

	assert.Equal(t, 32, s.Texture().Width())
	assert.Equal(t, material.ReflectorFade, s.Material().Mode())
	assert.Equal(t, float32(0.4), s.Material().StartOpacity)
	assert.Equal(t, float32(1.5), s.Material().DistanceFactor)
	assert.Equal(t, 32, s.Object().Mesh().TriangleCount())
	assert.False(t, s.Visible())
}

func TestReflectionSurface_CameraAboveMirror(t *testing.T) {
	s, ctx := newMirrorScene(overhead())

	require.NoError(t, s.Update(0.016, 0.016))
	require.True(t, s.Visible())
	assert.Equal(t, 1, ctx.Renderer.Stats().Submissions)

	// mirrored across y = 0.5: height 2 becomes -1, only the vertical axis flips
	v := s.LastCamera()
	assertVec(t, [3]float32{0, -1, 0}, v.Position())
	assertVec(t, [3]float32{0, 1, 0}, v.Forward())
	assertVec(t, [3]float32{0, 0, -1}, v.Up())

	// the surface center sits on the capture's optical axis
	uv := common.MulVec4(s.Material().TextureMatrix[:], [4]float32{0, 0, 0, 1})
	assert.InDelta(t, 0.5, uv[0]/uv[3], 1e-4)
	assert.InDelta(t, 0.5, uv[1]/uv[3], 1e-4)

	// the ceiling shows up in the middle of the capture, nothing at the corners
	assert.Equal(t, red, s.Texture().At(16, 16))
	assert.Equal(t, common.Transparent, s.Texture().At(0, 0))
}

func TestReflectionSurface_SkipsWhenBehind(t *testing.T) {
	below := viewingCamera([3]float32{0, -1, 0}, [3]float32{0, 0, 0}, [3]float32{0, 0, -1})
	s, ctx := newMirrorScene(below)

	require.NoError(t, s.Update(0.016, 0.016))
	assert.False(t, s.Visible())
	assert.Nil(t, s.LastCamera())
	assert.Equal(t, 0, ctx.Renderer.Stats().Submissions)
}

func TestReflectionSurface_SkipsWhenInPlane(t *testing.T) {
	level := viewingCamera([3]float32{2, 0.5, 0}, [3]float32{0, 0.5, 0}, [3]float32{0, 1, 0})
	s, ctx := newMirrorScene(level)

	require.NoError(t, s.Update(0.016, 0.016))
	assert.False(t, s.Visible())
	assert.Nil(t, s.LastCamera())
	assert.Equal(t, 0, ctx.Renderer.Stats().Submissions)
}

func TestReflectionSurface_StereoOnlyOutsideCapture(t *testing.T) {
	cam := overhead()
	s, ctx := newMirrorScene(cam)
	r := ctx.Renderer

	require.NoError(t, s.Update(0, 0))
	assert.Equal(t, 1, r.Stats().Draws)

	// the main pass renders the ceiling and the mirror once per eye
	require.NoError(t, r.Render(ctx.Scene, cam))
	assert.Equal(t, 1+2*2, r.Stats().Draws)
	assert.Equal(t, 2, r.Stats().Submissions)
}

func TestReflectionSurface_RestoresState(t *testing.T) {
	s, ctx := newMirrorScene(overhead())
	r := ctx.Renderer
	r.SetViewport(common.Viewport{X: 4, Y: 4, Width: 16, Height: 16})

	require.NoError(t, s.Update(0, 0))

	assert.True(t, r.XREnabled())
	assert.True(t, r.ShadowAutoUpdate())
	assert.True(t, r.AutoClear())
	assert.Nil(t, r.RenderTarget())
	assert.Equal(t, common.Viewport{X: 4, Y: 4, Width: 16, Height: 16}, r.Viewport())
	assert.True(t, s.Object().Enabled())
	require.NotNil(t, ctx.Scene.Background())
	assert.Equal(t, common.Hex(0x070758), *ctx.Scene.Background())

	// XR and shadow refresh were off while capturing
	assert.Equal(t, 0, r.Stats().ShadowMapUpdates)
	assert.Equal(t, 1, r.Stats().Draws)
}

func TestReflectionSurface_DegenerateTransform(t *testing.T) {
	s, ctx := newMirrorScene(overhead())
	s.Object().SetScale(0, 0, 0)

	err := s.Update(0, 0)
	assert.ErrorIs(t, err, common.ErrDegenerate)
	assert.Equal(t, 0, ctx.Renderer.Stats().Submissions)
}

func TestReflectionSurface_NoCamera(t *testing.T) {
	ctx := capture.RenderContext{
		Renderer: renderer.NewRenderer(renderer.WithSize(8, 8)),
		Scene:    scene.NewScene("empty"),
	}
	s := NewReflectionSurface(ctx)
	assert.ErrorIs(t, s.Update(0, 0), ErrNoCamera)
}

func TestReflectionSurface_Resize(t *testing.T) {
	s, _ := newMirrorScene(overhead())
	old := s.Texture()

	s.Resize(64, 48)
	assert.NotSame(t, old, s.Texture())
	assert.Equal(t, 64, s.Texture().Width())
	assert.Same(t, s.Texture(), s.Material().Map)

	fixed, _ := newMirrorScene(overhead(), WithTextureSize(16, 16))
	fixed.Resize(64, 48)
	assert.Equal(t, 16, fixed.Texture().Width())
}

func TestReflectionSurface_OverlayMode(t *testing.T) {
	s, _ := newMirrorScene(overhead(), WithFadeMode(FadeOverlay), WithColor(red))
	assert.Equal(t, material.ReflectorOverlay, s.Material().Mode())
	assert.Equal(t, red, s.Material().Color)
}
