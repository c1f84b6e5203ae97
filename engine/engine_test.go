package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/shadow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingComponent struct {
	name    string
	log     *[]string
	err     error
	elapsed []float32
	sizes   [][2]int
}

func (c *recordingComponent) Update(dt, elapsed float32) error {
	*c.log = append(*c.log, c.name)
	c.elapsed = append(c.elapsed, elapsed)
	return c.err
}

func (c *recordingComponent) Resize(width, height int) {
	c.sizes = append(c.sizes, [2]int{width, height})
}

var _ capture.Component = &recordingComponent{}

var background = common.Hex(0x070758)

func newTestEngine(cam camera.Camera, options ...EngineBuilderOption) Engine {
	r := renderer.NewRenderer(renderer.WithSize(16, 16), renderer.WithWorkers(1))
	s := scene.NewScene("main", scene.WithBackground(background))
	if cam != nil {
		s.SetCamera(cam)
	}
	return NewEngine(r, s, options...)
}

func TestNewEngine_PanicsWithoutRenderer(t *testing.T) {
	assert.Panics(t, func() { NewEngine(nil, scene.NewScene("main")) })
}

func TestEngine_FrameRunsComponentsInOrder(t *testing.T) {
	var order []string
	a := &recordingComponent{name: "a", log: &order}
	b := &recordingComponent{name: "b", log: &order}

	var ticks []string
	e := newTestEngine(camera.NewOrthographicCamera(),
		WithComponents(a),
		WithTickCallback(func(float32) { ticks = append(ticks, "tick") }),
	)
	e.AddComponent(b)

	require.NoError(t, e.Frame(0.5))
	require.NoError(t, e.Frame(0.25))

	assert.Equal(t, []string{"a", "b", "a", "b"}, order)
	assert.Len(t, ticks, 2)
	assert.Equal(t, []float32{0.5, 0.75}, a.elapsed)
	assert.Equal(t, float32(0.75), e.Elapsed())
}

func TestEngine_RemoveComponent(t *testing.T) {
	var order []string
	a := &recordingComponent{name: "a", log: &order}
	e := newTestEngine(camera.NewOrthographicCamera(), WithComponents(a))

	assert.True(t, e.RemoveComponent(a))
	assert.False(t, e.RemoveComponent(a))
	require.NoError(t, e.Frame(0.1))
	assert.Empty(t, order)
}

func TestEngine_ComponentErrorsDoNotAbortFrame(t *testing.T) {
	var order []string
	degenerate := &recordingComponent{name: "degenerate", log: &order, err: fmt.Errorf("plane: %w", common.ErrDegenerate)}
	failing := &recordingComponent{name: "failing", log: &order, err: errors.New("boom")}
	after := &recordingComponent{name: "after", log: &order}

	e := newTestEngine(camera.NewOrthographicCamera(), WithComponents(degenerate, failing, after))

	require.NoError(t, e.Frame(0.1))
	assert.Equal(t, []string{"degenerate", "failing", "after"}, order)
	assert.Equal(t, 1, e.FrameStats().Submissions)
}

func TestEngine_NoCamera(t *testing.T) {
	var order []string
	a := &recordingComponent{name: "a", log: &order}
	e := newTestEngine(nil, WithComponents(a))

	assert.ErrorIs(t, e.Frame(0.1), ErrNoCamera)
	assert.Equal(t, []string{"a"}, order)
}

func TestEngine_MainPassDrawsScene(t *testing.T) {
	e := newTestEngine(camera.NewOrthographicCamera())

	require.NoError(t, e.Frame(1.0/60))

	assert.Equal(t, background, e.Renderer().Framebuffer().At(8, 8))
	assert.Equal(t, 1, e.FrameStats().Submissions)
	assert.Equal(t, 1, e.FrameStats().Clears)
}

func TestEngine_FrameStatsCoverComponents(t *testing.T) {
	e := newTestEngine(camera.NewOrthographicCamera())
	cs := shadow.NewContactShadow(e.Context(), nil, shadow.WithResolution(16), shadow.WithSize(1, 1))
	e.Scene().Add(cs.Object())
	e.AddComponent(cs)

	require.NoError(t, e.Frame(0.1))
	// contact shadow: depth pass + two blur passes + two second-pass blur passes, then the main pass
	assert.Equal(t, 6, e.FrameStats().Submissions)

	require.NoError(t, e.Frame(0.1))
	assert.Equal(t, 6, e.FrameStats().Submissions)
}

func TestEngine_DegenerateComponentIsSkipped(t *testing.T) {
	e := newTestEngine(camera.NewOrthographicCamera())
	cs := shadow.NewContactShadow(e.Context(), nil, shadow.WithResolution(16), shadow.WithSize(0, 1))
	e.AddComponent(cs)

	require.NoError(t, e.Frame(0.1))
	assert.Equal(t, 1, e.FrameStats().Submissions)
	assert.Equal(t, shadow.Idle, cs.State())
}

func TestEngine_ResizeFansOut(t *testing.T) {
	var order []string
	a := &recordingComponent{name: "a", log: &order}
	cam := camera.NewPerspectiveCamera(camera.WithAspect(1), camera.WithController(
		camera.NewOrbitController(camera.WithEye(0, 2, 5), camera.WithTarget(0, 1.2, 0)),
	))
	e := newTestEngine(cam, WithComponents(a))

	e.Resize(64, 32)
	w, h := e.Renderer().Size()
	assert.Equal(t, 64, w)
	assert.Equal(t, 32, h)
	assert.Equal(t, float32(2), cam.Aspect())
	assert.Equal(t, [][2]int{{64, 32}}, a.sizes)

	e.Resize(0, 32)
	assert.Len(t, a.sizes, 1)
}

func TestEngine_ContextSharesRendererAndScene(t *testing.T) {
	e := newTestEngine(camera.NewOrthographicCamera())
	ctx := e.Context()
	assert.Same(t, e.Scene(), ctx.Scene)
	assert.Equal(t, e.Renderer(), ctx.Renderer)
}

func TestEngine_RunWithoutWindowReturns(t *testing.T) {
	e := newTestEngine(camera.NewOrthographicCamera())
	assert.NotPanics(t, e.Run)
	assert.Nil(t, e.Window())
}
