package engine

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/profiler"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/window"
)

// ErrNoCamera is returned by Frame when the scene has no camera to draw the main pass with.
var ErrNoCamera = errors.New("scene has no camera")

type engine struct {
	mu *sync.Mutex

	renderer renderer.Renderer
	scene    scene.Scene
	window   window.Window

	components []capture.Component

	elapsed    float32
	frameStats renderer.Stats

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback     func(deltaTime float32)
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	quit bool
}

// Engine drives frames: it runs the registered capture components in order, draws the
// main scene into the default framebuffer and presents it.
type Engine interface {
	// Window returns the window driving Run, or nil for a headless engine.
	Window() window.Window

	// Renderer returns the renderer shared by the main pass and every component.
	Renderer() renderer.Renderer

	// Scene returns the main scene.
	Scene() scene.Scene

	// Context returns the render context handed to components.
	Context() capture.RenderContext

	// AddComponent registers a component. Components update in registration order, so a
	// component that renders another's output should be added after it.
	//
	// Parameters:
	//   - c: the component to run each frame
	AddComponent(c capture.Component)

	// RemoveComponent unregisters a component.
	//
	// Parameters:
	//   - c: the component to remove
	//
	// Returns:
	//   - bool: true if the component was registered
	RemoveComponent(c capture.Component) bool

	// Components returns a copy of the registered components in update order.
	Components() []capture.Component

	// SetTickCallback registers the function called at the start of every frame, before
	// components update. Use it for animation and input processing.
	//
	// Parameters:
	//   - callback: function receiving the frame delta in seconds
	SetTickCallback(callback func(deltaTime float32))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderFrameLimit caps the windowed loop to the given frames per second.
	// Pass 0 to uncap (default).
	SetRenderFrameLimit(fps float64)

	// Elapsed returns the total simulated time in seconds.
	Elapsed() float32

	// FrameStats returns the renderer counters accumulated by the most recent frame.
	FrameStats() renderer.Stats

	// Frame advances time by dt and produces one frame: tick callback, scene animation,
	// camera update, component updates, main pass, present.
	// Component errors never abort the frame: degenerate-geometry errors are skipped and
	// others are logged.
	//
	// Parameters:
	//   - dt: frame delta in seconds
	//
	// Returns:
	//   - error: ErrNoCamera, or a main pass or present failure
	Frame(dt float32) error

	// Resize propagates a new framebuffer size to the renderer, the camera aspect and
	// every component.
	//
	// Parameters:
	//   - width, height: new size in pixels
	Resize(width, height int)

	// Run drives frames from the window message loop until the window closes or Quit is
	// called. A panic inside a frame is logged and stops the loop.
	Run()

	// Quit stops Run after the current frame. Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates an Engine around a renderer and the scene it draws.
// Panics if either is nil.
//
// Parameters:
//   - r: the renderer
//   - s: the main scene
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(r renderer.Renderer, s scene.Scene, options ...EngineBuilderOption) Engine {
	if r == nil || s == nil {
		panic("engine requires a renderer and a scene")
	}
	e := &engine{
		mu:       &sync.Mutex{},
		renderer: r,
		scene:    s,
		profiler: profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.Resize)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Context() capture.RenderContext {
	return capture.RenderContext{Renderer: e.renderer, Scene: e.scene}
}

func (e *engine) AddComponent(c capture.Component) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.components = append(e.components, c)
}

func (e *engine) RemoveComponent(c capture.Component) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := slices.Index(e.components, c)
	if i < 0 {
		return false
	}
	e.components = slices.Delete(e.components, i, i+1)
	return true
}

func (e *engine) Components() []capture.Component {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.components)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Elapsed() float32 {
	return e.elapsed
}

func (e *engine) FrameStats() renderer.Stats {
	return e.frameStats
}

func (e *engine) Frame(dt float32) error {
	e.elapsed += dt
	e.renderer.ResetStats()

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}
	e.scene.Update(dt)

	cam := e.scene.Camera()
	if pc, ok := cam.(camera.PerspectiveCamera); ok {
		pc.Update()
	}

	for _, c := range e.Components() {
		if err := c.Update(dt, e.elapsed); err != nil && !errors.Is(err, common.ErrDegenerate) {
			log.Printf("[Engine] component update failed: %v", err)
		}
	}

	if cam == nil {
		return ErrNoCamera
	}
	if err := e.renderer.Render(e.scene, cam); err != nil {
		return fmt.Errorf("failed to render main pass: %w", err)
	}
	if err := e.renderer.Present(); err != nil {
		return fmt.Errorf("failed to present frame: %w", err)
	}

	e.frameStats = e.renderer.Stats()
	if e.profilingEnabled {
		e.profiler.Tick(e.frameStats)
	}
	return nil
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.renderer.Resize(width, height)
	if pc, ok := e.scene.Camera().(camera.PerspectiveCamera); ok {
		pc.SetAspect(float32(width) / float32(height))
	}
	for _, c := range e.Components() {
		c.Resize(width, height)
	}
}

func (e *engine) Run() {
	if e.window == nil {
		log.Printf("[Engine] Run called without a window")
		return
	}

	// Recover from panics inside a frame so the window is torn down cleanly.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame loop recovered from panic: %v", r)
			e.Quit()
			_ = e.window.Close()
		}
	}()

	last := time.Now()
	e.window.SetUpdateCallback(func() {
		if e.quit {
			_ = e.window.Close()
			return
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now

		if err := e.Frame(dt); err != nil {
			log.Printf("[Engine] frame failed: %v", err)
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	})
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.quit = true
}
