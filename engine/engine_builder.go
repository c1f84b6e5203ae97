package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow attaches the window that Run drives. Its resize events are forwarded to
// Engine.Resize.
//
// Parameters:
//   - w: a live Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithComponents registers components in the given order.
//
// Parameters:
//   - components: the components to update each frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithComponents(components ...capture.Component) EngineBuilderOption {
	return func(e *engine) {
		e.components = append(e.components, components...)
	}
}

// WithTickCallback sets the function called at the start of every frame.
func WithTickCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}
