package renderer

import (
	"runtime"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// defaultWorkers leaves one core for the frame goroutine.
func defaultWorkers() int {
	return max(runtime.NumCPU()-1, 1)
}

// WithSize sets the size of the default framebuffer.
//
// Parameters:
//   - width, height: framebuffer size in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width = width
		r.height = height
	}
}

// WithWorkers sets the number of goroutines that shade row bands in parallel.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of shading workers (minimum 1)
//
// Returns:
//   - RendererBuilderOption: a function that applies the workers option to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.workers = max(n, 1)
	}
}

// WithPresenter attaches a presenter that shows the default framebuffer on screen.
// Without one the renderer runs headless.
//
// Parameters:
//   - p: the presenter
//
// Returns:
//   - RendererBuilderOption: a function that applies the presenter option to a renderer
func WithPresenter(p Presenter) RendererBuilderOption {
	return func(r *renderer) {
		r.presenter = p
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithClearColor sets the initial clear color.
func WithClearColor(c common.Color) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithAutoClear sets whether Render clears the viewport before drawing. Defaults to true.
func WithAutoClear(autoClear bool) RendererBuilderOption {
	return func(r *renderer) {
		r.autoClear = autoClear
	}
}
