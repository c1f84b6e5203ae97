package capture

import (
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
)

// RenderContext carries the renderer and scene a capture mutates. It is passed into every
// capture explicitly so no component reaches for global render state.
type RenderContext struct {
	Renderer renderer.Renderer
	Scene    scene.Scene
}

// Component is an effect that renders into its own targets once per frame, before the
// main pass, and shows the result on a visible mesh.
type Component interface {
	// Update runs the component's capture passes for this frame.
	//
	// Parameters:
	//   - dt: seconds since the previous frame
	//   - elapsed: seconds since the engine started
	//
	// Returns:
	//   - error: an error if a pass could not be drawn; the previous texture stays displayed
	Update(dt, elapsed float32) error

	// Resize is called when the default framebuffer changes size. Components whose
	// targets follow the screen resolution recreate them here.
	//
	// Parameters:
	//   - width, height: the new framebuffer size in pixels
	Resize(width, height int)
}
