package renderer

import "github.com/Carmen-Shannon/oxy-fx/engine/target"

// PresentMode controls how presented frames are synchronized with the display.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// Presenter shows a finished framebuffer on a display surface. The software renderer
// produces every pixel; a Presenter only uploads and blits.
type Presenter interface {
	// Present uploads fb and shows it.
	//
	// Parameters:
	//   - fb: the finished framebuffer
	//
	// Returns:
	//   - error: an error if the surface could not be acquired or written
	Present(fb *target.RenderTarget) error

	// Resize reconfigures the surface for a new size.
	//
	// Parameters:
	//   - width, height: the new surface size in pixels
	Resize(width, height int)

	// SetPresentMode selects vsync or uncapped presentation. Takes effect on the next Resize.
	SetPresentMode(mode PresentMode)

	// Release frees all GPU resources.
	Release()
}
