package reflection

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
)

type config struct {
	name           string
	mesh           *geometry.Mesh
	mode           FadeMode
	color          common.Color
	width, height  int
	clipBias       float32
	startOpacity   float32
	distanceFactor float32
	reflected      game_object.GameObject
}

// ReflectionBuilderOption is a function that configures a ReflectionSurface during construction.
type ReflectionBuilderOption func(*config)

// WithName sets the debug name of the surface and its target.
func WithName(name string) ReflectionBuilderOption {
	return func(c *config) {
		c.name = name
	}
}

// WithMesh sets the mirror geometry. It must lie in its local XY plane facing +Z.
// Defaults to a disc of radius 2 with 32 segments.
func WithMesh(mesh *geometry.Mesh) ReflectionBuilderOption {
	return func(c *config) {
		c.mesh = mesh
	}
}

// WithFadeMode sets the composite variant.
func WithFadeMode(mode FadeMode) ReflectionBuilderOption {
	return func(c *config) {
		c.mode = mode
	}
}

// WithColor sets the overlay tint used by FadeOverlay.
func WithColor(color common.Color) ReflectionBuilderOption {
	return func(c *config) {
		c.color = color
	}
}

// WithTextureSize fixes the capture resolution. By default it follows the framebuffer.
//
// Parameters:
//   - width, height: capture size in pixels
//
// Returns:
//   - ReflectionBuilderOption: a function that applies the size option
func WithTextureSize(width, height int) ReflectionBuilderOption {
	return func(c *config) {
		c.width, c.height = width, height
	}
}

// WithClipBias offsets the oblique near plane to hide seams where geometry meets the mirror.
func WithClipBias(bias float32) ReflectionBuilderOption {
	return func(c *config) {
		c.clipBias = bias
	}
}

// WithFade sets the center opacity and falloff of FadeRadial.
//
// Parameters:
//   - startOpacity: alpha scale at the surface center
//   - distanceFactor: how fast alpha decays with distance from the center
//
// Returns:
//   - ReflectionBuilderOption: a function that applies the fade option
func WithFade(startOpacity, distanceFactor float32) ReflectionBuilderOption {
	return func(c *config) {
		c.startOpacity, c.distanceFactor = startOpacity, distanceFactor
	}
}

// WithReflected limits the capture to a subtree. By default the whole scene is reflected
// with the surface itself hidden.
func WithReflected(obj game_object.GameObject) ReflectionBuilderOption {
	return func(c *config) {
		c.reflected = obj
	}
}
