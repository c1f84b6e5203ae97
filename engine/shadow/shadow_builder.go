package shadow

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// config collects every tunable a shadow constructor may read. Each constructor documents
// which options it honors.
type config struct {
	name           string
	resolution     int
	width, height  float32
	depth          float32
	blur           float32
	blurSecondPass *float32
	darkness       float32
	opacity        float32
	quality        int
	floorBias      float32
	ambient        common.Color
	override       material.Material
	pool           *target.Pool
	hook           func(from, to State)
}

// ShadowBuilderOption is a function that configures a shadow component during construction.
type ShadowBuilderOption func(*config)

// WithName sets the debug name of the component's group and targets.
func WithName(name string) ShadowBuilderOption {
	return func(c *config) {
		c.name = name
	}
}

// WithResolution sets the square size of the capture targets in pixels.
//
// Parameters:
//   - n: target width and height
//
// Returns:
//   - ShadowBuilderOption: a function that applies the resolution option
func WithResolution(n int) ShadowBuilderOption {
	return func(c *config) {
		c.resolution = n
	}
}

// WithSize sets the footprint extent in world units.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Z
//
// Returns:
//   - ShadowBuilderOption: a function that applies the size option
func WithSize(width, height float32) ShadowBuilderOption {
	return func(c *config) {
		c.width, c.height = width, height
	}
}

// WithDepth sets how far above the footprint geometry still casts, in world units.
func WithDepth(depth float32) ShadowBuilderOption {
	return func(c *config) {
		c.depth = depth
	}
}

// WithBlur sets the blur amount of the primary pass.
func WithBlur(amount float32) ShadowBuilderOption {
	return func(c *config) {
		c.blur = amount
	}
}

// WithBlurSecondPass sets the blur amount of the finishing pass. 0 skips it.
// Defaults to 0.4 times the primary amount.
func WithBlurSecondPass(amount float32) ShadowBuilderOption {
	return func(c *config) {
		c.blurSecondPass = &amount
	}
}

// WithDarkness sets the alpha of geometry touching the footprint.
func WithDarkness(darkness float32) ShadowBuilderOption {
	return func(c *config) {
		c.darkness = darkness
	}
}

// WithOpacity sets the opacity of the display quad.
func WithOpacity(opacity float32) ShadowBuilderOption {
	return func(c *config) {
		c.opacity = opacity
	}
}

// WithQuality sets the number of slices a SoftShadowFloor accumulates.
func WithQuality(n int) ShadowBuilderOption {
	return func(c *config) {
		c.quality = n
	}
}

// WithFloorBias sets the height of the first SoftShadowFloor slice above the floor.
func WithFloorBias(bias float32) ShadowBuilderOption {
	return func(c *config) {
		c.floorBias = bias
	}
}

// WithAmbient sets the color the capture target is cleared to. Defaults to transparent.
func WithAmbient(color common.Color) ShadowBuilderOption {
	return func(c *config) {
		c.ambient = color
	}
}

// WithOverrideMaterial replaces the default capture material.
//
// Parameters:
//   - m: the material every watched mesh is drawn with during capture
//
// Returns:
//   - ShadowBuilderOption: a function that applies the override option
func WithOverrideMaterial(m material.Material) ShadowBuilderOption {
	return func(c *config) {
		c.override = m
	}
}

// WithPool shares a scratch target pool between components.
func WithPool(pool *target.Pool) ShadowBuilderOption {
	return func(c *config) {
		c.pool = pool
	}
}

// WithTransitionHook registers a function called on every state change.
//
// Parameters:
//   - hook: receives the previous and the new state
//
// Returns:
//   - ShadowBuilderOption: a function that applies the hook option
func WithTransitionHook(hook func(from, to State)) ShadowBuilderOption {
	return func(c *config) {
		c.hook = hook
	}
}
