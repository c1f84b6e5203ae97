package material

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// config collects every tunable a material constructor may read.
// Each constructor documents which options it honors; the rest are ignored.
type config struct {
	name           string
	color          common.Color
	texture        *target.RenderTarget
	opacity        float32
	flipV          bool
	luminanceAlpha bool
	options        Options
}

func newConfig(name string, options Options, builders []MaterialBuilderOption) config {
	c := config{
		name:    name,
		color:   common.White,
		opacity: 1,
		options: options,
	}
	for _, b := range builders {
		b(&c)
	}
	return c
}

// MaterialBuilderOption is a function that configures a material during construction.
type MaterialBuilderOption func(*config)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option
func WithName(name string) MaterialBuilderOption {
	return func(c *config) {
		c.name = name
	}
}

// WithColor is an option builder that sets the base color.
//
// Parameters:
//   - color: the base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option
func WithColor(color common.Color) MaterialBuilderOption {
	return func(c *config) {
		c.color = color
	}
}

// WithMap is an option builder that sets the sampled texture.
//
// Parameters:
//   - t: the render target to sample
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option
func WithMap(t *target.RenderTarget) MaterialBuilderOption {
	return func(c *config) {
		c.texture = t
	}
}

// WithOpacity is an option builder that scales the output alpha.
//
// Parameters:
//   - opacity: alpha multiplier in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the opacity option
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(c *config) {
		c.opacity = opacity
	}
}

// WithFlipV samples the map with v mirrored (v' = 1 - v). Captures taken by a camera whose
// image rows run opposite to the display mesh's v axis need this.
//
// Parameters:
//   - flip: true to mirror v
//
// Returns:
//   - MaterialBuilderOption: a function that applies the flip option
func WithFlipV(flip bool) MaterialBuilderOption {
	return func(c *config) {
		c.flipV = flip
	}
}

// WithLuminanceAlpha converts the shaded color to black with alpha equal to its luminance.
//
// Parameters:
//   - enabled: true to enable the conversion stage
//
// Returns:
//   - MaterialBuilderOption: a function that applies the luminance alpha option
func WithLuminanceAlpha(enabled bool) MaterialBuilderOption {
	return func(c *config) {
		c.luminanceAlpha = enabled
	}
}

// WithTransparent is an option builder that enables alpha blending.
//
// Parameters:
//   - transparent: true to blend and sort back to front
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transparent option
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(c *config) {
		c.options.Transparent = transparent
	}
}

// WithSide is an option builder that selects which faces are drawn.
//
// Parameters:
//   - side: front, back or both
//
// Returns:
//   - MaterialBuilderOption: a function that applies the side option
func WithSide(side Side) MaterialBuilderOption {
	return func(c *config) {
		c.options.Side = side
	}
}

// WithDepth is an option builder that sets depth testing and writing.
//
// Parameters:
//   - test: true to reject fragments behind the stored depth
//   - write: true to store the fragment depth
//
// Returns:
//   - MaterialBuilderOption: a function that applies the depth option
func WithDepth(test, write bool) MaterialBuilderOption {
	return func(c *config) {
		c.options.DepthTest = test
		c.options.DepthWrite = write
	}
}
