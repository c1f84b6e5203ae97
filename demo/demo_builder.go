package demo

import (
	"github.com/Carmen-Shannon/oxy-fx/engine"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
)

type config struct {
	shadowResolution  int
	contactResolution int
	hills             geometry.HillsConfig
	engineOptions     []engine.EngineBuilderOption
}

// DemoBuilderOption is a functional option for configuring the demo.
type DemoBuilderOption func(*config)

// WithShadowResolution sets the soft shadow floor target size.
func WithShadowResolution(n int) DemoBuilderOption {
	return func(c *config) {
		c.shadowResolution = n
	}
}

// WithContactResolution sets the contact shadow target size.
func WithContactResolution(n int) DemoBuilderOption {
	return func(c *config) {
		c.contactResolution = n
	}
}

// WithHills replaces the terrain parameters.
//
// Parameters:
//   - hills: terrain generator settings
//
// Returns:
//   - DemoBuilderOption: option function to apply
func WithHills(hills geometry.HillsConfig) DemoBuilderOption {
	return func(c *config) {
		c.hills = hills
	}
}

// WithEngineOptions forwards options to the engine the demo creates.
//
// Parameters:
//   - options: engine builder options, e.g. engine.WithWindow or engine.WithProfiling
//
// Returns:
//   - DemoBuilderOption: option function to apply
func WithEngineOptions(options ...engine.EngineBuilderOption) DemoBuilderOption {
	return func(c *config) {
		c.engineOptions = append(c.engineOptions, options...)
	}
}
