package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient adds a constant amount of light to every fragment regardless of its normal.
	LightTypeAmbient LightType = iota

	// LightTypeHemisphere blends between a sky color and a ground color by how much
	// the surface normal faces up.
	LightTypeHemisphere

	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun. No distance attenuation.
	LightTypeDirectional

	// LightTypePoint emits in all directions from a position and attenuates to zero at Range.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	lightType   LightType
	position    [3]float32
	direction   [3]float32
	color       [3]float32
	groundColor [3]float32
	intensity   float32
	lightRange  float32
	enabled     bool
}

// Light defines the interface for a light source used by lit materials.
//
// Lights are scene-level entities. The renderer hands the scene's lights to every
// fragment it shades; materials that include a lighting stage sum Irradiance over them.
// Type-specific properties return zero values when not applicable.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light. Only meaningful for point lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction the light travels in.
	// Only meaningful for directional lights; hemisphere lights use it as "up".
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light (the sky color for hemisphere lights).
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Enabled returns whether this light contributes to shading.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// Irradiance returns the light arriving at a surface point.
	//
	// Parameters:
	//   - position: world-space surface position
	//   - normal: unit world-space surface normal
	//
	// Returns:
	//   - [3]float32: incoming light as (r, g, b); zero when disabled
	Irradiance(position, normal [3]float32) [3]float32

	// SetPosition sets the world-space position of the light.
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	SetDirection(x, y, z float32)

	// SetColor sets the RGB color of the light.
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:          &sync.Mutex{},
		lightType:   lightType,
		direction:   [3]float32{0, -1, 0},
		color:       [3]float32{1, 1, 1},
		groundColor: [3]float32{0, 0, 0},
		intensity:   1,
		lightRange:  10,
		enabled:     true,
	}
	if lightType == LightTypeHemisphere {
		l.direction = [3]float32{0, 1, 0}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) Irradiance(position, normal [3]float32) [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return [3]float32{}
	}

	switch l.lightType {
	case LightTypeAmbient:
		return common.Scale3(l.color, l.intensity)
	case LightTypeHemisphere:
		t := 0.5*common.Dot3(normal, l.direction) + 0.5
		return common.Scale3(common.Lerp3(l.groundColor, l.color, t), l.intensity)
	case LightTypeDirectional:
		ndl := max(0, -common.Dot3(normal, l.direction))
		return common.Scale3(l.color, l.intensity*ndl)
	case LightTypePoint:
		toLight := common.Sub3(l.position, position)
		d := common.Length3(toLight)
		if d < 1e-6 || d >= l.lightRange {
			return [3]float32{}
		}
		ndl := max(0, common.Dot3(normal, common.Scale3(toLight, 1/d)))
		falloff := 1 - (d/l.lightRange)*(d/l.lightRange)
		return common.Scale3(l.color, l.intensity*ndl*falloff*falloff)
	}
	return [3]float32{}
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.direction = common.Normalize3([3]float32{x, y, z})
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}
