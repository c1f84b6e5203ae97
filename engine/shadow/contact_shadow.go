package shadow

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// ContactShadow renders the underside of a watched subtree into a small target with a
// depth-to-alpha material, blurs it and shows it on a quad lying on the footprint.
//
// Each Update walks Idle -> CapturingDepth -> Blurring -> Idle.
type ContactShadow struct {
	machine
	footprint

	ctx    capture.RenderContext
	object game_object.GameObject
	blur   *capture.SeparableBlur

	renderTarget  *target.RenderTarget
	depthMaterial *material.DepthAlpha
	override      material.Material
	displayMat    *material.Basic

	name           string
	resolution     int
	depth          float32
	blurAmount     float32
	blurSecondPass float32
	darkness       float32
	opacity        float32
	ambient        common.Color
}

var _ capture.Component = &ContactShadow{}

// NewContactShadow creates a contact shadow for object. Add Object() to the scene and
// position it where the shadow should fall. Panics if the resolution is not positive.
//
// Honors WithName, WithResolution, WithSize, WithDepth, WithBlur, WithBlurSecondPass,
// WithDarkness, WithOpacity, WithAmbient, WithOverrideMaterial, WithPool and WithTransitionHook.
//
// Parameters:
//   - ctx: the renderer and scene the capture runs against
//   - object: the subtree casting the shadow, or nil for the whole scene
//   - options: shadow builder options
//
// Returns:
//   - *ContactShadow: the component
func NewContactShadow(ctx capture.RenderContext, object game_object.GameObject, options ...ShadowBuilderOption) *ContactShadow {
	cfg := config{
		name:       "contact_shadow",
		resolution: 256,
		width:      0.26,
		height:     0.26,
		depth:      0.03,
		blur:       4,
		darkness:   1,
		opacity:    1,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.resolution <= 0 {
		panic(fmt.Sprintf("contact shadow: invalid resolution %d", cfg.resolution))
	}
	secondPass := cfg.blur * 0.4
	if cfg.blurSecondPass != nil {
		secondPass = *cfg.blurSecondPass
	}
	if cfg.pool == nil {
		cfg.pool = target.NewPool(4)
	}

	c := &ContactShadow{
		machine:        machine{hook: cfg.hook},
		ctx:            ctx,
		object:         object,
		blur:           capture.NewSeparableBlur(cfg.pool),
		depthMaterial:  material.NewDepthAlpha(cfg.darkness),
		override:       cfg.override,
		name:           cfg.name,
		resolution:     cfg.resolution,
		depth:          cfg.depth,
		blurAmount:     cfg.blur,
		blurSecondPass: secondPass,
		darkness:       cfg.darkness,
		opacity:        cfg.opacity,
		ambient:        cfg.ambient,
	}
	c.renderTarget = target.New(cfg.name, cfg.resolution, cfg.resolution)
	c.displayMat = material.NewBasic(
		material.WithName(cfg.name+"_display"),
		material.WithMap(c.renderTarget),
		material.WithFlipV(true),
		material.WithOpacity(cfg.opacity),
		material.WithTransparent(true),
		material.WithDepth(true, false),
	)
	c.footprint = newFootprint(cfg.name, cfg.width, cfg.height, cfg.depth, c.displayMat)
	return c
}

// Object returns the group to place in the scene. Its origin is the footprint center and
// its local Y axis the direction the shadow is cast from.
func (c *ContactShadow) Object() game_object.GameObject {
	return c.group
}

// Display returns the quad showing the shadow.
func (c *ContactShadow) Display() game_object.GameObject {
	return c.display
}

// Texture returns the shadow target.
func (c *ContactShadow) Texture() *target.RenderTarget {
	return c.renderTarget
}

// Camera returns the capture camera.
func (c *ContactShadow) Camera() camera.OrthographicCamera {
	return c.camera
}

// SetBlur sets the primary and secondary blur amounts for the following frames.
func (c *ContactShadow) SetBlur(amount, secondPass float32) {
	c.blurAmount, c.blurSecondPass = amount, secondPass
}

// SetDarkness sets the alpha of geometry touching the footprint.
func (c *ContactShadow) SetDarkness(darkness float32) {
	c.darkness = darkness
}

// SetOpacity sets the opacity of the display quad.
func (c *ContactShadow) SetOpacity(opacity float32) {
	c.opacity = opacity
}

// SetResolution recreates the shadow target at a new size. The display quad switches to
// the new target immediately, so it shows a blank shadow until the next Update.
//
// Parameters:
//   - n: the new width and height in pixels, ignored if not positive
func (c *ContactShadow) SetResolution(n int) {
	if n <= 0 || n == c.resolution {
		return
	}
	c.resolution = n
	c.renderTarget = target.New(c.name, n, n)
	c.displayMat.SetMap(c.renderTarget)
}

// Resize does nothing: the shadow target does not follow the screen.
func (c *ContactShadow) Resize(width, height int) {}

// Update captures the watched subtree from below, then blurs the result twice. When the
// footprint is degenerate it returns an error wrapping common.ErrDegenerate and leaves the
// previous shadow in place.
func (c *ContactShadow) Update(dt, elapsed float32) error {
	if err := c.aim(); err != nil {
		return fmt.Errorf("skipping contact shadow %q: %w", c.name, err)
	}

	override := c.override
	if override == nil {
		c.depthMaterial.Darkness = c.darkness
		override = c.depthMaterial
	}
	c.displayMat.Opacity = c.opacity

	guard := capture.BeginCapture(c.ctx, capture.CaptureConfig{
		ClearColor:       c.ambient,
		HideNodes:        []game_object.GameObject{c.display},
		OverrideMaterial: override,
		OverrideRoot:     c.object,
	})
	defer guard.Release()
	defer c.transition(Idle)

	c.transition(CapturingDepth)
	r := c.ctx.Renderer
	r.SetRenderTarget(c.renderTarget)
	r.Clear()
	if err := r.Render(c.renderable(), c.camera); err != nil {
		return fmt.Errorf("failed to capture contact shadow %q: %w", c.name, err)
	}

	c.transition(Blurring)
	if err := c.blur.Blur(c.ctx, c.renderTarget, c.renderTarget, c.blurAmount); err != nil {
		return fmt.Errorf("failed to blur contact shadow %q: %w", c.name, err)
	}
	if c.blurSecondPass != 0 {
		if err := c.blur.Blur(c.ctx, c.renderTarget, c.renderTarget, c.blurSecondPass); err != nil {
			return fmt.Errorf("failed to blur contact shadow %q: %w", c.name, err)
		}
	}
	return nil
}

func (c *ContactShadow) renderable() scene.Renderable {
	if c.object == nil {
		return c.ctx.Scene
	}
	return scene.Subtree(c.object)
}
