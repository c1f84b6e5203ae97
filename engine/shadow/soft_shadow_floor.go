package shadow

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/capture"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// SoftShadowFloor accumulates a shadow from stacked height slices. Slice i of N only sees
// geometry above lerp(floorBias, maxHeight, i/N), is drawn in a flat gray going from white
// to black, and is followed by a blur of amount*(i+1)/N over the whole target. The sweep is
// half open: the last slice clips at lerp(floorBias, maxHeight, (N-1)/N) and is drawn in
// gray (N-1)/N, so maxHeight is where both ramps would reach black. A single slice clips at
// floorBias in white, like a ContactShadow with a flat override. The display quad turns
// brightness into shadow alpha.
type SoftShadowFloor struct {
	machine
	footprint

	ctx  capture.RenderContext
	blur *capture.SeparableBlur

	renderTarget *target.RenderTarget
	flat         *material.Flat
	displayMat   *material.Basic

	name       string
	resolution int
	maxHeight  float32
	floorBias  float32
	quality    int
	blurAmount float32
	opacity    float32
	ambient    common.Color
}

var _ capture.Component = &SoftShadowFloor{}

// NewSoftShadowFloor creates a soft shadow floor that captures the whole scene. Panics if
// the resolution is not positive.
//
// Honors WithName, WithResolution, WithSize, WithDepth (the maximum slice height),
// WithQuality, WithFloorBias, WithBlur, WithOpacity, WithAmbient, WithPool and
// WithTransitionHook.
//
// Parameters:
//   - ctx: the renderer and scene the capture runs against
//   - options: shadow builder options
//
// Returns:
//   - *SoftShadowFloor: the component
func NewSoftShadowFloor(ctx capture.RenderContext, options ...ShadowBuilderOption) *SoftShadowFloor {
	cfg := config{
		name:       "soft_shadow_floor",
		resolution: 512,
		width:      3,
		height:     3,
		quality:    10,
		floorBias:  0.01,
		blur:       0.3,
		opacity:    0.5,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.resolution <= 0 {
		panic(fmt.Sprintf("soft shadow floor: invalid resolution %d", cfg.resolution))
	}
	if cfg.depth == 0 {
		cfg.depth = cfg.width * 0.4
	}
	if cfg.pool == nil {
		cfg.pool = target.NewPool(4)
	}

	s := &SoftShadowFloor{
		machine:    machine{hook: cfg.hook},
		ctx:        ctx,
		blur:       capture.NewSeparableBlur(cfg.pool),
		flat:       material.NewFlat(material.WithName(cfg.name + "_slice")),
		name:       cfg.name,
		resolution: cfg.resolution,
		maxHeight:  cfg.depth,
		floorBias:  cfg.floorBias,
		quality:    max(cfg.quality, 1),
		blurAmount: cfg.blur,
		opacity:    cfg.opacity,
		ambient:    cfg.ambient,
	}
	s.renderTarget = target.New(cfg.name, cfg.resolution, cfg.resolution)
	s.displayMat = material.NewBasic(
		material.WithName(cfg.name+"_display"),
		material.WithMap(s.renderTarget),
		material.WithFlipV(true),
		material.WithLuminanceAlpha(true),
		material.WithOpacity(cfg.opacity),
		material.WithTransparent(true),
		material.WithDepth(true, false),
	)
	s.footprint = newFootprint(cfg.name, cfg.width, cfg.height, cfg.depth, s.displayMat)
	return s
}

// Object returns the group to place in the scene, at floor level.
func (s *SoftShadowFloor) Object() game_object.GameObject {
	return s.group
}

// Display returns the quad showing the shadow.
func (s *SoftShadowFloor) Display() game_object.GameObject {
	return s.display
}

// Texture returns the accumulated shadow target.
func (s *SoftShadowFloor) Texture() *target.RenderTarget {
	return s.renderTarget
}

// SetQuality sets the number of slices, minimum 1.
func (s *SoftShadowFloor) SetQuality(n int) {
	s.quality = max(n, 1)
}

// SetBlur sets the blur amount reached by the last slice.
func (s *SoftShadowFloor) SetBlur(amount float32) {
	s.blurAmount = amount
}

// SetOpacity sets the opacity of the display quad.
func (s *SoftShadowFloor) SetOpacity(opacity float32) {
	s.opacity = opacity
}

// Resize does nothing: the shadow target does not follow the screen.
func (s *SoftShadowFloor) Resize(width, height int) {}

// Update clears the target once and accumulates every slice into it.
func (s *SoftShadowFloor) Update(dt, elapsed float32) error {
	if s.floorBias >= s.maxHeight {
		return fmt.Errorf("skipping soft shadow floor %q: floor bias %g reaches max height %g: %w",
			s.name, s.floorBias, s.maxHeight, common.ErrDegenerate)
	}
	if err := s.aim(); err != nil {
		return fmt.Errorf("skipping soft shadow floor %q: %w", s.name, err)
	}

	// derive every slice camera before touching render state
	n := s.quality
	slices := make([]*camera.VirtualCamera, n)
	base := camera.Snapshot(s.camera)
	view := base.ViewMatrix()
	for i := range slices {
		t := float32(i) / float32(n)
		plane, err := s.clipPlane(common.Lerp(s.floorBias, s.maxHeight, t))
		if err != nil {
			return fmt.Errorf("skipping soft shadow floor %q: %w", s.name, err)
		}
		viewPlane, ok := plane.Transform(view[:])
		if !ok {
			return fmt.Errorf("skipping soft shadow floor %q: %w", s.name, common.ErrDegenerate)
		}
		proj, err := common.ObliqueClip(base.ProjectionMatrix(), viewPlane.Vec4(), 0)
		if err != nil {
			return fmt.Errorf("skipping soft shadow floor %q slice %d: %w", s.name, i, err)
		}
		slices[i] = base.WithProjection(proj)
	}
	s.displayMat.Opacity = s.opacity

	guard := capture.BeginCapture(s.ctx, capture.CaptureConfig{
		ClearColor:       s.ambient,
		HideNodes:        []game_object.GameObject{s.display},
		OverrideMaterial: s.flat,
	})
	defer guard.Release()
	defer s.transition(Idle)

	r := s.ctx.Renderer
	r.SetRenderTarget(s.renderTarget)
	r.Clear()
	for i, cam := range slices {
		t := float32(i) / float32(n)
		s.flat.Color = common.White.Lerp(common.Black, t)

		s.transition(CapturingDepth)
		r.SetRenderTarget(s.renderTarget)
		if err := r.Render(s.ctx.Scene, cam); err != nil {
			return fmt.Errorf("failed to capture soft shadow slice %d: %w", i, err)
		}

		s.transition(Blurring)
		amount := s.blurAmount * float32(i+1) / float32(n)
		if err := s.blur.Blur(s.ctx, s.renderTarget, s.renderTarget, amount); err != nil {
			return fmt.Errorf("failed to blur soft shadow slice %d: %w", i, err)
		}
	}
	return nil
}
