package capture

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/Carmen-Shannon/oxy-fx/engine/target"
)

// BlurRadius maps a blur amount to the tap spacing in texture coordinates: amount 1 is
// 1/256 of the texture.
func BlurRadius(amount float32) float32 {
	return max(common.MapLinear(amount, 0, 1, 0, 1.0/256), 0)
}

// SeparableBlur runs a 9-tap Gaussian in two passes, horizontal into a pooled scratch target
// then vertical into the destination. Each pass draws a quad that exactly covers the
// bound target with a one-axis Blur material.
type SeparableBlur struct {
	pool       *target.Pool
	quad       game_object.GameObject
	camera     camera.OrthographicCamera
	horizontal *material.Blur
	vertical   *material.Blur
}

// NewSeparableBlur creates a blur that borrows its scratch targets from pool.
//
// Parameters:
//   - pool: source of scratch targets, shared between blurs of the same size
//
// Returns:
//   - *SeparableBlur: the blur
func NewSeparableBlur(pool *target.Pool) *SeparableBlur {
	b := &SeparableBlur{
		pool:       pool,
		camera:     camera.NewOrthographicCamera(),
		horizontal: material.NewBlur(material.Horizontal),
		vertical:   material.NewBlur(material.Vertical),
	}
	b.quad = game_object.NewGameObject(
		game_object.WithName("blur_quad"),
		game_object.WithMesh(geometry.Plane(2, 2, 1, 1)),
		game_object.WithPosition(0, 0, -0.5),
	)
	return b
}

// Blur filters src into dst. dst may be src. Amount 0 copies src into dst without
// drawing. dst is left bound on return; callers run it inside a capture guard.
//
// Parameters:
//   - ctx: the renderer to draw with
//   - src: the image to blur
//   - dst: where the result goes, same size as src
//   - amount: blur strength, see BlurRadius
//
// Returns:
//   - error: an error if the sizes differ or a pass fails
func (b *SeparableBlur) Blur(ctx RenderContext, src, dst *target.RenderTarget, amount float32) error {
	if src.Width() != dst.Width() || src.Height() != dst.Height() {
		return fmt.Errorf("failed to blur %q into %q: %w", src.Label(), dst.Label(), target.ErrSizeMismatch)
	}
	radius := BlurRadius(amount)
	if radius == 0 {
		if src == dst {
			return nil
		}
		return dst.CopyFrom(src)
	}

	scratch := b.pool.Get(src.Width(), src.Height())
	quad := scene.Subtree(b.quad)

	b.horizontal.Source, b.horizontal.Radius = src, radius
	b.quad.SetMaterial(b.horizontal)
	ctx.Renderer.SetRenderTarget(scratch)
	if err := ctx.Renderer.Render(quad, b.camera); err != nil {
		return fmt.Errorf("failed to blur horizontally: %w", err)
	}

	b.vertical.Source, b.vertical.Radius = scratch, radius
	b.quad.SetMaterial(b.vertical)
	ctx.Renderer.SetRenderTarget(dst)
	if err := ctx.Renderer.Render(quad, b.camera); err != nil {
		return fmt.Errorf("failed to blur vertically: %w", err)
	}
	return nil
}
