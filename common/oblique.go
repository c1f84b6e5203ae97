package common

import (
	"errors"

	"github.com/chewxy/math32"
)

// ErrDegenerate is returned when a camera or plane construction has no valid solution
// for the current frame (parallel planes, singular matrices, zero-length vectors).
var ErrDegenerate = errors.New("degenerate geometry")

// ObliqueClip replaces the depth row of a projection matrix so that the near clip plane
// coincides with clipPlane (given in view space, positive half-space kept) while the far
// corner of the frustum keeps depth 1. Works for perspective and orthographic projections
// with clip space z in [0, 1].
//
// Reference: Lengyel, "Oblique View Frustum Depth Projection and Clipping", JGT 2005.
//
// Parameters:
//   - proj: the source projection matrix (column-major)
//   - clipPlane: plane coefficients (a, b, c, d) in view space
//   - clipBias: value subtracted from the z scale to push the clip plane slightly
//
// Returns:
//   - [16]float32: the oblique projection
//   - error: ErrDegenerate when the plane cannot be used as a near plane
func ObliqueClip(proj [16]float32, clipPlane [4]float32, clipBias float32) ([16]float32, error) {
	var inv [16]float32
	if !Invert4(inv[:], proj[:]) {
		return proj, ErrDegenerate
	}

	// far corner of the frustum opposite the clip plane
	q := MulVec4(inv[:], [4]float32{sign(clipPlane[0]), sign(clipPlane[1]), 1, 1})

	cq := Dot4(clipPlane, q)
	if math32.Abs(cq) < 1e-9 {
		return proj, ErrDegenerate
	}
	row3 := [4]float32{proj[3], proj[7], proj[11], proj[15]}
	s := Dot4(row3, q) / cq

	out := proj
	out[2] = clipPlane[0] * s
	out[6] = clipPlane[1] * s
	out[10] = clipPlane[2]*s - clipBias
	out[14] = clipPlane[3] * s
	return out, nil
}

func sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
