package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func depthOf(p [16]float32, v [3]float32) float32 {
	c := MulVec4(p[:], [4]float32{v[0], v[1], v[2], 1})
	return c[2] / c[3]
}

func TestObliqueClipOrthographic(t *testing.T) {
	var p [16]float32
	Orthographic(p[:], -1, 1, -1, 1, 0, 2)

	// keep view-space points with z <= -0.5
	clip := [4]float32{0, 0, -1, -0.5}
	out, err := ObliqueClip(p, clip, 0)
	require.NoError(t, err)

	assert.InDelta(t, 0, depthOf(out, [3]float32{0.3, -0.2, -0.5}), 1e-5)
	assert.InDelta(t, 1, depthOf(out, [3]float32{0, 0, -2}), 1e-5)
	assert.Less(t, depthOf(out, [3]float32{0, 0, -0.25}), float32(0))
}

func TestObliqueClipIsNoOpForNearPlane(t *testing.T) {
	var p [16]float32
	Orthographic(p[:], -1, 1, -1, 1, 0, 2)

	out, err := ObliqueClip(p, [4]float32{0, 0, -1, 0}, 0)
	require.NoError(t, err)
	assertMatrixInDelta(t, p, out, 1e-6)
}

func TestObliqueClipPerspective(t *testing.T) {
	var p [16]float32
	Perspective(p[:], math32.Pi/3, 1, 0.1, 50)

	// tilted plane through (0, -1, -3), camera on the clipped side
	n := Normalize3([3]float32{0, -1, -0.4})
	pt := [3]float32{0, -1, -3}
	clip := [4]float32{n[0], n[1], n[2], -Dot3(n, pt)}

	out, err := ObliqueClip(p, clip, 0)
	require.NoError(t, err)

	// points on the plane land on depth 0
	onPlane := Add3(pt, Normalize3(Cross3(n, [3]float32{1, 0, 0})))
	assert.InDelta(t, 0, depthOf(out, pt), 1e-4)
	assert.InDelta(t, 0, depthOf(out, onPlane), 1e-4)
	// the x and y rows are untouched
	assert.Equal(t, p[0], out[0])
	assert.Equal(t, p[5], out[5])
	assert.Equal(t, p[11], out[11])
}

func TestObliqueClipDegenerate(t *testing.T) {
	var p [16]float32
	_, err := ObliqueClip(p, [4]float32{0, 1, 0, 0}, 0)
	assert.ErrorIs(t, err, ErrDegenerate)
}
