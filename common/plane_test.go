package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaneRejectsZeroNormal(t *testing.T) {
	_, ok := NewPlane([3]float32{}, [3]float32{1, 2, 3})
	assert.False(t, ok)
}

func TestPlaneReflectPointTwiceIsIdentity(t *testing.T) {
	p, ok := NewPlane([3]float32{0.3, 1, -0.2}, [3]float32{1, 0.15, -2})
	require.True(t, ok)

	pt := [3]float32{3, 4, -1}
	back := p.ReflectPoint(p.ReflectPoint(pt))
	for i := range pt {
		assert.InDelta(t, pt[i], back[i], 1e-5)
	}
	mid := Scale3(Add3(pt, p.ReflectPoint(pt)), 0.5)
	assert.InDelta(t, 0, p.SignedDistance(mid), 1e-5)
}

func TestPlaneReflectVectorHorizontal(t *testing.T) {
	p, _ := NewPlane([3]float32{0, 1, 0}, [3]float32{0, 0, 0})
	assert.Equal(t, [3]float32{1, 2, -3}, p.ReflectVector([3]float32{1, -2, -3}))
	assert.Equal(t, [3]float32{0, -5, 0}, p.ReflectPoint([3]float32{0, 5, 0}))
}

func TestPlaneTransform(t *testing.T) {
	p, _ := NewPlane([3]float32{0, 0, 1}, [3]float32{0, 0, 0})

	var m [16]float32
	BuildModelMatrix(m[:], 0, 0.15, 0, -math32.Pi/2, 0, 0, 1, 1, 1)
	world, ok := p.Transform(m[:])
	require.True(t, ok)

	assert.InDelta(t, 0, world.Normal[0], 1e-6)
	assert.InDelta(t, 1, world.Normal[1], 1e-6)
	assert.InDelta(t, 0, world.Normal[2], 1e-6)
	assert.InDelta(t, 0, world.SignedDistance([3]float32{4, 0.15, -9}), 1e-5)
}

func TestFrustumIntersectsSphere(t *testing.T) {
	var proj, view, vp [16]float32
	Perspective(proj[:], math32.Pi/2, 1, 0.1, 10)
	LookAt(view[:], 0, 0, 0, 0, 0, -1, 0, 1, 0)
	Mul4(vp[:], proj[:], view[:])
	f := ExtractFrustumFromMatrix(vp[:])

	assert.True(t, f.IntersectsSphere([3]float32{0, 0, -5}, 0.5))
	assert.False(t, f.IntersectsSphere([3]float32{0, 0, 5}, 0.5))
	assert.False(t, f.IntersectsSphere([3]float32{0, 0, -20}, 0.5))
	assert.True(t, f.IntersectsSphere([3]float32{0, 0, 0.05}, 0.2))
}
