package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, want, got [3]float32, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func lookingCamera(t *testing.T, eye, target, up [3]float32) *VirtualCamera {
	t.Helper()
	view, err := lookAt(eye, target, up)
	require.NoError(t, err)
	var proj [16]float32
	common.Perspective(proj[:], math32.Pi/3, 1, 0.1, 100)
	return NewVirtualCamera(view, proj, 0.1, 100)
}

func TestOrbitControllerWithEye(t *testing.T) {
	ctrl := NewOrbitController(WithTarget(0, 1.2, 0), WithEye(0, 2, 5))
	x, y, z := ctrl.Position()
	assertVecInDelta(t, [3]float32{0, 2, 5}, [3]float32{x, y, z}, 1e-4)

	ctrl.Orbit(math32.Pi, 0)
	x, y, z = ctrl.Position()
	assertVecInDelta(t, [3]float32{0, 2, -5}, [3]float32{x, y, z}, 1e-4)
}

func TestOrbitControllerClampsElevation(t *testing.T) {
	ctrl := NewOrbitController(WithElevationBounds(0, 1))
	ctrl.Orbit(0, 10)
	assert.Equal(t, float32(1), ctrl.Elevation())
	ctrl.SetRadius(1e6)
	assert.Equal(t, float32(100), ctrl.Radius())
}

func TestPerspectiveCameraPoseFollowsController(t *testing.T) {
	cam := NewPerspectiveCamera(WithController(NewOrbitController(WithTarget(0, 1.2, 0), WithEye(0, 2, 5))))

	assertVecInDelta(t, [3]float32{0, 2, 5}, cam.Position(), 1e-4)
	want := common.Normalize3([3]float32{0, -0.8, -5})
	assertVecInDelta(t, want, cam.Forward(), 1e-5)
	assert.InDelta(t, 0, common.Dot3(cam.Forward(), cam.Up()), 1e-5)
	assert.Greater(t, cam.Up()[1], float32(0))

	_, ok := cam.Viewport()
	assert.False(t, ok)
	cam.SetViewport(&common.Viewport{Width: 10, Height: 20})
	vp, ok := cam.Viewport()
	assert.True(t, ok)
	assert.Equal(t, 20, vp.Height)
}

func TestOrthographicCameraLookingUp(t *testing.T) {
	cam := NewOrthographicCamera(
		WithBounds(-0.5, 0.5, -0.5, 0.5),
		WithClipRange(0, 1),
		WithPose([3]float32{0, 0, 0}, [3]float32{0, 1, 0}, [3]float32{0, 0, 1}),
	)
	assertVecInDelta(t, [3]float32{0, 1, 0}, cam.Forward(), 1e-6)
	assertVecInDelta(t, [3]float32{0, 0, 1}, cam.Up(), 1e-6)

	vp := cam.ViewProjectionMatrix()
	c := common.MulVec4(vp[:], [4]float32{0, 0.5, 0.25, 1})
	assert.InDelta(t, 0.5, c[2]/c[3], 1e-6)
	// +Z is the top of the image
	assert.InDelta(t, 0.5, c[1]/c[3], 1e-6)
}

func TestOrthographicCameraRejectsParallelUp(t *testing.T) {
	cam := NewOrthographicCamera()
	err := cam.LookAt([3]float32{0, 0, 0}, [3]float32{0, 1, 0}, [3]float32{0, 2, 0})
	assert.ErrorIs(t, err, common.ErrDegenerate)
	err = cam.LookAt([3]float32{1, 1, 1}, [3]float32{1, 1, 1}, [3]float32{0, 1, 0})
	assert.ErrorIs(t, err, common.ErrDegenerate)
}

func TestReflectHorizontalMirror(t *testing.T) {
	cam := lookingCamera(t, [3]float32{0, 2, 0}, [3]float32{0, 0, 0}, [3]float32{0, 0, -1})
	mirror, ok := common.NewPlane([3]float32{0, 1, 0}, [3]float32{0, 0.5, 0})
	require.True(t, ok)

	virtual, err := Reflect(cam, mirror, 0)
	require.NoError(t, err)

	assertVecInDelta(t, [3]float32{0, -1, 0}, virtual.Position(), 1e-5)
	assertVecInDelta(t, [3]float32{0, 1, 0}, virtual.Forward(), 1e-5)
	assertVecInDelta(t, [3]float32{0, 0, -1}, virtual.Up(), 1e-5)

	// the mirror plane becomes the near plane
	vp := virtual.ViewProjectionMatrix()
	c := common.MulVec4(vp[:], [4]float32{0.1, 0.5, -0.1, 1})
	assert.InDelta(t, 0, c[2]/c[3], 1e-4)
	below := common.MulVec4(vp[:], [4]float32{0, 0.2, 0, 1})
	assert.Less(t, below[2]/below[3], float32(0))
}

func TestReflectTwiceRestoresPose(t *testing.T) {
	cam := lookingCamera(t, [3]float32{1, 2, 3}, [3]float32{0, 0.2, 0}, [3]float32{0, 1, 0})
	mirror, ok := common.NewPlane([3]float32{0, 1, 0}, [3]float32{0, 0, 0})
	require.True(t, ok)

	once, err := Reflect(cam, mirror, 0)
	require.NoError(t, err)
	twice, err := Reflect(once, mirror, 0)
	require.NoError(t, err)

	assertVecInDelta(t, cam.Position(), twice.Position(), 1e-4)
	assertVecInDelta(t, cam.Forward(), twice.Forward(), 1e-5)
	assertVecInDelta(t, cam.Up(), twice.Up(), 1e-5)
}

func TestVirtualCameraWithProjectionKeepsView(t *testing.T) {
	cam := lookingCamera(t, [3]float32{0, 1, 4}, [3]float32{0, 0, 0}, [3]float32{0, 1, 0})
	var ortho [16]float32
	common.Orthographic(ortho[:], -1, 1, -1, 1, 0, 10)

	derived := cam.WithProjection(ortho)
	assert.Equal(t, cam.ViewMatrix(), derived.ViewMatrix())
	assert.Equal(t, ortho, derived.ProjectionMatrix())
	assert.NotEqual(t, cam.ViewProjectionMatrix(), derived.ViewProjectionMatrix())
}
