package camera

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fx/common"
)

// Reflect builds the mirror image of cam across a world-space plane. The eye, a point one
// unit ahead and the true up axis are mirrored, then the projection's near plane is
// replaced by the mirror plane so geometry behind the mirror never reaches the capture.
//
// Parameters:
//   - cam: the viewing camera
//   - mirror: the reflecting plane in world space, normal facing the viewer
//   - clipBias: offset applied to the oblique near plane to hide seams at the surface
//
// Returns:
//   - *VirtualCamera: the mirrored camera
//   - error: wraps common.ErrDegenerate if the mirrored pose or clip plane is unusable
func Reflect(cam Camera, mirror common.Plane, clipBias float32) (*VirtualCamera, error) {
	pos := cam.Position()
	fwd := cam.Forward()
	up := cam.Up()

	eye := mirror.ReflectPoint(pos)
	target := mirror.ReflectPoint(common.Add3(pos, fwd))
	mirroredUp := mirror.ReflectVector(up)

	view, err := lookAt(eye, target, mirroredUp)
	if err != nil {
		return nil, fmt.Errorf("failed to build mirrored view: %w", err)
	}

	viewPlane, ok := mirror.Transform(view[:])
	if !ok {
		return nil, fmt.Errorf("failed to transform mirror plane: %w", common.ErrDegenerate)
	}
	proj, err := common.ObliqueClip(cam.ProjectionMatrix(), viewPlane.Vec4(), clipBias)
	if err != nil {
		return nil, fmt.Errorf("failed to build oblique projection: %w", err)
	}
	return NewVirtualCamera(view, proj, cam.Near(), cam.Far()), nil
}
