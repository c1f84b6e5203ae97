package camera

// CameraBuilderOption is a functional option for configuring a PerspectiveCamera.
type CameraBuilderOption func(*perspectiveCamera)

// WithUp sets the up hint used when building the view matrix.
//
// Parameters:
//   - x, y, z: world-space up hint
//
// Returns:
//   - CameraBuilderOption: functional option to set the up hint
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.up = [3]float32{x, y, z}
	}
}

// WithFov sets the vertical field of view.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: functional option to set the field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.fov = fov
	}
}

// WithAspect sets the aspect ratio.
//
// Parameters:
//   - aspect: width divided by height
//
// Returns:
//   - CameraBuilderOption: functional option to set the aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping distance.
func WithNear(near float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.near = near
	}
}

// WithFar sets the far clipping distance.
func WithFar(far float32) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.far = far
	}
}

// WithController attaches a controller that owns the camera's position and target.
//
// Parameters:
//   - ctrl: the controller
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *perspectiveCamera) {
		c.controller = ctrl
	}
}
