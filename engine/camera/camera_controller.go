package camera

// CameraController owns a camera's position and target. Cameras read from the controller
// and compute their matrices from it. The position is kept on a sphere around the target
// described by radius, azimuth and elevation.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Zoom adjusts the orbit radius. Positive delta moves closer to the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// Orbit rotates the camera around the target by the given angles, clamping elevation.
	//
	// Parameters:
	//   - dAzimuth: change of horizontal angle in radians
	//   - dElevation: change of vertical angle in radians
	Orbit(dAzimuth, dElevation float32)

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step.
	OrbitDown()

	// Radius returns the current distance from the target.
	Radius() float32

	// SetRadius sets the orbit radius, clamped to the radius bounds.
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians.
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32
}
