package shadow

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
	"github.com/chewxy/math32"
)

// State is the phase of a shadow capture.
type State int

const (
	Idle State = iota
	CapturingDepth
	Blurring
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case CapturingDepth:
		return "CapturingDepth"
	case Blurring:
		return "Blurring"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// machine tracks the capture phase and reports every change to an optional hook.
type machine struct {
	state State
	hook  func(from, to State)
}

func (m *machine) transition(to State) {
	from := m.state
	m.state = to
	if m.hook != nil && from != to {
		m.hook(from, to)
	}
}

// State returns the current capture phase. Outside Update it is always Idle.
func (m *machine) State() State {
	return m.state
}

// footprint is a shadow receiver: a group holding the display quad, whose world
// transform places the footprint plane, and the orthographic camera that looks up from it.
type footprint struct {
	group   game_object.GameObject
	display game_object.GameObject
	camera  camera.OrthographicCamera
	width   float32
	height  float32
}

func newFootprint(name string, width, height, depth float32, mat material.Material) footprint {
	display := game_object.NewGameObject(
		game_object.WithName(name+"_display"),
		game_object.WithMesh(geometry.Plane(width, height, 1, 1)),
		game_object.WithMaterial(mat),
		game_object.WithRotation(-math32.Pi/2, 0, 0),
	)
	return footprint{
		group: game_object.NewGameObject(game_object.WithName(name), game_object.WithChildren(display)),
		display: display,
		camera: camera.NewOrthographicCamera(
			camera.WithBounds(-width/2, width/2, -height/2, height/2),
			camera.WithClipRange(0, depth),
		),
		width:  width,
		height: height,
	}
}

// aim points the camera up the group's local Y axis from its origin, with local +Z at the
// top of the captured image. The display quad runs v toward +Z, so it samples flipped.
func (f *footprint) aim() error {
	if f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("footprint is %gx%g: %w", f.width, f.height, common.ErrDegenerate)
	}
	world := f.group.WorldMatrix()
	eye := [3]float32{world[12], world[13], world[14]}
	up := common.Normalize3([3]float32{world[4], world[5], world[6]})
	back := [3]float32{world[8], world[9], world[10]}
	if err := f.camera.LookAt(eye, common.Add3(eye, up), back); err != nil {
		return fmt.Errorf("failed to aim shadow camera: %w", err)
	}
	return nil
}

// clipPlane is the world plane parallel to the footprint at height h along its normal.
func (f *footprint) clipPlane(h float32) (common.Plane, error) {
	world := f.group.WorldMatrix()
	origin := [3]float32{world[12], world[13], world[14]}
	up := common.Normalize3([3]float32{world[4], world[5], world[6]})
	p, ok := common.NewPlane(up, common.Add3(origin, common.Scale3(up, h)))
	if !ok {
		return common.Plane{}, fmt.Errorf("footprint has no normal: %w", common.ErrDegenerate)
	}
	return p, nil
}
