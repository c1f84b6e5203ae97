package demo

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/window"
)

const dragSensitivity = 0.005

// BindInput wires camera and effect controls to the window:
// left-drag orbits, scroll zooms, WASD steps the orbit, Space pauses the statue and
// 1/2/3 toggle the contact shadow, soft floor and mirror.
//
// Parameters:
//   - w: the window delivering input events
func (d *Demo) BindInput(w window.Window) {
	ctrl := d.camera.Controller()

	w.SetDragCallback(func(dx, dy float32) {
		ctrl.Orbit(-dx*dragSensitivity, dy*dragSensitivity)
	})

	w.SetScrollCallback(func(delta float32) {
		ctrl.Zoom(delta)
	})

	w.SetKeyDownCallback(func(keyCode uint32) {
		switch keyCode {
		case common.KeyA:
			ctrl.OrbitLeft()
		case common.KeyD:
			ctrl.OrbitRight()
		case common.KeyW:
			ctrl.OrbitUp()
		case common.KeyS:
			ctrl.OrbitDown()
		case common.KeySpace:
			d.SetPaused(!d.paused)
		case common.Key1:
			d.Toggle(EffectContactShadow)
		case common.Key2:
			d.Toggle(EffectSoftShadowFloor)
		case common.Key3:
			d.Toggle(EffectReflection)
		}
	})
}
