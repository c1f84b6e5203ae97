package scene

import (
	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithBackground sets the scene's clear color.
//
// Parameters:
//   - c: the background color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = &c
	}
}

// WithObjects attaches initial objects to the scene root.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		s.root.Add(objects...)
	}
}

// WithLights adds free lights to the scene.
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, lights...)
	}
}

// WithCamera sets the camera the scene is viewed through.
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
	}
}
