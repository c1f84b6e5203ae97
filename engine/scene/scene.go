package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/camera"
	"github.com/Carmen-Shannon/oxy-fx/engine/game_object"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
)

// Renderable is what a renderer draws: a graph root plus the environment it is lit
// and cleared with. Both a Scene and a bare subtree (see Subtree) satisfy it.
type Renderable interface {
	// Root returns the top of the graph to draw.
	Root() game_object.GameObject

	// Background returns the color the target is cleared to before drawing, or nil
	// to leave the target as it is.
	Background() *common.Color

	// Lights returns the lights that shade the graph.
	Lights() []light.Light
}

// Scene owns the object graph of one view together with its background, lights and
// viewing camera.
type Scene interface {
	Renderable

	// Name returns the scene's debug name.
	Name() string

	// Add attaches objects to the scene root.
	//
	// Parameters:
	//   - objs: the objects to attach
	Add(objs ...game_object.GameObject)

	// Remove detaches an object from the scene root.
	//
	// Parameters:
	//   - obj: the object to detach
	//
	// Returns:
	//   - bool: false if obj was not a direct child of the root
	Remove(obj game_object.GameObject) bool

	// SetBackground sets the clear color used for the scene, or nil for none.
	// The color is copied.
	//
	// Parameters:
	//   - c: the background color, or nil
	SetBackground(c *common.Color)

	// AddLight adds a light that is not attached to any object.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light added with AddLight.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Camera returns the camera the scene is viewed through.
	Camera() camera.Camera

	// SetCamera sets the camera the scene is viewed through.
	SetCamera(cam camera.Camera)

	// Update advances object animation by dt seconds.
	Update(dt float32)

	// Count returns the number of objects in the graph, excluding the root.
	Count() int
}

type scene struct {
	mu *sync.Mutex

	name       string
	root       game_object.GameObject
	background *common.Color
	lights     []light.Light
	cam        camera.Camera
}

var _ Scene = &scene{}

// NewScene creates an empty scene with no background.
//
// Parameters:
//   - name: the debug name
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:   &sync.Mutex{},
		name: name,
		root: game_object.NewGameObject(game_object.WithName(name + "_root")),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Root() game_object.GameObject {
	return s.root
}

func (s *scene) Add(objs ...game_object.GameObject) {
	s.root.Add(objs...)
}

func (s *scene) Remove(obj game_object.GameObject) bool {
	return s.root.Remove(obj)
}

func (s *scene) Background() *common.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.background == nil {
		return nil
	}
	c := *s.background
	return &c
}

func (s *scene) SetBackground(c *common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == nil {
		s.background = nil
		return
	}
	v := *c
	s.background = &v
}

// Lights returns the scene's free lights followed by the lights attached to enabled
// objects. Attached lights are moved to their object's world position first.
func (s *scene) Lights() []light.Light {
	s.mu.Lock()
	out := slices.Clone(s.lights)
	s.mu.Unlock()

	s.root.Traverse(func(obj game_object.GameObject) bool {
		if !obj.Enabled() {
			return false
		}
		if l := obj.Light(); l != nil {
			world := obj.WorldMatrix()
			p := common.TransformPoint(world[:], [3]float32{})
			l.SetPosition(p[0], p[1], p[2])
			out = append(out, l)
		}
		return true
	})
	return out
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.lights, l); i >= 0 {
		s.lights = slices.Delete(s.lights, i, i+1)
	}
}

func (s *scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Update(dt float32) {
	s.root.Advance(dt)
}

func (s *scene) Count() int {
	n := -1
	s.root.Traverse(func(game_object.GameObject) bool {
		n++
		return true
	})
	return n
}

type subtree struct {
	root game_object.GameObject
}

// Subtree wraps a single object as a Renderable with no background and no lights.
// Capture passes use it to draw fullscreen quads.
//
// Parameters:
//   - root: the object to draw
//
// Returns:
//   - Renderable: the wrapper
func Subtree(root game_object.GameObject) Renderable {
	return subtree{root: root}
}

func (s subtree) Root() game_object.GameObject { return s.root }
func (s subtree) Background() *common.Color    { return nil }
func (s subtree) Lights() []light.Light        { return nil }
