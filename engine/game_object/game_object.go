package game_object

import (
	"slices"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/geometry"
	"github.com/Carmen-Shannon/oxy-fx/engine/light"
	"github.com/Carmen-Shannon/oxy-fx/engine/renderer/material"
)

// objectCount hands out unique IDs to objects created without one.
var objectCount atomic.Uint64

type gameObject struct {
	id      uint64
	name    string
	enabled atomic.Bool

	mesh          *geometry.Mesh
	mat           material.Material
	attachedLight light.Light

	position      [3]float32
	scale         [3]float32
	rotation      [3]float32
	rotationSpeed [3]float32

	parent   GameObject
	children []GameObject
}

// GameObject is a node of the scene graph. It carries a local transform, optionally a
// mesh and material to draw, and any number of children whose transforms are relative
// to it. A disabled object hides its whole subtree.
//
// Objects are mutated only from the frame goroutine; the renderer snapshots what it
// needs before shading in parallel.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's debug name.
	Name() string

	// Enabled returns whether this object and its subtree are drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled shows or hides this object and its subtree.
	//
	// Parameters:
	//   - enabled: visibility flag
	SetEnabled(enabled bool)

	// Mesh returns the geometry drawn for this object, or nil for a pure transform node.
	Mesh() *geometry.Mesh

	// SetMesh replaces the geometry drawn for this object.
	SetMesh(m *geometry.Mesh)

	// Material returns the material the object is shaded with.
	//
	// Returns:
	//   - material.Material: the material, or nil
	Material() material.Material

	// SetMaterial replaces the material the object is shaded with.
	//
	// Parameters:
	//   - m: the new material
	SetMaterial(m material.Material)

	// Position returns the local translation.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// Rotation returns the local Euler rotation in radians (applied Y, X, Z).
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// RotationSpeed returns the angular velocity applied by Advance, in radians per second.
	//
	// Returns:
	//   - rx, ry, rz: rotation speeds
	RotationSpeed() (rx, ry, rz float32)

	// Scale returns the local scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the angular velocity applied by Advance.
	//
	// Parameters:
	//   - rx, ry, rz: rotation speeds in radians per second
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale components
	SetScale(sx, sy, sz float32)

	// Light returns the light attached to this object, or nil.
	Light() light.Light

	// SetLight attaches a light that follows the object's world position.
	//
	// Parameters:
	//   - l: the light to attach, or nil to detach
	SetLight(l light.Light)

	// Parent returns the object this one is attached to, or nil for a root.
	Parent() GameObject

	// Children returns a copy of the direct children.
	Children() []GameObject

	// Add attaches children, detaching each from its previous parent first.
	//
	// Parameters:
	//   - children: the objects to attach
	Add(children ...GameObject)

	// Remove detaches a direct child.
	//
	// Parameters:
	//   - child: the object to detach
	//
	// Returns:
	//   - bool: false if child was not attached here
	Remove(child GameObject) bool

	// LocalMatrix returns the transform relative to the parent.
	LocalMatrix() [16]float32

	// WorldMatrix returns the transform to world space, walking the parent chain fresh
	// on every call.
	WorldMatrix() [16]float32

	// Advance integrates the rotation speed of this object and its subtree over dt.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Advance(dt float32)

	// Traverse visits this object and its descendants depth-first in insertion order.
	// Returning false from fn skips the visited object's children.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(GameObject) bool)

	setParent(parent GameObject)
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled object with unit scale and a unique ID.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		id:    objectCount.Add(1),
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Mesh() *geometry.Mesh {
	return g.mesh
}

func (g *gameObject) SetMesh(m *geometry.Mesh) {
	g.mesh = m
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mat = m
}

func (g *gameObject) Position() (x, y, z float32) {
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) Rotation() (rx, ry, rz float32) {
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) RotationSpeed() (rx, ry, rz float32) {
	return g.rotationSpeed[0], g.rotationSpeed[1], g.rotationSpeed[2]
}

func (g *gameObject) Scale() (sx, sy, sz float32) {
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.rotationSpeed = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) Light() light.Light {
	return g.attachedLight
}

func (g *gameObject) SetLight(l light.Light) {
	g.attachedLight = l
}

func (g *gameObject) Parent() GameObject {
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	return slices.Clone(g.children)
}

func (g *gameObject) Add(children ...GameObject) {
	for _, child := range children {
		if child == nil || child == GameObject(g) {
			continue
		}
		if p := child.Parent(); p != nil {
			p.Remove(child)
		}
		child.setParent(g)
		g.children = append(g.children, child)
	}
}

func (g *gameObject) Remove(child GameObject) bool {
	i := slices.Index(g.children, child)
	if i < 0 {
		return false
	}
	g.children = slices.Delete(g.children, i, i+1)
	child.setParent(nil)
	return true
}

func (g *gameObject) LocalMatrix() [16]float32 {
	var m [16]float32
	common.BuildModelMatrix(m[:],
		g.position[0], g.position[1], g.position[2],
		g.rotation[0], g.rotation[1], g.rotation[2],
		g.scale[0], g.scale[1], g.scale[2],
	)
	return m
}

func (g *gameObject) WorldMatrix() [16]float32 {
	local := g.LocalMatrix()
	if g.parent == nil {
		return local
	}
	parent := g.parent.WorldMatrix()
	var world [16]float32
	common.Mul4(world[:], parent[:], local[:])
	return world
}

func (g *gameObject) Advance(dt float32) {
	for i := range g.rotation {
		g.rotation[i] += g.rotationSpeed[i] * dt
	}
	for _, child := range g.children {
		child.Advance(dt)
	}
}

func (g *gameObject) Traverse(fn func(GameObject) bool) {
	if !fn(g) {
		return
	}
	for _, child := range slices.Clone(g.children) {
		child.Traverse(fn)
	}
}

func (g *gameObject) setParent(parent GameObject) {
	g.parent = parent
}
