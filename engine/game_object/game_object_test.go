package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject(WithName("b"))

	assert.NotEqual(t, a.ID(), b.ID())
	assert.True(t, a.Enabled())
	sx, sy, sz := a.Scale()
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32{sx, sy, sz})
	assert.Equal(t, "b", b.Name())
}

func TestWorldMatrixComposesParents(t *testing.T) {
	child := NewGameObject(WithPosition(1, 0, 0))
	parent := NewGameObject(WithPosition(0, 2, 0), WithRotation(0, math32.Pi/2, 0), WithChildren(child))

	world := child.WorldMatrix()
	p := common.TransformPoint(world[:], [3]float32{0, 0, 0})
	// rotating +X by 90 degrees around Y lands on -Z
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 2, p[1], 1e-5)
	assert.InDelta(t, -1, p[2], 1e-5)
	assert.Equal(t, parent, child.Parent())
}

func TestAddReparents(t *testing.T) {
	child := NewGameObject()
	a := NewGameObject(WithChildren(child))
	b := NewGameObject()

	b.Add(child)
	assert.Empty(t, a.Children())
	assert.Len(t, b.Children(), 1)
	assert.Equal(t, b, child.Parent())

	assert.True(t, b.Remove(child))
	assert.False(t, b.Remove(child))
	assert.Nil(t, child.Parent())
}

func TestTraverseSkipsSubtree(t *testing.T) {
	leaf := NewGameObject(WithName("leaf"))
	mid := NewGameObject(WithName("mid"), WithChildren(leaf))
	other := NewGameObject(WithName("other"))
	root := NewGameObject(WithName("root"), WithChildren(mid, other))

	var visited []string
	root.Traverse(func(o GameObject) bool {
		visited = append(visited, o.Name())
		return o.Name() != "mid"
	})
	assert.Equal(t, []string{"root", "mid", "other"}, visited)
}

func TestAdvanceIntegratesRotationSpeed(t *testing.T) {
	child := NewGameObject(WithRotationSpeed(0, 0.1, 0))
	root := NewGameObject(WithChildren(child))

	root.Advance(2)
	_, ry, _ := child.Rotation()
	assert.InDelta(t, 0.2, ry, 1e-6)
}
