package scene

import (
	"testing"

	"github.com/cadforge/constraints/pkg/assembly"
	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/cadforge/constraints/pkg/core/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRemoveReparentsChildren(t *testing.T) {
	tree := NewTree()
	root := assembly.NewComponent("root")
	child := assembly.NewComponent("child")
	grandchild := assembly.NewComponent("grandchild")

	require.NoError(t, tree.AddComponent(root, cid.ID("")))
	require.NoError(t, tree.AddComponent(child, root.ID))
	require.NoError(t, tree.AddComponent(grandchild, child.ID))

	require.NoError(t, tree.RemoveComponent(child.ID))

	roots := tree.Roots()
	assert.Contains(t, roots, root.ID)
	assert.Contains(t, roots, grandchild.ID)
	assert.NotContains(t, tree.Children(root.ID), child.ID)
}

func TestMoveComponentRejectsCycle(t *testing.T) {
	tree := NewTree()
	a := assembly.NewComponent("a")
	b := assembly.NewComponent("b")
	c := assembly.NewComponent("c")

	require.NoError(t, tree.AddComponent(a, cid.ID("")))
	require.NoError(t, tree.AddComponent(b, a.ID))
	require.NoError(t, tree.AddComponent(c, b.ID))

	err := tree.MoveComponent(a.ID, c.ID)
	assert.Error(t, err)
}

func TestAddComponentRejectsDuplicateID(t *testing.T) {
	tree := NewTree()
	a := assembly.NewComponent("a")
	require.NoError(t, tree.AddComponent(a, cid.ID("")))
	err := tree.AddComponent(a, cid.ID(""))
	assert.Error(t, err)
}

func TestExplodedPositionWalksAncestorChain(t *testing.T) {
	tree := NewTree()
	root := assembly.NewComponent("root")
	child := assembly.NewComponent("child")

	require.NoError(t, tree.AddComponent(root, cid.ID("")))
	require.NoError(t, tree.AddComponent(child, root.ID))

	require.NoError(t, tree.SetComponentExplodeOffset(root.ID, vec.NewVec3(1, 0, 0)))
	require.NoError(t, tree.SetComponentExplodeOffset(child.ID, vec.NewVec3(0, 1, 0)))

	assert.Equal(t, vec.Vec3{}, tree.ExplodedPosition(child.ID))

	tree.SetExplodedViewEnabled(true)
	tree.SetExplosionFactor(1.0)

	pos := tree.ExplodedPosition(child.ID)
	assert.InDelta(t, 1, pos.X(), 1e-9)
	assert.InDelta(t, 1, pos.Y(), 1e-9)
}

func TestDisablingExplodedViewZeroesFactor(t *testing.T) {
	tree := NewTree()
	tree.SetExplodedViewEnabled(true)
	tree.SetExplosionFactor(0.5)
	tree.SetExplodedViewEnabled(false)
	assert.Equal(t, 0.0, tree.ExplosionFactor())
}

func TestResetExplodedViewRestoresDefaults(t *testing.T) {
	tree := NewTree()
	root := assembly.NewComponent("root")
	require.NoError(t, tree.AddComponent(root, cid.ID("")))
	require.NoError(t, tree.SetComponentExplodeOffset(root.ID, vec.NewVec3(5, 0, 0)))
	tree.SetExplodedViewEnabled(true)
	tree.SetExplosionFactor(1.0)

	tree.ResetExplodedView()

	assert.False(t, tree.ExplodedViewEnabled())
	assert.Equal(t, 0.0, tree.ExplosionFactor())
	assert.Equal(t, vec.Vec3{}, tree.ComponentExplodeOffset(root.ID))
}
