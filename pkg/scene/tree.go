// Package scene implements the assembly component tree: a forest of
// components with reparenting, cycle prevention, and a pure exploded-view
// presentation overlay.
package scene

import (
	"fmt"

	"github.com/cadforge/constraints/pkg/assembly"
	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/cadforge/constraints/pkg/core/logger"
	"github.com/cadforge/constraints/pkg/core/vec"
)

type node struct {
	component     *assembly.Component
	visible       bool
	parent        cid.ID
	children      []cid.ID
	explodeOffset vec.Vec3
	explodeFactor float64
}

// Tree is an arena-indexed forest of assembly components, replacing the
// original shared_ptr/weak_ptr node graph with a map keyed by
// cid.ID per the arena redesign.
type Tree struct {
	nodes map[cid.ID]*node
	roots []cid.ID

	explodedViewEnabled bool
	explosionFactor     float64
}

func NewTree() *Tree {
	return &Tree{nodes: make(map[cid.ID]*node)}
}

// AddComponent inserts c into the tree, either as a new root (parent ==
// "") or as a child of parent. It rejects a duplicate ID and an unknown
// parent.
func (t *Tree) AddComponent(c *assembly.Component, parent cid.ID) error {
	if c == nil {
		return fmt.Errorf("Tree.AddComponent: component must not be nil")
	}
	if _, exists := t.nodes[c.ID]; exists {
		return fmt.Errorf("Tree.AddComponent: component %s already present", c.ID)
	}
	if !parent.IsZero() {
		if _, ok := t.nodes[parent]; !ok {
			return fmt.Errorf("Tree.AddComponent: parent %s not found", parent)
		}
	}

	n := &node{component: c, visible: true, explodeFactor: 1.0}
	t.nodes[c.ID] = n

	if parent.IsZero() {
		t.roots = append(t.roots, c.ID)
		return nil
	}
	if err := t.attachChild(parent, c.ID); err != nil {
		delete(t.nodes, c.ID)
		return err
	}
	n.parent = parent
	return nil
}

func (t *Tree) attachChild(parent, child cid.ID) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("Tree.attachChild: parent %s not found", parent)
	}
	for _, existing := range p.children {
		if existing == child {
			return fmt.Errorf("Tree.attachChild: %s already a child of %s", child, parent)
		}
	}
	p.children = append(p.children, child)
	return nil
}

// RemoveComponent deletes id from the tree, reparenting every former
// child to the root list.
func (t *Tree) RemoveComponent(id cid.ID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("Tree.RemoveComponent: %s not found", id)
	}

	t.detachFromParentOrRoot(id, n.parent)

	for _, child := range n.children {
		t.updateNodeParent(child, cid.ID(""))
	}

	delete(t.nodes, id)
	return nil
}

// MoveComponent reparents id under newParent ("" for root), rejecting the
// move if newParent is id itself or a descendant of id.
func (t *Tree) MoveComponent(id, newParent cid.ID) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("Tree.MoveComponent: %s not found", id)
	}
	if !newParent.IsZero() {
		if _, ok := t.nodes[newParent]; !ok {
			return fmt.Errorf("Tree.MoveComponent: new parent %s not found", newParent)
		}
		if t.isDescendantOrSelf(newParent, id) {
			logger.Log.Warn().Str("id", id.String()).Str("newParent", newParent.String()).Msg("rejected move: would create a cycle")
			return fmt.Errorf("Tree.MoveComponent: moving %s under %s would create a cycle", id, newParent)
		}
	}

	t.detachFromParentOrRoot(id, n.parent)
	t.updateNodeParent(id, newParent)
	return nil
}

// isDescendantOrSelf walks up from candidate through its ancestors,
// checking each against target.
func (t *Tree) isDescendantOrSelf(candidate, target cid.ID) bool {
	current := candidate
	for {
		if current == target {
			return true
		}
		n, ok := t.nodes[current]
		if !ok || n.parent.IsZero() {
			return false
		}
		current = n.parent
	}
}

func (t *Tree) updateNodeParent(id, newParent cid.ID) {
	n := t.nodes[id]
	if newParent.IsZero() {
		n.parent = cid.ID("")
		t.roots = append(t.roots, id)
		return
	}
	if err := t.attachChild(newParent, id); err != nil {
		n.parent = cid.ID("")
		t.roots = append(t.roots, id)
		return
	}
	n.parent = newParent
}

func (t *Tree) detachFromParentOrRoot(id, parent cid.ID) {
	if parent.IsZero() {
		for i, r := range t.roots {
			if r == id {
				t.roots = append(t.roots[:i], t.roots[i+1:]...)
				break
			}
		}
		return
	}
	p := t.nodes[parent]
	for i, c := range p.children {
		if c == id {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
}

func (t *Tree) FindComponent(id cid.ID) (*assembly.Component, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return n.component, true
}

func (t *Tree) Children(id cid.ID) []cid.ID {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	out := make([]cid.ID, len(n.children))
	copy(out, n.children)
	return out
}

func (t *Tree) Parent(id cid.ID) (cid.ID, bool) {
	n, ok := t.nodes[id]
	if !ok || n.parent.IsZero() {
		return cid.ID(""), false
	}
	return n.parent, true
}

func (t *Tree) Roots() []cid.ID {
	out := make([]cid.ID, len(t.roots))
	copy(out, t.roots)
	return out
}

func (t *Tree) Clear() {
	t.nodes = make(map[cid.ID]*node)
	t.roots = nil
	t.explodedViewEnabled = false
	t.explosionFactor = 0
}

func (t *Tree) IsEmpty() bool { return len(t.nodes) == 0 }

func (t *Tree) Size() int { return len(t.nodes) }

// SetExplodedViewEnabled toggles the exploded-view overlay. Disabling it
// also zeroes the global explosion factor.
func (t *Tree) SetExplodedViewEnabled(enabled bool) {
	t.explodedViewEnabled = enabled
	if !enabled {
		t.explosionFactor = 0
	}
}

func (t *Tree) ExplodedViewEnabled() bool { return t.explodedViewEnabled }

func (t *Tree) SetExplosionFactor(factor float64) {
	t.explosionFactor = clamp01(factor)
}

func (t *Tree) ExplosionFactor() float64 { return t.explosionFactor }

func (t *Tree) SetComponentExplodeOffset(id cid.ID, offset vec.Vec3) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("Tree.SetComponentExplodeOffset: %s not found", id)
	}
	n.explodeOffset = offset
	return nil
}

func (t *Tree) ComponentExplodeOffset(id cid.ID) vec.Vec3 {
	n, ok := t.nodes[id]
	if !ok {
		return vec.Vec3{}
	}
	return n.explodeOffset
}

// ExplodedPosition returns the presentation-only offset id should be
// displayed at: the zero vector when exploded view is disabled or the
// global factor is non-positive, otherwise the sum of offset*globalFactor
// *nodeFactor walking up id's ancestor chain.
func (t *Tree) ExplodedPosition(id cid.ID) vec.Vec3 {
	if !t.explodedViewEnabled || t.explosionFactor <= 0 {
		return vec.Vec3{}
	}
	var total vec.Vec3
	current := id
	for {
		n, ok := t.nodes[current]
		if !ok {
			break
		}
		total = total.Add(n.explodeOffset.Scale(t.explosionFactor * n.explodeFactor))
		if n.parent.IsZero() {
			break
		}
		current = n.parent
	}
	return total
}

// ResetExplodedView disables the overlay, zeroes the global factor, and
// resets every node's own offset and factor to their defaults.
func (t *Tree) ResetExplodedView() {
	t.explodedViewEnabled = false
	t.explosionFactor = 0
	for _, n := range t.nodes {
		n.explodeOffset = vec.Vec3{}
		n.explodeFactor = 1.0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
