// Package assembly provides the 3D rigid-body component type and the
// constraint solver that drives sets of components toward satisfying an
// active list of assembly constraints.
package assembly

import (
	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/cadforge/constraints/pkg/core/vec"
)

// Component is a 3D rigid body participating in an assembly. Components
// are identified by a stable ID minted by pkg/core/cid rather than by
// pointer identity, so they can live in an arena indexed by that ID.
type Component struct {
	ID          cid.ID
	Name        string
	Position    vec.Vec3
	Orientation vec.Quat
}

func NewComponent(name string) *Component {
	return &Component{
		ID:          cid.New(),
		Name:        name,
		Orientation: vec.IdentityQuat(),
	}
}

// TransformMatrix returns the component's current position and
// orientation composed into a single homogeneous transform.
func (c *Component) TransformMatrix() vec.Mat4 {
	return vec.FromQuatPos(c.Orientation, c.Position)
}

// SetTransformMatrix decomposes m back into the component's position and
// orientation fields.
func (c *Component) SetTransformMatrix(m vec.Mat4) {
	q, pos := m.ToQuatPos()
	c.Orientation = q
	c.Position = pos
}
