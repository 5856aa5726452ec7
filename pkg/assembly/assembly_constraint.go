package assembly

import (
	"github.com/cadforge/constraints/pkg/constraint"
	"github.com/cadforge/constraints/pkg/core/cid"
)

// AssemblyConstraint extends the base Constraint with the capability
// surface the solver needs: which components it touches, how much motion
// it leaves free, and what order it should be enforced in relative to
// other constraints.
type AssemblyConstraint interface {
	constraint.Constraint

	// Components returns the IDs of every component this constraint
	// reads or writes.
	Components() []cid.ID

	// AllowsMotion reports whether this constraint still leaves some
	// relative motion between its components (true for every mechanism
	// constraint; false for a constraint that fully locks its
	// components together).
	AllowsMotion() bool

	// ConstrainedDegreesOfFreedom is how many of the 6 DOF per component
	// this constraint removes.
	ConstrainedDegreesOfFreedom() int

	// Priority orders enforcement within a solve pass; higher values are
	// enforced first.
	Priority() int
}
