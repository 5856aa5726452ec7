// Package constraint defines the base constraint abstraction and the
// sketch-constraint family (parallel, perpendicular, tangent, angle,
// length, radius) that operate directly on 2D sketch entities.
package constraint

// Constraint is the minimal contract every constraint in this module
// satisfies, sketch-level or assembly-level alike.
type Constraint interface {
	// Name identifies the constraint for logging and reporting; it is not
	// required to be unique.
	Name() string

	// IsSatisfied reports whether the constrained entities currently
	// satisfy the constraint within its tolerance.
	IsSatisfied() bool

	// Enforce adjusts the constrained entities to satisfy the constraint.
	// It returns false when the constraint is not valid or cannot be
	// enforced from the current configuration.
	Enforce() bool

	// Error returns a non-negative measure of how far the constrained
	// entities are from satisfying the constraint. It returns +Inf when
	// the constraint is not valid.
	Error() float64

	// IsValid reports whether the constraint's referenced entities are
	// well-formed enough to evaluate (non-degenerate, finite).
	IsValid() bool
}
