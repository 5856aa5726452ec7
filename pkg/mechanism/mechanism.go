// Package mechanism implements the motion-transmitting assembly
// constraints: gears, a gear-rack pair, cams, and path followers.
package mechanism

import (
	"github.com/cadforge/constraints/pkg/assembly"
	"github.com/cadforge/constraints/pkg/core/vec"
)

// MechanismConstraint extends assembly.AssemblyConstraint with the motion
// simulation surface every mechanism constraint exposes: advancing
// internal state over time, reporting and driving velocity, and
// estimating the force/torque the mechanism currently carries.
type MechanismConstraint interface {
	assembly.AssemblyConstraint

	// SimulateMotion advances the constraint's internal motion state by
	// dt seconds, independent of Enforce.
	SimulateMotion(dt float64)

	// Velocity returns the constraint's current linear and angular
	// velocity.
	Velocity() (linear, angular vec.Vec3)

	// SetVelocity drives the constraint's motion state from a requested
	// linear and angular velocity. It returns false if the request
	// cannot be honored.
	SetVelocity(linear, angular vec.Vec3) bool

	// ForceAndTorque estimates the force and torque the mechanism
	// currently transmits.
	ForceAndTorque() (force, torque vec.Vec3)
}
