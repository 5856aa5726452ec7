package mechanism

import (
	"fmt"
	"math"

	"github.com/cadforge/constraints/pkg/assembly"
	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/cadforge/constraints/pkg/core/vec"
)

// GearConstraint couples the rotation of two components about their own
// axes by a fixed ratio. It tracks each component's angle internally
// rather than reading it back from the component's live orientation:
// Enforce and SimulateMotion are the only writers of that state and
// neither reads the components' orientations, so an external
// re-orientation of either component is never observed by the
// constraint.
type GearConstraint struct {
	component1, component2 *assembly.Component
	axis1, axis2           vec.Vec3
	ratio                  float64
	efficiency             float64
	angularVelocity        float64
	angle1, angle2         float64
}

func NewGearConstraint(c1, c2 *assembly.Component, axis1, axis2 vec.Vec3, ratio float64) (*GearConstraint, error) {
	if c1 == nil || c2 == nil {
		return nil, fmt.Errorf("GearConstraint.New: components must not be nil")
	}
	if ratio == 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, fmt.Errorf("GearConstraint.New: ratio must be finite and non-zero")
	}
	return &GearConstraint{
		component1: c1,
		component2: c2,
		axis1:      axis1.Normalize(),
		axis2:      axis2.Normalize(),
		ratio:      ratio,
		efficiency: 1.0,
	}, nil
}

func (g *GearConstraint) Name() string { return "Gear" }

func (g *GearConstraint) Components() []cid.ID {
	return []cid.ID{g.component1.ID, g.component2.ID}
}

func (g *GearConstraint) AllowsMotion() bool { return true }

func (g *GearConstraint) ConstrainedDegreesOfFreedom() int { return 1 }

func (g *GearConstraint) Priority() int { return 0 }

func (g *GearConstraint) IsValid() bool {
	return g.component1 != nil && g.component2 != nil && g.ratio != 0
}

func (g *GearConstraint) expectedAngle2() float64 {
	return g.angle1 * g.ratio
}

func (g *GearConstraint) Error() float64 {
	if !g.IsValid() {
		return math.Inf(1)
	}
	return math.Abs(g.angle2 - g.expectedAngle2())
}

func (g *GearConstraint) IsSatisfied() bool {
	return g.Error() <= 1e-6
}

// Enforce rotates component2 about axis2 by the delta between its tracked
// angle and the ratio-derived expectation from component1's tracked
// angle. Component1 is never touched here.
func (g *GearConstraint) Enforce() bool {
	if !g.IsValid() {
		return false
	}
	delta := g.expectedAngle2() - g.angle2
	correction := vec.QuatFromAxisAngle(g.axis2, delta)
	g.component2.Orientation = correction.Mul(g.component2.Orientation).Normalize()
	g.angle2 = g.expectedAngle2()
	return true
}

// SimulateMotion advances component1's tracked angle by the configured
// angular velocity and derives component2's tracked angle from the gear
// ratio, then applies the corresponding rotation to both components.
func (g *GearConstraint) SimulateMotion(dt float64) {
	delta1 := g.angularVelocity * dt
	rot1 := vec.QuatFromAxisAngle(g.axis1, delta1)
	g.component1.Orientation = rot1.Mul(g.component1.Orientation).Normalize()
	g.angle1 += delta1

	delta2 := g.expectedAngle2() - g.angle2
	rot2 := vec.QuatFromAxisAngle(g.axis2, delta2)
	g.component2.Orientation = rot2.Mul(g.component2.Orientation).Normalize()
	g.angle2 = g.expectedAngle2()
}

func (g *GearConstraint) Velocity() (linear, angular vec.Vec3) {
	return vec.Vec3{}, g.axis1.Scale(g.angularVelocity)
}

// SetVelocity projects the requested angular velocity onto this gear's
// own axis1; the linear component is not meaningful for a pure rotational
// coupling and is ignored.
func (g *GearConstraint) SetVelocity(linear, angular vec.Vec3) bool {
	g.angularVelocity = angular.Dot(g.axis1)
	return true
}

func (g *GearConstraint) ForceAndTorque() (force, torque vec.Vec3) {
	return vec.Vec3{}, g.axis2.Scale(g.angularVelocity * g.ratio * g.efficiency)
}

func (g *GearConstraint) Ratio() float64 { return g.ratio }

func (g *GearConstraint) SetRatio(ratio float64) error {
	if ratio == 0 || math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return fmt.Errorf("GearConstraint.SetRatio: ratio must be finite and non-zero")
	}
	g.ratio = ratio
	return nil
}

func (g *GearConstraint) Efficiency() float64 { return g.efficiency }

func (g *GearConstraint) SetEfficiency(efficiency float64) error {
	if efficiency < 0 || efficiency > 1 {
		return fmt.Errorf("GearConstraint.SetEfficiency: efficiency must be within [0, 1]")
	}
	g.efficiency = efficiency
	return nil
}
