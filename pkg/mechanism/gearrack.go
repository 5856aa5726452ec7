package mechanism

import (
	"fmt"
	"math"

	"github.com/cadforge/constraints/pkg/assembly"
	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/cadforge/constraints/pkg/core/vec"
)

// GearRackConstraint couples a rotating gear to a linearly translating
// rack via position = angle * radius. Enforce corrects whichever side
// (gear angle or rack position) currently has the smaller error, leaving
// the other side untouched for that call.
type GearRackConstraint struct {
	gear, rack   *assembly.Component
	gearAxis     vec.Vec3
	rackAxis     vec.Vec3
	gearRadius   float64
	efficiency   float64
	gearAngle    float64
	rackPosition float64

	lastAngularVelocity float64
}

func NewGearRackConstraint(gear, rack *assembly.Component, gearAxis, rackAxis vec.Vec3, gearRadius float64) (*GearRackConstraint, error) {
	if gear == nil || rack == nil {
		return nil, fmt.Errorf("GearRackConstraint.New: components must not be nil")
	}
	if gearRadius <= 0 {
		return nil, fmt.Errorf("GearRackConstraint.New: gear radius must be positive")
	}
	return &GearRackConstraint{
		gear:       gear,
		rack:       rack,
		gearAxis:   gearAxis.Normalize(),
		rackAxis:   rackAxis.Normalize(),
		gearRadius: gearRadius,
		efficiency: 1.0,
	}, nil
}

func (g *GearRackConstraint) Name() string { return "GearRack" }

func (g *GearRackConstraint) Components() []cid.ID {
	return []cid.ID{g.gear.ID, g.rack.ID}
}

func (g *GearRackConstraint) AllowsMotion() bool { return true }

func (g *GearRackConstraint) ConstrainedDegreesOfFreedom() int { return 1 }

func (g *GearRackConstraint) Priority() int { return 0 }

func (g *GearRackConstraint) IsValid() bool {
	return g.gear != nil && g.rack != nil && g.gearRadius > 0
}

func (g *GearRackConstraint) expectedRackPosition() float64 {
	return g.gearAngle * g.gearRadius
}

func (g *GearRackConstraint) expectedGearAngle() float64 {
	return g.rackPosition / g.gearRadius
}

func (g *GearRackConstraint) Error() float64 {
	if !g.IsValid() {
		return math.Inf(1)
	}
	return math.Abs(g.rackPosition - g.expectedRackPosition())
}

func (g *GearRackConstraint) IsSatisfied() bool {
	return g.Error() <= 1e-6
}

// Enforce moves whichever of {rack position, gear angle} requires the
// smaller correction, matching the original's asymmetric resolution.
func (g *GearRackConstraint) Enforce() bool {
	if !g.IsValid() {
		return false
	}
	rackError := math.Abs(g.rackPosition - g.expectedRackPosition())
	gearError := math.Abs(g.gearAngle - g.expectedGearAngle())

	if rackError <= gearError {
		delta := g.expectedRackPosition() - g.rackPosition
		g.rack.Position = g.rack.Position.Add(g.rackAxis.Scale(delta))
		g.rackPosition = g.expectedRackPosition()
	} else {
		delta := g.expectedGearAngle() - g.gearAngle
		rot := vec.QuatFromAxisAngle(g.gearAxis, delta)
		g.gear.Orientation = rot.Mul(g.gear.Orientation).Normalize()
		g.gearAngle = g.expectedGearAngle()
	}
	return true
}

// SimulateMotion integrates the gear's angular velocity and re-derives
// the rack position from the coupling, applying both transforms.
func (g *GearRackConstraint) SimulateMotion(dt float64) {
	delta := g.lastAngularVelocity * dt
	rot := vec.QuatFromAxisAngle(g.gearAxis, delta)
	g.gear.Orientation = rot.Mul(g.gear.Orientation).Normalize()
	g.gearAngle += delta

	newRackPosition := g.expectedRackPosition()
	g.rack.Position = g.rack.Position.Add(g.rackAxis.Scale(newRackPosition - g.rackPosition))
	g.rackPosition = newRackPosition
}

func (g *GearRackConstraint) Velocity() (linear, angular vec.Vec3) {
	return g.rackAxis.Scale(g.lastAngularVelocity * g.gearRadius), g.gearAxis.Scale(g.lastAngularVelocity)
}

// SetVelocity accepts an angular velocity about gearAxis; the linear
// component is derived from the coupling rather than taken independently.
func (g *GearRackConstraint) SetVelocity(linear, angular vec.Vec3) bool {
	g.lastAngularVelocity = angular.Dot(g.gearAxis)
	return true
}

func (g *GearRackConstraint) ForceAndTorque() (force, torque vec.Vec3) {
	f := g.lastAngularVelocity * g.gearRadius * g.efficiency
	return g.rackAxis.Scale(f), vec.Vec3{}
}

func (g *GearRackConstraint) GearRadius() float64 { return g.gearRadius }

func (g *GearRackConstraint) Efficiency() float64 { return g.efficiency }

func (g *GearRackConstraint) SetEfficiency(efficiency float64) error {
	if efficiency < 0 || efficiency > 1 {
		return fmt.Errorf("GearRackConstraint.SetEfficiency: efficiency must be within [0, 1]")
	}
	g.efficiency = efficiency
	return nil
}
