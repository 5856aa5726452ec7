package constraint

import (
	"fmt"
	"math"

	"github.com/cadforge/constraints/pkg/sketch"
)

// AngleConstraint drives the angle from line1 to line2 toward a fixed
// target angle.
type AngleConstraint struct {
	line1, line2 sketch.LineLike
	targetAngle  float64
	tolerance    float64
}

func NewAngleConstraint(line1, line2 sketch.LineLike, targetAngle, tolerance float64) (*AngleConstraint, error) {
	if line1 == nil || line2 == nil {
		return nil, fmt.Errorf("AngleConstraint.New: lines must not be nil")
	}
	if math.IsNaN(targetAngle) || math.IsInf(targetAngle, 0) {
		return nil, fmt.Errorf("AngleConstraint.New: target angle must be finite")
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("AngleConstraint.New: tolerance must be positive")
	}
	return &AngleConstraint{
		line1:       line1,
		line2:       line2,
		targetAngle: wrapToPositiveRange(targetAngle, 2*math.Pi),
		tolerance:   tolerance,
	}, nil
}

func (c *AngleConstraint) Name() string { return "Angle" }

func (c *AngleConstraint) IsValid() bool {
	return c.line1 != nil && c.line2 != nil &&
		c.line1.Start().Distance(c.line1.End()) > 1e-6 &&
		c.line2.Start().Distance(c.line2.End()) > 1e-6
}

// currentAngle is the angle from line1 to line2, wrapped into [0, 2*pi).
func (c *AngleConstraint) currentAngle() float64 {
	return wrapToPositiveRange(lineAngle(c.line2)-lineAngle(c.line1), 2*math.Pi)
}

// Error is the absolute difference between the current and target angle,
// taking the shorter way around the circle.
func (c *AngleConstraint) Error() float64 {
	if !c.IsValid() {
		return math.Inf(1)
	}
	diff := math.Abs(c.currentAngle() - c.targetAngle)
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}

func (c *AngleConstraint) IsSatisfied() bool {
	return c.Error() <= c.tolerance
}

// Enforce rotates line2 about its own start point by the signed rotation
// that brings the angle from line1 to target.
func (c *AngleConstraint) Enforce() bool {
	if !c.IsValid() {
		return false
	}
	rotation := normalizeSignedAngle(c.targetAngle - c.currentAngle())
	rotateLineEnd(c.line2, rotation)
	return true
}
