package constraint

import (
	"fmt"
	"math"

	"github.com/cadforge/constraints/pkg/sketch"
)

// PerpendicularConstraint drives two lines toward a 90 degree angle.
type PerpendicularConstraint struct {
	line1, line2 sketch.LineLike
	tolerance    float64
}

func NewPerpendicularConstraint(line1, line2 sketch.LineLike, tolerance float64) (*PerpendicularConstraint, error) {
	if line1 == nil || line2 == nil {
		return nil, fmt.Errorf("PerpendicularConstraint.New: lines must not be nil")
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("PerpendicularConstraint.New: tolerance must be positive")
	}
	return &PerpendicularConstraint{line1: line1, line2: line2, tolerance: tolerance}, nil
}

func (c *PerpendicularConstraint) Name() string { return "Perpendicular" }

func (c *PerpendicularConstraint) IsValid() bool {
	return lineIsValid(c.line1) && lineIsValid(c.line2)
}

func (c *PerpendicularConstraint) IsSatisfied() bool {
	return c.Error() <= c.tolerance
}

// Error is the absolute distance of the (wrapped into [0, pi]) angular
// difference from pi/2.
func (c *PerpendicularConstraint) Error() float64 {
	if !c.IsValid() {
		return math.Inf(1)
	}
	diff := lineAngle(c.line1) - lineAngle(c.line2)
	diff = wrapToPositiveRange(diff, math.Pi)
	return math.Abs(diff - math.Pi/2)
}

// Enforce rotates line2 about its start point to the nearer of the two
// perpendicular orientations (+pi/2 or -pi/2 from line1).
func (c *PerpendicularConstraint) Enforce() bool {
	if !c.IsValid() {
		return false
	}
	target := math.Pi / 2
	current := wrapToPositiveRange(lineAngle(c.line1)-lineAngle(c.line2), math.Pi)
	rotation := current - target
	if math.Abs(rotation) > math.Pi/2 {
		if rotation > 0 {
			rotation -= math.Pi
		} else {
			rotation += math.Pi
		}
	}
	rotateLineEnd(c.line2, rotation)
	return true
}

// wrapToPositiveRange folds angle into [0, period).
func wrapToPositiveRange(angle, period float64) float64 {
	angle = math.Mod(angle, period)
	if angle < 0 {
		angle += period
	}
	return angle
}
