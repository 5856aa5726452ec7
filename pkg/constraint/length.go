package constraint

import (
	"fmt"
	"math"

	"github.com/cadforge/constraints/pkg/sketch"
)

// LengthConstraint drives a line's length toward a target value.
type LengthConstraint struct {
	line         sketch.LineLike
	targetLength float64
	tolerance    float64
}

func NewLengthConstraint(line sketch.LineLike, targetLength, tolerance float64) (*LengthConstraint, error) {
	if line == nil {
		return nil, fmt.Errorf("LengthConstraint.New: line must not be nil")
	}
	if targetLength <= 0 {
		return nil, fmt.Errorf("LengthConstraint.New: target length must be positive")
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("LengthConstraint.New: tolerance must be positive")
	}
	return &LengthConstraint{line: line, targetLength: targetLength, tolerance: tolerance}, nil
}

func (c *LengthConstraint) Name() string { return "Length" }

func (c *LengthConstraint) IsValid() bool {
	s, e := c.line.Start(), c.line.End()
	return s.IsFinite() && e.IsFinite()
}

func (c *LengthConstraint) Error() float64 {
	if !c.IsValid() {
		return math.Inf(1)
	}
	return math.Abs(c.line.Start().Distance(c.line.End()) - c.targetLength)
}

func (c *LengthConstraint) IsSatisfied() bool {
	return c.Error() <= c.tolerance
}

// Enforce scales the line's end point along its current direction to hit
// the target length. A degenerate (near-zero length) line is instead
// extended along +x, since no direction can be inferred from it.
func (c *LengthConstraint) Enforce() bool {
	if !c.IsValid() {
		return false
	}
	start := c.line.Start()
	end := c.line.End()
	current := start.Distance(end)
	if current < 1e-10 {
		c.line.SetEnd(sketch.Point2D{X: start.X + c.targetLength, Y: start.Y})
		return true
	}
	scale := c.targetLength / current
	c.line.SetEnd(sketch.Point2D{
		X: start.X + (end.X-start.X)*scale,
		Y: start.Y + (end.Y-start.Y)*scale,
	})
	return true
}

// SetTargetLength updates the target length, rejecting a non-positive
// value the same way the constructor does.
func (c *LengthConstraint) SetTargetLength(length float64) error {
	if length <= 0 {
		return fmt.Errorf("LengthConstraint.SetTargetLength: target length must be positive")
	}
	c.targetLength = length
	return nil
}
