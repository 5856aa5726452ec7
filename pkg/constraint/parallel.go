package constraint

import (
	"fmt"
	"math"

	"github.com/cadforge/constraints/pkg/sketch"
)

// ParallelConstraint drives two lines toward the same direction angle.
type ParallelConstraint struct {
	line1, line2 sketch.LineLike
	tolerance    float64
}

func NewParallelConstraint(line1, line2 sketch.LineLike, tolerance float64) (*ParallelConstraint, error) {
	if line1 == nil || line2 == nil {
		return nil, fmt.Errorf("ParallelConstraint.New: lines must not be nil")
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("ParallelConstraint.New: tolerance must be positive")
	}
	return &ParallelConstraint{line1: line1, line2: line2, tolerance: tolerance}, nil
}

func (c *ParallelConstraint) Name() string { return "Parallel" }

func (c *ParallelConstraint) IsValid() bool {
	return lineIsValid(c.line1) && lineIsValid(c.line2)
}

func (c *ParallelConstraint) IsSatisfied() bool {
	return c.Error() <= c.tolerance
}

// Error returns the angular difference between the two lines, normalized
// into [0, pi/2] so that anti-parallel lines (differing by pi) read as
// fully satisfied.
func (c *ParallelConstraint) Error() float64 {
	if !c.IsValid() {
		return math.Inf(1)
	}
	diff := normalizeSignedAngle(lineAngle(c.line1) - lineAngle(c.line2))
	diff = math.Abs(diff)
	if diff > math.Pi/2 {
		diff = math.Pi - diff
	}
	return diff
}

// Enforce rotates line2 about its own start point so that its direction
// matches line1's, choosing the shorter of the two equivalent rotations.
func (c *ParallelConstraint) Enforce() bool {
	if !c.IsValid() {
		return false
	}
	rotation := normalizeSignedAngle(lineAngle(c.line1) - lineAngle(c.line2))
	if lw, ok := c.line2.(interface{ Rotate(float64) }); ok {
		lw.Rotate(rotation)
		return true
	}
	rotateLineEnd(c.line2, rotation)
	return true
}

func lineIsValid(l sketch.LineLike) bool {
	s, e := l.Start(), l.End()
	if !s.IsFinite() || !e.IsFinite() {
		return false
	}
	return s.Distance(e) > 1e-10
}

func lineAngle(l sketch.LineLike) float64 {
	s, e := l.Start(), l.End()
	return math.Atan2(e.Y-s.Y, e.X-s.X)
}

// normalizeSignedAngle folds angle into (-pi, pi].
func normalizeSignedAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// rotateLineEnd rotates l's end point about its start by angle, for
// LineLike implementations that don't expose a dedicated Rotate method.
func rotateLineEnd(l sketch.LineLike, angle float64) {
	start, end := l.Start(), l.End()
	c, s := math.Cos(angle), math.Sin(angle)
	dx, dy := end.X-start.X, end.Y-start.Y
	l.SetEnd(sketch.Point2D{
		X: start.X + dx*c - dy*s,
		Y: start.Y + dx*s + dy*c,
	})
}
