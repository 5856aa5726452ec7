package constraint

import (
	"fmt"
	"math"

	"github.com/cadforge/constraints/pkg/sketch"
)

type tangentKind int

const (
	tangentLineCircle tangentKind = iota
	tangentCircleCircle
)

// TangentConstraint drives a line-circle pair, or a circle-circle pair,
// toward tangency.
type TangentConstraint struct {
	kind      tangentKind
	line      sketch.LineLike
	circle1   sketch.CircleLike
	circle2   sketch.CircleLike
	tolerance float64
}

func NewLineCircleTangentConstraint(line sketch.LineLike, circle sketch.CircleLike, tolerance float64) (*TangentConstraint, error) {
	if line == nil || circle == nil {
		return nil, fmt.Errorf("TangentConstraint.NewLineCircle: line and circle must not be nil")
	}
	if circle.Radius() <= 0 {
		return nil, fmt.Errorf("TangentConstraint.NewLineCircle: circle radius must be positive")
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("TangentConstraint.NewLineCircle: tolerance must be positive")
	}
	if !lineIsValid(line) {
		return nil, fmt.Errorf("TangentConstraint.NewLineCircle: line is degenerate")
	}
	return &TangentConstraint{kind: tangentLineCircle, line: line, circle1: circle, tolerance: tolerance}, nil
}

func NewCircleCircleTangentConstraint(circle1, circle2 sketch.CircleLike, tolerance float64) (*TangentConstraint, error) {
	if circle1 == nil || circle2 == nil {
		return nil, fmt.Errorf("TangentConstraint.NewCircleCircle: circles must not be nil")
	}
	if circle1.Radius() <= 0 || circle2.Radius() <= 0 {
		return nil, fmt.Errorf("TangentConstraint.NewCircleCircle: circle radii must be positive")
	}
	if tolerance <= 0 {
		return nil, fmt.Errorf("TangentConstraint.NewCircleCircle: tolerance must be positive")
	}
	if circle1.Center().Distance(circle2.Center()) < 1e-10 {
		return nil, fmt.Errorf("TangentConstraint.NewCircleCircle: circles are coincident")
	}
	return &TangentConstraint{kind: tangentCircleCircle, circle1: circle1, circle2: circle2, tolerance: tolerance}, nil
}

func (c *TangentConstraint) Name() string { return "Tangent" }

func (c *TangentConstraint) IsValid() bool {
	switch c.kind {
	case tangentLineCircle:
		return lineIsValid(c.line) && c.circle1.Radius() > 0
	default:
		return c.circle1.Radius() > 0 && c.circle2.Radius() > 0 &&
			c.circle1.Center().Distance(c.circle2.Center()) > 1e-10
	}
}

func (c *TangentConstraint) IsSatisfied() bool {
	return c.Error() <= c.tolerance
}

func (c *TangentConstraint) Error() float64 {
	if !c.IsValid() {
		return math.Inf(1)
	}
	switch c.kind {
	case tangentLineCircle:
		d := pointToLineDistance(c.circle1.Center(), c.line)
		return math.Abs(d - c.circle1.Radius())
	default:
		d := c.circle1.Center().Distance(c.circle2.Center())
		return math.Abs(d - (c.circle1.Radius() + c.circle2.Radius()))
	}
}

// Enforce moves the line (line-circle case) or circle2 (circle-circle
// case) along the shortest path to tangency, leaving circle1 untouched.
func (c *TangentConstraint) Enforce() bool {
	if !c.IsValid() {
		return false
	}
	switch c.kind {
	case tangentLineCircle:
		n := lineUnitNormal(c.line)
		start, end := c.line.Start(), c.line.End()
		center := c.circle1.Center()
		// signed is the center's offset from the line along n; the line
		// moves along n so the center ends up exactly radius away on the
		// same side.
		signed := (center.X-start.X)*n.X + (center.Y-start.Y)*n.Y
		offset := signed - c.circle1.Radius()
		if signed < 0 {
			offset = signed + c.circle1.Radius()
		}
		c.line.SetStart(sketch.Point2D{X: start.X + n.X*offset, Y: start.Y + n.Y*offset})
		c.line.SetEnd(sketch.Point2D{X: end.X + n.X*offset, Y: end.Y + n.Y*offset})
		return true
	default:
		center1, center2 := c.circle1.Center(), c.circle2.Center()
		d := center1.Distance(center2)
		target := c.circle1.Radius() + c.circle2.Radius()
		dir := sketch.Point2D{X: (center2.X - center1.X) / d, Y: (center2.Y - center1.Y) / d}
		c.circle2.SetCenter(sketch.Point2D{
			X: center1.X + dir.X*target,
			Y: center1.Y + dir.Y*target,
		})
		return true
	}
}

func lineUnitNormal(l sketch.LineLike) sketch.Point2D {
	s, e := l.Start(), l.End()
	dx, dy := e.X-s.X, e.Y-s.Y
	length := math.Hypot(dx, dy)
	return sketch.Point2D{X: -dy / length, Y: dx / length}
}

// pointToLineDistance is the perpendicular distance from p to the infinite
// line through l's two endpoints.
func pointToLineDistance(p sketch.Point2D, l sketch.LineLike) float64 {
	s, e := l.Start(), l.End()
	dx, dy := e.X-s.X, e.Y-s.Y
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return p.Distance(s)
	}
	numerator := math.Abs(dy*p.X - dx*p.Y + e.X*s.Y - e.Y*s.X)
	return numerator / length
}
