// Package detector implements the auto-constraint heuristic: scanning
// pairs of sketch entities for near-parallel, near-perpendicular,
// near-tangent, near-concentric, or near-equal-length relationships and
// proposing the matching constraint. The original implementation shipped
// only the enable/sensitivity scaffolding around this; the detection
// algorithm itself is implemented fresh here.
package detector

import (
	"math"

	"github.com/cadforge/constraints/pkg/constraint"
	"github.com/cadforge/constraints/pkg/sketch"
)

const (
	minSensitivity = 0.1
	maxSensitivity = 1.0

	baseAngleTolerance    = 0.2 // radians, at sensitivity 1.0
	baseDistanceTolerance = 0.5 // sketch units, at sensitivity 1.0
	baseLengthTolerance   = 0.5 // sketch units, at sensitivity 1.0
)

// Detector proposes constraints between pairs of sketch entities.
type Detector struct {
	enabled     bool
	sensitivity float64
}

func NewDetector() *Detector {
	return &Detector{enabled: true, sensitivity: 0.5}
}

func (d *Detector) Enabled() bool { return d.enabled }

func (d *Detector) SetEnabled(enabled bool) { d.enabled = enabled }

func (d *Detector) Sensitivity() float64 { return d.sensitivity }

// SetSensitivity clamps sensitivity into [0.1, 1.0]; higher sensitivity
// widens the tolerance windows used to propose a constraint.
func (d *Detector) SetSensitivity(sensitivity float64) {
	if sensitivity < minSensitivity {
		sensitivity = minSensitivity
	}
	if sensitivity > maxSensitivity {
		sensitivity = maxSensitivity
	}
	d.sensitivity = sensitivity
}

func (d *Detector) angleTolerance() float64    { return baseAngleTolerance * d.sensitivity }
func (d *Detector) distanceTolerance() float64 { return baseDistanceTolerance * d.sensitivity }
func (d *Detector) lengthTolerance() float64   { return baseLengthTolerance * d.sensitivity }

// DetectLinePair proposes constraints for a pair of lines: Parallel if
// their direction angles are within tolerance of matching (mod pi),
// Perpendicular if within tolerance of 90 degrees apart, and Length if
// their lengths are within tolerance of each other. Parallel (or
// Perpendicular) and Length are independent relationships and may both
// fire for the same pair; the return slice is nil if neither does.
func (d *Detector) DetectLinePair(l1, l2 sketch.LineLike) ([]constraint.Constraint, error) {
	if !d.enabled {
		return nil, nil
	}
	var out []constraint.Constraint

	a1 := lineAngle(l1)
	a2 := lineAngle(l2)
	diff := wrapToHalfPi(a1 - a2)

	switch {
	case math.Abs(diff) <= d.angleTolerance():
		c, err := constraint.NewParallelConstraint(l1, l2, 1e-6)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	case math.Abs(math.Abs(diff)-math.Pi/2) <= d.angleTolerance():
		c, err := constraint.NewPerpendicularConstraint(l1, l2, 1e-6)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	len1 := l1.Start().Distance(l1.End())
	len2 := l2.Start().Distance(l2.End())
	if math.Abs(len1-len2) <= d.lengthTolerance() {
		c, err := constraint.NewLengthConstraint(l2, len1, 1e-6)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, nil
}

// DetectCirclePair proposes Tangent if the two circles' center distance
// is within tolerance of the sum of their radii, or Radius (matching
// circle2's radius to circle1's) if the center distance is near zero and
// the radii are close.
func (d *Detector) DetectCirclePair(c1, c2 sketch.CircleLike) (constraint.Constraint, error) {
	if !d.enabled {
		return nil, nil
	}
	centerDist := c1.Center().Distance(c2.Center())

	if centerDist <= d.distanceTolerance() && math.Abs(c1.Radius()-c2.Radius()) <= d.lengthTolerance() {
		return constraint.NewRadiusConstraint(c2, c1.Radius())
	}

	expectedTangentDistance := c1.Radius() + c2.Radius()
	if math.Abs(centerDist-expectedTangentDistance) <= d.distanceTolerance() {
		return constraint.NewCircleCircleTangentConstraint(c1, c2, 1e-6)
	}

	return nil, nil
}

// DetectLineCirclePair proposes Tangent if the perpendicular distance
// from the circle's center to the line is within tolerance of the
// circle's radius.
func (d *Detector) DetectLineCirclePair(l sketch.LineLike, c sketch.CircleLike) (constraint.Constraint, error) {
	if !d.enabled {
		return nil, nil
	}
	dist := perpendicularDistance(c.Center(), l)
	if math.Abs(dist-c.Radius()) <= d.distanceTolerance() {
		return constraint.NewLineCircleTangentConstraint(l, c, 1e-6)
	}
	return nil, nil
}

// Entity is any sketch shape Detect can pair up: a sketch.LineLike or a
// sketch.CircleLike, matched structurally.
type Entity interface{}

// Detect scans every pair in entities and returns the union of all
// constraints the pairwise heuristics propose. It is idempotent (the same
// entities always propose the same constraints), skips nil entities, and
// returns nil for an empty or single-entity input.
func (d *Detector) Detect(entities []Entity) []constraint.Constraint {
	if !d.enabled {
		return nil
	}
	var out []constraint.Constraint
	for i := 0; i < len(entities); i++ {
		if entities[i] == nil {
			continue
		}
		for j := i + 1; j < len(entities); j++ {
			if entities[j] == nil {
				continue
			}
			out = append(out, d.detectPair(entities[i], entities[j])...)
		}
	}
	return out
}

// detectPair dispatches a single entity pair to the matching pairwise
// heuristic based on which sketch traits each entity satisfies.
func (d *Detector) detectPair(a, b Entity) []constraint.Constraint {
	l1, aIsLine := a.(sketch.LineLike)
	l2, bIsLine := b.(sketch.LineLike)
	c1, aIsCircle := a.(sketch.CircleLike)
	c2, bIsCircle := b.(sketch.CircleLike)

	switch {
	case aIsLine && bIsLine:
		cs, err := d.DetectLinePair(l1, l2)
		if err != nil {
			return nil
		}
		return cs
	case aIsCircle && bIsCircle:
		c, err := d.DetectCirclePair(c1, c2)
		if err != nil || c == nil {
			return nil
		}
		return []constraint.Constraint{c}
	case aIsLine && bIsCircle:
		c, err := d.DetectLineCirclePair(l1, c2)
		if err != nil || c == nil {
			return nil
		}
		return []constraint.Constraint{c}
	case aIsCircle && bIsLine:
		c, err := d.DetectLineCirclePair(l2, c1)
		if err != nil || c == nil {
			return nil
		}
		return []constraint.Constraint{c}
	default:
		return nil
	}
}

func lineAngle(l sketch.LineLike) float64 {
	s, e := l.Start(), l.End()
	return math.Atan2(e.Y-s.Y, e.X-s.X)
}

// wrapToHalfPi folds angle into [-pi/2, pi/2], treating direction
// ambiguity (a line and its reverse share an angle) the same way
// ParallelConstraint does.
func wrapToHalfPi(angle float64) float64 {
	for angle > math.Pi/2 {
		angle -= math.Pi
	}
	for angle < -math.Pi/2 {
		angle += math.Pi
	}
	return angle
}

func perpendicularDistance(p sketch.Point2D, l sketch.LineLike) float64 {
	s, e := l.Start(), l.End()
	dx, dy := e.X-s.X, e.Y-s.Y
	length := math.Hypot(dx, dy)
	if length < 1e-12 {
		return p.Distance(s)
	}
	numerator := math.Abs(dy*p.X - dx*p.Y + e.X*s.Y - e.Y*s.X)
	return numerator / length
}
