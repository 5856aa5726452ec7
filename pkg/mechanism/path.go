package mechanism

import (
	"fmt"
	"math"

	"github.com/cadforge/constraints/pkg/assembly"
	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/cadforge/constraints/pkg/core/vec"
)

// PathFunc maps a parameter in [0, 1] to a 3D point.
type PathFunc func(t float64) vec.Vec3

// LinearPath builds a path function for a single straight segment.
func LinearPath(start, end vec.Vec3) PathFunc {
	return func(t float64) vec.Vec3 {
		return start.Add(end.Sub(start).Scale(t))
	}
}

// PiecewiseLinearPath builds a path function over a polyline, with
// arc-length-proportional parameterization across the segments.
func PiecewiseLinearPath(points []vec.Vec3) (PathFunc, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("PiecewiseLinearPath: need at least two points")
	}
	segmentLengths := make([]float64, len(points)-1)
	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		segmentLengths[i] = points[i].Distance(points[i+1])
		total += segmentLengths[i]
	}
	if total < 1e-12 {
		return func(float64) vec.Vec3 { return points[0] }, nil
	}

	return func(t float64) vec.Vec3 {
		t = clampParameter(t)
		target := t * total
		accum := 0.0
		for i, length := range segmentLengths {
			if target <= accum+length || i == len(segmentLengths)-1 {
				localT := 0.0
				if length > 1e-12 {
					localT = (target - accum) / length
				}
				return points[i].Add(points[i+1].Sub(points[i]).Scale(clampParameter(localT)))
			}
			accum += length
		}
		return points[len(points)-1]
	}, nil
}

func clampParameter(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

const (
	pathDerivativeEpsilon = 1e-6
	pathLengthSampleCount = 100
)

// PathConstraint drives a component along a parametric path, tracking the
// path parameter as its own motion state.
type PathConstraint struct {
	follower  *assembly.Component
	path      PathFunc
	parameter float64
	velocity  float64
	length    float64
}

func NewPathConstraint(follower *assembly.Component, path PathFunc) (*PathConstraint, error) {
	if follower == nil {
		return nil, fmt.Errorf("PathConstraint.New: follower must not be nil")
	}
	if path == nil {
		return nil, fmt.Errorf("PathConstraint.New: path must not be nil")
	}
	c := &PathConstraint{follower: follower, path: path}
	c.length = c.calculateLength(pathLengthSampleCount)
	return c, nil
}

func (c *PathConstraint) calculateLength(numSegments int) float64 {
	total := 0.0
	prev := c.path(0)
	for i := 1; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		cur := c.path(t)
		total += prev.Distance(cur)
		prev = cur
	}
	return total
}

func (c *PathConstraint) Name() string { return "Path" }

func (c *PathConstraint) Components() []cid.ID {
	return []cid.ID{c.follower.ID}
}

func (c *PathConstraint) AllowsMotion() bool { return true }

func (c *PathConstraint) ConstrainedDegreesOfFreedom() int { return 2 }

func (c *PathConstraint) Priority() int { return 0 }

func (c *PathConstraint) IsValid() bool {
	return c.follower != nil && c.path != nil
}

func (c *PathConstraint) expectedPosition() vec.Vec3 {
	return c.path(clampParameter(c.parameter))
}

func (c *PathConstraint) Error() float64 {
	if !c.IsValid() {
		return math.Inf(1)
	}
	return c.follower.Position.Distance(c.expectedPosition())
}

func (c *PathConstraint) IsSatisfied() bool {
	return c.Error() <= 1e-6
}

// Enforce subtracts the full position error, snapping the follower onto
// the path at its current tracked parameter.
func (c *PathConstraint) Enforce() bool {
	if !c.IsValid() {
		return false
	}
	c.follower.Position = c.expectedPosition()
	return true
}

// SimulateMotion integrates the path parameter from the configured linear
// velocity and the path's precomputed arc length.
func (c *PathConstraint) SimulateMotion(dt float64) {
	if c.length > 1e-12 {
		c.parameter = clampParameter(c.parameter + (c.velocity*dt)/c.length)
	}
	c.Enforce()
}

// tangent returns the unit tangent direction at the current parameter via
// a symmetric finite difference, falling back to +X when the path is
// locally flat.
func (c *PathConstraint) tangent() vec.Vec3 {
	t := clampParameter(c.parameter)
	forward := clampParameter(t + pathDerivativeEpsilon)
	backward := clampParameter(t - pathDerivativeEpsilon)
	diff := c.path(forward).Sub(c.path(backward))
	if diff.Norm() < 1e-9 {
		return vec.Vec3{1, 0, 0}
	}
	return diff.Normalize()
}

func (c *PathConstraint) Velocity() (linear, angular vec.Vec3) {
	return c.tangent().Scale(c.velocity), vec.Vec3{}
}

func (c *PathConstraint) SetVelocity(linear, angular vec.Vec3) bool {
	c.velocity = linear.Dot(c.tangent())
	return true
}

func (c *PathConstraint) ForceAndTorque() (force, torque vec.Vec3) {
	return c.tangent().Scale(c.velocity), vec.Vec3{}
}

func (c *PathConstraint) Length() float64 { return c.length }

func (c *PathConstraint) Parameter() float64 { return c.parameter }
