package mechanism

import (
	"fmt"
	"math"
	"sort"

	"github.com/cadforge/constraints/pkg/assembly"
	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/cadforge/constraints/pkg/core/vec"
)

// CamProfile maps a cam rotation angle (radians, wrapped into [0, 2*pi))
// to a follower radius.
type CamProfile func(angle float64) float64

// CircularCamProfile is the trivial constant-radius profile.
func CircularCamProfile(radius float64) (CamProfile, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("CircularCamProfile: radius must be positive")
	}
	return func(float64) float64 { return radius }, nil
}

// CamProfilePoint is one angle/radius sample for a piecewise-linear
// profile.
type CamProfilePoint struct {
	Angle  float64
	Radius float64
}

// PiecewiseLinearCamProfile builds a profile that linearly interpolates
// between the given angle/radius samples, wrapping the final segment
// back to the first sample.
func PiecewiseLinearCamProfile(points []CamProfilePoint) (CamProfile, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("PiecewiseLinearCamProfile: need at least two points")
	}
	sorted := make([]CamProfilePoint, len(points))
	copy(sorted, points)
	for i := range sorted {
		sorted[i].Angle = normalizeAngle(sorted[i].Angle)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Angle < sorted[j].Angle })

	return func(angle float64) float64 {
		angle = normalizeAngle(angle)
		idx := sort.Search(len(sorted), func(i int) bool { return sorted[i].Angle >= angle })
		if idx == 0 {
			last := sorted[len(sorted)-1]
			first := sorted[0]
			span := 2*math.Pi + first.Angle - last.Angle
			t := 0.0
			if span > 1e-12 {
				t = (angle + 2*math.Pi - last.Angle) / span
			}
			return last.Radius + t*(first.Radius-last.Radius)
		}
		if idx == len(sorted) {
			last := sorted[len(sorted)-1]
			first := sorted[0]
			span := 2*math.Pi + first.Angle - last.Angle
			t := 0.0
			if span > 1e-12 {
				t = (angle - last.Angle) / span
			}
			return last.Radius + t*(first.Radius-last.Radius)
		}
		prev := sorted[idx-1]
		next := sorted[idx]
		span := next.Angle - prev.Angle
		t := 0.0
		if span > 1e-12 {
			t = (angle - prev.Angle) / span
		}
		return prev.Radius + t*(next.Radius-prev.Radius)
	}, nil
}

func normalizeAngle(angle float64) float64 {
	return angle - 2*math.Pi*math.Floor(angle/(2*math.Pi))
}

const camDerivativeEpsilon = 1e-6

// CamConstraint slides a follower component along its own axis to track
// a rotating cam's profile.
type CamConstraint struct {
	cam, follower   *assembly.Component
	camAxis         vec.Vec3
	followerAxis    vec.Vec3
	profile         CamProfile
	camAngle        float64
	angularVelocity float64
	basePosition    vec.Vec3
}

func NewCamConstraint(cam, follower *assembly.Component, camAxis, followerAxis vec.Vec3, profile CamProfile) (*CamConstraint, error) {
	if cam == nil || follower == nil {
		return nil, fmt.Errorf("CamConstraint.New: components must not be nil")
	}
	if profile == nil {
		return nil, fmt.Errorf("CamConstraint.New: profile must not be nil")
	}
	return &CamConstraint{
		cam:          cam,
		follower:     follower,
		camAxis:      camAxis.Normalize(),
		followerAxis: followerAxis.Normalize(),
		profile:      profile,
		basePosition: follower.Position,
	}, nil
}

func (c *CamConstraint) Name() string { return "Cam" }

func (c *CamConstraint) Components() []cid.ID {
	return []cid.ID{c.cam.ID, c.follower.ID}
}

func (c *CamConstraint) AllowsMotion() bool { return true }

func (c *CamConstraint) ConstrainedDegreesOfFreedom() int { return 1 }

func (c *CamConstraint) Priority() int { return 0 }

func (c *CamConstraint) IsValid() bool {
	return c.cam != nil && c.follower != nil && c.profile != nil
}

func (c *CamConstraint) expectedOffset() float64 {
	return c.profile(c.camAngle)
}

func (c *CamConstraint) expectedPosition() vec.Vec3 {
	return c.basePosition.Add(c.followerAxis.Scale(c.expectedOffset()))
}

func (c *CamConstraint) Error() float64 {
	if !c.IsValid() {
		return math.Inf(1)
	}
	return c.follower.Position.Distance(c.expectedPosition())
}

func (c *CamConstraint) IsSatisfied() bool {
	return c.Error() <= 1e-6
}

// Enforce slides the follower to the position the cam's current tracked
// angle demands.
func (c *CamConstraint) Enforce() bool {
	if !c.IsValid() {
		return false
	}
	c.follower.Position = c.expectedPosition()
	return true
}

// SimulateMotion advances the cam's tracked angle (wrapping into
// [0, 2*pi)), rotates the cam component to match, and re-enforces the
// follower.
func (c *CamConstraint) SimulateMotion(dt float64) {
	c.camAngle = normalizeAngle(c.camAngle + c.angularVelocity*dt)
	rot := vec.QuatFromAxisAngle(c.camAxis, c.angularVelocity*dt)
	c.cam.Orientation = rot.Mul(c.cam.Orientation).Normalize()
	c.Enforce()
}

// Velocity derives the follower's linear velocity from a symmetric finite
// difference of the profile around the current angle.
func (c *CamConstraint) Velocity() (linear, angular vec.Vec3) {
	derivative := (c.profile(c.camAngle+camDerivativeEpsilon) - c.profile(c.camAngle-camDerivativeEpsilon)) / (2 * camDerivativeEpsilon)
	return c.followerAxis.Scale(derivative * c.angularVelocity), c.camAxis.Scale(c.angularVelocity)
}

// SetVelocity projects the angular input onto the cam axis; the linear
// component is not independently controllable for a profile-driven
// follower and is ignored, matching this constraint's original behavior.
func (c *CamConstraint) SetVelocity(linear, angular vec.Vec3) bool {
	c.angularVelocity = angular.Dot(c.camAxis)
	return true
}

func (c *CamConstraint) ForceAndTorque() (force, torque vec.Vec3) {
	derivative := (c.profile(c.camAngle+camDerivativeEpsilon) - c.profile(c.camAngle-camDerivativeEpsilon)) / (2 * camDerivativeEpsilon)
	return c.followerAxis.Scale(derivative), vec.Vec3{}
}
