package constraint

import (
	"math"
	"testing"

	"github.com/cadforge/constraints/pkg/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelConstraintEnforce(t *testing.T) {
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 0, Y: 1})

	c, err := NewParallelConstraint(l1, l2, 1e-6)
	require.NoError(t, err)
	require.False(t, c.IsSatisfied())

	require.True(t, c.Enforce())
	assert.True(t, c.IsSatisfied())
	assert.InDelta(t, 0, c.Error(), 1e-9)
}

func TestParallelConstraintRejectsBadTolerance(t *testing.T) {
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 0, Y: 1})
	_, err := NewParallelConstraint(l1, l2, 0)
	assert.Error(t, err)
}

func TestPerpendicularConstraintEnforce(t *testing.T) {
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0.1})

	c, err := NewPerpendicularConstraint(l1, l2, 1e-6)
	require.NoError(t, err)

	require.True(t, c.Enforce())
	assert.True(t, c.IsSatisfied())
}

func TestAngleConstraintEnforce(t *testing.T) {
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 1})

	c, err := NewAngleConstraint(l1, l2, math.Pi/2, 1e-6)
	require.NoError(t, err)

	require.True(t, c.Enforce())
	assert.True(t, c.IsSatisfied())
}

func TestLengthConstraintEnforceAndDegenerate(t *testing.T) {
	l := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 3, Y: 4})
	c, err := NewLengthConstraint(l, 10, 1e-6)
	require.NoError(t, err)
	require.True(t, c.Enforce())
	assert.InDelta(t, 10, l.Length(), 1e-9)

	degenerate := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{})
	dc, err := NewLengthConstraint(degenerate, 5, 1e-6)
	require.NoError(t, err)
	require.True(t, dc.Enforce())
	assert.InDelta(t, 5, degenerate.Length(), 1e-9)
	assert.InDelta(t, 0, degenerate.End().Y, 1e-9)
}

func TestLengthConstraintSetTargetLength(t *testing.T) {
	l := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 3, Y: 4})
	c, err := NewLengthConstraint(l, 10, 1e-6)
	require.NoError(t, err)

	require.NoError(t, c.SetTargetLength(8))
	require.True(t, c.Enforce())
	assert.InDelta(t, 8, l.Length(), 1e-9)

	assert.Error(t, c.SetTargetLength(0))
	assert.Error(t, c.SetTargetLength(-1))
	assert.InDelta(t, 8, l.Length(), 1e-9)
}

func TestRadiusConstraintWritesTargetVerbatim(t *testing.T) {
	circle := sketch.NewCircle(sketch.Point2D{}, 2)
	c, err := NewRadiusConstraint(circle, 5)
	require.NoError(t, err)
	require.True(t, c.Enforce())
	assert.Equal(t, 5.0, circle.Radius())
}

func TestTangentLineCircleEnforce(t *testing.T) {
	line := sketch.NewLine(sketch.Point2D{X: -5, Y: 3}, sketch.Point2D{X: 5, Y: 3})
	circle := sketch.NewCircle(sketch.Point2D{}, 2)

	c, err := NewLineCircleTangentConstraint(line, circle, 1e-6)
	require.NoError(t, err)
	require.True(t, c.Enforce())
	assert.True(t, c.IsSatisfied())
}

func TestTangentCircleCircleEnforce(t *testing.T) {
	c1 := sketch.NewCircle(sketch.Point2D{}, 2)
	c2 := sketch.NewCircle(sketch.Point2D{X: 10, Y: 0}, 3)

	tc, err := NewCircleCircleTangentConstraint(c1, c2, 1e-6)
	require.NoError(t, err)
	require.True(t, tc.Enforce())
	assert.InDelta(t, 5, c1.Center().Distance(c2.Center()), 1e-9)
}

func TestTangentCircleCircleRejectsCoincidentCenters(t *testing.T) {
	c1 := sketch.NewCircle(sketch.Point2D{}, 2)
	c2 := sketch.NewCircle(sketch.Point2D{}, 3)
	_, err := NewCircleCircleTangentConstraint(c1, c2, 1e-6)
	assert.Error(t, err)
}
