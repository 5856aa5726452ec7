package manager

import (
	"testing"

	"github.com/cadforge/constraints/pkg/constraint"
	"github.com/cadforge/constraints/pkg/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDedupesByIdentity(t *testing.T) {
	m := NewManager()
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 0, Y: 1})
	c, err := constraint.NewParallelConstraint(l1, l2, 1e-6)
	require.NoError(t, err)

	assert.True(t, m.Add(c))
	assert.False(t, m.Add(c))
	assert.Equal(t, 1, m.Count())
}

func TestVisibilityFiltersActiveSet(t *testing.T) {
	m := NewManager()
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 0, Y: 1})
	c, err := constraint.NewParallelConstraint(l1, l2, 1e-6)
	require.NoError(t, err)
	m.Add(c)

	assert.Len(t, m.Active(), 1)
	m.SetKindVisible("Parallel", false)
	assert.Len(t, m.Active(), 0)
	assert.Len(t, m.All(), 1)
}

func TestSensitivityForwardsToOwnedDetector(t *testing.T) {
	m := NewManager()
	m.SetDetectorSensitivity(0.9)
	assert.InDelta(t, 0.9, m.DetectorSensitivity(), 1e-9)
	assert.InDelta(t, 0.9, m.Detector().Sensitivity(), 1e-9)

	m.SetDetectorSensitivity(5)
	assert.InDelta(t, 1.0, m.DetectorSensitivity(), 1e-9)

	m.SetAutoDetectEnabled(false)
	assert.False(t, m.AutoDetectEnabled())
	assert.False(t, m.Detector().Enabled())
}

func TestRefreshPrunesInvalidConstraints(t *testing.T) {
	m := NewManager()
	degenerate := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	other := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 0, Y: 1})
	c, err := constraint.NewParallelConstraint(degenerate, other, 1e-6)
	require.NoError(t, err)
	m.Add(c)

	degenerate.SetEnd(sketch.Point2D{})

	changed := m.Refresh()
	assert.True(t, changed)
	assert.Equal(t, 0, m.Count())
}
