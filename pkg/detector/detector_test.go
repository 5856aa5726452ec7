package detector

import (
	"testing"

	"github.com/cadforge/constraints/pkg/constraint"
	"github.com/cadforge/constraints/pkg/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitivityClamps(t *testing.T) {
	d := NewDetector()
	d.SetSensitivity(5)
	assert.Equal(t, maxSensitivity, d.Sensitivity())
	d.SetSensitivity(-1)
	assert.Equal(t, minSensitivity, d.Sensitivity())
}

func constraintNames(cs []constraint.Constraint) []string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.Name()
	}
	return names
}

func TestDetectLinePairParallel(t *testing.T) {
	d := NewDetector()
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{X: 0, Y: 1}, sketch.Point2D{X: 1, Y: 1.05})

	cs, err := d.DetectLinePair(l1, l2)
	require.NoError(t, err)
	require.NotEmpty(t, cs)
	assert.Contains(t, constraintNames(cs), "Parallel")
}

func TestDetectLinePairPerpendicular(t *testing.T) {
	d := NewDetector()
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 0.02, Y: 1})

	cs, err := d.DetectLinePair(l1, l2)
	require.NoError(t, err)
	require.NotEmpty(t, cs)
	assert.Contains(t, constraintNames(cs), "Perpendicular")
}

func TestDetectLinePairParallelAndLengthBothFire(t *testing.T) {
	d := NewDetector()
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{X: 0, Y: 1}, sketch.Point2D{X: 1, Y: 1})

	cs, err := d.DetectLinePair(l1, l2)
	require.NoError(t, err)
	names := constraintNames(cs)
	assert.Contains(t, names, "Parallel")
	assert.Contains(t, names, "Length")
}

func TestDetectCirclePairTangent(t *testing.T) {
	d := NewDetector()
	c1 := sketch.NewCircle(sketch.Point2D{}, 2)
	c2 := sketch.NewCircle(sketch.Point2D{X: 5.1, Y: 0}, 3)

	c, err := d.DetectCirclePair(c1, c2)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Tangent", c.Name())
}

func TestDetectDisabledReturnsNil(t *testing.T) {
	d := NewDetector()
	d.SetEnabled(false)
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 2, Y: 0})

	cs, err := d.DetectLinePair(l1, l2)
	require.NoError(t, err)
	assert.Nil(t, cs)
}

func TestDetectScansAllPairsAndIsIdempotent(t *testing.T) {
	d := NewDetector()
	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	l2 := sketch.NewLine(sketch.Point2D{X: 0, Y: 1}, sketch.Point2D{X: 1, Y: 1.05})
	c1 := sketch.NewCircle(sketch.Point2D{}, 2)
	c2 := sketch.NewCircle(sketch.Point2D{X: 5.1, Y: 0}, 3)

	entities := []Entity{l1, l2, c1, c2}
	first := d.Detect(entities)
	second := d.Detect(entities)

	assert.NotEmpty(t, first)
	assert.Equal(t, constraintNames(first), constraintNames(second))
}

func TestDetectSkipsNilEntitiesAndHandlesEmptyInput(t *testing.T) {
	d := NewDetector()
	assert.Nil(t, d.Detect(nil))
	assert.Nil(t, d.Detect([]Entity{}))

	l1 := sketch.NewLine(sketch.Point2D{}, sketch.Point2D{X: 1, Y: 0})
	assert.Nil(t, d.Detect([]Entity{l1, nil}))
}
