package assembly

import (
	"testing"

	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// approachConstraint is a test-only AssemblyConstraint whose error decays
// by half on each Enforce call, useful for exercising both solver
// algorithms without pulling in a real mechanism constraint.
type approachConstraint struct {
	name       string
	components []cid.ID
	err        float64
	priority   int
	dof        int
}

func (c *approachConstraint) Name() string                     { return c.name }
func (c *approachConstraint) Components() []cid.ID             { return c.components }
func (c *approachConstraint) AllowsMotion() bool               { return false }
func (c *approachConstraint) ConstrainedDegreesOfFreedom() int { return c.dof }
func (c *approachConstraint) Priority() int                    { return c.priority }
func (c *approachConstraint) IsValid() bool                    { return true }
func (c *approachConstraint) Error() float64                   { return c.err }
func (c *approachConstraint) IsSatisfied() bool                { return c.err < 1e-6 }
func (c *approachConstraint) Enforce() bool {
	c.err /= 2
	return true
}

func TestSolverSequentialConverges(t *testing.T) {
	a := cid.New()
	b := cid.New()
	c := &approachConstraint{name: "shrink", components: []cid.ID{a, b}, err: 1.0, dof: 3}

	s := NewSolver()
	s.AddConstraint(c)

	result := s.Solve(nil)
	assert.True(t, result.Success)
	assert.Empty(t, result.UnsatisfiedNames)
}

func TestSolverRelaxationConverges(t *testing.T) {
	a := cid.New()
	c := &approachConstraint{name: "shrink", components: []cid.ID{a}, err: 1.0, dof: 3}

	s := NewSolver()
	s.SetSettings(Settings{Algorithm: Relaxation, ConvergenceTolerance: 1e-9, MaxIterations: 200, DampingFactor: 1})
	s.AddConstraint(c)

	result := s.Solve(nil)
	assert.True(t, result.Success)
}

func TestSolverDOFAccounting(t *testing.T) {
	a := cid.New()
	b := cid.New()
	c1 := &approachConstraint{name: "c1", components: []cid.ID{a, b}, err: 0, dof: 3}
	c2 := &approachConstraint{name: "c2", components: []cid.ID{b}, err: 0, dof: 2}

	s := NewSolver()
	s.AddConstraint(c1)
	s.AddConstraint(c2)

	assert.Equal(t, 12, s.GetTotalDegreesOfFreedom())
	assert.Equal(t, 5, s.GetConstrainedDegreesOfFreedom())
	assert.Equal(t, 7, s.GetRemainingDegreesOfFreedom())
	assert.True(t, s.IsUnderConstrained())
	assert.False(t, s.IsOverConstrained())
}

func TestSolverDedupAndRemove(t *testing.T) {
	c := &approachConstraint{name: "c", err: 0}
	s := NewSolver()
	s.AddConstraint(c)
	s.AddConstraint(c)
	require.Equal(t, 1, s.ConstraintCount())

	s.RemoveConstraint(c)
	assert.Equal(t, 0, s.ConstraintCount())
}

func TestSolverEmptySucceedsImmediately(t *testing.T) {
	s := NewSolver()
	result := s.Solve(nil)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Iterations)
}
