package assembly

import (
	"sort"

	"github.com/cadforge/constraints/pkg/core/cid"
	"github.com/cadforge/constraints/pkg/core/logger"
)

// Algorithm selects the iteration strategy a Solver uses.
type Algorithm int

const (
	Sequential Algorithm = iota
	Relaxation
)

// Settings controls solver iteration behavior.
type Settings struct {
	Algorithm            Algorithm
	ConvergenceTolerance float64
	MaxIterations        int
	DampingFactor        float64
}

func DefaultSettings() Settings {
	return Settings{
		Algorithm:            Sequential,
		ConvergenceTolerance: 1e-6,
		MaxIterations:        100,
		DampingFactor:        1.0,
	}
}

// Result reports the outcome of a solve call.
type Result struct {
	Success          bool
	Iterations       int
	Error            float64
	UnsatisfiedNames []string
}

// ProgressFunc is called once per iteration during solve, when non-nil.
type ProgressFunc func(iteration int, maxError float64)

// Solver holds an ordered, deduplicated set of assembly constraints and
// drives them toward satisfaction using either the Sequential or
// Relaxation algorithm.
type Solver struct {
	constraints []AssemblyConstraint
	settings    Settings
}

func NewSolver() *Solver {
	return &Solver{settings: DefaultSettings()}
}

// AddConstraint appends c if it isn't already present (identity
// equality), matching the original solver's std::find-based dedup.
func (s *Solver) AddConstraint(c AssemblyConstraint) {
	for _, existing := range s.constraints {
		if existing == c {
			return
		}
	}
	s.constraints = append(s.constraints, c)
}

func (s *Solver) RemoveConstraint(c AssemblyConstraint) {
	for i, existing := range s.constraints {
		if existing == c {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			return
		}
	}
}

func (s *Solver) ClearConstraints() {
	s.constraints = nil
}

func (s *Solver) Constraints() []AssemblyConstraint {
	out := make([]AssemblyConstraint, len(s.constraints))
	copy(out, s.constraints)
	return out
}

func (s *Solver) ConstraintCount() int { return len(s.constraints) }

func (s *Solver) SetSettings(settings Settings) { s.settings = settings }

func (s *Solver) Settings() Settings { return s.settings }

// allComponents returns the union of every constraint's referenced
// component IDs.
func (s *Solver) allComponents() []cid.ID {
	seen := make(map[cid.ID]struct{})
	var out []cid.ID
	for _, c := range s.constraints {
		for _, id := range c.Components() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				out = append(out, id)
			}
		}
	}
	return out
}

func (s *Solver) GetTotalDegreesOfFreedom() int {
	return len(s.allComponents()) * 6
}

func (s *Solver) GetConstrainedDegreesOfFreedom() int {
	total := 0
	for _, c := range s.constraints {
		total += c.ConstrainedDegreesOfFreedom()
	}
	return total
}

func (s *Solver) GetRemainingDegreesOfFreedom() int {
	return s.GetTotalDegreesOfFreedom() - s.GetConstrainedDegreesOfFreedom()
}

func (s *Solver) IsOverConstrained() bool {
	return s.GetConstrainedDegreesOfFreedom() > s.GetTotalDegreesOfFreedom()
}

func (s *Solver) IsUnderConstrained() bool {
	return s.GetRemainingDegreesOfFreedom() > 0
}

func (s *Solver) sortedByPriority() []AssemblyConstraint {
	sorted := make([]AssemblyConstraint, len(s.constraints))
	copy(sorted, s.constraints)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})
	return sorted
}

func (s *Solver) computeTotalError() float64 {
	var total float64
	for _, c := range s.constraints {
		e := c.Error()
		total += e * e
	}
	return total
}

// Solve runs the configured algorithm to completion or MaxIterations,
// calling progress once per iteration when non-nil.
func (s *Solver) Solve(progress ProgressFunc) Result {
	if len(s.constraints) == 0 {
		return Result{Success: true}
	}

	var result Result
	switch s.settings.Algorithm {
	case Relaxation:
		result = s.solveRelaxation(progress)
	default:
		result = s.solveSequential(progress)
	}

	result.UnsatisfiedNames = s.unsatisfiedNames()
	logger.Log.Info().
		Bool("success", result.Success).
		Int("iterations", result.Iterations).
		Int("unsatisfied", len(result.UnsatisfiedNames)).
		Msg("assembly solve complete")
	return result
}

// sortedByPriority is computed once, before the iteration loop, for both
// algorithms: priorities don't change mid-solve, so re-sorting every
// iteration would be a no-op.
func (s *Solver) solveSequential(progress ProgressFunc) Result {
	ordered := s.sortedByPriority()
	tolerance := s.settings.ConvergenceTolerance

	iter := 0
	maxError := 0.0
	for ; iter < s.settings.MaxIterations; iter++ {
		allSatisfied := true
		maxError = 0.0
		for _, c := range ordered {
			if !c.Enforce() {
				allSatisfied = false
			}
			e := c.Error()
			if e > maxError {
				maxError = e
			}
		}
		if progress != nil {
			progress(iter, maxError)
		}
		logger.Log.Debug().Int("iteration", iter).Float64("maxError", maxError).Msg("sequential pass")
		if allSatisfied || maxError < tolerance {
			return Result{Success: true, Iterations: iter + 1, Error: maxError}
		}
	}
	return Result{Success: false, Iterations: iter, Error: maxError}
}

func (s *Solver) solveRelaxation(progress ProgressFunc) Result {
	tolerance := s.settings.ConvergenceTolerance
	prevError := s.computeTotalError()
	if prevError < tolerance {
		return Result{Success: true, Error: prevError}
	}

	ordered := s.sortedByPriority()
	iter := 0
	for ; iter < s.settings.MaxIterations; iter++ {
		for _, c := range ordered {
			c.Enforce()
		}
		total := s.computeTotalError()
		if progress != nil {
			progress(iter, total)
		}
		logger.Log.Debug().Int("iteration", iter).Float64("totalError", total).Msg("relaxation pass")
		delta := total - prevError
		if delta < 0 {
			delta = -delta
		}
		prevError = total
		if delta < tolerance || total < tolerance {
			return Result{Success: true, Iterations: iter + 1, Error: total}
		}
	}
	return Result{Success: false, Iterations: iter, Error: prevError}
}

func (s *Solver) unsatisfiedNames() []string {
	var names []string
	for _, c := range s.constraints {
		if !c.IsSatisfied() {
			names = append(names, c.Name())
		}
	}
	return names
}
