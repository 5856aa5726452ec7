// Command assemblycli builds a small two-component assembly, couples the
// two components with a 2:1 gear constraint, advances the gear by one
// simulated second, and runs the solver, reporting the result. It exists to exercise this
// module's library surface the way an external caller would.
package main

import (
	"flag"
	"math"

	"github.com/cadforge/constraints/pkg/assembly"
	"github.com/cadforge/constraints/pkg/config"
	"github.com/cadforge/constraints/pkg/core/logger"
	"github.com/cadforge/constraints/pkg/core/vec"
	"github.com/cadforge/constraints/pkg/mechanism"
)

func main() {
	presetPath := flag.String("preset", "", "path to a YAML preset file; built-in defaults are used if empty")
	flag.Parse()

	preset := config.Default()
	if *presetPath != "" {
		loaded, err := config.Load(*presetPath)
		if err != nil {
			logger.Log.Error().Err(err).Msg("failed to load preset, using defaults")
		} else {
			preset = loaded
		}
	}

	driver := assembly.NewComponent("driver")
	driven := assembly.NewComponent("driven")

	gear, err := mechanism.NewGearConstraint(driver, driven, vec.NewVec3(0, 0, 1), vec.NewVec3(0, 0, 1), 2.0)
	if err != nil {
		logger.Log.Error().Err(err).Msg("failed to build gear constraint")
		return
	}
	gear.SetVelocity(vec.Vec3{}, vec.NewVec3(0, 0, math.Pi/4))

	solver := assembly.NewSolver()
	solver.SetSettings(preset.SolverSettings())
	solver.AddConstraint(gear)

	gear.SimulateMotion(1.0)
	result := solver.Solve(func(iteration int, maxError float64) {
		logger.Log.Debug().Int("iteration", iteration).Float64("maxError", maxError).Msg("solve progress")
	})

	logger.Log.Info().
		Bool("success", result.Success).
		Int("iterations", result.Iterations).
		Msg("assemblycli finished")
}
