// Package config loads solver and detector presets from YAML, the way
// the rest of this module's corpus configures runtime behavior.
package config

import (
	"fmt"
	"os"

	"github.com/cadforge/constraints/pkg/assembly"
	"gopkg.in/yaml.v3"
)

// Preset bundles the tunable knobs a caller sets up once and hands to a
// solver and detector.
type Preset struct {
	Solver struct {
		Algorithm            string  `yaml:"algorithm"`
		ConvergenceTolerance float64 `yaml:"convergenceTolerance"`
		MaxIterations        int     `yaml:"maxIterations"`
		DampingFactor        float64 `yaml:"dampingFactor"`
	} `yaml:"solver"`

	Detector struct {
		Enabled     bool    `yaml:"enabled"`
		Sensitivity float64 `yaml:"sensitivity"`
	} `yaml:"detector"`
}

// Default returns the spec's documented defaults.
func Default() Preset {
	var p Preset
	p.Solver.Algorithm = "sequential"
	p.Solver.ConvergenceTolerance = 1e-6
	p.Solver.MaxIterations = 100
	p.Solver.DampingFactor = 1.0
	p.Detector.Enabled = true
	p.Detector.Sensitivity = 0.5
	return p
}

// Load reads and parses a YAML preset file.
func Load(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("config.Load: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Preset{}, fmt.Errorf("config.Load: %w", err)
	}
	return p, nil
}

// SolverSettings translates the preset into assembly.Settings.
func (p Preset) SolverSettings() assembly.Settings {
	settings := assembly.DefaultSettings()
	if p.Solver.Algorithm == "relaxation" {
		settings.Algorithm = assembly.Relaxation
	} else {
		settings.Algorithm = assembly.Sequential
	}
	if p.Solver.ConvergenceTolerance > 0 {
		settings.ConvergenceTolerance = p.Solver.ConvergenceTolerance
	}
	if p.Solver.MaxIterations > 0 {
		settings.MaxIterations = p.Solver.MaxIterations
	}
	if p.Solver.DampingFactor > 0 {
		settings.DampingFactor = p.Solver.DampingFactor
	}
	return settings
}
