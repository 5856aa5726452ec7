// Package manager provides a façade over an active set of constraints:
// identity-deduplicated add/remove, per-kind visibility filtering, an
// owned auto-detector (toggle and sensitivity), and pruning of
// constraints that have gone invalid.
package manager

import (
	"github.com/cadforge/constraints/pkg/constraint"
	"github.com/cadforge/constraints/pkg/core/logger"
	"github.com/cadforge/constraints/pkg/detector"
)

// Manager holds the active constraint set a sketch or assembly editor
// currently enforces, and owns the auto-detector it toggles and tunes.
type Manager struct {
	active      []constraint.Constraint
	hiddenKinds map[string]bool
	autoDetect  *detector.Detector
}

func NewManager() *Manager {
	return &Manager{hiddenKinds: make(map[string]bool), autoDetect: detector.NewDetector()}
}

// Add appends c to the active set unless an identical instance (pointer
// equality) is already present.
func (m *Manager) Add(c constraint.Constraint) bool {
	for _, existing := range m.active {
		if existing == c {
			return false
		}
	}
	m.active = append(m.active, c)
	logger.Log.Info().Str("kind", c.Name()).Msg("constraint added")
	return true
}

func (m *Manager) Remove(c constraint.Constraint) bool {
	for i, existing := range m.active {
		if existing == c {
			m.active = append(m.active[:i], m.active[i+1:]...)
			logger.Log.Info().Str("kind", c.Name()).Msg("constraint removed")
			return true
		}
	}
	return false
}

// Active returns every constraint whose kind isn't currently hidden.
func (m *Manager) Active() []constraint.Constraint {
	var out []constraint.Constraint
	for _, c := range m.active {
		if !m.hiddenKinds[c.Name()] {
			out = append(out, c)
		}
	}
	return out
}

// All returns the full active set regardless of visibility filtering.
func (m *Manager) All() []constraint.Constraint {
	out := make([]constraint.Constraint, len(m.active))
	copy(out, m.active)
	return out
}

func (m *Manager) SetKindVisible(kind string, visible bool) {
	if visible {
		delete(m.hiddenKinds, kind)
	} else {
		m.hiddenKinds[kind] = true
	}
}

func (m *Manager) IsKindVisible(kind string) bool {
	return !m.hiddenKinds[kind]
}

func (m *Manager) SetAutoDetectEnabled(enabled bool) { m.autoDetect.SetEnabled(enabled) }

func (m *Manager) AutoDetectEnabled() bool { return m.autoDetect.Enabled() }

// SetDetectorSensitivity forwards sensitivity (clamped to [0.1, 1.0] by the
// detector itself) to the auto-detector this manager owns.
func (m *Manager) SetDetectorSensitivity(sensitivity float64) {
	m.autoDetect.SetSensitivity(sensitivity)
}

func (m *Manager) DetectorSensitivity() float64 { return m.autoDetect.Sensitivity() }

// Detector exposes the auto-detector this manager owns, for callers that
// need to run detection directly against the active sketch entities.
func (m *Manager) Detector() *detector.Detector { return m.autoDetect }

// Refresh drops every constraint that has gone invalid, returning whether
// the active set changed.
func (m *Manager) Refresh() bool {
	kept := m.active[:0]
	pruned := 0
	for _, c := range m.active {
		if c.IsValid() {
			kept = append(kept, c)
		} else {
			pruned++
		}
	}
	m.active = kept
	if pruned > 0 {
		logger.Log.Info().Int("pruned", pruned).Msg("refresh dropped invalid constraints")
	}
	return pruned > 0
}

func (m *Manager) Count() int { return len(m.active) }
