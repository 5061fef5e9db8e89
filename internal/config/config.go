// Package config holds the tunables that shape search behaviour and
// networking, plus an atomically-swappable global snapshot so a CLI
// flag parse can override defaults once at startup and every package
// reads the same immutable value thereafter.
package config

import "time"

// Config collects every tunable knob. Search tuning mirrors spec.md
// §4.6-§4.9 and §9's calibration notes; the networking knobs follow the
// same shape the config carried for peer connections, retargeted at the
// one referee connection a punter holds.
type Config struct {
	// ========== Search ==========

	// ExplorationConstant is the UCT1 constant C.
	ExplorationConstant float64

	// SimulationDepth caps the number of plies a random playout may
	// run before its score is taken as-is.
	SimulationDepth int

	// SafetyMargin is subtracted from the referee's advertised timeout
	// before computing the search deadline, so a slow final step or
	// network hop doesn't blow past the hard timeout.
	SafetyMargin time.Duration

	// ========== Networking ==========

	// DialTimeout bounds the initial TCP connect to the referee.
	DialTimeout time.Duration

	// ReadTimeout bounds a single blocking read waiting on the referee.
	ReadTimeout time.Duration

	// WriteTimeout holds a bound for a single blocking write to the
	// referee. No package reads it: writes to the referee are not
	// time-bounded.
	WriteTimeout time.Duration

	// ========== Logging ==========

	// LogLevel is the minimum level logged.
	LogLevel string

	// LogColor enables ANSI coloring of log output.
	LogColor bool
}

// defaultConfig returns the tuning spec.md calls out explicitly: 1.4 as
// the exploration constant, a 1000-ply simulation cap, and a 150ms
// safety margin subtracted from the referee's advertised per-turn
// budget.
func defaultConfig() Config {
	return Config{
		ExplorationConstant: 1.4,
		SimulationDepth:     1000,
		SafetyMargin:        150 * time.Millisecond,
		DialTimeout:         10 * time.Second,
		ReadTimeout:         0,
		WriteTimeout:        10 * time.Second,
		LogLevel:            "info",
		LogColor:            true,
	}
}
