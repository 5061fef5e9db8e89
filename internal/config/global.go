package config

import "sync/atomic"

var cfg atomic.Value

// Init stores the default config as the global snapshot. Call once at
// process start, before any other package calls Load.
func Init() {
	c := defaultConfig()
	cfg.Store(&c)
}

// Load returns the current config. Treat the returned value as
// read-only; mutate via Update or Swap instead.
func Load() *Config {
	return cfg.Load().(*Config)
}

// Update applies mut to a copy of the current config and atomically
// swaps it in, returning the new value.
func Update(mut func(*Config)) *Config {
	curr := Load()
	next := *curr
	mut(&next)
	cfg.Store(&next)
	return &next
}

// Swap replaces the global config outright, e.g. after parsing CLI
// flags into a freshly built Config.
func Swap(next Config) *Config {
	cfg.Store(&next)
	return &next
}
