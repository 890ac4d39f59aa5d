// Package config reads process-wide defaults from the environment, so the
// driver's flags only need to override them rather than define them from
// scratch. It is consulted once, before flag parsing, so that flags always
// win over environment variables.
package config

import "github.com/caarlos0/env/v6"

// Config holds the three knobs the driver also exposes as flags:
// OverflowCheck (checked vs wrap arithmetic), Backend (tree reducer vs
// bytecode VM), and NoColor (disable ANSI diagnostics).
type Config struct {
	OverflowCheck bool   `env:"PIJAGO_OVERFLOW_CHECK"`
	Backend       string `env:"PIJAGO_BACKEND" envDefault:"reduce"`
	NoColor       bool   `env:"PIJAGO_NO_COLOR"`
}

// Load parses the environment into a Config. Unset variables keep their
// zero value or envDefault.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
