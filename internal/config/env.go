package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays cfg with DUKABOOK_* environment variables. Unset
// variables leave the current values alone.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
