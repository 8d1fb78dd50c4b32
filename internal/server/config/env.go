package config

import (
	"github.com/caarlos0/env/v11"
)

// parseEnv overlays cfg with the variables named in the env struct tags.
// Unset variables leave the current value untouched. Durations use Go syntax
// ("90s", "1h"). A malformed value panics, like a malformed JSON file does.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
