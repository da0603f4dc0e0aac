// Package loxconfig loads `lox`'s runtime configuration from, in
// increasing priority: built-in defaults, an optional .loxrc.yaml file,
// environment variables, and finally CLI flags (applied by cmd/lox after
// Load returns). Precedence mirrors the teacher's cmd/dwscript layering of
// a config file beneath flag overrides, generalized here to also include
// an environment-variable layer via caarlos0/env.
package loxconfig

import (
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/goccy/go-yaml"
)

// Config holds everything `lox run`/`lox`'s REPL need beyond the script
// path itself.
type Config struct {
	MaxCallDepth int  `yaml:"max_call_depth" env:"LOX_MAX_CALL_DEPTH"`
	NoColor      bool `yaml:"no_color" env:"LOX_NO_COLOR"`
	Trace        bool `yaml:"trace" env:"LOX_TRACE"`
}

// Default returns the zero-configuration Config.
func Default() Config {
	return Config{MaxCallDepth: 255}
}

// Load builds a Config by starting from Default, overlaying
// rcPath (if it exists) and then environment variables. It does not
// consult CLI flags — cmd/lox applies those last, after Load returns,
// since cobra flags win over everything else.
func Load(rcPath string) (Config, error) {
	cfg := Default()

	if rcPath != "" {
		data, err := os.ReadFile(rcPath)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		} else if !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
