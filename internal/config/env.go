package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process configuration taken from environment variables. The
// verification secret is required: without it the server cannot validate
// submissions and must refuse to start.
type Env struct {
	VerificationSecret string `env:"GAME_VERIFICATION_SECRET,required"`
	ConfigPath         string `env:"BALANCE_CONFIG" envDefault:"./balance_config.json"`
	DBPath             string `env:"BALANCE_DB" envDefault:"./data/balance.db"`
	// Address overrides the config file's server.address when set.
	Address string `env:"BALANCE_ADDR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &e, nil
}
