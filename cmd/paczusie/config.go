package main

import (
	"fmt"

	"paczusie/pkg/types"

	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.JWTSecret == "" {
		return nil, fmt.Errorf("set JWT_SECRET")
	}

	if c.ServerPort == 0 {
		c.ServerPort = 8080
	}

	if c.TokenTTLMin == 0 {
		c.TokenTTLMin = 60
	}

	return c, nil
}
