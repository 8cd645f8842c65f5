package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if VENDORBOARD_CONFIG is set
//  3. env (prefix VENDORBOARD_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("VENDORBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: VENDORBOARD_ADDR, VENDORBOARD_API_KEY, ...
	// Map env keys like VENDORBOARD_CACHE_TTL_HOURS -> cache_ttl_hours (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("VENDORBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "vendorboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, errors.New("addr must not be empty")
	case len(cfg.Symbols) == 0:
		return nil, errors.New("symbols must not be empty")
	case cfg.CacheTTLHours <= 0:
		return nil, errors.New("cache_ttl_hours must be positive")
	case cfg.RefreshIntervalSec <= 0:
		return nil, errors.New("refresh_interval_sec must be positive")
	}
	return &cfg, nil
}
