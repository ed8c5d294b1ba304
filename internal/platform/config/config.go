// Copyright (c) 2026 Warden. All rights reserved.
// Author: ops@wardenhq.io

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (gate, session, providers) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the gateway is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/wardenhq/warden/internal/platform/validate"
)

// # Configuration Schema

// Config holds all runtime configuration for the Warden gateway.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Identity provider selection ("google" or "github"). An unsupported
	// value is NOT a startup error: the provider layer warns and substitutes
	// the default.
	Provider string `env:"AUTH_PROVIDER" envDefault:"google"`

	// OAuth client credentials and redirect target
	OAuthClientID     string `env:"OAUTH_CLIENT_ID"`
	OAuthClientSecret string `env:"OAUTH_CLIENT_SECRET"`
	OAuthCallbackURL  string `env:"OAUTH_CALLBACK_URL"`

	// CallbackPath is the local route the provider redirects back to.
	CallbackPath string `env:"AUTH_CALLBACK_PATH" envDefault:"/auth/redirect"`

	// SessionSecret signs session cookies (HS256).
	SessionSecret string `env:"SESSION_SECRET,required"`

	// AllowedDomains is the comma-separated authorization allow-list of
	// domains, full addresses, and patterns. Absence is a startup error,
	// never a permissive default.
	AllowedDomains string `env:"ALLOWED_DOMAINS,required"`

	// RedisURL points at the durable session store. Absence disables
	// durable storage and forces the in-process fallback.
	RedisURL string `env:"REDIS_URL"`

	// Development-mode bypass
	DevMode      bool   `env:"DEV_MODE"       envDefault:"false"`
	DevUserEmail string `env:"DEV_USER_EMAIL" envDefault:"dev@warden.local"`

	// AppOrigin is the origin suffix allowed by CORS in production.
	AppOrigin string `env:"APP_ORIGIN"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and applies
// cross-field validation.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate applies the semantic rules the env tags cannot express.
func (c *Config) validate() error {
	v := &validate.Validator{}

	v.MinLen("session_secret", c.SessionSecret, 32)
	v.Required("allowed_domains", c.AllowedDomains)
	v.Custom("auth_callback_path", c.CallbackPath == "" || c.CallbackPath[0] != '/',
		"Must be an absolute path starting with '/'")

	// Provider credentials are only exercised outside the dev bypass.
	if !c.DevMode {
		v.Required("oauth_client_id", c.OAuthClientID).
			Required("oauth_client_secret", c.OAuthClientSecret).
			Required("oauth_callback_url", c.OAuthCallbackURL)
	}

	if c.DevMode {
		v.Email("dev_user_email", c.DevUserEmail)
	}

	return v.Err()
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AppOriginSuffix returns the origin suffix trusted by CORS in production.
func (c *Config) AppOriginSuffix() string {
	return c.AppOrigin
}
