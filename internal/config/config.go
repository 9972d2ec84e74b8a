// Package config loads portalctl settings from an optional HCL file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"

	"github.com/talentbridge/portal/pkg/gateway"
)

// Environment variables read in addition to the gateway URL variables.
const (
	EnvToken            = "PORTAL_TOKEN"
	EnvExecutionContext = "PORTAL_EXECUTION_CONTEXT"
)

// DefaultDotenvFile is read when present.
const DefaultDotenvFile = ".env"

// Config is the top-level portalctl configuration.
//
// Example:
//
//	log_level = "debug"
//	output    = "json"
//
//	gateway {
//	  internal_url = "http://api-gateway.internal:8000"
//	  public_url   = "https://api.example.com"
//	  timeout      = "30s"
//	  headers = {
//	    "X-Portal-Client" = "portalctl"
//	  }
//	}
type Config struct {
	Gateway  *Gateway `hcl:"gateway,block"`
	LogLevel string   `hcl:"log_level,optional"`
	Output   string   `hcl:"output,optional"`

	// Env is the environment snapshot the file was overlaid on.
	Env gateway.Env
}

// Gateway configures how portalctl reaches the backend gateway. URL values
// here are fallbacks; the environment variables win when set.
type Gateway struct {
	InternalURL string            `hcl:"internal_url,optional"`
	PublicURL   string            `hcl:"public_url,optional"`
	TLSVerify   *bool             `hcl:"tls_verify,optional"`
	Timeout     string            `hcl:"timeout,optional"`
	Headers     map[string]string `hcl:"headers,optional"`
	Tracing     bool              `hcl:"tracing,optional"`
}

// Load reads the HCL file at path (optional) and the dotenv file at
// dotenvPath (optional, ignored when missing) on top of the process
// environment.
func Load(path, dotenvPath string) (*Config, error) {
	env, err := Environment(gateway.EnvFromOS(), dotenvPath)
	if err != nil {
		return nil, err
	}
	return LoadWithEnv(path, env)
}

// LoadWithEnv is Load with an explicit environment snapshot.
func LoadWithEnv(path string, env gateway.Env) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("configuration file not found: %s", path)
		}
		if err := hclsimple.DecodeFile(path, nil, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file: %w", err)
		}
	}

	applyDefaults(cfg)

	cfg.Env = gateway.Env{}
	for k, v := range env {
		cfg.Env[k] = v
	}
	if _, ok := cfg.Env.Lookup(gateway.EnvInternalURL); !ok && cfg.Gateway.InternalURL != "" {
		cfg.Env[gateway.EnvInternalURL] = cfg.Gateway.InternalURL
	}
	if _, ok := cfg.Env.Lookup(gateway.EnvPublicURL); !ok && cfg.Gateway.PublicURL != "" {
		cfg.Env[gateway.EnvPublicURL] = cfg.Gateway.PublicURL
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Gateway == nil {
		cfg.Gateway = &Gateway{}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Output == "" {
		cfg.Output = "yaml"
	}
}

// Environment merges the dotenv file at path under base. Keys already in
// base are kept. A missing file is not an error.
func Environment(base gateway.Env, path string) (gateway.Env, error) {
	env := gateway.Env{}
	if path != "" {
		values, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read dotenv file %s: %w", path, err)
		default:
			for k, v := range values {
				env[k] = v
			}
		}
	}
	for k, v := range base {
		env[k] = v
	}
	return env, nil
}

// ExecutionContext returns the context named by PORTAL_EXECUTION_CONTEXT.
func (c *Config) ExecutionContext() (gateway.ExecutionContext, error) {
	v, _ := c.Env.Lookup(EnvExecutionContext)
	return gateway.ParseExecutionContext(v)
}

// Token returns PORTAL_TOKEN, or "" when unset.
func (c *Config) Token() string {
	v, _ := c.Env.Lookup(EnvToken)
	return v
}

// Level returns the configured hclog level.
func (c *Config) Level() hclog.Level {
	if l := hclog.LevelFromString(strings.TrimSpace(c.LogLevel)); l != hclog.NoLevel {
		return l
	}
	return hclog.Warn
}

// GatewayConfig builds the gateway client configuration for ec.
func (c *Config) GatewayConfig(ec gateway.ExecutionContext, logger hclog.Logger) (*gateway.Config, error) {
	gc := gateway.DefaultConfig()
	gc.BaseURL = gateway.ResolveBaseURL(ec, c.Env)
	gc.Logger = logger
	gc.Tracing = c.Gateway.Tracing
	if c.Gateway.TLSVerify != nil {
		gc.TLSVerify = c.Gateway.TLSVerify
	}
	if len(c.Gateway.Headers) > 0 {
		gc.DefaultHeaders = c.Gateway.Headers
	}
	if c.Gateway.Timeout != "" {
		d, err := time.ParseDuration(c.Gateway.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid gateway timeout %q: %w", c.Gateway.Timeout, err)
		}
		gc.Timeout = d
	}
	if err := gc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway configuration: %w", err)
	}
	return gc, nil
}
