package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentbridge/portal/pkg/gateway"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadWithEnv_File(t *testing.T) {
	path := writeFile(t, "portal.hcl", `
log_level = "debug"
output    = "json"

gateway {
  internal_url = "http://gateway.internal:8000"
  public_url   = "https://api.example.com"
  tls_verify   = false
  timeout      = "15s"
  headers = {
    "X-Portal-Client" = "portalctl"
  }
}
`)

	cfg, err := LoadWithEnv(path, gateway.Env{})
	require.NoError(t, err)

	assert.Equal(t, hclog.Debug, cfg.Level())
	assert.Equal(t, "json", cfg.Output)

	gc, err := cfg.GatewayConfig(gateway.ServerContext, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, "http://gateway.internal:8000", gc.BaseURL)
	assert.Equal(t, 15*time.Second, gc.Timeout)
	require.NotNil(t, gc.TLSVerify)
	assert.False(t, *gc.TLSVerify)
	assert.Equal(t, "portalctl", gc.DefaultHeaders["X-Portal-Client"])

	gc, err = cfg.GatewayConfig(gateway.BrowserContext, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", gc.BaseURL)
}

func TestLoadWithEnv_EnvironmentWinsOverFile(t *testing.T) {
	path := writeFile(t, "portal.hcl", `
gateway {
  internal_url = "http://from-file:8000"
}
`)

	cfg, err := LoadWithEnv(path, gateway.Env{gateway.EnvInternalURL: "http://from-env:8000"})
	require.NoError(t, err)

	gc, err := cfg.GatewayConfig(gateway.ServerContext, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8000", gc.BaseURL)
}

func TestLoadWithEnv_NoFile(t *testing.T) {
	cfg, err := LoadWithEnv("", gateway.Env{})
	require.NoError(t, err)

	assert.Equal(t, hclog.Warn, cfg.Level())
	assert.Equal(t, "yaml", cfg.Output)
	assert.Empty(t, cfg.Token())

	ec, err := cfg.ExecutionContext()
	require.NoError(t, err)
	assert.Equal(t, gateway.ServerContext, ec)

	gc, err := cfg.GatewayConfig(ec, nil)
	require.NoError(t, err)
	assert.Equal(t, gateway.DefaultBaseURL, gc.BaseURL)
	assert.Zero(t, gc.Timeout)
}

func TestLoadWithEnv_Errors(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.hcl"), gateway.Env{})
	assert.ErrorContains(t, err, "configuration file not found")

	_, err = LoadWithEnv(writeFile(t, "bad.hcl", `gateway {`), gateway.Env{})
	assert.ErrorContains(t, err, "failed to parse configuration file")

	cfg, err := LoadWithEnv(writeFile(t, "timeout.hcl", `
gateway {
  timeout = "soon"
}
`), gateway.Env{})
	require.NoError(t, err)
	_, err = cfg.GatewayConfig(gateway.ServerContext, nil)
	assert.ErrorContains(t, err, "invalid gateway timeout")

	cfg, err = LoadWithEnv("", gateway.Env{gateway.EnvInternalURL: "not a url"})
	require.NoError(t, err)
	_, err = cfg.GatewayConfig(gateway.ServerContext, nil)
	assert.Error(t, err)
}

func TestEnvironment(t *testing.T) {
	dotenv := writeFile(t, ".env", "NEXT_PUBLIC_API_URL=https://dotenv.example.com\nPORTAL_TOKEN=dotenv-token\nPORTAL_EXECUTION_CONTEXT=browser\n")

	env, err := Environment(gateway.Env{"PORTAL_TOKEN": "process-token"}, dotenv)
	require.NoError(t, err)

	assert.Equal(t, "https://dotenv.example.com", env[gateway.EnvPublicURL])
	assert.Equal(t, "process-token", env[EnvToken], "process environment wins")

	cfg, err := LoadWithEnv("", env)
	require.NoError(t, err)
	assert.Equal(t, "process-token", cfg.Token())

	ec, err := cfg.ExecutionContext()
	require.NoError(t, err)
	assert.Equal(t, gateway.BrowserContext, ec)
}

func TestEnvironment_MissingDotenv(t *testing.T) {
	env, err := Environment(gateway.Env{"A": "1"}, filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Equal(t, gateway.Env{"A": "1"}, env)
}

func TestExecutionContext_Invalid(t *testing.T) {
	cfg, err := LoadWithEnv("", gateway.Env{EnvExecutionContext: "edge"})
	require.NoError(t, err)

	_, err = cfg.ExecutionContext()
	assert.Error(t, err)
}
