package gateway

import (
	"fmt"
	"os"
	"strings"
)

// Environment variables consulted by ResolveBaseURL.
const (
	// EnvInternalURL is the service-mesh address of the gateway. Only
	// server-side callers can reach it.
	EnvInternalURL = "API_GATEWAY_URL"

	// EnvPublicURL is the public ingress address of the gateway.
	EnvPublicURL = "NEXT_PUBLIC_API_URL"

	// DefaultBaseURL is used when neither variable is set.
	DefaultBaseURL = "http://localhost:8000"
)

// ExecutionContext says which network path a caller takes to the gateway.
type ExecutionContext int

const (
	// ServerContext callers run inside the deployment and prefer the
	// internal gateway address.
	ServerContext ExecutionContext = iota

	// BrowserContext callers go through public ingress.
	BrowserContext
)

func (e ExecutionContext) String() string {
	switch e {
	case ServerContext:
		return "server"
	case BrowserContext:
		return "browser"
	default:
		return fmt.Sprintf("ExecutionContext(%d)", int(e))
	}
}

// ParseExecutionContext parses "server" or "browser". An empty string is
// the server context.
func ParseExecutionContext(s string) (ExecutionContext, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "server":
		return ServerContext, nil
	case "browser":
		return BrowserContext, nil
	default:
		return ServerContext, fmt.Errorf("unknown execution context %q", s)
	}
}

// Env is a snapshot of environment variables.
type Env map[string]string

// EnvFromOS snapshots the process environment.
func EnvFromOS() Env {
	env := Env{}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Lookup returns the trimmed value of key, treating blank values as unset.
func (e Env) Lookup(key string) (string, bool) {
	v := strings.TrimSpace(e[key])
	return v, v != ""
}

// ResolveBaseURL picks the gateway base URL for the given execution context.
//
// Server: API_GATEWAY_URL, then NEXT_PUBLIC_API_URL, then DefaultBaseURL.
// Browser: NEXT_PUBLIC_API_URL, then DefaultBaseURL.
func ResolveBaseURL(ec ExecutionContext, env Env) string {
	if ec == ServerContext {
		if v, ok := env.Lookup(EnvInternalURL); ok {
			return v
		}
	}
	if v, ok := env.Lookup(EnvPublicURL); ok {
		return v
	}
	return DefaultBaseURL
}
