package gateway

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config contains configuration for the gateway client.
//
// Example configuration (HCL):
//
//	gateway {
//	  internal_url = "http://api-gateway.internal:8000"
//	  public_url   = "https://api.example.com"
//	  tls_verify   = true
//	}
type Config struct {
	// BaseURL is the resolved gateway base URL, usually the result of
	// ResolveBaseURL.
	// Example: "https://api.example.com"
	BaseURL string

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool

	// Timeout for gateway requests. Zero leaves the transport default in
	// place; the client itself never imposes one.
	Timeout time.Duration

	// DefaultHeaders are sent on every request. Authorization and
	// Content-Type are managed by the client and are ignored here.
	DefaultHeaders map[string]string

	// Logger (optional)
	Logger hclog.Logger

	// Registerer enables request metrics when set.
	Registerer prometheus.Registerer

	// Tracing wraps the transport with OpenTelemetry instrumentation.
	Tracing bool

	// HTTPClient overrides the client built by NewHTTPClient.
	HTTPClient *http.Client
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		BaseURL:   DefaultBaseURL,
		TLSVerify: &tlsVerify,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL,
			validation.Required.Error("base_url is required"),
			validation.By(httpURL),
		),
		validation.Field(&c.Timeout,
			validation.Min(time.Duration(0)).Error("timeout must be non-negative"),
		),
	)
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	parsedURL, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid base_url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https scheme, got: %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base_url must include a host")
	}
	return nil
}

// NewHTTPClient creates a configured HTTP client for the gateway.
func (c *Config) NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 100
	transport.MaxIdleConnsPerHost = 10
	transport.IdleConnTimeout = 90 * time.Second

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	var rt http.RoundTripper = transport
	if c.Tracing {
		rt = otelhttp.NewTransport(rt)
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: rt,
	}
}
