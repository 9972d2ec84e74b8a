package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// Client talks to the portal's backend gateway. It holds no per-request
// state and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	logger     hclog.Logger
}

// Request describes a single gateway call.
type Request struct {
	// Method is the HTTP method. Defaults to GET.
	Method string

	// Path is relative to the base URL, e.g. "/api/documents/me".
	Path string

	// Query is appended to the URL when non-empty.
	Query url.Values

	// Body is marshaled as JSON. Mutually exclusive with Form.
	Body any

	// Form is sent as multipart/form-data. Mutually exclusive with Body.
	Form *Form

	// Token is sent as a bearer token when non-empty.
	Token string
}

// New creates a gateway client.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Apply defaults
	if cfg.TLSVerify == nil {
		cfg.TLSVerify = DefaultConfig().TLSVerify
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid gateway config: %w", err)
	}

	var httpClient *http.Client
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	} else {
		httpClient = cfg.NewHTTPClient()
	}

	if cfg.Registerer != nil {
		m, err := newClientMetrics(cfg.Registerer)
		if err != nil {
			return nil, fmt.Errorf("failed to register gateway metrics: %w", err)
		}
		next := httpClient.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		httpClient.Transport = m.instrument(next)
	}

	headers := http.Header{}
	for k, v := range cfg.DefaultHeaders {
		switch http.CanonicalHeaderKey(k) {
		case "Authorization", "Content-Type":
			continue
		}
		headers.Set(k, v)
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		headers:    headers,
		logger:     cfg.Logger.Named("gateway"),
	}, nil
}

// BaseURL returns the gateway base URL the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs one HTTP request and returns the raw response. The caller
// owns the response body. Transport failures are returned as-is (wrapped);
// non-2xx responses are not treated as errors here.
func (c *Client) Do(ctx context.Context, r Request) (*http.Response, error) {
	hasBody := hasJSONBody(r.Body)
	if hasBody && r.Form != nil {
		return nil, fmt.Errorf("request cannot have both a JSON body and a form")
	}

	method := r.method()

	var bodyReader io.Reader
	var contentType string
	switch {
	case r.Form != nil:
		b, err := r.Form.encode()
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(b)
		contentType = r.Form.ContentType()
	case hasBody:
		b, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(b)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(r.Path, r.Query), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	req.Header.Set("Accept", "application/json")
	if req.Header.Get("X-Request-ID") == "" {
		req.Header.Set("X-Request-ID", uuid.NewString())
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			"method", method,
			"path", r.Path,
			"error", err,
		)
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.logger.Debug("request completed",
		"method", method,
		"path", r.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", req.Header.Get("X-Request-ID"),
	)

	return resp, nil
}

// Raw performs the request and returns the unwrapped payload of a
// successful response, or an *APIError.
func (c *Client) Raw(ctx context.Context, r Request) (json.RawMessage, error) {
	resp, err := c.Do(ctx, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := NormalizeError(resp)
		c.logger.Debug("gateway returned error",
			"method", r.method(),
			"path", r.Path,
			"status", apiErr.Status,
			"code", apiErr.Code,
		)
		return nil, apiErr
	}

	return Unwrap(resp)
}

// Send performs the request and decodes the unwrapped payload into result
// when result is non-nil.
func (c *Client) Send(ctx context.Context, r Request, result any) error {
	payload, err := c.Raw(ctx, r)
	if err != nil {
		return err
	}
	return decodeInto(payload, result)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path, token string, result any) error {
	return c.Send(ctx, Request{Method: http.MethodGet, Path: path, Token: token}, result)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, token string, result any) error {
	return c.Send(ctx, Request{Method: http.MethodPost, Path: path, Body: body, Token: token}, result)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, token string, result any) error {
	return c.Send(ctx, Request{Method: http.MethodPut, Path: path, Body: body, Token: token}, result)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any, token string, result any) error {
	return c.Send(ctx, Request{Method: http.MethodPatch, Path: path, Body: body, Token: token}, result)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path, token string, result any) error {
	return c.Send(ctx, Request{Method: http.MethodDelete, Path: path, Token: token}, result)
}

// Upload POSTs a multipart form.
func (c *Client) Upload(ctx context.Context, path string, form *Form, token string, result any) error {
	return c.Send(ctx, Request{Method: http.MethodPost, Path: path, Form: form, Token: token}, result)
}

// GetPage issues a GET against a paginated endpoint. The response is read
// without unwrapping so the pagination block survives.
func (c *Client) GetPage(ctx context.Context, path string, params PageParams, token string, items any) (Pagination, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  params.Values(),
		Token:  token,
	})
	if err != nil {
		return Pagination{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Pagination{}, NormalizeError(resp)
	}
	if resp.StatusCode == http.StatusNoContent || !isJSON(resp.Header.Get("Content-Type")) {
		return Pagination{}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Pagination{}, fmt.Errorf("failed to read response: %w", err)
	}
	if !json.Valid(body) {
		return Pagination{}, nil
	}

	return DecodePage(body, items)
}

// endpoint joins the base URL, path and query.
func (c *Client) endpoint(path string, query url.Values) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	endpoint := c.baseURL + path
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		endpoint += sep + query.Encode()
	}
	return endpoint
}

// method returns the request method, defaulting to GET.
func (r Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// hasJSONBody reports whether body should be sent. Nil pointers, maps and
// slices count as no body.
func hasJSONBody(body any) bool {
	if body == nil {
		return false
	}
	v := reflect.ValueOf(body)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return !v.IsNil()
	}
	return true
}

func decodeInto(payload json.RawMessage, result any) error {
	if result == nil {
		return nil
	}
	if raw, ok := result.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], payload...)
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	if err := dec.Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
