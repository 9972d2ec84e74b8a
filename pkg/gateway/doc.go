// Package gateway provides the HTTP client used by every portal helper to
// talk to the backend API gateway.
//
// # Overview
//
// The gateway owns authentication, business rules and persistence. This
// package only moves requests and responses:
//
//	caller ──▶ Client.Do ──▶ gateway
//	              │
//	              ├─ 2xx     ──▶ Unwrap         ──▶ payload
//	              └─ non-2xx ──▶ NormalizeError ──▶ *APIError
//
// # Base URL
//
// Server-side callers reach the gateway through the service mesh, browsers
// through public ingress. ResolveBaseURL encodes that policy:
//
//	server:  API_GATEWAY_URL ▸ NEXT_PUBLIC_API_URL ▸ http://localhost:8000
//	browser: NEXT_PUBLIC_API_URL ▸ http://localhost:8000
//
// # Envelopes
//
// Successful responses are either bare JSON or wrapped as {"data": ...}.
// Unwrap returns the inner value whenever a "data" key is present, so a
// domain object that legitimately has its own top-level "data" field will
// be unwrapped too. Endpoints returning such objects must be read with
// Client.Do and decoded by hand.
//
// Paginated lists carry {"data": [...], "pagination": {"total": N}}. Use
// Client.GetPage to keep the pagination block.
//
// # Errors
//
// Every non-2xx response becomes an *APIError with a message, the HTTP
// status and an optional machine-readable code. errors.Is matches it
// against ErrUnauthorized, ErrNotFound and the other sentinels. Transport
// failures are returned wrapped and are never an *APIError. There are no
// retries.
//
// # Example
//
//	client, err := gateway.New(&gateway.Config{
//	    BaseURL: gateway.ResolveBaseURL(gateway.ServerContext, gateway.EnvFromOS()),
//	    Logger:  logger,
//	})
//	if err != nil {
//	    return err
//	}
//
//	var profile map[string]any
//	err = client.Get(ctx, "/api/candidates/me", token, &profile)
//	var apiErr *gateway.APIError
//	if errors.As(err, &apiErr) && apiErr.Code == "PROFILE_MISSING" {
//	    ...
//	}
package gateway
