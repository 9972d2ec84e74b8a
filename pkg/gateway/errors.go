package gateway

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// DefaultErrorMessage is used when a failed response carries no usable
// diagnostic at all.
const DefaultErrorMessage = "Request failed"

// Sentinel errors matched by errors.Is against an *APIError.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrServer       = errors.New("gateway server error")
)

// APIError is the normalized form of every non-2xx gateway response.
type APIError struct {
	// Message is human readable.
	Message string `json:"message"`

	// Status is the HTTP status code of the response.
	Status int `json:"status"`

	// Code is the gateway's machine-readable error code. Empty when the
	// response did not carry one.
	Code string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error (status %d, code %s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error (status %d): %s", e.Status, e.Message)
}

// Unwrap maps well-known statuses to the package sentinel errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusConflict:
		return ErrConflict
	case e.Status == http.StatusUnprocessableEntity:
		return ErrValidation
	case e.Status >= 500:
		return ErrServer
	default:
		return nil
	}
}

// NormalizeError reads a failed response and converts it into an APIError.
// It never returns nil. The body is consumed but not closed.
func NormalizeError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)
	return normalizeErrorBody(resp.StatusCode, statusText(resp), body)
}

func normalizeErrorBody(status int, text string, body []byte) *APIError {
	parsed, err := decodeJSON(body)
	if err != nil {
		if text == "" {
			text = DefaultErrorMessage
		}
		return &APIError{Message: text, Status: status}
	}

	obj, _ := parsed.(map[string]any)

	if errObj, ok := obj["error"].(map[string]any); ok {
		code := scalarString(errObj["code"])
		message := firstNonEmpty(scalarString(errObj["message"]), code, DefaultErrorMessage)
		return &APIError{Message: message, Status: status, Code: code}
	}

	errStr, _ := obj["error"].(string)
	message := firstNonEmpty(scalarString(obj["message"]), errStr, DefaultErrorMessage)
	return &APIError{Message: message, Status: status, Code: errStr}
}

// decodeJSON parses a complete JSON document, keeping numbers as
// json.Number.
func decodeJSON(body []byte) (any, error) {
	if !json.Valid(body) {
		return nil, errors.New("invalid JSON body")
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// statusText prefers the standard reason phrase and falls back to the one
// the server sent.
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	_, reason, _ := strings.Cut(resp.Status, " ")
	return strings.TrimSpace(reason)
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
