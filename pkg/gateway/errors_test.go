package gateway

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantCode    string
	}{
		{
			name:        "Nested error object",
			status:      http.StatusConflict,
			body:        `{"error": {"code": "DUPLICATE_INVITE", "message": "Invite already sent"}}`,
			wantMessage: "Invite already sent",
			wantCode:    "DUPLICATE_INVITE",
		},
		{
			name:        "Nested error without message uses code",
			status:      http.StatusBadRequest,
			body:        `{"error": {"code": "BAD_INPUT"}}`,
			wantMessage: "BAD_INPUT",
			wantCode:    "BAD_INPUT",
		},
		{
			name:        "Nested error with numeric code",
			status:      http.StatusBadRequest,
			body:        `{"error": {"code": 4001}}`,
			wantMessage: "4001",
			wantCode:    "4001",
		},
		{
			name:        "Empty nested error",
			status:      http.StatusBadRequest,
			body:        `{"error": {}}`,
			wantMessage: DefaultErrorMessage,
		},
		{
			name:        "Flat message",
			status:      http.StatusUnprocessableEntity,
			body:        `{"message": "Email is invalid"}`,
			wantMessage: "Email is invalid",
		},
		{
			name:        "Flat error string",
			status:      http.StatusUnauthorized,
			body:        `{"error": "token_expired"}`,
			wantMessage: "token_expired",
			wantCode:    "token_expired",
		},
		{
			name:        "Message wins over error string",
			status:      http.StatusForbidden,
			body:        `{"error": "forbidden", "message": "Recruiters only"}`,
			wantMessage: "Recruiters only",
			wantCode:    "forbidden",
		},
		{
			name:        "Empty object",
			status:      http.StatusInternalServerError,
			body:        `{}`,
			wantMessage: DefaultErrorMessage,
		},
		{
			name:        "JSON array",
			status:      http.StatusBadRequest,
			body:        `["nope"]`,
			wantMessage: DefaultErrorMessage,
		},
		{
			name:        "HTML body",
			status:      http.StatusBadGateway,
			body:        `<html>Bad Gateway</html>`,
			wantMessage: "Bad Gateway",
		},
		{
			name:        "Empty body",
			status:      http.StatusNotFound,
			wantMessage: "Not Found",
		},
		{
			name:        "Trailing garbage",
			status:      http.StatusBadRequest,
			body:        `{"message": "x"} trailing`,
			wantMessage: "Bad Request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NormalizeError(newResponse(tt.status, "application/json", tt.body))

			assert.NotNil(t, err)
			assert.Equal(t, tt.wantMessage, err.Message)
			assert.Equal(t, tt.wantCode, err.Code)
			assert.Equal(t, tt.status, err.Status)
		})
	}
}

func TestNormalizeError_UnknownStatus(t *testing.T) {
	resp := &http.Response{
		StatusCode: 599,
		Status:     "599 Network Connect Timeout",
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
	}
	assert.Equal(t, "Network Connect Timeout", NormalizeError(resp).Message)

	resp = &http.Response{
		StatusCode: 599,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
	}
	assert.Equal(t, DefaultErrorMessage, NormalizeError(resp).Message)
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		status int
		target error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusUnprocessableEntity, ErrValidation},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusServiceUnavailable, ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var err error = &APIError{Message: "x", Status: tt.status}
			assert.ErrorIs(t, err, tt.target)
		})
	}

	var err error = &APIError{Message: "x", Status: http.StatusBadRequest}
	assert.Nil(t, errors.Unwrap(err))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Message: "Invite already sent", Status: 409, Code: "DUPLICATE_INVITE"}
	assert.Equal(t, "gateway error (status 409, code DUPLICATE_INVITE): Invite already sent", err.Error())

	err = &APIError{Message: "Not Found", Status: 404}
	assert.Equal(t, "gateway error (status 404): Not Found", err.Error())
}
