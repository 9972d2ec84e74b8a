// Package auth holds the caller-side guard for bearer tokens. Tokens are
// issued by the identity provider; this package never refreshes or stores
// them.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

var (
	// ErrTokenRequired is returned when a helper that needs auth is called
	// without a token. Callers should send the user to sign-in instead of
	// calling the gateway.
	ErrTokenRequired = errors.New("bearer token required")

	// ErrTokenExpired is returned for JWTs whose exp claim has passed.
	ErrTokenExpired = errors.New("bearer token expired")
)

// expiryDelta matches oauth2's early-expiry window.
const expiryDelta = 10 * time.Second

// Parse wraps a raw bearer token. When the token is a JWT its exp claim is
// read, without verifying the signature, to fill in Expiry. Opaque tokens
// get a zero Expiry, which oauth2 treats as non-expiring.
func Parse(raw string) *oauth2.Token {
	raw = strings.TrimSpace(raw)
	if scheme, rest, ok := strings.Cut(raw, " "); ok && strings.EqualFold(scheme, "Bearer") {
		raw = strings.TrimSpace(rest)
	} else if strings.EqualFold(raw, "Bearer") {
		raw = ""
	}

	tok := &oauth2.Token{AccessToken: raw, TokenType: "Bearer"}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err == nil && claims.ExpiresAt != nil {
		tok.Expiry = claims.ExpiresAt.Time
	}

	return tok
}

// Require returns the access token to forward, or an error if the caller
// should not call the gateway at all.
func Require(raw string) (string, error) {
	tok := Parse(raw)
	if tok.AccessToken == "" {
		return "", ErrTokenRequired
	}
	if !tok.Expiry.IsZero() && !tok.Expiry.After(time.Now().Add(expiryDelta)) {
		return "", ErrTokenExpired
	}
	return tok.AccessToken, nil
}

// Source adapts an oauth2.TokenSource into the raw string the gateway
// helpers take.
func Source(ts oauth2.TokenSource) (string, error) {
	if ts == nil {
		return "", ErrTokenRequired
	}
	tok, err := ts.Token()
	if err != nil {
		return "", err
	}
	if !tok.Valid() {
		if tok.AccessToken == "" {
			return "", ErrTokenRequired
		}
		return "", ErrTokenExpired
	}
	return tok.AccessToken, nil
}
