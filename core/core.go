// Package core provides the framework-agnostic authentication gate that can be
// used across different transport layers (HTTP, gRPC, etc.).
//
// The Core type composes bearer extraction and token validation and returns a
// Decision. Transport-specific adapters turn that Decision into a response.
package core

import (
	"context"
)

// Validator defines the interface for JWT validation.
// Implementations validate a compact token and return the validated claims.
// Returned errors should be *ValidationError so that the gate can classify them.
type Validator interface {
	ValidateToken(ctx context.Context, token string) (any, error)
}

// Logger defines an optional logging interface compatible with log/slog.
// It is shared by the adapters and the JWKS resolver.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Core is the framework-agnostic authentication gate.
// It is safe for concurrent use once constructed.
type Core struct {
	validator Validator
}

// Evaluate is the per-request authentication hook. It takes the values of the
// Authorization header (or its transport equivalent), extracts the bearer
// credential and validates it.
//
// Evaluate never logs and never mutates shared state. Every failure is turned
// into a Deny decision; nothing is retried.
func (c *Core) Evaluate(ctx context.Context, authorization []string) Decision {
	token, err := ExtractBearer(authorization)
	if err != nil {
		return Deny(err)
	}

	claims, err := c.CheckToken(ctx, token)
	if err != nil {
		return Deny(err)
	}

	return Allow(claims)
}

// CheckToken validates a bearer credential that has already been extracted
// and returns the validated claims.
func (c *Core) CheckToken(ctx context.Context, token string) (any, error) {
	if c == nil || c.validator == nil {
		return nil, NewValidationError(ErrorCodeKeyMaterialUnavailable, "no validator configured", nil)
	}

	if token == "" {
		return nil, NewValidationError(ErrorCodeCredentialMissing, "token is empty", nil)
	}

	return c.validator.ValidateToken(ctx, token)
}
