// Package echobearer adapts the bearer gate to echo.
package echobearer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bearergate/bearergate/core"
)

// DefaultClaimsKey is the echo context key claims are stored under.
const DefaultClaimsKey = "jwt"

// echoMiddlewareConfig holds all configuration for the middleware
type echoMiddlewareConfig struct {
	errorHandler func(echo.Context, core.Decision) error
	contextKey   string
	skipper      func(echo.Context) bool
	logger       core.Logger
}

// New returns an echo middleware that admits a request only when gate
// allows it.
func New(gate *core.Core, opts ...Option) echo.MiddlewareFunc {
	config := &echoMiddlewareConfig{
		errorHandler: DefaultErrorHandler,
		contextKey:   DefaultClaimsKey,
	}

	for _, opt := range opts {
		opt(config)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.skipper != nil && config.skipper(c) {
				return next(c)
			}

			req := c.Request()
			decision := gate.Evaluate(req.Context(), req.Header.Values(echo.HeaderAuthorization))
			if !decision.Allowed() {
				if config.logger != nil {
					config.logger.Warn("JWT validation failed",
						"code", decision.Code(),
						"path", c.Path())
				}
				return config.errorHandler(c, decision)
			}

			c.Set(config.contextKey, decision.Claims)
			c.SetRequest(req.WithContext(core.SetClaims(req.Context(), decision.Claims)))
			return next(c)
		}
	}
}

// DefaultErrorHandler answers with the decision's status and a fixed message.
func DefaultErrorHandler(c echo.Context, decision core.Decision) error {
	status := decision.StatusCode()
	if status == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, core.BearerScheme)
	}
	return c.JSON(status, map[string]string{
		"message": decision.Message(),
	})
}

// GetClaims extracts the JWT claims from the Echo context
func GetClaims[T any](c echo.Context, contextKey string) (T, bool) {
	var zero T
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}

	claims, ok := c.Get(contextKey).(T)
	if !ok {
		return zero, false
	}
	return claims, true
}
