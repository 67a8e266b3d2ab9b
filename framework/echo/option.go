package echobearer

import (
	"github.com/labstack/echo/v4"

	"github.com/bearergate/bearergate/core"
)

// Option is a function that configures the middleware
type Option func(*echoMiddlewareConfig)

// WithErrorHandler sets a custom error handler
func WithErrorHandler(handler func(echo.Context, core.Decision) error) Option {
	return func(config *echoMiddlewareConfig) {
		if handler != nil {
			config.errorHandler = handler
		}
	}
}

// WithContextKey sets a custom context key to store claims
func WithContextKey(key string) Option {
	return func(config *echoMiddlewareConfig) {
		if key != "" {
			config.contextKey = key
		}
	}
}

// WithSkipper lets requests for which skipper returns true through unchecked.
func WithSkipper(skipper func(echo.Context) bool) Option {
	return func(config *echoMiddlewareConfig) {
		config.skipper = skipper
	}
}

// WithLogger logs rejected requests with their error code.
func WithLogger(logger core.Logger) Option {
	return func(config *echoMiddlewareConfig) {
		config.logger = logger
	}
}
