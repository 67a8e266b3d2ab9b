package ginbearer

import (
	"github.com/gin-gonic/gin"

	"github.com/bearergate/bearergate/core"
)

// Option defines a functional option for configuring the middleware
type Option func(*config)

// WithErrorHandler sets a custom error handler for the middleware
func WithErrorHandler(handler func(*gin.Context, core.Decision)) Option {
	return func(cfg *config) {
		if handler != nil {
			cfg.errorHandler = handler
		}
	}
}

// WithContextKey sets a custom context key to store claims
func WithContextKey(key string) Option {
	return func(cfg *config) {
		if key != "" {
			cfg.contextKey = key
		}
	}
}

// WithLogger logs rejected requests with their error code.
func WithLogger(logger core.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}
