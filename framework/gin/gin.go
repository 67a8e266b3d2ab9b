// Package ginbearer adapts the bearer gate to gin.
package ginbearer

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bearergate/bearergate/core"
)

// DefaultClaimsKey is the gin context key claims are stored under.
const DefaultClaimsKey = "jwt"

var (
	ErrMissingClaims = errors.New("no JWT claims found in context")
	ErrInvalidClaims = errors.New("invalid JWT claims type")
)

type config struct {
	errorHandler func(*gin.Context, core.Decision)
	contextKey   string
	logger       core.Logger
}

// New returns a gin middleware that admits a request only when gate allows
// it. Allowed requests carry their claims both in the gin context under the
// claims key and in the request context (see core.GetClaims).
func New(gate *core.Core, opts ...Option) gin.HandlerFunc {
	cfg := &config{
		errorHandler: DefaultErrorHandler,
		contextKey:   DefaultClaimsKey,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *gin.Context) {
		decision := gate.Evaluate(c.Request.Context(), c.Request.Header.Values("Authorization"))
		if !decision.Allowed() {
			if cfg.logger != nil {
				cfg.logger.Warn("JWT validation failed",
					"code", decision.Code(),
					"path", c.FullPath())
			}
			cfg.errorHandler(c, decision)
			c.Abort()
			return
		}

		c.Set(cfg.contextKey, decision.Claims)
		c.Request = c.Request.WithContext(core.SetClaims(c.Request.Context(), decision.Claims))
		c.Next()
	}
}

// DefaultErrorHandler answers with the decision's status and a fixed message.
func DefaultErrorHandler(c *gin.Context, decision core.Decision) {
	status := decision.StatusCode()
	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", core.BearerScheme)
	}
	c.AbortWithStatusJSON(status, gin.H{"message": decision.Message()})
}

// GetClaims returns the claims stored by the middleware. An empty contextKey
// means DefaultClaimsKey.
func GetClaims[T any](c *gin.Context, contextKey string) (T, error) {
	var zero T
	if contextKey == "" {
		contextKey = DefaultClaimsKey
	}

	claims, exists := c.Get(contextKey)
	if !exists {
		return zero, ErrMissingClaims
	}

	typed, ok := claims.(T)
	if !ok {
		return zero, ErrInvalidClaims
	}

	return typed, nil
}
