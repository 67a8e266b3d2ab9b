package bearergate

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bearergate/bearergate/core"
)

// JWTMiddleware gates an http.Handler behind a bearer JWT.
type JWTMiddleware struct {
	core                *core.Core
	errorHandler        ErrorHandler
	validateOnOptions   bool
	exclusionURLHandler ExclusionURLHandler
	logger              Logger
	tracer              trace.Tracer

	// Used during construction only.
	validator core.Validator
}

// ExclusionURLHandler is a function that takes in a http.Request and returns
// true if the request should be excluded from JWT validation.
type ExclusionURLHandler func(r *http.Request) bool

// New constructs a new JWTMiddleware instance with the supplied options.
// Either WithValidator or WithCore is required.
//
// Example:
//
//	middleware, err := bearergate.New(
//	    bearergate.WithValidator(v),
//	    bearergate.WithLogger(bearergate.NewLogrusLogger(logrus.StandardLogger())),
//	)
//	if err != nil {
//	    log.Fatalf("failed to create middleware: %v", err)
//	}
func New(opts ...Option) (*JWTMiddleware, error) {
	m := &JWTMiddleware{
		validateOnOptions: true,
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if m.core == nil {
		if m.validator == nil {
			return nil, fmt.Errorf("invalid middleware configuration: %w", ErrValidatorNil)
		}
		c, err := core.New(core.WithValidator(m.validator))
		if err != nil {
			return nil, fmt.Errorf("failed to create core: %w", err)
		}
		m.core = c
	}

	if m.errorHandler == nil {
		m.errorHandler = DefaultErrorHandler
	}
	if m.tracer == nil {
		m.tracer = defaultTracer()
	}

	return m, nil
}

// GetClaims retrieves claims from the context with type safety using generics.
//
// Example:
//
//	claims, err := bearergate.GetClaims[*validator.Claims](r.Context())
//	if err != nil {
//	    http.Error(w, "failed to get claims", http.StatusInternalServerError)
//	    return
//	}
//	fmt.Println(claims.Subject())
func GetClaims[T any](ctx context.Context) (T, error) {
	return core.GetClaims[T](ctx)
}

// MustGetClaims retrieves claims from the context or panics.
// Use only when you are certain claims exist (e.g., after middleware has run).
func MustGetClaims[T any](ctx context.Context) T {
	claims, err := core.GetClaims[T](ctx)
	if err != nil {
		panic(err)
	}
	return claims
}

// HasClaims checks if claims exist in the context.
func HasClaims(ctx context.Context) bool {
	return core.HasClaims(ctx)
}

// CheckJWT is the main JWTMiddleware function which performs the main logic. It
// is passed a http.Handler which will be called if the JWT passes validation.
func (m *JWTMiddleware) CheckJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.exclusionURLHandler != nil && m.exclusionURLHandler(r) {
			if m.logger != nil {
				m.logger.Debug("skipping JWT validation for excluded URL",
					"method", r.Method,
					"path", r.URL.Path)
			}
			next.ServeHTTP(w, r)
			return
		}
		if !m.validateOnOptions && r.Method == http.MethodOptions {
			if m.logger != nil {
				m.logger.Debug("skipping JWT validation for OPTIONS request")
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx, span := m.tracer.Start(r.Context(), spanName, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		decision := m.core.Evaluate(ctx, r.Header.Values("Authorization"))
		span.SetAttributes(attribute.Bool(attrAllowed, decision.Allowed()))

		if !decision.Allowed() {
			code := decision.Code()
			span.SetAttributes(attribute.String(attrErrorCode, string(code)))

			if decision.StatusCode() >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, string(code))
				if m.logger != nil {
					m.logger.Error("JWT check could not complete",
						"code", code,
						"method", r.Method,
						"path", r.URL.Path)
				}
			} else if m.logger != nil {
				m.logger.Warn("JWT validation failed",
					"code", code,
					"method", r.Method,
					"path", r.URL.Path)
			}

			m.errorHandler(w, r, decision.Err)
			return
		}

		if m.logger != nil {
			m.logger.Debug("JWT validation successful, setting claims in context")
		}
		next.ServeHTTP(w, r.WithContext(core.SetClaims(ctx, decision.Claims)))
	})
}
