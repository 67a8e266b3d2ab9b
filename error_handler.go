package bearergate

import (
	"errors"
	"net/http"

	"github.com/bearergate/bearergate/core"
)

var (
	// ErrJWTMissing is matched by errors for a request without a credential.
	ErrJWTMissing = core.ErrJWTMissing

	// ErrJWTInvalid is matched by errors for a credential that was rejected.
	ErrJWTInvalid = core.ErrJWTInvalid

	// ErrKeyMaterialUnavailable is matched by errors where the gate itself
	// could not decide.
	ErrKeyMaterialUnavailable = core.ErrKeyMaterialUnavailable
)

// ErrorHandler is a handler which is called when the JWTMiddleware denies a
// request. err is a *core.ValidationError; use errors.Is against ErrJWTMissing,
// ErrJWTInvalid or ErrKeyMaterialUnavailable, or core.CodeOf for the exact
// code. A custom handler must not write the credential into the response.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// DefaultErrorHandler is the default error handler implementation for the
// JWTMiddleware. Missing and invalid credentials get a 401 with a
// WWW-Authenticate challenge; anything else gets a 500. The body is the same
// for every 401 so that callers cannot probe which check failed.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, ErrJWTMissing), errors.Is(err, ErrJWTInvalid):
		w.Header().Set("WWW-Authenticate", core.BearerScheme)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"JWT is invalid."}`))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"Something went wrong while checking the JWT."}`))
	}
}
