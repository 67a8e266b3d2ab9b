package core

import "net/http"

// Decision is the outcome of evaluating one request.
type Decision struct {
	// Claims holds the validated claims when the request was allowed.
	Claims any

	// Err is nil when the request was allowed.
	Err error
}

// Allow builds an allowing decision carrying the validated claims.
func Allow(claims any) Decision {
	return Decision{Claims: claims}
}

// Deny builds a denying decision.
func Deny(err error) Decision {
	if err == nil {
		err = NewValidationError(ErrorCodeKeyMaterialUnavailable, "denied without a reason", nil)
	}
	return Decision{Err: err}
}

// Allowed reports whether the request was authenticated.
func (d Decision) Allowed() bool {
	return d.Err == nil
}

// Code returns the error code of a denying decision, or "" when allowed.
func (d Decision) Code() ErrorCode {
	return CodeOf(d.Err)
}

// StatusCode returns the HTTP status a host router should use: 200 when
// allowed, 401 for anything the caller controls, 500 for server-side failures.
func (d Decision) StatusCode() int {
	if d.Allowed() {
		return http.StatusOK
	}
	return d.Code().StatusCode()
}

// Response bodies for denied requests. Neither names the error code.
const (
	MessageJWTInvalid = "JWT is invalid."
	MessageInternal   = "Something went wrong while checking the JWT."
)

// Message returns the client-facing message for a denying decision.
func (d Decision) Message() string {
	switch d.StatusCode() {
	case http.StatusOK:
		return ""
	case http.StatusUnauthorized:
		return MessageJWTInvalid
	default:
		return MessageInternal
	}
}
