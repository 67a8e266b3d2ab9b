package core

import (
	"errors"
	"net/http"
)

// Sentinel error classes. Every *ValidationError matches exactly one of them
// with errors.Is, which is how transport adapters pick a status code.
var (
	// ErrJWTMissing is returned when no credential was presented.
	ErrJWTMissing = errors.New("jwt missing")

	// ErrJWTInvalid is returned when a credential was presented but could not
	// be authenticated. This is typically wrapped with a more specific code.
	ErrJWTInvalid = errors.New("jwt invalid")

	// ErrKeyMaterialUnavailable is returned when the gate cannot reach the key
	// material it was configured with. It is a server-side failure.
	ErrKeyMaterialUnavailable = errors.New("key material unavailable")

	// ErrClaimsNotFound is returned when claims cannot be retrieved from context.
	ErrClaimsNotFound = errors.New("claims not found in context")
)

// ErrorCode is a machine-readable reason for a rejected request or a failed
// startup resolution.
type ErrorCode string

// Request-time codes.
const (
	ErrorCodeCredentialMissing    ErrorCode = "credential_missing"
	ErrorCodeCredentialAmbiguous  ErrorCode = "credential_ambiguous"
	ErrorCodeSchemeMalformed      ErrorCode = "scheme_malformed"
	ErrorCodeTokenMalformed       ErrorCode = "token_malformed"
	ErrorCodeAlgorithmUnsupported ErrorCode = "algorithm_unsupported"
	ErrorCodeKeyNotFound          ErrorCode = "key_not_found"
	ErrorCodeInvalidSignature     ErrorCode = "signature_invalid"
	ErrorCodeTokenExpired         ErrorCode = "token_expired"
	ErrorCodeExpiryMissing        ErrorCode = "expiry_missing"
)

// Server-side and startup codes.
const (
	ErrorCodeKeyMaterialUnavailable ErrorCode = "key_material_unavailable"
	ErrorCodeDiscoveryFetchFailed   ErrorCode = "discovery_fetch_failed"
	ErrorCodeJWKSFetchFailed        ErrorCode = "jwks_fetch_failed"
	ErrorCodeConfigInvalid          ErrorCode = "config_invalid"
	ErrorCodeClaimsNotFound         ErrorCode = "claims_not_found"
)

// class returns the sentinel this code is reported under.
func (c ErrorCode) class() error {
	switch c {
	case ErrorCodeCredentialMissing:
		return ErrJWTMissing
	case ErrorCodeCredentialAmbiguous,
		ErrorCodeSchemeMalformed,
		ErrorCodeTokenMalformed,
		ErrorCodeAlgorithmUnsupported,
		ErrorCodeKeyNotFound,
		ErrorCodeInvalidSignature,
		ErrorCodeTokenExpired,
		ErrorCodeExpiryMissing:
		return ErrJWTInvalid
	case ErrorCodeClaimsNotFound:
		return ErrClaimsNotFound
	default:
		return ErrKeyMaterialUnavailable
	}
}

// StatusCode maps the code to the HTTP status a boundary layer should answer
// with. Anything an attacker can influence is a 401.
func (c ErrorCode) StatusCode() int {
	switch c.class() {
	case ErrJWTMissing, ErrJWTInvalid:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError wraps JWT validation errors with additional context.
// It provides structured error information that can be used for
// logging and tracing. Adapters must not write it to a response.
type ValidationError struct {
	// Code is a machine-readable error code (e.g., "token_expired", "signature_invalid")
	Code ErrorCode

	// Message is a human-readable error message
	Message string

	// Details contains the underlying error
	Details error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Details != nil {
		return e.Message + ": " + e.Details.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ValidationError) Unwrap() error {
	return e.Details
}

// Is allows the error to be compared with the sentinel class of its code.
func (e *ValidationError) Is(target error) bool {
	return target == e.Code.class()
}

// NewValidationError creates a new ValidationError with the given code and message.
func NewValidationError(code ErrorCode, message string, details error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// CodeOf returns the code carried by err, or ErrorCodeKeyMaterialUnavailable
// when err is not a *ValidationError. It returns "" for a nil error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code
	}
	return ErrorCodeKeyMaterialUnavailable
}
