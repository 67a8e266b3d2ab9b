package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	t.Run("it formats message and details", func(t *testing.T) {
		err := NewValidationError(ErrorCodeInvalidSignature, "signature is invalid", errors.New("crypto/rsa: verification error"))
		assert.Equal(t, "signature is invalid: crypto/rsa: verification error", err.Error())
	})

	t.Run("it formats the message alone", func(t *testing.T) {
		err := NewValidationError(ErrorCodeTokenExpired, "token is expired", nil)
		assert.Equal(t, "token is expired", err.Error())
	})

	t.Run("it unwraps details", func(t *testing.T) {
		details := errors.New("details")
		err := NewValidationError(ErrorCodeTokenMalformed, "token is malformed", details)
		assert.ErrorIs(t, err, details)
	})

	t.Run("it survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", NewValidationError(ErrorCodeKeyNotFound, "no key", nil))
		assert.ErrorIs(t, err, ErrJWTInvalid)
		assert.Equal(t, ErrorCodeKeyNotFound, CodeOf(err))
	})
}

func TestErrorCode_Classes(t *testing.T) {
	testCases := []struct {
		code       ErrorCode
		wantClass  error
		wantStatus int
	}{
		{ErrorCodeCredentialMissing, ErrJWTMissing, http.StatusUnauthorized},
		{ErrorCodeCredentialAmbiguous, ErrJWTInvalid, http.StatusUnauthorized},
		{ErrorCodeSchemeMalformed, ErrJWTInvalid, http.StatusUnauthorized},
		{ErrorCodeTokenMalformed, ErrJWTInvalid, http.StatusUnauthorized},
		{ErrorCodeAlgorithmUnsupported, ErrJWTInvalid, http.StatusUnauthorized},
		{ErrorCodeKeyNotFound, ErrJWTInvalid, http.StatusUnauthorized},
		{ErrorCodeInvalidSignature, ErrJWTInvalid, http.StatusUnauthorized},
		{ErrorCodeTokenExpired, ErrJWTInvalid, http.StatusUnauthorized},
		{ErrorCodeExpiryMissing, ErrJWTInvalid, http.StatusUnauthorized},
		{ErrorCodeKeyMaterialUnavailable, ErrKeyMaterialUnavailable, http.StatusInternalServerError},
		{ErrorCodeDiscoveryFetchFailed, ErrKeyMaterialUnavailable, http.StatusInternalServerError},
		{ErrorCodeJWKSFetchFailed, ErrKeyMaterialUnavailable, http.StatusInternalServerError},
		{ErrorCodeConfigInvalid, ErrKeyMaterialUnavailable, http.StatusInternalServerError},
	}

	for _, testCase := range testCases {
		t.Run(string(testCase.code), func(t *testing.T) {
			err := NewValidationError(testCase.code, "message", nil)
			assert.ErrorIs(t, err, testCase.wantClass)
			assert.Equal(t, testCase.wantStatus, testCase.code.StatusCode())
		})
	}
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
	assert.Equal(t, ErrorCodeKeyMaterialUnavailable, CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCodeTokenExpired, CodeOf(NewValidationError(ErrorCodeTokenExpired, "expired", nil)))
}
