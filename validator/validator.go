package validator

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/bearergate/bearergate/core"
	"github.com/bearergate/bearergate/keys"
)

// Signature algorithms a token may be signed with.
const (
	HS256 = jwa.HS256 // HMAC using SHA-256, verified with the shared secret
	RS256 = jwa.RS256 // RSASSA-PKCS-v1.5 using SHA-256, verified with a JWKS key
)

// KeyFunc returns the key material tokens are verified against.
type KeyFunc func(context.Context) (*keys.Material, error)

// Validator verifies compact JWTs against a keys.Material. The key is chosen
// from the token's own header: HS256 uses the shared secret, RS256 uses the
// RSA key registered under the header kid.
type Validator struct {
	keyFunc          KeyFunc          // Required.
	allowedClockSkew time.Duration    // Optional.
	now              func() time.Time // Optional.
}

// tokenHeader is the part of the JOSE header used for key selection.
type tokenHeader struct {
	Algorithm string `json:"alg"`
	KeyID     string `json:"kid"`
}

// ValidateToken validates the passed in JWT and returns its *Claims.
func (v *Validator) ValidateToken(ctx context.Context, tokenString string) (any, error) {
	claims, err := v.Validate(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// Validate runs header parsing, key selection, signature verification and
// expiry validation in that order. The first failing step decides the error
// code; nothing is retried.
func (v *Validator) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	header, signature, err := parseHeader(tokenString)
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeTokenMalformed, "could not parse the token header", err)
	}

	alg := jwa.SignatureAlgorithm(header.Algorithm)
	if alg != HS256 && alg != RS256 {
		return nil, core.NewValidationError(
			core.ErrorCodeAlgorithmUnsupported,
			fmt.Sprintf("unsupported signing algorithm %q", header.Algorithm),
			nil,
		)
	}

	material, err := v.keyFunc(ctx)
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeKeyMaterialUnavailable, "error getting the keys from the key func", err)
	}
	if material == nil {
		return nil, core.NewValidationError(core.ErrorCodeKeyMaterialUnavailable, "key func returned no key material", nil)
	}

	key, err := selectKey(material, alg, header.KeyID)
	if err != nil {
		return nil, err
	}

	if !canonicalSegment(signature) {
		return nil, core.NewValidationError(core.ErrorCodeInvalidSignature, "signature is not canonical base64url", nil)
	}

	if _, err := jws.Verify([]byte(tokenString), jws.WithKey(alg, key.VerificationKey())); err != nil {
		return nil, core.NewValidationError(core.ErrorCodeInvalidSignature, "could not verify the token signature", err)
	}

	token, err := jwt.ParseInsecure([]byte(tokenString))
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeTokenMalformed, "could not parse the token claims", err)
	}

	if err := v.validateExpiry(token); err != nil {
		return nil, err
	}

	raw, err := token.AsMap(ctx)
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeTokenMalformed, "could not read the token claims", err)
	}

	return &Claims{
		Expiry: token.Expiration(),
		Raw:    raw,
	}, nil
}

// parseHeader decodes the protected header and also returns the raw
// signature segment.
func parseHeader(tokenString string) (tokenHeader, []byte, error) {
	protected, _, signature, err := jws.SplitCompactString(tokenString)
	if err != nil {
		return tokenHeader{}, nil, err
	}

	decoded, err := base64.RawURLEncoding.DecodeString(string(protected))
	if err != nil {
		return tokenHeader{}, nil, fmt.Errorf("header is not base64url: %w", err)
	}

	var header tokenHeader
	if err := json.Unmarshal(decoded, &header); err != nil {
		return tokenHeader{}, nil, fmt.Errorf("header is not a JSON object: %w", err)
	}

	return header, signature, nil
}

// canonicalSegment reports whether segment is the one encoding of its bytes.
// The unused low bits of the final unpadded base64url character must be zero.
func canonicalSegment(segment []byte) bool {
	decoded, err := base64.RawURLEncoding.Strict().DecodeString(string(segment))
	if err != nil {
		return false
	}
	return base64.RawURLEncoding.EncodeToString(decoded) == string(segment)
}

// selectKey picks the key named by the header. The key's own declared
// algorithm must agree with the header.
func selectKey(material *keys.Material, alg jwa.SignatureAlgorithm, kid string) (keys.SigningKey, error) {
	var (
		key keys.SigningKey
		ok  bool
	)

	switch alg {
	case HS256:
		key, ok = material.Symmetric()
		if !ok {
			return keys.SigningKey{}, core.NewValidationError(core.ErrorCodeKeyNotFound, "no shared secret is configured for HS256", nil)
		}
	case RS256:
		if kid == "" {
			return keys.SigningKey{}, core.NewValidationError(core.ErrorCodeKeyNotFound, "RS256 token has no kid", nil)
		}
		key, ok = material.RSA(kid)
		if !ok {
			return keys.SigningKey{}, core.NewValidationError(core.ErrorCodeKeyNotFound, fmt.Sprintf("no RSA key with kid %q", kid), nil)
		}
	}

	if key.Algorithm() != alg {
		return keys.SigningKey{}, core.NewValidationError(
			core.ErrorCodeKeyNotFound,
			fmt.Sprintf("key is declared for %s, token specified %s", key.Algorithm(), alg),
			nil,
		)
	}

	return key, nil
}

// validateExpiry requires exp and rejects the token once the current time,
// less the allowed skew, is after it.
func (v *Validator) validateExpiry(token jwt.Token) error {
	if _, ok := token.Get(jwt.ExpirationKey); !ok {
		return core.NewValidationError(core.ErrorCodeExpiryMissing, "token has no exp claim", nil)
	}

	if v.now().Add(-v.allowedClockSkew).After(token.Expiration()) {
		return core.NewValidationError(core.ErrorCodeTokenExpired, "token is expired", nil)
	}

	return nil
}
