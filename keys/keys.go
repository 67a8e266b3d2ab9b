// Package keys holds the signing-key material a gate verifies tokens against.
//
// A Material is built once at startup and never changes afterwards, so it can
// be shared by reference between any number of concurrent request handlers
// without locking.
package keys

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// FetchAlgorithm is the only JWKS algorithm folded into a Material.
const FetchAlgorithm = jwa.RS256

// Kind tags the variant of a SigningKey.
type Kind int

const (
	KindSymmetric Kind = iota + 1
	KindRSAPublic
)

func (k Kind) String() string {
	switch k {
	case KindSymmetric:
		return "symmetric"
	case KindRSAPublic:
		return "rsa-public"
	default:
		return "unknown"
	}
}

// SigningKey is either a symmetric secret or an RSA public key given by its
// base64url-encoded modulus and exponent. The components are kept verbatim;
// only the verification primitive interprets them.
type SigningKey struct {
	// Modulus is the base64url "n" component of an RSA key.
	Modulus string
	// Exponent is the base64url "e" component of an RSA key.
	Exponent string

	kind   Kind
	secret []byte
	public jwk.Key
}

// NewSymmetric builds an HS256 key from a shared secret. The secret is copied.
func NewSymmetric(secret []byte) (SigningKey, error) {
	if len(secret) == 0 {
		return SigningKey{}, errors.New("symmetric secret cannot be empty")
	}
	return SigningKey{
		kind:   KindSymmetric,
		secret: bytes.Clone(secret),
	}, nil
}

// NewRSAPublic builds an RS256 key from base64url "n" and "e" components.
func NewRSAPublic(modulus, exponent string) (SigningKey, error) {
	if modulus == "" || exponent == "" {
		return SigningKey{}, errors.New("rsa modulus and exponent are required")
	}

	raw, err := json.Marshal(map[string]string{
		jwk.KeyTypeKey: string(jwa.RSA),
		jwk.RSANKey:    modulus,
		jwk.RSAEKey:    exponent,
	})
	if err != nil {
		return SigningKey{}, fmt.Errorf("could not encode rsa components: %w", err)
	}

	public, err := jwk.ParseKey(raw)
	if err != nil {
		return SigningKey{}, fmt.Errorf("could not build rsa public key: %w", err)
	}

	return SigningKey{
		Modulus:  modulus,
		Exponent: exponent,
		kind:     KindRSAPublic,
		public:   public,
	}, nil
}

// Kind returns the variant of the key.
func (k SigningKey) Kind() Kind {
	return k.kind
}

// Algorithm returns the signature algorithm the key is declared for.
func (k SigningKey) Algorithm() jwa.SignatureAlgorithm {
	switch k.kind {
	case KindSymmetric:
		return jwa.HS256
	case KindRSAPublic:
		return jwa.RS256
	default:
		return ""
	}
}

// VerificationKey returns the value handed to the signature primitive:
// the secret bytes for a symmetric key, the jwk.Key for an RSA key.
func (k SigningKey) VerificationKey() any {
	switch k.kind {
	case KindSymmetric:
		return bytes.Clone(k.secret)
	case KindRSAPublic:
		return k.public
	default:
		return nil
	}
}

// Equal reports whether two keys have the same variant and components.
func (k SigningKey) Equal(other SigningKey) bool {
	return k.kind == other.kind &&
		bytes.Equal(k.secret, other.secret) &&
		k.Modulus == other.Modulus &&
		k.Exponent == other.Exponent
}

// Material is the immutable set of keys a gate verifies against: an optional
// symmetric key and a kid-indexed set of RSA public keys.
type Material struct {
	symmetric *SigningKey
	rsaByKID  map[string]SigningKey
}

// MaterialOption configures a Material during construction.
type MaterialOption func(*Material) error

// NewMaterial builds a Material. With no options it holds no keys and every
// token is rejected for lack of a matching key.
func NewMaterial(opts ...MaterialOption) (*Material, error) {
	m := &Material{
		rsaByKID: map[string]SigningKey{},
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("invalid key material: %w", err)
		}
	}

	return m, nil
}

// WithSecret adds the HS256 shared secret.
func WithSecret(secret []byte) MaterialOption {
	return func(m *Material) error {
		key, err := NewSymmetric(secret)
		if err != nil {
			return err
		}
		m.symmetric = &key
		return nil
	}
}

// WithRSAKeys adds RS256 public keys indexed by kid, as produced by the
// JWKS resolver. The map is copied.
func WithRSAKeys(byKID map[string]SigningKey) MaterialOption {
	return func(m *Material) error {
		for kid, key := range byKID {
			if key.kind != KindRSAPublic {
				return fmt.Errorf("key %q is %s, expected %s", kid, key.kind, KindRSAPublic)
			}
			m.rsaByKID[kid] = key
		}
		return nil
	}
}

// Symmetric returns the HS256 key, if configured.
func (m *Material) Symmetric() (SigningKey, bool) {
	if m == nil || m.symmetric == nil {
		return SigningKey{}, false
	}
	return *m.symmetric, true
}

// RSA returns the RS256 key registered under kid.
func (m *Material) RSA(kid string) (SigningKey, bool) {
	if m == nil {
		return SigningKey{}, false
	}
	key, ok := m.rsaByKID[kid]
	return key, ok
}

// RSAKeys returns a copy of the kid-indexed RSA keys.
func (m *Material) RSAKeys() map[string]SigningKey {
	out := make(map[string]SigningKey)
	if m == nil {
		return out
	}
	for kid, key := range m.rsaByKID {
		out[kid] = key
	}
	return out
}

// Empty reports whether the material holds no key at all.
func (m *Material) Empty() bool {
	return m == nil || (m.symmetric == nil && len(m.rsaByKID) == 0)
}
