package validator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bearergate/bearergate/keys"
)

// Option is how options for the Validator are set up.
// Options return errors to enable validation during construction.
type Option func(*Validator) error

// New sets up a new Validator.
//
// Exactly one source of keys is required: WithKeyMaterial or WithKeyFunc.
//
// Example:
//
//	material, _ := keys.NewMaterial(keys.WithSecret([]byte(secret)))
//	v, err := validator.New(
//	    validator.WithKeyMaterial(material),
//	)
func New(opts ...Option) (*Validator, error) {
	v := &Validator{
		now: time.Now,
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if v.keyFunc == nil {
		return nil, errors.New("key material is required (use WithKeyMaterial or WithKeyFunc)")
	}

	return v, nil
}

// WithKeyMaterial sets the fixed key material tokens are verified against.
func WithKeyMaterial(material *keys.Material) Option {
	return func(v *Validator) error {
		if material == nil {
			return errors.New("key material cannot be nil")
		}
		if v.keyFunc != nil {
			return errors.New("key source already set")
		}
		v.keyFunc = func(context.Context) (*keys.Material, error) {
			return material, nil
		}
		return nil
	}
}

// WithKeyFunc sets the function that provides the key material.
//
// An error from keyFunc rejects the request as key_material_unavailable,
// which adapters answer with a server error rather than a 401.
func WithKeyFunc(keyFunc KeyFunc) Option {
	return func(v *Validator) error {
		if keyFunc == nil {
			return errors.New("keyFunc cannot be nil")
		}
		if v.keyFunc != nil {
			return errors.New("key source already set")
		}
		v.keyFunc = keyFunc
		return nil
	}
}

// WithAllowedClockSkew sets the leeway applied to the exp claim.
// If not set, the default is 0 (no clock skew allowed).
func WithAllowedClockSkew(skew time.Duration) Option {
	return func(v *Validator) error {
		if skew < 0 {
			return errors.New("clock skew cannot be negative")
		}
		v.allowedClockSkew = skew
		return nil
	}
}

// WithClock overrides the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) error {
		if now == nil {
			return errors.New("clock cannot be nil")
		}
		v.now = now
		return nil
	}
}
