package core

import (
	"context"
	"fmt"
)

// claimsContextKey is the key admitted claims live under in a request context.
type claimsContextKey struct{}

// GetClaims returns the claims an adapter stored for this request, asserted
// to T. It fails with ErrClaimsNotFound when nothing was stored and with a
// claims_not_found ValidationError when the stored value is not a T.
//
//	claims, err := core.GetClaims[*validator.Claims](r.Context())
func GetClaims[T any](ctx context.Context) (T, error) {
	var zero T

	stored := ctx.Value(claimsContextKey{})
	if stored == nil {
		return zero, ErrClaimsNotFound
	}

	claims, ok := stored.(T)
	if !ok {
		return zero, NewValidationError(
			ErrorCodeClaimsNotFound,
			fmt.Sprintf("stored claims are %T, not %T", stored, zero),
			nil,
		)
	}

	return claims, nil
}

// SetClaims returns a copy of ctx carrying claims.
func SetClaims(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// HasClaims reports whether ctx carries claims of any type.
func HasClaims(ctx context.Context) bool {
	return ctx.Value(claimsContextKey{}) != nil
}
