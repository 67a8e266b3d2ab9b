package jwks

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/bearergate/bearergate/core"
)

// ResolverOption is how options for the Resolver are set up.
type ResolverOption func(*Resolver) error

// WithIssuerURL sets the OIDC issuer URL for JWKS discovery.
//
// The issuer URL is used to discover the JWKS endpoint via the
// .well-known/openid-configuration endpoint.
func WithIssuerURL(issuerURL *url.URL) ResolverOption {
	return func(r *Resolver) error {
		if issuerURL == nil {
			return fmt.Errorf("issuer URL cannot be nil")
		}
		r.IssuerURL = issuerURL
		return nil
	}
}

// WithCustomJWKSURI sets a custom JWKS URI for the Resolver.
// When set, the Resolver will fetch JWKS directly from this URI,
// skipping the OIDC discovery process (.well-known/openid-configuration).
func WithCustomJWKSURI(jwksURI *url.URL) ResolverOption {
	return func(r *Resolver) error {
		if jwksURI == nil {
			return fmt.Errorf("custom JWKS URI cannot be nil")
		}
		r.CustomJWKSURI = jwksURI
		return nil
	}
}

// WithCustomClient sets a custom HTTP client for the Resolver.
// If not specified, a default client with a 30s timeout is used.
func WithCustomClient(c *http.Client) ResolverOption {
	return func(r *Resolver) error {
		if c == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		r.Client = c
		return nil
	}
}

// WithLogger sets a logger for fetch progress and dropped keys.
func WithLogger(logger core.Logger) ResolverOption {
	return func(r *Resolver) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		r.logger = logger
		return nil
	}
}
