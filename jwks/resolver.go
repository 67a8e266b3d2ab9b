package jwks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bearergate/bearergate/core"
	"github.com/bearergate/bearergate/internal/oidc"
	"github.com/bearergate/bearergate/keys"
)

// DefaultTimeout bounds each of the two startup fetches when no custom
// client is supplied.
const DefaultTimeout = 30 * time.Second

// Entry is one member of a JWKS document. Only the members the resolver
// reads are decoded.
type Entry struct {
	Algorithm string `json:"alg"`
	KeyType   string `json:"kty"`
	Use       string `json:"use,omitempty"`
	KeyID     string `json:"kid"`
	N         string `json:"n"`
	E         string `json:"e"`
}

// Set is a JWKS document.
type Set struct {
	Keys []Entry `json:"keys"`
}

// rawSet defers decoding of each entry, so that one malformed member only
// costs that entry.
type rawSet struct {
	Keys []json.RawMessage `json:"keys"`
}

// Resolver discovers an issuer's JWKS and turns its RS256 entries into
// signing keys. It is meant to run once, before a gate starts serving.
type Resolver struct {
	IssuerURL     *url.URL // Required unless CustomJWKSURI is set.
	CustomJWKSURI *url.URL // Optional.
	Client        *http.Client

	logger core.Logger
}

// NewResolver builds and returns a new *Resolver.
// Required options:
//   - WithIssuerURL: OIDC issuer URL for JWKS discovery, or
//   - WithCustomJWKSURI: JWKS URI (skips discovery)
//
// Optional options:
//   - WithCustomClient: Custom HTTP client
//   - WithLogger: Logger for fetch progress and dropped keys
//
// Example:
//
//	resolver, err := jwks.NewResolver(
//	    jwks.WithIssuerURL(issuerURL),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rsaKeys, err := resolver.Resolve(ctx)
func NewResolver(opts ...ResolverOption) (*Resolver, error) {
	r := &Resolver{
		Client: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if r.IssuerURL == nil && r.CustomJWKSURI == nil {
		return nil, fmt.Errorf("issuer URL is required (use WithIssuerURL)")
	}

	return r, nil
}

// Resolve fetches the discovery document, then the JWKS it points to, and
// returns the RS256 keys indexed by kid. Failures are not retried.
func (r *Resolver) Resolve(ctx context.Context) (map[string]keys.SigningKey, error) {
	jwksURI, err := r.jwksURI(ctx)
	if err != nil {
		return nil, err
	}

	if r.logger != nil {
		r.logger.Debug("fetching JWKS", "jwks_uri", jwksURI)
	}

	var raw rawSet
	if err := oidc.GetJSON(ctx, r.Client, jwksURI, &raw); err != nil {
		return nil, core.NewValidationError(
			core.ErrorCodeJWKSFetchFailed,
			"could not fetch JWKS",
			err,
		)
	}

	byKID := r.fold(r.decode(raw))

	if r.logger != nil {
		r.logger.Info("resolved signing keys",
			"jwks_uri", jwksURI,
			"published", len(raw.Keys),
			"accepted", len(byKID))
	}

	return byKID, nil
}

// jwksURI returns the custom JWKS URI or discovers it from the issuer.
func (r *Resolver) jwksURI(ctx context.Context) (string, error) {
	if r.CustomJWKSURI != nil {
		return r.CustomJWKSURI.String(), nil
	}

	if r.logger != nil {
		r.logger.Debug("fetching discovery document", "issuer", r.IssuerURL.String())
	}

	wkEndpoints, err := oidc.GetWellKnownEndpointsFromIssuerURL(ctx, r.Client, *r.IssuerURL)
	if err != nil {
		return "", core.NewValidationError(
			core.ErrorCodeDiscoveryFetchFailed,
			"could not discover JWKS URI",
			err,
		)
	}

	jwksURI, err := url.Parse(wkEndpoints.JWKSURI)
	if err != nil {
		return "", core.NewValidationError(
			core.ErrorCodeDiscoveryFetchFailed,
			"could not parse JWKS URI from well known endpoints",
			err,
		)
	}

	return jwksURI.String(), nil
}

// decode unmarshals each entry on its own and drops the ones that are not
// JWK-shaped objects.
func (r *Resolver) decode(raw rawSet) Set {
	set := Set{Keys: make([]Entry, 0, len(raw.Keys))}

	for i, member := range raw.Keys {
		var entry Entry
		if err := json.Unmarshal(member, &entry); err != nil {
			if r.logger != nil {
				r.logger.Warn("dropping unusable JWKS entry", "index", i, "error", err)
			}
			continue
		}
		set.Keys = append(set.Keys, entry)
	}

	return set
}

// fold keeps the RS256 entries of set. A later entry with the same kid
// replaces an earlier one.
func (r *Resolver) fold(set Set) map[string]keys.SigningKey {
	byKID := make(map[string]keys.SigningKey, len(set.Keys))

	for _, entry := range set.Keys {
		if entry.Algorithm != string(keys.FetchAlgorithm) {
			continue
		}
		if entry.KeyID == "" || entry.N == "" || entry.E == "" {
			continue
		}

		key, err := keys.NewRSAPublic(entry.N, entry.E)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("dropping unusable JWKS entry", "kid", entry.KeyID, "error", err)
			}
			continue
		}

		byKID[entry.KeyID] = key
	}

	return byKID
}
