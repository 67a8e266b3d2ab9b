package oidc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// WellKnownPath is appended to the issuer path to find the discovery document.
const WellKnownPath = ".well-known/openid-configuration"

// maxDocumentSize bounds discovery and JWKS documents.
const maxDocumentSize = 1 << 20

// WellKnownEndpoints holds the well known OIDC endpoints
type WellKnownEndpoints struct {
	JWKSURI string `json:"jwks_uri"`
}

// GetWellKnownEndpointsFromIssuerURL gets the well known endpoints for the
// passed in issuer url
func GetWellKnownEndpointsFromIssuerURL(
	ctx context.Context,
	httpClient *http.Client,
	issuerURL url.URL,
) (*WellKnownEndpoints, error) {
	issuerURL.Path = path.Join(issuerURL.Path, WellKnownPath)

	var wkEndpoints WellKnownEndpoints
	if err := GetJSON(ctx, httpClient, issuerURL.String(), &wkEndpoints); err != nil {
		return nil, fmt.Errorf("could not fetch well-known endpoints: %w", err)
	}

	if wkEndpoints.JWKSURI == "" {
		return nil, errors.New("well-known endpoints do not contain a jwks_uri")
	}

	return &wkEndpoints, nil
}

// GetJSON issues a GET request and decodes a JSON body of at most 1 MiB into v.
// Any status other than 200 is an error.
func GetJSON(ctx context.Context, httpClient *http.Client, uri string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, uri)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxDocumentSize)).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}

	return nil
}
