/*
Package oidc provides the OIDC discovery hop used by the JWKS resolver.

Issuers publish a discovery document at a well-known URL:

	https://issuer.example.com/.well-known/openid-configuration

Only its jwks_uri member is read. The document is fetched with the caller's
*http.Client, so timeouts and transport settings are the caller's choice.

	endpoints, err := oidc.GetWellKnownEndpointsFromIssuerURL(ctx, client, *issuerURL)
	if err != nil {
	    // network failure, non-200 status, invalid JSON, or missing jwks_uri
	}
	jwksURI := endpoints.JWKSURI

This package implements the subset of OpenID Connect Discovery 1.0 needed here:
https://openid.net/specs/openid-connect-discovery-1_0.html
*/
package oidc
