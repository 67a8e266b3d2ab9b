/*
Package jwks resolves an issuer's RSA signing keys for the gate.

Resolution is two HTTP hops, performed once at startup:

 1. GET <issuer>/.well-known/openid-configuration and read jwks_uri.
 2. GET <jwks_uri> and keep the entries whose alg is RS256.

The result is a kid-indexed map of keys.SigningKey that is folded into a
keys.Material. Entries with another algorithm, or without kid, n or e, are
dropped. When two entries share a kid the later one wins.

# Usage

	issuerURL, _ := url.Parse("https://issuer.example.com/")

	resolver, err := jwks.NewResolver(
	    jwks.WithIssuerURL(issuerURL),
	    jwks.WithCustomClient(&http.Client{Timeout: 10 * time.Second}),
	)
	if err != nil {
	    log.Fatal(err)
	}

	rsaKeys, err := resolver.Resolve(ctx)
	if err != nil {
	    // discovery_fetch_failed or jwks_fetch_failed: do not start serving.
	    log.Fatal(err)
	}

	material, err := keys.NewMaterial(keys.WithRSAKeys(rsaKeys))

# Refresh

There is none. Keys published by the issuer after startup are unknown to the
gate until the process restarts, and a key the issuer withdraws keeps being
accepted until then.
*/
package jwks
