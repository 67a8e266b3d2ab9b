package bearergate

import (
	"context"
	"net/http"

	"github.com/bearergate/bearergate/config"
	"github.com/bearergate/bearergate/core"
	"github.com/bearergate/bearergate/jwks"
	"github.com/bearergate/bearergate/keys"
)

// LoadKeyMaterial builds the key material described by cfg. When an issuer
// or JWKS URI is configured the RSA keys are fetched once, here; a fetch
// failure is returned and the caller must not start serving.
func LoadKeyMaterial(ctx context.Context, cfg config.Config, logger Logger) (*keys.Material, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []keys.MaterialOption
	if cfg.SecretKey != "" {
		opts = append(opts, keys.WithSecret([]byte(cfg.SecretKey)))
	}

	if cfg.AuthServer != "" || cfg.JWKSURI != "" {
		byKID, err := resolveRSAKeys(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		opts = append(opts, keys.WithRSAKeys(byKID))
	}

	material, err := keys.NewMaterial(opts...)
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeConfigInvalid, "could not build key material", err)
	}

	if logger != nil {
		logger.Info("key material loaded",
			"shared_secret", cfg.SecretKey != "",
			"rsa_keys", len(material.RSAKeys()))
	}

	return material, nil
}

func resolveRSAKeys(ctx context.Context, cfg config.Config, logger Logger) (map[string]keys.SigningKey, error) {
	opts := []jwks.ResolverOption{
		jwks.WithCustomClient(&http.Client{Timeout: cfg.JWKSHTTPTimeout}),
	}

	issuerURL, err := cfg.IssuerURL()
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeConfigInvalid, "AUTHSERVER is not a valid URL", err)
	}
	if issuerURL != nil {
		opts = append(opts, jwks.WithIssuerURL(issuerURL))
	}

	jwksURL, err := cfg.CustomJWKSURL()
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeConfigInvalid, "JWKS_URI is not a valid URL", err)
	}
	if jwksURL != nil {
		opts = append(opts, jwks.WithCustomJWKSURI(jwksURL))
	}

	if logger != nil {
		opts = append(opts, jwks.WithLogger(logger))
	}

	resolver, err := jwks.NewResolver(opts...)
	if err != nil {
		return nil, core.NewValidationError(core.ErrorCodeConfigInvalid, "could not create JWKS resolver", err)
	}

	return resolver.Resolve(ctx)
}
