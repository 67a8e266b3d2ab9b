/*
Package bearergate puts an HTTP handler behind a bearer JWT.

Every request must carry exactly one header of the form

	Authorization: Bearer <compact JWT>

The token is accepted when it is signed with HS256 under the configured shared
secret, or with RS256 under a key the issuer publishes in its JWKS, and when
its exp claim has not passed. Anything else is answered with 401 and a
WWW-Authenticate challenge. A request the gate cannot decide, for example
because no key material is available, is answered with 500.

# Startup

Keys are loaded once, before serving:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

	material, err := bearergate.LoadKeyMaterial(ctx, cfg, logger)
	if err != nil {
	    // The issuer could not be reached. Do not serve.
	    log.Fatal(err)
	}

	v, err := validator.New(
	    validator.WithKeyMaterial(material),
	    validator.WithAllowedClockSkew(cfg.Leeway),
	)
	if err != nil {
	    log.Fatal(err)
	}

	middleware, err := bearergate.New(
	    bearergate.WithValidator(v),
	    bearergate.WithLogger(logger),
	)
	if err != nil {
	    log.Fatal(err)
	}

	http.ListenAndServe(cfg.ListenAddr, middleware.CheckJWT(handler))

Keys are never refreshed. An issuer that rotates its signing key needs the
gate to be restarted.

# Claims

Allowed requests carry the validated claims in their context:

	claims, err := bearergate.GetClaims[*validator.Claims](r.Context())
	if err != nil {
	    http.Error(w, "failed to get claims", http.StatusInternalServerError)
	    return
	}
	fmt.Println(claims.Subject())

# Errors

Denied requests go to the ErrorHandler with a *core.ValidationError. The
DefaultErrorHandler writes the same body for every 401; the error code is
only visible to logs and traces.

# Other frameworks

The gate itself lives in package core and takes no dependency on net/http.
Adapters for gin, echo and gRPC are in the framework directory; build one
core.Core and hand it to each:

	gate, _ := core.New(core.WithValidator(v))
	router.Use(ginbearer.New(gate))

# Logging and tracing

Logger is compatible with log/slog; NewLogrusLogger adapts a logrus logger.
Each checked request opens an OpenTelemetry span named bearergate.CheckJWT
with the attributes bearergate.allowed and bearergate.error_code.
*/
package bearergate
