/*
Package core is the transport-agnostic bearer gate.

A Core composes bearer extraction and token validation. Adapters pass it the
values of the Authorization header (or its transport equivalent) and turn the
returned Decision into a response:

	gate, err := core.New(core.WithValidator(v))
	if err != nil {
	    log.Fatal(err)
	}

	decision := gate.Evaluate(ctx, r.Header.Values("Authorization"))
	if !decision.Allowed() {
	    w.WriteHeader(decision.StatusCode())
	    return
	}
	ctx = core.SetClaims(ctx, decision.Claims)

# Errors

Every denial carries a *ValidationError. Its Code names the failing check and
maps to a status: the codes a caller can cause map to 401, while
key_material_unavailable and the startup codes map to 500. The sentinels
ErrJWTMissing, ErrJWTInvalid and ErrKeyMaterialUnavailable group the codes
for errors.Is.

Core does no logging and holds no mutable state, so one instance may serve
any number of goroutines.
*/
package core
