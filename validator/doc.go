/*
Package validator verifies bearer JWTs for the gate.

A token is accepted when all of the following hold:

  - its header names alg HS256 or RS256;
  - a key for that alg is present: the shared secret for HS256, or the RSA
    key whose kid matches the header kid for RS256;
  - the signature verifies under that key;
  - its payload carries an exp claim that is not in the past.

No other claim is checked. iss, aud, nbf and iat are carried through to
Claims.Raw untouched.

# Usage

	material, err := keys.NewMaterial(
	    keys.WithSecret([]byte(os.Getenv("SECRET_KEY"))),
	    keys.WithRSAKeys(rsaKeys),
	)
	if err != nil {
	    log.Fatal(err)
	}

	v, err := validator.New(
	    validator.WithKeyMaterial(material),
	)
	if err != nil {
	    log.Fatal(err)
	}

	claims, err := v.Validate(ctx, token)

# Errors

Every rejection is a *core.ValidationError whose Code names the failing
step, for example core.ErrorCodeInvalidSignature or core.ErrorCodeTokenExpired.
A KeyFunc error is reported as core.ErrorCodeKeyMaterialUnavailable.
*/
package validator
