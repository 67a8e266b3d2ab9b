package core

import "strings"

// BearerScheme is the only accepted authorization scheme. It is matched
// case-sensitively.
const BearerScheme = "Bearer"

// ExtractBearer returns the bearer credential from the values of the
// Authorization header. The header must appear exactly once; a repeated
// header is ambiguous and is treated as no credential at all. The value is
// split on its first space and the credential is returned verbatim.
func ExtractBearer(values []string) (string, error) {
	switch len(values) {
	case 0:
		return "", NewValidationError(ErrorCodeCredentialMissing, "authorization header is missing", nil)
	case 1:
	default:
		return "", NewValidationError(ErrorCodeCredentialAmbiguous, "authorization header must appear exactly once", nil)
	}

	scheme, credential, found := strings.Cut(values[0], " ")
	if !found || scheme != BearerScheme || credential == "" {
		return "", NewValidationError(ErrorCodeSchemeMalformed, "authorization header format must be Bearer {token}", nil)
	}

	return credential, nil
}
