package bearergate

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bearergate/bearergate/config"
	"github.com/bearergate/bearergate/core"
	"github.com/bearergate/bearergate/validator"
)

// newIssuer serves an OIDC discovery document and a JWKS holding the given
// RSA keys as RS256 entries.
func newIssuer(t *testing.T, rsaKeys map[string]*rsa.PrivateKey) *httptest.Server {
	t.Helper()

	var entries []map[string]string
	for kid, privateKey := range rsaKeys {
		entries = append(entries, map[string]string{
			"alg": "RS256",
			"kty": "RSA",
			"use": "sig",
			"kid": kid,
			"n":   encodedModulus(privateKey),
			"e":   encodedExponent(privateKey),
		})
	}
	entries = append(entries, map[string]string{"alg": "HS256", "kty": "oct", "kid": "shared", "k": "c2VjcmV0"})

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/.well-known/openid-configuration":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"issuer":   server.URL + "/",
				"jwks_uri": server.URL + "/.well-known/jwks.json",
			})
		case "/.well-known/jwks.json":
			_ = json.NewEncoder(w).Encode(map[string]any{"keys": entries})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func Test_LoadKeyMaterial_EndToEnd(t *testing.T) {
	k1 := generateRSAKey(t)
	stranger := generateRSAKey(t)
	issuer := newIssuer(t, map[string]*rsa.PrivateKey{"K1": k1})

	cfg := config.Config{
		SecretKey:       testSecret,
		AuthServer:      issuer.URL,
		JWKSHTTPTimeout: 5 * time.Second,
		LogLevel:        "info",
	}

	logger := &recordingLogger{}
	material, err := LoadKeyMaterial(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Len(t, material.RSAKeys(), 1)

	v, err := validator.New(validator.WithKeyMaterial(material), validator.WithAllowedClockSkew(cfg.Leeway))
	require.NoError(t, err)
	middleware, err := New(WithValidator(v))
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("/", middleware.CheckJWT(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))
	server := httptest.NewServer(mux)
	defer server.Close()

	inAnHour := time.Now().Add(time.Hour)

	testCases := []struct {
		name          string
		authorization string
		wantStatus    int
	}{
		{
			name:          "an HS256 token signed with the shared secret",
			authorization: "Bearer " + signHS256(t, testSecret, "user-1", inAnHour),
			wantStatus:    http.StatusOK,
		},
		{
			name:          "an RS256 token signed by a published key",
			authorization: "Bearer " + signRS256(t, k1, "K1", "user-1", inAnHour),
			wantStatus:    http.StatusOK,
		},
		{
			name:          "an RS256 token naming a published kid but signed by another key",
			authorization: "Bearer " + signRS256(t, stranger, "K1", "user-1", inAnHour),
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "an RS256 token naming an unpublished kid",
			authorization: "Bearer " + signRS256(t, k1, "K2", "user-1", inAnHour),
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:       "no Authorization header",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request, err := http.NewRequest(http.MethodGet, server.URL+"/", nil)
			require.NoError(t, err)
			if testCase.authorization != "" {
				request.Header.Set("Authorization", testCase.authorization)
			}

			response, err := server.Client().Do(request)
			require.NoError(t, err)
			defer response.Body.Close()
			body, err := io.ReadAll(response.Body)
			require.NoError(t, err)

			assert.Equal(t, testCase.wantStatus, response.StatusCode)
			if testCase.wantStatus == http.StatusOK {
				assert.Empty(t, body)
			}
		})
	}
}

func Test_LoadKeyMaterial(t *testing.T) {
	t.Run("a shared secret alone needs no network", func(t *testing.T) {
		material, err := LoadKeyMaterial(context.Background(), config.Config{
			SecretKey:       testSecret,
			JWKSHTTPTimeout: time.Second,
			LogLevel:        "info",
		}, nil)
		require.NoError(t, err)

		_, ok := material.Symmetric()
		assert.True(t, ok)
		assert.Empty(t, material.RSAKeys())
	})

	t.Run("a custom JWKS URI skips discovery", func(t *testing.T) {
		issuer := newIssuer(t, map[string]*rsa.PrivateKey{"K1": generateRSAKey(t)})

		material, err := LoadKeyMaterial(context.Background(), config.Config{
			JWKSURI:         issuer.URL + "/.well-known/jwks.json",
			JWKSHTTPTimeout: time.Second,
			LogLevel:        "info",
		}, nil)
		require.NoError(t, err)

		_, ok := material.Symmetric()
		assert.False(t, ok)
		_, ok = material.RSA("K1")
		assert.True(t, ok)
	})

	t.Run("an unreachable issuer fails startup", func(t *testing.T) {
		down := httptest.NewServer(http.NotFoundHandler())
		down.Close()

		_, err := LoadKeyMaterial(context.Background(), config.Config{
			SecretKey:       testSecret,
			AuthServer:      down.URL,
			JWKSHTTPTimeout: time.Second,
			LogLevel:        "info",
		}, nil)
		require.Error(t, err)
		assert.Equal(t, core.ErrorCodeDiscoveryFetchFailed, core.CodeOf(err))
	})

	t.Run("an invalid config is rejected before any fetch", func(t *testing.T) {
		_, err := LoadKeyMaterial(context.Background(), config.Config{}, nil)
		require.Error(t, err)
		assert.Equal(t, core.ErrorCodeConfigInvalid, core.CodeOf(err))
	})
}
