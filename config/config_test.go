package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bearergate/bearergate/core"
)

var allVars = []string{
	"SECRET_KEY", "AUTHSERVER", "JWKS_URI", "JWKS_HTTP_TIMEOUT",
	"JWT_LEEWAY", "LISTEN_ADDR", "LOG_LEVEL",
}

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range allVars {
		t.Setenv(name, "")
	}
}

func TestLoad(t *testing.T) {
	t.Run("it applies defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SECRET_KEY", "very_secret")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, Config{
			SecretKey:       "very_secret",
			JWKSHTTPTimeout: DefaultJWKSHTTPTimeout,
			ListenAddr:      DefaultListenAddr,
			LogLevel:        DefaultLogLevel,
		}, cfg)
	})

	t.Run("it reads every variable", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SECRET_KEY", "very_secret")
		t.Setenv("AUTHSERVER", "https://issuer.example.com/")
		t.Setenv("JWKS_URI", "https://issuer.example.com/keys")
		t.Setenv("JWKS_HTTP_TIMEOUT", "5s")
		t.Setenv("JWT_LEEWAY", "30s")
		t.Setenv("LISTEN_ADDR", ":9000")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, Config{
			SecretKey:       "very_secret",
			AuthServer:      "https://issuer.example.com/",
			JWKSURI:         "https://issuer.example.com/keys",
			JWKSHTTPTimeout: 5 * time.Second,
			Leeway:          30 * time.Second,
			ListenAddr:      ":9000",
			LogLevel:        "debug",
		}, cfg)
		assert.Equal(t, logrus.DebugLevel, cfg.Level())
	})

	t.Run("it requires a key source", func(t *testing.T) {
		clearEnv(t)

		_, err := Load()
		require.Error(t, err)
		assert.Equal(t, core.ErrorCodeConfigInvalid, core.CodeOf(err))
	})

	t.Run("it rejects an unparsable duration", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("SECRET_KEY", "very_secret")
		t.Setenv("JWT_LEEWAY", "soon")

		_, err := Load()
		require.Error(t, err)
		assert.Equal(t, core.ErrorCodeConfigInvalid, core.CodeOf(err))
	})
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		SecretKey:       "very_secret",
		JWKSHTTPTimeout: time.Second,
		LogLevel:        "info",
	}

	testCases := []struct {
		name          string
		mutate        func(*Config)
		expectedError string
	}{
		{
			name:   "a secret alone is enough",
			mutate: func(*Config) {},
		},
		{
			name: "an issuer alone is enough",
			mutate: func(c *Config) {
				c.SecretKey = ""
				c.AuthServer = "http://localhost:8080"
			},
		},
		{
			name: "a JWKS URI alone is enough",
			mutate: func(c *Config) {
				c.SecretKey = ""
				c.JWKSURI = "https://issuer.example.com/jwks.json"
			},
		},
		{
			name:          "no key source",
			mutate:        func(c *Config) { c.SecretKey = "" },
			expectedError: "one of SECRET_KEY, AUTHSERVER or JWKS_URI is required",
		},
		{
			name:          "issuer without scheme",
			mutate:        func(c *Config) { c.AuthServer = "issuer.example.com" },
			expectedError: "AUTHSERVER is not a valid URL",
		},
		{
			name:          "JWKS URI with a foreign scheme",
			mutate:        func(c *Config) { c.JWKSURI = "ftp://issuer.example.com/jwks" },
			expectedError: "JWKS_URI is not a valid URL",
		},
		{
			name:          "negative leeway",
			mutate:        func(c *Config) { c.Leeway = -time.Second },
			expectedError: "JWT_LEEWAY cannot be negative",
		},
		{
			name:          "zero timeout",
			mutate:        func(c *Config) { c.JWKSHTTPTimeout = 0 },
			expectedError: "JWKS_HTTP_TIMEOUT must be positive",
		},
		{
			name:          "unknown log level",
			mutate:        func(c *Config) { c.LogLevel = "loud" },
			expectedError: "LOG_LEVEL is not a valid level",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			cfg := valid
			testCase.mutate(&cfg)

			err := cfg.Validate()
			if testCase.expectedError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), testCase.expectedError)
			assert.Equal(t, core.ErrorCodeConfigInvalid, core.CodeOf(err))
		})
	}
}

func TestConfig_URLs(t *testing.T) {
	cfg := Config{AuthServer: "https://issuer.example.com/tenant/"}

	issuer, err := cfg.IssuerURL()
	require.NoError(t, err)
	assert.Equal(t, "/tenant/", issuer.Path)

	custom, err := cfg.CustomJWKSURL()
	require.NoError(t, err)
	assert.Nil(t, custom)
}
