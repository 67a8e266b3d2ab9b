// Package config loads the gate's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"

	"github.com/bearergate/bearergate/core"
)

// Defaults applied when the corresponding variable is unset.
const (
	DefaultJWKSHTTPTimeout = 30 * time.Second
	DefaultListenAddr      = ":8000"
	DefaultLogLevel        = "info"
)

// Config holds the gate's settings. At least one of SecretKey, AuthServer or
// JWKSURI must be set.
type Config struct {
	// SecretKey is the HS256 shared secret. ENV: SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`
	// AuthServer is the OIDC issuer URL used for discovery. ENV: AUTHSERVER
	AuthServer string `env:"AUTHSERVER"`
	// JWKSURI skips discovery and fetches this JWKS directly. ENV: JWKS_URI
	JWKSURI string `env:"JWKS_URI"`
	// JWKSHTTPTimeout bounds each startup fetch. ENV: JWKS_HTTP_TIMEOUT
	JWKSHTTPTimeout time.Duration `env:"JWKS_HTTP_TIMEOUT,default=30s"`
	// Leeway is the clock skew allowed on exp. ENV: JWT_LEEWAY
	Leeway time.Duration `env:"JWT_LEEWAY,default=0s"`
	// ListenAddr is where the demo host listens. ENV: LISTEN_ADDR
	ListenAddr string `env:"LISTEN_ADDR,default=:8000"`
	// LogLevel is a logrus level name. ENV: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL,default=info"`
}

// Load decodes Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, core.NewValidationError(core.ErrorCodeConfigInvalid, "could not decode environment", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.JWKSHTTPTimeout == 0 {
		c.JWKSHTTPTimeout = DefaultJWKSHTTPTimeout
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate reports the first problem with c as a config_invalid error.
func (c Config) Validate() error {
	if c.SecretKey == "" && c.AuthServer == "" && c.JWKSURI == "" {
		return invalid("one of SECRET_KEY, AUTHSERVER or JWKS_URI is required", nil)
	}
	if c.AuthServer != "" {
		if _, err := parseHTTPURL(c.AuthServer); err != nil {
			return invalid("AUTHSERVER is not a valid URL", err)
		}
	}
	if c.JWKSURI != "" {
		if _, err := parseHTTPURL(c.JWKSURI); err != nil {
			return invalid("JWKS_URI is not a valid URL", err)
		}
	}
	if c.JWKSHTTPTimeout <= 0 {
		return invalid("JWKS_HTTP_TIMEOUT must be positive", nil)
	}
	if c.Leeway < 0 {
		return invalid("JWT_LEEWAY cannot be negative", nil)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return invalid("LOG_LEVEL is not a valid level", err)
	}
	return nil
}

// IssuerURL returns AuthServer parsed, or nil if it is unset.
func (c Config) IssuerURL() (*url.URL, error) {
	if c.AuthServer == "" {
		return nil, nil
	}
	return parseHTTPURL(c.AuthServer)
}

// CustomJWKSURL returns JWKSURI parsed, or nil if it is unset.
func (c Config) CustomJWKSURL() (*url.URL, error) {
	if c.JWKSURI == "" {
		return nil, nil
	}
	return parseHTTPURL(c.JWKSURI)
}

// Level returns LogLevel as a logrus level, falling back to info.
func (c Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func parseHTTPURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("missing host")
	}
	return u, nil
}

func invalid(msg string, err error) error {
	return core.NewValidationError(core.ErrorCodeConfigInvalid, msg, err)
}
