package bearergate

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/bearergate/bearergate/keys"
	"github.com/bearergate/bearergate/validator"
)

const testSecret = "very_secret"

func signHS256(t *testing.T, secret string, sub string, exp time.Time) string {
	t.Helper()

	token := jwt.New()
	require.NoError(t, token.Set(jwt.SubjectKey, sub))
	require.NoError(t, token.Set(jwt.ExpirationKey, exp))

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, []byte(secret)))
	require.NoError(t, err)

	return string(signed)
}

func signRS256(t *testing.T, privateKey *rsa.PrivateKey, kid string, sub string, exp time.Time) string {
	t.Helper()

	key, err := jwk.FromRaw(privateKey)
	require.NoError(t, err)
	require.NoError(t, key.Set(jwk.KeyIDKey, kid))

	token := jwt.New()
	require.NoError(t, token.Set(jwt.SubjectKey, sub))
	require.NoError(t, token.Set(jwt.ExpirationKey, exp))

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256, key))
	require.NoError(t, err)

	return string(signed)
}

func generateRSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	return privateKey
}

func encodedModulus(privateKey *rsa.PrivateKey) string {
	return base64.RawURLEncoding.EncodeToString(privateKey.N.Bytes())
}

func encodedExponent(privateKey *rsa.PrivateKey) string {
	return base64.RawURLEncoding.EncodeToString(big.NewInt(int64(privateKey.E)).Bytes())
}

func secretValidator(t *testing.T) *validator.Validator {
	t.Helper()

	material, err := keys.NewMaterial(keys.WithSecret([]byte(testSecret)))
	require.NoError(t, err)

	v, err := validator.New(validator.WithKeyMaterial(material))
	require.NoError(t, err)

	return v
}

// recordingTracer records span names and attributes on top of the no-op tracer.
type recordingTracer struct {
	noop.Tracer
	spans []*recordingSpan
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	ctx, _ = r.Tracer.Start(ctx, name, opts...)
	span := &recordingSpan{name: name, attributes: map[attribute.Key]attribute.Value{}}
	r.spans = append(r.spans, span)
	return trace.ContextWithSpan(ctx, span), span
}

type recordingSpan struct {
	noop.Span
	name       string
	attributes map[attribute.Key]attribute.Value
	ended      bool
}

func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	for _, attr := range kv {
		s.attributes[attr.Key] = attr.Value
	}
}

func (s *recordingSpan) End(...trace.SpanEndOption) { s.ended = true }

type recordingLogger struct {
	entries []logEntry
}

type logEntry struct {
	level string
	msg   string
	args  []any
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.add("debug", msg, args) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.add("info", msg, args) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.add("warn", msg, args) }
func (l *recordingLogger) Error(msg string, args ...any) { l.add("error", msg, args) }

func (l *recordingLogger) add(level, msg string, args []any) {
	l.entries = append(l.entries, logEntry{level: level, msg: msg, args: args})
}
