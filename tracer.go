package bearergate

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/bearergate/bearergate"
	spanName   = "bearergate.CheckJWT"

	attrAllowed   = "bearergate.allowed"
	attrErrorCode = "bearergate.error_code"
)

// defaultTracer returns the module's tracer from the global provider, which
// delegates to any provider installed later.
func defaultTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
