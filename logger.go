package bearergate

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bearergate/bearergate/core"
)

// Logger is the slog-shaped logging interface used across the module.
// *slog.Logger satisfies it directly.
type Logger = core.Logger

// NewLogrusLogger returns a Logger adapter for logrus.FieldLogger.
// Key/value pairs become logrus fields.
func NewLogrusLogger(l logrus.FieldLogger) Logger {
	return &logrusLoggerAdapter{l}
}

type logrusLoggerAdapter struct{ l logrus.FieldLogger }

func (a *logrusLoggerAdapter) Debug(msg string, args ...any) { a.with(args).Debug(msg) }
func (a *logrusLoggerAdapter) Info(msg string, args ...any)  { a.with(args).Info(msg) }
func (a *logrusLoggerAdapter) Warn(msg string, args ...any)  { a.with(args).Warn(msg) }
func (a *logrusLoggerAdapter) Error(msg string, args ...any) { a.with(args).Error(msg) }

func (a *logrusLoggerAdapter) with(args []any) logrus.FieldLogger {
	if len(args) == 0 {
		return a.l
	}
	return a.l.WithFields(toFields(args))
}

// toFields pairs up args the way log/slog does. A trailing value without a
// key is kept under "!BADKEY".
func toFields(args []any) logrus.Fields {
	fields := make(logrus.Fields, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		fields[key] = args[i+1]
	}
	return fields
}
