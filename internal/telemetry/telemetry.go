// Package telemetry wraps zap into the component-tagged logger the rest
// of the module expects: every call site gets a Logger scoped to one
// named component, mirroring the teacher's log.Printf("[Component] ...")
// convention but as structured fields instead of string prefixes.
package telemetry

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a component-scoped structured logger.
type Logger struct {
	z *zap.Logger
}

// New builds the base logger. Pass "production" for JSON output
// suitable for log aggregation, anything else for human-readable
// console output during local exploration.
func New(env string) (*Logger, error) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	z, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Component scopes subsequent log lines with a "component" field,
// replacing the teacher's "[BlockScanner]"-style prefix.
func (l *Logger) Component(name string) *Logger {
	return &Logger{z: l.z.With(zap.String("component", name))}
}

// With attaches arbitrary structured fields to a derived logger.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{z: l.z.With(fields...)}
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.z.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.z.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.z.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.z.Error(msg, fields...) }

// Sync flushes any buffered log entries; call before process exit.
// Sync commonly errors on stderr/stdout when the destination is a
// terminal — that error is deliberately swallowed, matching zap's own
// documented guidance for CLI programs.
func (l *Logger) Sync() {
	_ = l.z.Sync()
}

// Fatal logs at error level and exits the process with status 1,
// standing in for the teacher's log.Fatalf calls in cmd/engine/main.go.
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.z.Error(msg, fields...)
	_ = l.z.Sync()
	os.Exit(1)
}
