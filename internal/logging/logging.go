// Package logging builds the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger for the given environment. Production mode emits JSON
// to stdout; anything else gets the human-readable development encoder.
func New(environment string) (*zap.Logger, error) {
	if environment == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		return cfg.Build()
	}
	return zap.NewDevelopment()
}

// Must panics when the logger cannot be constructed. Used at process start
// where there is nowhere to report the error yet.
func Must(environment string) *zap.Logger {
	l, err := New(environment)
	if err != nil {
		panic("logging: " + err.Error())
	}
	return l
}
