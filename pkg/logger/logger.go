// Package logger builds the zap logger shared by the server, handlers and
// repositories.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger when production is set and a development
// logger writing to stdout otherwise. level accepts any zapcore level name.
func New(production bool, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var z zap.Config
	if production {
		z = zap.NewProductionConfig()
	} else {
		z = zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stdout"}
	}
	z.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := z.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
