// Package enginelog wires a single *zap.Logger for the whole engine.
// Grounded on theRebelliousNerd-codenerd's internal/logging, which wraps
// zap behind a small package-level New/Sync so every subsystem logs through
// one sink with consistent fields.
package enginelog

import "go.uber.org/zap"

// New builds the engine's production logger: JSON-encoded, info level by
// default. Tests should use zap.NewNop() or zaptest instead of this.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Nop returns a no-op logger, for tests and tools that don't care about
// log output.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// WithComponent returns a child logger tagged with the owning component,
// e.g. enginelog.WithComponent(log, "worldgen").
func WithComponent(log *zap.Logger, component string) *zap.Logger {
	return log.With(zap.String("component", component))
}
