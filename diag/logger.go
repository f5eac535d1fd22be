package diag

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the default logger for new contexts.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// SetLogger configures the default logger for new contexts. A nil logger
// restores the no-op default. Contexts already running keep the logger they
// started with.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
