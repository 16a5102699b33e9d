package component

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the component package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// SetLogger configures the component package's logger.
// Pass nil to restore the no-op logger.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}

var (
	warnHandler   func(msg string)
	warnHandlerMu sync.RWMutex
)

// SetWarnHandler routes package diagnostics, and those of every instance
// using the default Warn collaborator, to fn. Pass nil to restore the
// logger.
func SetWarnHandler(fn func(msg string)) {
	warnHandlerMu.Lock()
	defer warnHandlerMu.Unlock()
	warnHandler = fn
}

// defaultWarn is the diagnostic sink used when none is configured.
func defaultWarn(msg string) {
	warnHandlerMu.RLock()
	fn := warnHandler
	warnHandlerMu.RUnlock()
	if fn != nil {
		fn(msg)
		return
	}
	Logger().Warn(msg)
}
