package resource

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the resource package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the resource package's logger.
// This must be called before any resource is created.
func SetLogger(l *zap.Logger) {
	logger = l
}

// fatalf reports a programmer error and panics with the formatted message.
func fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	Logger().Error(msg)
	panic(msg)
}
