package rhfw

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrBackendNotAvailable is returned when a backend has no implementation
	// in this build or is not available on the running platform.
	ErrBackendNotAvailable = errors.New("rhfw: backend not available")

	// ErrUnknownPlatform is returned when no platform factory has the requested name.
	ErrUnknownPlatform = errors.New("rhfw: unknown platform")

	// ErrNotMainThread is returned by operations restricted to the
	// application main thread.
	ErrNotMainThread = errors.New("rhfw: not on the application main thread")

	// ErrNotStarted is returned by App operations that need App.Start first.
	ErrNotStarted = errors.New("rhfw: app not started")
)

// fatalf signals a programmer or configuration error.
func fatalf(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}
