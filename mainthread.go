package rhfw

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

var mainThread struct {
	mu       sync.Mutex
	recorded bool
	id       uint64
}

// MarkApplicationMainThread records the calling OS thread as the application
// main thread and locks the calling goroutine to it. Call it once, early in
// main. Calling it again from the same thread is a no-op; from another thread
// it is fatal.
func MarkApplicationMainThread() {
	runtime.LockOSThread()
	id := currentThreadID()

	mainThread.mu.Lock()
	defer mainThread.mu.Unlock()
	if mainThread.recorded {
		if mainThread.id != id {
			fatalf("application main thread already recorded as %d, now %d", mainThread.id, id)
		}
		return
	}
	mainThread.recorded = true
	mainThread.id = id
}

// IsApplicationMainThread reports whether the caller runs on the recorded
// main thread. It is false until MarkApplicationMainThread was called.
func IsApplicationMainThread() bool {
	mainThread.mu.Lock()
	recorded, id := mainThread.recorded, mainThread.id
	mainThread.mu.Unlock()
	return recorded && id == currentThreadID()
}

// requireMainThread guards window and render context calls. Without a
// recorded main thread every caller is accepted.
func requireMainThread(op string) error {
	mainThread.mu.Lock()
	recorded := mainThread.recorded
	mainThread.mu.Unlock()
	if recorded && !IsApplicationMainThread() {
		return errors.Wrap(ErrNotMainThread, op)
	}
	return nil
}

// RequireMainThread is requireMainThread for packages built on top of rhfw.
func RequireMainThread(op string) error {
	return requireMainThread(op)
}

func resetApplicationMainThread() {
	mainThread.mu.Lock()
	defer mainThread.mu.Unlock()
	mainThread.recorded = false
	mainThread.id = 0
}
