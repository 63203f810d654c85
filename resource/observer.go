package resource

import "sync/atomic"

// Observer is notified of load state transitions.
// Implementations must be safe for concurrent use.
type Observer interface {
	Loaded(kind string)
	Freed(kind string)
	LoadFailed(kind string)
}

type nopObserver struct{}

func (nopObserver) Loaded(string)     {}
func (nopObserver) Freed(string)      {}
func (nopObserver) LoadFailed(string) {}

var observerPtr atomic.Pointer[Observer]

func init() {
	SetDefaultObserver(nil)
}

// SetDefaultObserver sets the observer used by resources created without
// WithObserver. Pass nil to restore the no-op observer.
func SetDefaultObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	observerPtr.Store(&o)
}

// DefaultObserver returns the current default observer. Never nil.
func DefaultObserver() Observer {
	return *observerPtr.Load()
}
