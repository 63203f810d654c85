// Package resource implements reference-counted, lazily loaded handles for
// OS, GPU and audio objects, and the trackers that reload them after a
// context is lost and recreated.
package resource

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// State is the load state of a Shareable.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	}
	fatalf("resource: invalid state %d", int(s))
	return ""
}

var (
	// ErrLoadFailed matches every error returned by a failing Load hook.
	ErrLoadFailed = errors.New("resource: load failed")

	// ErrDestroyed is returned when acquiring or tracking a destroyed resource.
	ErrDestroyed = errors.New("resource: destroyed")
)

// LoadError wraps the error returned by a Load hook.
// errors.Is(err, ErrLoadFailed) holds for every LoadError.
type LoadError struct {
	Kind string
	ID   uuid.UUID
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("resource: loading %s %s: %v", e.Kind, e.ID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoadFailed }

// Hooks create and destroy the underlying handle of a resource.
// They are called with the resource lock held, on the goroutine that caused
// the transition, and never concurrently for the same resource.
type Hooks interface {
	// Load creates the handle. On error the resource stays unloaded.
	Load() error
	// Free destroys the handle. It is only called on a loaded resource.
	Free()
}

// Funcs adapts a pair of functions to Hooks.
type Funcs struct {
	LoadFunc func() error
	FreeFunc func()
}

func (f Funcs) Load() error {
	if f.LoadFunc == nil {
		return nil
	}
	return f.LoadFunc()
}

func (f Funcs) Free() {
	if f.FreeFunc != nil {
		f.FreeFunc()
	}
}

// Resource is the ownership protocol shared by Shareable and every type
// embedding it.
type Resource interface {
	Acquire() error
	Retain()
	Release()
}

type link struct {
	tracker *Tracker
	block   Block
}

// Shareable is a reference-counted handle wrapper. The handle exists if and
// only if the state is StateLoaded.
//
// All methods are safe for concurrent use. Concrete resources embed a
// *Shareable and document which goroutine may load them.
type Shareable struct {
	mu        sync.Mutex
	id        uuid.UUID
	kind      string
	hooks     Hooks
	state     State
	refs      int
	destroyed bool
	links     []link
	observer  Observer
	// loadedBy saw the current load and is the one told about its free.
	loadedBy Observer
}

// Option configures a Shareable at construction.
type Option func(*Shareable)

// WithObserver reports transitions of this resource to o instead of the
// default observer.
func WithObserver(o Observer) Option {
	return func(r *Shareable) {
		r.observer = o
	}
}

// Adopted marks the handle as already open, for wrapping handles produced
// elsewhere (an accepted connection, a window created by the OS).
func Adopted() Option {
	return func(r *Shareable) {
		r.state = StateLoaded
	}
}

// New returns an unloaded resource of the given kind.
func New(kind string, hooks Hooks, opts ...Option) *Shareable {
	if hooks == nil {
		fatalf("resource: %s created without hooks", kind)
	}
	r := &Shareable{
		id:    uuid.New(),
		kind:  kind,
		hooks: hooks,
		state: StateUnloaded,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.state == StateLoaded {
		r.loadedBy = r.obs()
		r.loadedBy.Loaded(r.kind)
	}
	return r
}

func (r *Shareable) ID() uuid.UUID { return r.id }
func (r *Shareable) Kind() string  { return r.kind }

func (r *Shareable) String() string {
	return fmt.Sprintf("%s(%s)", r.kind, r.id.String()[:8])
}

func (r *Shareable) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Shareable) IsLoaded() bool {
	return r.State() == StateLoaded
}

func (r *Shareable) RefCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs
}

func (r *Shareable) IsDestroyed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.destroyed
}

// Acquire takes a reference, loading the handle on the 0->1 transition.
// If loading fails the count is left unchanged and a *LoadError is returned.
func (r *Shareable) Acquire() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return errors.Wrapf(ErrDestroyed, "acquire %s", r)
	}
	if r.refs == 0 {
		if err := r.loadLocked(); err != nil {
			return err
		}
	}
	r.refs++
	return nil
}

// MustAcquire is Acquire for callers that treat a load failure as fatal.
func (r *Shareable) MustAcquire() {
	if err := r.Acquire(); err != nil {
		fatalf("resource: %v", err)
	}
}

// Retain takes an additional reference on a resource that is already held.
// It never loads.
func (r *Shareable) Retain() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs <= 0 {
		fatalf("resource: retain of %s without a held reference", r)
	}
	r.refs++
}

// Release drops a reference, freeing the handle on the 1->0 transition.
func (r *Shareable) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs <= 0 {
		fatalf("resource: release of %s with zero references", r)
	}
	r.refs--
	if r.refs == 0 {
		r.freeLocked()
	}
}

// Load creates the handle without taking a reference. It is a no-op when the
// resource is already loaded.
func (r *Shareable) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return errors.Wrapf(ErrDestroyed, "load %s", r)
	}
	return r.loadLocked()
}

// MustLoad is Load for callers that treat a load failure as fatal.
func (r *Shareable) MustLoad() {
	if err := r.Load(); err != nil {
		fatalf("resource: %v", err)
	}
}

// Free destroys the handle now, regardless of outstanding references.
// It is a no-op when the resource is already unloaded.
func (r *Shareable) Free() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.freeLocked()
}

// Invalidate frees the handle because its owning context went away. The
// reference count is kept so that Restore can bring the handle back.
func (r *Shareable) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateLoaded {
		Logger().Debug("invalidating resource", zap.Stringer("resource", r), zap.Int("refs", r.refs))
	}
	r.freeLocked()
}

// Restore reloads the handle of a resource that is still referenced.
// Unreferenced or destroyed resources are left alone.
func (r *Shareable) Restore() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed || r.refs == 0 {
		return nil
	}
	return r.loadLocked()
}

// Destroy frees the handle and unlinks the resource from every tracker.
// Later acquisitions fail with ErrDestroyed.
func (r *Shareable) Destroy() {
	r.mu.Lock()
	if r.destroyed {
		r.mu.Unlock()
		return
	}
	r.destroyed = true
	r.freeLocked()
	links := r.links
	r.links = nil
	r.mu.Unlock()

	for _, l := range links {
		l.tracker.untrackLinked(l.block)
	}
}

func (r *Shareable) loadLocked() error {
	if r.state == StateLoaded {
		return nil
	}
	if err := r.hooks.Load(); err != nil {
		r.obs().LoadFailed(r.kind)
		Logger().Debug("resource load failed", zap.Stringer("resource", r), zap.Error(err))
		return &LoadError{Kind: r.kind, ID: r.id, Err: err}
	}
	r.state = StateLoaded
	r.loadedBy = r.obs()
	r.loadedBy.Loaded(r.kind)
	return nil
}

func (r *Shareable) freeLocked() {
	if r.state != StateLoaded {
		return
	}
	r.hooks.Free()
	r.state = StateUnloaded
	r.loadedBy.Freed(r.kind)
	r.loadedBy = nil
}

func (r *Shareable) obs() Observer {
	if r.observer != nil {
		return r.observer
	}
	return DefaultObserver()
}

func (r *Shareable) addLink(t *Tracker, b Block) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.destroyed {
		return false
	}
	r.links = append(r.links, link{tracker: t, block: b})
	return true
}

func (r *Shareable) removeLink(t *Tracker, b Block) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.links {
		if l.tracker == t && l.block == b {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return
		}
	}
}

func (r *Shareable) linkCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.links)
}
