package rhfw

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// Thread runs a function on its own OS thread. The goroutine is locked to
// the thread for its whole life, so thread-affine handles (audio devices,
// GL contexts) may be used from it.
type Thread struct {
	name    string
	fn      func(ctx context.Context)
	logger  Logger
	cancel  context.CancelFunc
	done    chan struct{}
	id      atomic.Uint64
	running atomic.Bool
	once    sync.Once
}

func NewThread(name string, logger Logger, fn func(ctx context.Context)) *Thread {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Thread{
		name:   name,
		fn:     fn,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func (t *Thread) Name() string { return t.name }

// Start launches the thread. Starting a thread twice is fatal.
func (t *Thread) Start(ctx context.Context) {
	started := false
	t.once.Do(func() { started = true })
	if !started {
		fatalf("thread %s started twice", t.name)
	}

	ctx, t.cancel = context.WithCancel(ctx)
	ready := make(chan struct{})
	t.running.Store(true)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(t.done)
		defer t.running.Store(false)

		t.id.Store(currentThreadID())
		close(ready)
		t.logger.Debugf("thread %s started", t.name)
		t.fn(ctx)
		t.logger.Debugf("thread %s finished", t.name)
	}()
	<-ready
}

// ID is the OS thread id once started.
func (t *Thread) ID() uint64 { return t.id.Load() }

func (t *Thread) IsRunning() bool { return t.running.Load() }

// Stop cancels the thread's context without waiting for it.
func (t *Thread) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Join waits for the thread function to return.
func (t *Thread) Join() {
	<-t.done
}
