package rhfw

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Mutex is a mutual exclusion lock with scoped acquisition.
// The zero value is unlocked.
type Mutex struct {
	mu sync.Mutex
}

func (m *Mutex) Lock()         { m.mu.Lock() }
func (m *Mutex) Unlock()       { m.mu.Unlock() }
func (m *Mutex) TryLock() bool { return m.mu.TryLock() }

// Locked runs fn with the mutex held and releases it on every exit path,
// panics included.
func (m *Mutex) Locked(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

// semaphoreCapacity bounds how many posts a Semaphore can accumulate.
const semaphoreCapacity = 1 << 30

// Semaphore is a counting semaphore: Post increments the count, Wait blocks
// until it can decrement it.
type Semaphore struct {
	w *semaphore.Weighted
}

func NewSemaphore(initial int) *Semaphore {
	if initial < 0 || initial > semaphoreCapacity {
		fatalf("semaphore initial count %d out of range", initial)
	}
	s := &Semaphore{w: semaphore.NewWeighted(semaphoreCapacity)}
	// the weighted semaphore counts holders; hold everything not yet posted
	if held := semaphoreCapacity - initial; held > 0 {
		if !s.w.TryAcquire(int64(held)) {
			fatalf("semaphore initialisation failed")
		}
	}
	return s
}

// Post increments the count, waking one waiter.
func (s *Semaphore) Post() {
	s.w.Release(1)
}

// Wait blocks until the count is positive and decrements it, or returns the
// context's error.
func (s *Semaphore) Wait(ctx context.Context) error {
	return s.w.Acquire(ctx, 1)
}

// TryWait decrements the count if it is positive.
func (s *Semaphore) TryWait() bool {
	return s.w.TryAcquire(1)
}
