package rhfw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withMainThread records a dedicated goroutine, locked to its own OS thread,
// as the application main thread. The returned function runs fn on it.
func withMainThread(t *testing.T) func(fn func()) {
	t.Helper()
	resetApplicationMainThread()

	work := make(chan func())
	ready := make(chan struct{})
	go func() {
		MarkApplicationMainThread()
		close(ready)
		for fn := range work {
			fn()
		}
	}()
	<-ready

	t.Cleanup(func() {
		close(work)
		resetApplicationMainThread()
	})
	return func(fn func()) {
		done := make(chan struct{})
		work <- func() {
			defer close(done)
			fn()
		}
		<-done
	}
}

func TestMainThread_UnrecordedAcceptsEveryCaller(t *testing.T) {
	resetApplicationMainThread()

	assert.False(t, IsApplicationMainThread())
	assert.NoError(t, requireMainThread("window"))
}

func TestMainThread_RecordedThreadOnly(t *testing.T) {
	onMain := withMainThread(t)

	var isMain bool
	var err error
	onMain(func() {
		isMain = IsApplicationMainThread()
		err = requireMainThread("window")
	})
	assert.True(t, isMain)
	assert.NoError(t, err)

	assert.False(t, IsApplicationMainThread())
	err = RequireMainThread("window")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotMainThread)
	assert.Contains(t, err.Error(), "window")
}

func TestMainThread_MarkTwiceFromSameThreadIsNoop(t *testing.T) {
	onMain := withMainThread(t)

	onMain(func() {
		assert.NotPanics(t, MarkApplicationMainThread)
		assert.True(t, IsApplicationMainThread())
	})
}

func TestMainThread_MarkFromAnotherThreadIsFatal(t *testing.T) {
	withMainThread(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.Panics(t, MarkApplicationMainThread)
	}()
	<-done
}
