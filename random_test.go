package rhfw

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhfw/rhfw/resource"
)

func TestRandomContext_OpensWhileHeld(t *testing.T) {
	r := NewRandomContext()
	assert.ErrorIs(t, r.Next(make([]byte, 4)), ErrRandomUnloaded)

	h, err := resource.NewAuto(r)
	require.NoError(t, err)
	assert.True(t, r.IsLoaded())

	buf := make([]byte, 64)
	require.NoError(t, h.Get().Next(buf))
	assert.NotEqual(t, make([]byte, 64), buf)

	h.Release()
	assert.False(t, r.IsLoaded())
	assert.ErrorIs(t, r.Next(buf), ErrRandomUnloaded)
}

func TestRandomContext_Float32Range(t *testing.T) {
	r := NewRandomContext()
	h := resource.MustAuto(r)
	defer h.Release()

	for i := 0; i < 1000; i++ {
		f, err := r.Float32()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, f, float32(0))
		assert.Less(t, f, float32(1))
	}
}

func TestRandomContext_SharedAcrossGoroutines(t *testing.T) {
	r := NewRandomContext()
	h := resource.MustAuto(r)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		clone := h.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer clone.Release()
			for j := 0; j < 100; j++ {
				_, err := clone.Get().Uint32()
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, r.RefCount())
	h.Release()
	assert.False(t, r.IsLoaded())
}
