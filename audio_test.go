package rhfw

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhfw/rhfw/resource"
)

func startNullAudio(t *testing.T) *nullAudioManager {
	t.Helper()
	m, err := NewAudioManager(AudioBackendNull)
	require.NoError(t, err)
	require.NoError(t, m.Start(context.Background(), newApp(DefaultConfig())))
	t.Cleanup(func() { _ = m.Close() })
	return m.(*nullAudioManager)
}

func waitDone(t *testing.T, p *Player) {
	t.Helper()
	select {
	case <-p.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("player did not stop")
	}
}

func TestPlayer_StopReleasesClipOnAudioThread(t *testing.T) {
	m := startNullAudio(t)
	clip := NewAudioClip("beep", func() ([]byte, error) { return []byte{1, 2, 3}, nil })
	h := resource.MustAuto(clip)

	var callbackThread uint64
	var refsInCallback int
	p, err := m.Play(h, func(p *Player) {
		callbackThread = currentThreadID()
		refsInCallback = clip.RefCount()
	})
	require.NoError(t, err)
	assert.Equal(t, 2, clip.RefCount())

	h.Release()
	assert.True(t, clip.IsLoaded(), "the player still holds the clip")

	p.Stop()
	waitDone(t, p)
	assert.Equal(t, m.threadID(), callbackThread)
	assert.Equal(t, m.threadID(), p.stoppedOn)
	assert.Equal(t, 1, refsInCallback)
	assert.Equal(t, 0, clip.RefCount())
	assert.False(t, clip.IsLoaded())

	assert.NotPanics(t, p.Stop)
}

func TestAudioManager_CloseStopsPlayers(t *testing.T) {
	m := startNullAudio(t)
	clip := NewAudioClip("loop", func() ([]byte, error) { return []byte{0}, nil })
	h := resource.MustAuto(clip)
	defer h.Release()

	stopped := 0
	p1, err := m.Play(h, func(*Player) { stopped++ })
	require.NoError(t, err)
	p2, err := m.Play(h, func(*Player) { stopped++ })
	require.NoError(t, err)
	assert.Equal(t, 3, clip.RefCount())

	require.NoError(t, m.Close())
	waitDone(t, p1)
	waitDone(t, p2)
	assert.Equal(t, 2, stopped)
	assert.Equal(t, 1, clip.RefCount())

	_, err = m.Play(h, nil)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.Equal(t, 1, clip.RefCount())
}

func TestAudioManager_PlayNeedsStart(t *testing.T) {
	m, err := NewAudioManager(AudioBackendNull)
	require.NoError(t, err)
	h := resource.MustAuto(NewAudioClip("x", func() ([]byte, error) { return nil, nil }))
	defer h.Release()

	_, err = m.Play(h, nil)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestAudioClip_DecodeFailure(t *testing.T) {
	clip := NewAudioClip("broken", func() ([]byte, error) { return nil, errors.New("bad header") })
	_, err := resource.NewAuto(clip)
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrLoadFailed)
	assert.Nil(t, clip.Samples())
}

func TestAudioClipFromAsset(t *testing.T) {
	fs := memoryfs.New()
	require.NoError(t, vfs.WriteFile(fs, "/a.raw", []byte{9, 8, 7}, 0o644))
	asset := NewAssetFile(fs, "/a.raw")

	clip := resource.MustAuto(NewAudioClipFromAsset(asset))
	defer clip.Release()
	assert.Equal(t, []byte{9, 8, 7}, clip.Get().Samples())
	assert.Equal(t, "/a.raw", clip.Get().Name())
	assert.False(t, asset.IsLoaded(), "the asset is only held while decoding")
}

func TestAudioManager_OutlivesStartContext(t *testing.T) {
	m, err := NewAudioManager(AudioBackendNull)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx, newApp(DefaultConfig())))
	defer m.Close()
	cancel()

	h := resource.MustAuto(NewAudioClip("tick", func() ([]byte, error) { return []byte{0}, nil }))
	defer h.Release()
	p, err := m.Play(h, nil)
	require.NoError(t, err)
	p.Stop()
	waitDone(t, p)
}
