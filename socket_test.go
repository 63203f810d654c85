package rhfw

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhfw/rhfw/resource"
)

func TestTCPSockets_Loopback(t *testing.T) {
	server := resource.MustAuto(NewTCPServerSocket("127.0.0.1:0"))
	defer server.Release()
	addr := server.Get().Addr()

	accepted := make(chan *resource.Auto[*TCPSocket], 1)
	go func() {
		s, err := server.Get().Accept()
		if assert.NoError(t, err) {
			accepted <- s
		}
	}()

	client, err := resource.NewAuto(NewTCPSocket(addr, time.Second))
	require.NoError(t, err)
	defer client.Release()

	var held *resource.Auto[*TCPSocket]
	select {
	case held = <-accepted:
	case <-time.After(5 * time.Second):
		t.Fatal("no connection accepted")
	}
	peer := held.Get()
	assert.True(t, peer.IsLoaded(), "accepted sockets are adopted open")
	assert.Equal(t, 1, peer.RefCount())

	_, err = client.Get().Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 4)
	_, err = io.ReadFull(peer, buf)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(buf))

	held.Release()
	assert.False(t, peer.IsLoaded())

	err = peer.Acquire()
	assert.ErrorIs(t, err, ErrAcceptedSocket)
}

func TestTCPSocket_DialFailureIsRecoverable(t *testing.T) {
	server := NewTCPServerSocket("127.0.0.1:0")
	require.NoError(t, server.Acquire())
	addr := server.Addr()
	server.Release()

	s := NewTCPSocket(addr, 200*time.Millisecond)
	err := s.Acquire()
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrLoadFailed)
	assert.False(t, s.IsLoaded())

	_, err = s.Read(make([]byte, 1))
	assert.ErrorIs(t, err, ErrSocketUnloaded)
}

func TestTCPServerSocket_AcceptWhileUnloaded(t *testing.T) {
	_, err := NewTCPServerSocket("127.0.0.1:0").Accept()
	assert.ErrorIs(t, err, ErrSocketUnloaded)
}

func TestTCPServerSocket_Serve(t *testing.T) {
	server := resource.MustAuto(NewTCPServerSocket("127.0.0.1:0"))
	defer server.Release()

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() {
		served <- server.Get().Serve(ctx, func(s *TCPSocket) {
			_, _ = s.Write([]byte("hello"))
		})
	}()

	client := resource.MustAuto(NewTCPSocket(server.Get().Addr(), time.Second))
	buf := make([]byte, 5)
	_, err := io.ReadFull(client.Get(), buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
	client.Release()

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestTCPServerSocket_ServeStopsWhenFreed(t *testing.T) {
	server := NewTCPServerSocket("127.0.0.1:0")
	require.NoError(t, server.Acquire())

	handled := make(chan struct{})
	served := make(chan error, 1)
	go func() {
		served <- server.Serve(context.Background(), func(s *TCPSocket) {
			close(handled)
		})
	}()

	client := resource.MustAuto(NewTCPSocket(server.Addr(), time.Second))
	defer client.Release()
	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		t.Fatal("no connection handled")
	}

	server.Release()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after the server was freed")
	}
}

func TestTCPServerSocket_ServeWhileUnloaded(t *testing.T) {
	err := NewTCPServerSocket("127.0.0.1:0").Serve(context.Background(), func(*TCPSocket) {})
	assert.ErrorIs(t, err, ErrSocketUnloaded)
}
