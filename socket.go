package rhfw

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/rhfw/rhfw/resource"
)

const (
	serverSocketKind = "rhfw.tcp.server"
	socketKind       = "rhfw.tcp.socket"
)

var (
	// ErrSocketUnloaded is returned by I/O on a socket that is not open.
	ErrSocketUnloaded = errors.New("rhfw: socket not open")

	// ErrAcceptedSocket is returned when an accepted connection is reloaded
	// after it was closed. Accepted connections cannot be reopened.
	ErrAcceptedSocket = errors.New("rhfw: accepted connection cannot be reopened")
)

// TCPServerSocket listens while held. Loading binds the address; freeing
// closes the listener, which unblocks a pending Accept.
type TCPServerSocket struct {
	*resource.Shareable

	addr string

	mu sync.Mutex
	ln net.Listener
}

func NewTCPServerSocket(addr string) *TCPServerSocket {
	s := &TCPServerSocket{addr: addr}
	s.Shareable = resource.New(serverSocketKind, resource.Funcs{
		LoadFunc: s.listen,
		FreeFunc: s.close,
	})
	return s
}

// Addr is the bound address while loaded, otherwise the requested one.
func (s *TCPServerSocket) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Accept blocks until a client connects. The returned handle holds the only
// reference to the open connection; releasing it closes the connection.
func (s *TCPServerSocket) Accept() (*resource.Auto[*TCPSocket], error) {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln == nil {
		return nil, errors.Wrap(ErrSocketUnloaded, s.addr)
	}
	conn, err := ln.Accept()
	if err != nil {
		return nil, errors.Wrapf(err, "accepting on %s", ln.Addr())
	}
	return resource.NewAuto(adoptTCPSocket(conn))
}

// Serve accepts connections until ctx is done or the server is freed,
// running handler on its own goroutine for each. Both cases return nil.
// The socket handed to handler is released when handler returns.
func (s *TCPServerSocket) Serve(ctx context.Context, handler func(*TCPSocket)) error {
	if !s.IsLoaded() {
		return errors.Wrap(ErrSocketUnloaded, s.addr)
	}
	stop := context.AfterFunc(ctx, func() { s.setAcceptDeadline(time.Now()) })
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()
	for {
		conn, err := s.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.setAcceptDeadline(time.Time{})
				return nil
			}
			if errors.Is(err, net.ErrClosed) || errors.Is(err, ErrSocketUnloaded) {
				return nil
			}
			return err
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer conn.Release()
			handler(conn.Get())
		}()
	}
}

func (s *TCPServerSocket) setAcceptDeadline(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tl, ok := s.ln.(*net.TCPListener); ok {
		_ = tl.SetDeadline(t)
	}
}

func (s *TCPServerSocket) listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "listening on %s", s.addr)
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()
	return nil
}

func (s *TCPServerSocket) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln != nil {
		_ = s.ln.Close()
		s.ln = nil
	}
}

// TCPSocket is a client connection. Loading dials the remote address;
// freeing closes the connection. Sockets are free-threaded.
type TCPSocket struct {
	*resource.Shareable

	addr     string
	timeout  time.Duration
	accepted bool

	mu   sync.Mutex
	conn net.Conn
}

// NewTCPSocket returns an unconnected socket to addr. A zero timeout dials
// without a deadline.
func NewTCPSocket(addr string, timeout time.Duration) *TCPSocket {
	s := &TCPSocket{addr: addr, timeout: timeout}
	s.Shareable = resource.New(socketKind, resource.Funcs{
		LoadFunc: s.dial,
		FreeFunc: s.close,
	})
	return s
}

func adoptTCPSocket(conn net.Conn) *TCPSocket {
	s := &TCPSocket{
		addr:     conn.RemoteAddr().String(),
		accepted: true,
		conn:     conn,
	}
	s.Shareable = resource.New(socketKind, resource.Funcs{
		LoadFunc: s.dial,
		FreeFunc: s.close,
	}, resource.Adopted())
	return s
}

// RemoteAddr is the address of the peer.
func (s *TCPSocket) RemoteAddr() string { return s.addr }

func (s *TCPSocket) Read(p []byte) (int, error) {
	conn, err := s.current()
	if err != nil {
		return 0, err
	}
	return conn.Read(p)
}

func (s *TCPSocket) Write(p []byte) (int, error) {
	conn, err := s.current()
	if err != nil {
		return 0, err
	}
	return conn.Write(p)
}

// SetDeadline bounds blocking reads and writes.
func (s *TCPSocket) SetDeadline(t time.Time) error {
	conn, err := s.current()
	if err != nil {
		return err
	}
	return conn.SetDeadline(t)
}

func (s *TCPSocket) current() (net.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil, errors.Wrap(ErrSocketUnloaded, s.addr)
	}
	return s.conn, nil
}

func (s *TCPSocket) dial() error {
	if s.accepted {
		return errors.Wrap(ErrAcceptedSocket, s.addr)
	}
	d := net.Dialer{Timeout: s.timeout}
	conn, err := d.DialContext(context.Background(), "tcp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "dialing %s", s.addr)
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	return nil
}

func (s *TCPSocket) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
