//go:build !unix

package rhfw

import (
	"crypto/rand"
	"io"
)

type platformRandomSource = cryptoRandomSource

// cryptoRandomSource draws from the operating system generator through
// crypto/rand where no random device file exists.
type cryptoRandomSource struct {
	r io.Reader
}

func (s *cryptoRandomSource) open() error {
	s.r = rand.Reader
	return nil
}

func (s *cryptoRandomSource) close() {
	s.r = nil
}

func (s *cryptoRandomSource) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, io.ErrClosedPipe
	}
	return s.r.Read(p)
}

func (s *cryptoRandomSource) ready() bool { return s.r != nil }
