//go:build unix

package rhfw

import (
	"os"

	"github.com/pkg/errors"
)

const randomDevice = "/dev/urandom"

type platformRandomSource = deviceRandomSource

// deviceRandomSource reads the kernel random device.
type deviceRandomSource struct {
	f *os.File
}

func (s *deviceRandomSource) open() error {
	f, err := os.Open(randomDevice)
	if err != nil {
		return errors.Wrapf(err, "opening %s", randomDevice)
	}
	s.f = f
	return nil
}

func (s *deviceRandomSource) close() {
	if s.f != nil {
		_ = s.f.Close()
		s.f = nil
	}
}

func (s *deviceRandomSource) Read(p []byte) (int, error) {
	if s.f == nil {
		return 0, os.ErrClosed
	}
	return s.f.Read(p)
}

func (s *deviceRandomSource) ready() bool { return s.f != nil }
