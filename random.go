package rhfw

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/rhfw/rhfw/resource"
)

const randomKind = "rhfw.random"

// ErrRandomUnloaded is returned when a RandomContext is read while unloaded.
var ErrRandomUnloaded = errors.New("rhfw: random context not loaded")

// RandomContext is a shareable source of cryptographically secure random
// bytes. The backing source is opened on first acquisition. It is safe for
// concurrent use.
type RandomContext struct {
	*resource.Shareable

	mu  Mutex
	src platformRandomSource
}

func NewRandomContext() *RandomContext {
	r := &RandomContext{}
	r.Shareable = resource.New(randomKind, resource.Funcs{
		LoadFunc: r.open,
		FreeFunc: r.close,
	})
	return r
}

func (r *RandomContext) open() error {
	var err error
	r.mu.Locked(func() { err = r.src.open() })
	return err
}

func (r *RandomContext) close() {
	r.mu.Locked(r.src.close)
}

// Next fills p with random bytes.
func (r *RandomContext) Next(p []byte) error {
	var err error
	r.mu.Locked(func() {
		if !r.src.ready() {
			err = ErrRandomUnloaded
			return
		}
		_, err = io.ReadFull(&r.src, p)
	})
	return errors.Wrap(err, "reading random bytes")
}

func (r *RandomContext) Uint32() (uint32, error) {
	var buf [4]byte
	if err := r.Next(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// Float32 returns a value in [0, 1).
func (r *RandomContext) Float32() (float32, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return float32(v>>8) / (1 << 24), nil
}
