package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"

	"github.com/rhfw/rhfw/resource"
)

const bufferKind = "gpu.buffer"

// Buffer is a GPU buffer with a CPU shadow copy of its contents, used to
// recreate it after the context is lost.
type Buffer struct {
	*resource.Shareable

	ctx      *Context
	label    string
	contents []byte
	usage    wgpu.BufferUsage
	buf      *wgpu.Buffer
}

// NewBuffer creates an unloaded buffer tracked by c. The handle is created on
// first acquisition.
func (c *Context) NewBuffer(label string, contents []byte, usage wgpu.BufferUsage) (*Buffer, error) {
	b := &Buffer{
		ctx:      c,
		label:    label,
		contents: alignedCopy(contents),
		usage:    usage | wgpu.BufferUsageCopyDst,
	}
	b.Shareable = resource.New(bufferKind, resource.Funcs{
		LoadFunc: b.create,
		FreeFunc: b.destroy,
	})
	if err := c.track(b.Shareable); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Buffer) Label() string { return b.label }

// Size is the buffer size in bytes, padded to a multiple of four.
func (b *Buffer) Size() uint64 { return uint64(len(b.contents)) }

// Handle returns the WebGPU buffer, or nil while unloaded.
func (b *Buffer) Handle() *wgpu.Buffer { return b.buf }

// Write replaces the start of the buffer contents. The shadow copy is always
// updated; the GPU copy only while loaded.
func (b *Buffer) Write(data []byte) error {
	if len(data) > len(b.contents) {
		return errors.Errorf("gpu: write of %d bytes into %s of %d bytes", len(data), b.label, len(b.contents))
	}
	copy(b.contents, data)
	dev := b.ctx.Device()
	if b.buf == nil || dev == nil {
		return nil
	}
	return dev.queue.WriteBuffer(b.buf, 0, alignedCopy(data))
}

func (b *Buffer) create() error {
	dev := b.ctx.Device()
	if dev == nil {
		return ErrContextLost
	}
	buf, err := dev.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    b.label,
		Contents: b.contents,
		Usage:    b.usage,
	})
	if err != nil {
		return errors.Wrapf(err, "gpu: creating buffer %s", b.label)
	}
	b.buf = buf
	return nil
}

func (b *Buffer) destroy() {
	b.buf.Release()
	b.buf = nil
}

// alignedCopy copies data into a slice padded to a multiple of four bytes,
// as WebGPU requires for buffer sizes and writes.
func alignedCopy(data []byte) []byte {
	size := len(data)
	if size%4 != 0 {
		size += 4 - size%4
	}
	out := make([]byte, size)
	copy(out, data)
	return out
}
