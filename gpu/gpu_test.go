package gpu

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhfw/rhfw/resource"
)

var errNoAdapter = errors.New("no adapter")

func lostContext() *Context {
	return NewContext("test", func() (*Device, error) {
		return nil, errNoAdapter
	})
}

func TestDecodeImage_ConvertsToRGBA(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 6, 5))
	src.Set(2, 3, color.NRGBA{R: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	rgba, err := DecodeImage(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), rgba.Bounds())
	assert.Equal(t, 4*4, rgba.Stride)
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(0, 0))
}

func TestDecodeImage_RejectsGarbage(t *testing.T) {
	_, err := DecodeImage([]byte("not an image"))
	require.Error(t, err)
}

func TestBuffer_LoadFailsWhileContextLost(t *testing.T) {
	ctx := lostContext()
	b, err := ctx.NewBuffer("vertices", []byte{1, 2, 3}, wgpu.BufferUsageVertex)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), b.Size())
	assert.Equal(t, 1, ctx.Tracker().Len())

	err = b.Acquire()
	assert.ErrorIs(t, err, resource.ErrLoadFailed)
	assert.ErrorIs(t, err, ErrContextLost)
	assert.Equal(t, 0, b.RefCount())
	assert.Nil(t, b.Handle())
}

func TestBuffer_WriteUpdatesShadowCopy(t *testing.T) {
	ctx := lostContext()
	b, err := ctx.NewBuffer("uniforms", make([]byte, 8), wgpu.BufferUsageUniform)
	require.NoError(t, err)

	require.NoError(t, b.Write([]byte{9, 8, 7}))
	assert.Equal(t, []byte{9, 8, 7, 0, 0, 0, 0, 0}, b.contents)

	require.Error(t, b.Write(make([]byte, 9)))
}

func TestContext_OpenFailure(t *testing.T) {
	ctx := lostContext()
	err := ctx.Open()
	assert.ErrorIs(t, err, errNoAdapter)
	assert.Nil(t, ctx.Device())

	// losing a context that never opened is harmless
	ctx.Lose()
}

func TestTexture_RequiresPixels(t *testing.T) {
	ctx := lostContext()
	_, err := ctx.NewTexture("empty", nil)
	require.Error(t, err)

	tex, err := ctx.NewTexture("checker", image.NewRGBA(image.Rect(0, 0, 8, 4)))
	require.NoError(t, err)
	w, h := tex.Size()
	assert.Equal(t, uint32(8), w)
	assert.Equal(t, uint32(4), h)
	assert.ErrorIs(t, tex.Acquire(), ErrContextLost)
}

func TestAlignedCopy(t *testing.T) {
	assert.Len(t, alignedCopy(nil), 0)
	assert.Len(t, alignedCopy(make([]byte, 4)), 4)
	assert.Len(t, alignedCopy(make([]byte, 5)), 8)
}
