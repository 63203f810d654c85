package rhfw

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhfw/rhfw/resource"
)

func TestAssetFile_ReadsWhileHeld(t *testing.T) {
	fs := memoryfs.New()
	require.NoError(t, vfs.WriteFile(fs, "/shader.wgsl", []byte("fn main() {}"), 0o644))

	a := NewAssetFile(fs, "/shader.wgsl")
	_, err := a.Bytes()
	assert.ErrorIs(t, err, ErrAssetUnloaded)

	h, err := resource.NewAuto(a)
	require.NoError(t, err)
	data, err := h.Get().Bytes()
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}", string(data))

	h.Release()
	_, err = a.Bytes()
	assert.ErrorIs(t, err, ErrAssetUnloaded)
}

func TestAssetFile_MissingFileIsRecoverable(t *testing.T) {
	fs := memoryfs.New()
	a := NewAssetFile(fs, "/late.bin")

	err := a.Acquire()
	require.Error(t, err)
	assert.ErrorIs(t, err, resource.ErrLoadFailed)
	assert.Equal(t, 0, a.RefCount())

	require.NoError(t, vfs.WriteFile(fs, "/late.bin", []byte{}, 0o644))
	require.NoError(t, a.Acquire())
	data, err := a.Bytes()
	require.NoError(t, err)
	assert.Empty(t, data)
	a.Release()
}

func TestAssetFile_Image(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 1, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	fs := memoryfs.New()
	require.NoError(t, vfs.WriteFile(fs, "/tex.png", buf.Bytes(), 0o644))

	a := resource.MustAuto(NewAssetFile(fs, "/tex.png"))
	defer a.Release()
	rgba, err := a.Get().Image()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 2, 2), rgba.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, rgba.RGBAAt(1, 1))
}
