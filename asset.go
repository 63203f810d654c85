package rhfw

import (
	"image"

	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/pkg/errors"

	"github.com/rhfw/rhfw/gpu"
	"github.com/rhfw/rhfw/resource"
)

const assetKind = "rhfw.asset"

// ErrAssetUnloaded is returned when the contents of an unloaded asset are read.
var ErrAssetUnloaded = errors.New("rhfw: asset not loaded")

// AssetFile is a file whose contents are read into memory while the asset is
// held and dropped when the last holder releases it.
type AssetFile struct {
	*resource.Shareable

	fs   vfs.FileSystem
	name string

	mu   Mutex
	data []byte
}

func NewAssetFile(fs vfs.FileSystem, name string) *AssetFile {
	a := &AssetFile{fs: fs, name: name}
	a.Shareable = resource.New(assetKind, resource.Funcs{
		LoadFunc: a.read,
		FreeFunc: a.drop,
	})
	return a
}

func (a *AssetFile) Name() string { return a.name }

// Bytes returns the loaded contents. The slice is shared and must not be
// modified.
func (a *AssetFile) Bytes() ([]byte, error) {
	var data []byte
	a.mu.Locked(func() { data = a.data })
	if data == nil {
		return nil, errors.Wrap(ErrAssetUnloaded, a.name)
	}
	return data, nil
}

// Image decodes the loaded contents as an image.
func (a *AssetFile) Image() (*image.RGBA, error) {
	data, err := a.Bytes()
	if err != nil {
		return nil, err
	}
	img, err := gpu.DecodeImage(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", a.name)
	}
	return img, nil
}

func (a *AssetFile) read() error {
	data, err := vfs.ReadFile(a.fs, a.name)
	if err != nil {
		return errors.Wrapf(err, "reading asset %s", a.name)
	}
	if data == nil {
		data = []byte{}
	}
	a.mu.Locked(func() { a.data = data })
	return nil
}

func (a *AssetFile) drop() {
	a.mu.Locked(func() { a.data = nil })
}
