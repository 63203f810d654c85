package rhfw

import (
	"os"

	"github.com/mandelsoft/vfs/pkg/projectionfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/pkg/errors"
)

// StorageDirectoryDescriptor is a resolved storage directory. All file
// access goes through FileSystem, which is rooted at the directory.
type StorageDirectoryDescriptor struct {
	Directory StorageDirectory
	Path      string
	fs        vfs.FileSystem
}

// NewStorageDirectoryDescriptor creates path on base if needed and returns a
// descriptor rooted there.
func NewStorageDirectoryDescriptor(base vfs.FileSystem, dir StorageDirectory, path string) (*StorageDirectoryDescriptor, error) {
	if err := base.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating %s directory %s", dir, path)
	}
	fs, err := projectionfs.New(base, path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to construct %s filesystem", dir)
	}
	return &StorageDirectoryDescriptor{
		Directory: dir,
		Path:      path,
		fs:        fs,
	}, nil
}

func (d *StorageDirectoryDescriptor) FileSystem() vfs.FileSystem { return d.fs }

func (d *StorageDirectoryDescriptor) ReadFile(name string) ([]byte, error) {
	return vfs.ReadFile(d.fs, name)
}

// WriteFile writes name, creating its parent directories.
func (d *StorageDirectoryDescriptor) WriteFile(name string, data []byte) error {
	if dir, _ := vfs.Split(d.fs, name); dir != "" {
		if err := d.fs.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return vfs.WriteFile(d.fs, name, data, os.FileMode(0o644))
}

func (d *StorageDirectoryDescriptor) Exists(name string) bool {
	ok, err := vfs.Exists(d.fs, name)
	return err == nil && ok
}

// Asset returns an unloaded asset file in this directory.
func (d *StorageDirectoryDescriptor) Asset(name string) *AssetFile {
	return NewAssetFile(d.fs, name)
}
