package rhfw

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/pkg/errors"
)

// desktopPlatform backs the linux, windows and macos builds. Storage maps to
// the user's config, cache and documents directories; desktop builds expose
// no cameras.
type desktopPlatform struct {
	mu      sync.Mutex
	name    string
	appName string
	root    string
	fs      vfs.FileSystem
	dirs    map[StorageDirectory]*StorageDirectoryDescriptor
	logger  Logger
}

func (p *desktopPlatform) Name() string { return p.name }

func (p *desktopPlatform) Initialize(app *App) error {
	cfg := app.Config()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.appName = cfg.AppName
	p.root = cfg.Storage.Root
	p.fs = osfs.New()
	p.dirs = make(map[StorageDirectory]*StorageDirectoryDescriptor)
	p.logger = app.Logger()
	p.logger.Infof("Platform %s initialized for %s", p.name, p.appName)
	return nil
}

func (p *desktopPlatform) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dirs = nil
	p.fs = nil
}

func (p *desktopPlatform) StorageDirectory(dir StorageDirectory) (*StorageDirectoryDescriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fs == nil {
		return nil, errors.Wrapf(ErrNotStarted, "platform %s", p.name)
	}
	if d, ok := p.dirs[dir]; ok {
		return d, nil
	}
	base, err := p.basePath(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s directory", dir)
	}
	d, err := NewStorageDirectoryDescriptor(p.fs, dir, filepath.Join(base, p.appName))
	if err != nil {
		return nil, err
	}
	p.dirs[dir] = d
	p.logger.Debugf("Storage %s resolved to %s", dir, d.Path)
	return d, nil
}

func (p *desktopPlatform) basePath(dir StorageDirectory) (string, error) {
	if p.root != "" {
		return filepath.Join(p.root, dir.String()), nil
	}
	switch dir {
	case StorageDirectoryApplicationData:
		return os.UserConfigDir()
	case StorageDirectoryCache:
		return os.UserCacheDir()
	case StorageDirectoryUserDocuments:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Documents"), nil
	}
	fatalf("unhandled storage directory %s", dir)
	return "", nil
}

func (p *desktopPlatform) Cameras() []CameraInfo {
	return nil
}
