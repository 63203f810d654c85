package rhfw

import (
	"sync"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/pkg/errors"
)

const HeadlessPlatformName = "headless"

// HeadlessPlatform keeps storage in memory and reports a fixed camera list.
// It serves tests and servers without a display.
type HeadlessPlatform struct {
	mu          sync.Mutex
	fs          vfs.FileSystem
	cameras     []CameraInfo
	dirs        map[StorageDirectory]*StorageDirectoryDescriptor
	initialized bool
}

func NewHeadlessPlatform(cameras ...CameraInfo) *HeadlessPlatform {
	return &HeadlessPlatform{
		fs:      memoryfs.New(),
		cameras: cameras,
		dirs:    make(map[StorageDirectory]*StorageDirectoryDescriptor),
	}
}

func (p *HeadlessPlatform) Name() string { return HeadlessPlatformName }

// FileSystem is the in-memory filesystem backing every storage directory.
func (p *HeadlessPlatform) FileSystem() vfs.FileSystem { return p.fs }

func (p *HeadlessPlatform) Initialize(app *App) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initialized = true
	app.Logger().Debugf("Headless platform initialized")
	return nil
}

func (p *HeadlessPlatform) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

func (p *HeadlessPlatform) Destroy() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initialized = false
}

func (p *HeadlessPlatform) StorageDirectory(dir StorageDirectory) (*StorageDirectoryDescriptor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return nil, errors.Wrapf(ErrNotStarted, "platform %s", HeadlessPlatformName)
	}
	if d, ok := p.dirs[dir]; ok {
		return d, nil
	}
	d, err := NewStorageDirectoryDescriptor(p.fs, dir, "/"+dir.String())
	if err != nil {
		return nil, err
	}
	p.dirs[dir] = d
	return d, nil
}

func (p *HeadlessPlatform) Cameras() []CameraInfo {
	out := make([]CameraInfo, len(p.cameras))
	copy(out, p.cameras)
	return out
}
