package rhfw

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Platform is the per-target contract the portable engine code is written
// against. Exactly one Platform is bound per App.
type Platform interface {
	// Name returns the factory name the platform was registered under.
	Name() string

	// Initialize prepares the platform for use by app.
	Initialize(app *App) error

	// Destroy releases everything Initialize acquired.
	Destroy()

	// StorageDirectory resolves a logical storage directory.
	StorageDirectory(dir StorageDirectory) (*StorageDirectoryDescriptor, error)

	// Cameras lists the cameras the platform exposes.
	Cameras() []CameraInfo
}

// PlatformFactory creates a new platform instance.
type PlatformFactory func() Platform

var (
	platformRegistryMu sync.RWMutex
	platforms          = make(map[string]PlatformFactory)
)

// RegisterPlatform registers a platform factory with the given name,
// replacing any earlier registration.
func RegisterPlatform(name string, factory PlatformFactory) {
	platformRegistryMu.Lock()
	defer platformRegistryMu.Unlock()
	platforms[name] = factory
}

// UnregisterPlatform removes a platform from the registry.
// This is useful for testing.
func UnregisterPlatform(name string) {
	platformRegistryMu.Lock()
	defer platformRegistryMu.Unlock()
	delete(platforms, name)
}

// AvailablePlatforms returns the registered platform names, sorted.
func AvailablePlatforms() []string {
	platformRegistryMu.RLock()
	defer platformRegistryMu.RUnlock()

	names := make([]string, 0, len(platforms))
	for name := range platforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPlatform returns the factory registered under name.
func LookupPlatform(name string) (PlatformFactory, bool) {
	platformRegistryMu.RLock()
	defer platformRegistryMu.RUnlock()
	f, ok := platforms[name]
	return f, ok
}

// NewPlatform creates the platform registered under name.
func NewPlatform(name string) (Platform, error) {
	factory, ok := LookupPlatform(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPlatform, "%q", name)
	}
	p := factory()
	if p == nil {
		return nil, errors.Wrapf(ErrUnknownPlatform, "%q returned no platform", name)
	}
	return p, nil
}

// NativePlatformName is the platform compiled in for this build target.
func NativePlatformName() string {
	return nativePlatformName
}

// NewNativePlatform creates the platform compiled in for this build target.
func NewNativePlatform() (Platform, error) {
	return NewPlatform(nativePlatformName)
}

func init() {
	RegisterPlatform(nativePlatformName, newNativePlatform)
	RegisterPlatform(HeadlessPlatformName, func() Platform { return NewHeadlessPlatform() })
}
