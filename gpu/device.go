// Package gpu binds WebGPU objects to the resource lifecycle: buffers and
// textures are tracked by a Context and recreated after the device is lost.
//
// Thread affinity: every resource of a Context must be acquired, restored and
// released on the goroutine driving that Context.
package gpu

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rhfw/rhfw/resource"
)

// ErrContextLost is returned when loading a resource while its Context has no
// device.
var ErrContextLost = errors.New("gpu: context lost")

// Device is an adapter, logical device and queue opened together.
type Device struct {
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue
}

// OpenDevice requests a headless high performance device.
func OpenDevice(label string) (*Device, error) {
	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	// finds a suitable GPU (discrete GPU preferred)
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, errors.Wrap(err, "gpu: requesting adapter")
	}
	// allocates the device and command queue
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            label,
		RequiredFeatures: nil,
		RequiredLimits:   nil,
	})
	if err != nil {
		adapter.Release()
		return nil, errors.Wrap(err, "gpu: requesting device")
	}
	return &Device{
		adapter: adapter,
		device:  device,
		queue:   device.GetQueue(),
	}, nil
}

func (d *Device) Close() {
	d.device.Release()
	d.adapter.Release()
}

// Opener opens the device of a Context.
type Opener func() (*Device, error)

// Context owns a device and tracks every resource created on it so they can
// be freed when the device goes away and reloaded when it comes back.
type Context struct {
	mu      sync.Mutex
	open    Opener
	device  *Device
	tracker *resource.Tracker
}

func NewContext(name string, open Opener) *Context {
	return &Context{
		open:    open,
		tracker: resource.NewTracker(name),
	}
}

func (c *Context) Tracker() *resource.Tracker { return c.tracker }

// Device returns the current device, or nil while the context is lost.
func (c *Context) Device() *Device {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.device
}

// Open opens the device if needed and reloads every referenced resource.
func (c *Context) Open() error {
	c.mu.Lock()
	if c.device == nil {
		d, err := c.open()
		if err != nil {
			c.mu.Unlock()
			return errors.Wrapf(err, "gpu: opening %s", c.tracker.Name())
		}
		c.device = d
		Logger().Info("gpu context opened", zap.String("context", c.tracker.Name()))
	}
	c.mu.Unlock()

	return c.tracker.RestoreAll()
}

// Lose frees every tracked handle and closes the device. References are kept,
// so a later Open restores the resources still in use.
func (c *Context) Lose() {
	freed := c.tracker.InvalidateAll()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device != nil {
		c.device.Close()
		c.device = nil
	}
	Logger().Info("gpu context lost", zap.String("context", c.tracker.Name()), zap.Int("freed", freed))
}

func (c *Context) track(r *resource.Shareable) error {
	_, err := c.tracker.Track(r)
	return err
}
