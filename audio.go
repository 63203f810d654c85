package rhfw

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/rhfw/rhfw/resource"
)

const audioClipKind = "rhfw.audio.clip"

// AudioManager owns the audio device and the thread that drives it.
type AudioManager interface {
	Backend() AudioBackend
	Start(ctx context.Context, app *App) error
	// Play starts clip. The player holds its own reference to the clip and
	// releases it on the audio thread once playback stops.
	Play(clip *resource.Auto[*AudioClip], onStop func(*Player)) (*Player, error)
	Close() error
}

// AudioFactory creates an audio manager that is not started yet.
type AudioFactory func() (AudioManager, error)

// NewAudioManager creates an audio manager for backend b through the
// backend table.
func NewAudioManager(b AudioBackend) (AudioManager, error) {
	if b.Valid() && !b.AvailableOn(runtime.GOOS) {
		return nil, errors.Wrapf(ErrBackendNotAvailable, "%s on %s", b, runtime.GOOS)
	}
	return newAudioBackend(b)
}

// AudioModule selects the audio manager by backend.
type AudioModule struct {
	Backend AudioBackend
}

func (mod AudioModule) Install(app *App) {
	m, err := NewAudioManager(mod.Backend)
	if err != nil {
		app.installFailed(err)
		return
	}
	app.audio = m
	app.Logger().Infof("Audio selected: %s", m.Backend())
}

// AudioClip holds decoded sample data while referenced.
type AudioClip struct {
	*resource.Shareable

	name   string
	decode func() ([]byte, error)

	mu      sync.Mutex
	samples []byte
}

// NewAudioClip returns an unloaded clip; decode runs on every load.
func NewAudioClip(name string, decode func() ([]byte, error)) *AudioClip {
	c := &AudioClip{name: name, decode: decode}
	c.Shareable = resource.New(audioClipKind, resource.Funcs{
		LoadFunc: c.load,
		FreeFunc: c.free,
	})
	return c
}

// NewAudioClipFromAsset returns a clip whose samples are the raw contents of
// asset. The asset is only held while the clip loads.
func NewAudioClipFromAsset(asset *AssetFile) *AudioClip {
	return NewAudioClip(asset.Name(), func() ([]byte, error) {
		a, err := resource.NewAuto(asset)
		if err != nil {
			return nil, err
		}
		defer a.Release()
		data, err := a.Get().Bytes()
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), data...), nil
	})
}

func (c *AudioClip) Name() string { return c.name }

// Samples returns the decoded samples, or nil while unloaded.
func (c *AudioClip) Samples() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.samples
}

func (c *AudioClip) load() error {
	samples, err := c.decode()
	if err != nil {
		return errors.Wrapf(err, "decoding clip %s", c.name)
	}
	c.mu.Lock()
	c.samples = samples
	c.mu.Unlock()
	return nil
}

func (c *AudioClip) free() {
	c.mu.Lock()
	c.samples = nil
	c.mu.Unlock()
}

// Player is one playback of a clip.
type Player struct {
	clip      *resource.Auto[*AudioClip]
	onStop    func(*Player)
	stop      func(*Player)
	done      chan struct{}
	once      sync.Once
	stoppedOn uint64
}

// Clip returns the clip being played. It is only valid until Done closes.
func (p *Player) Clip() *AudioClip { return p.clip.Get() }

// Stop ends playback. The stop callback runs on the audio thread.
func (p *Player) Stop() {
	p.once.Do(func() { p.stop(p) })
}

// Done is closed once the player stopped and released its clip.
func (p *Player) Done() <-chan struct{} { return p.done }

// nullAudioManager has no device. Players run until stopped and all stop
// processing happens on the audio thread.
type nullAudioManager struct {
	mu      sync.Mutex
	thread  *Thread
	cmds    chan func()
	players map[*Player]struct{}
	logger  Logger
}

func newNullAudioManager() (AudioManager, error) {
	return &nullAudioManager{
		players: make(map[*Player]struct{}),
		logger:  NewNopLogger(),
	}, nil
}

func (m *nullAudioManager) Backend() AudioBackend { return AudioBackendNull }

// Start launches the audio thread. The thread outlives ctx cancellation and
// runs until Close; a closed manager can be started again.
func (m *nullAudioManager) Start(ctx context.Context, app *App) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.thread != nil {
		return nil
	}
	m.logger = app.Logger()
	cmds := make(chan func())
	m.cmds = cmds
	m.thread = NewThread("audio", m.logger, func(ctx context.Context) { m.loop(ctx, cmds) })
	m.thread.Start(context.WithoutCancel(ctx))
	return nil
}

func (m *nullAudioManager) loop(ctx context.Context, cmds <-chan func()) {
	for {
		select {
		case fn := <-cmds:
			fn()
		case <-ctx.Done():
			for p := range m.players {
				m.finish(p)
			}
			return
		}
	}
}

// post runs fn on the audio thread. It reports false once the thread exited.
func (m *nullAudioManager) post(fn func()) bool {
	m.mu.Lock()
	t, cmds := m.thread, m.cmds
	m.mu.Unlock()
	if t == nil {
		return false
	}
	select {
	case cmds <- fn:
		return true
	case <-t.done:
		return false
	}
}

func (m *nullAudioManager) Play(clip *resource.Auto[*AudioClip], onStop func(*Player)) (*Player, error) {
	if !clip.Valid() {
		return nil, errors.New("rhfw: play of an empty clip handle")
	}
	p := &Player{
		clip:   clip.Clone(),
		onStop: onStop,
		done:   make(chan struct{}),
	}
	p.stop = func(p *Player) {
		m.post(func() { m.finish(p) })
	}
	if !m.post(func() { m.players[p] = struct{}{} }) {
		p.clip.Release()
		return nil, errors.Wrap(ErrNotStarted, "audio thread not running")
	}
	m.logger.Debugf("Playing %s", p.Clip().Name())
	return p, nil
}

// finish runs on the audio thread.
func (m *nullAudioManager) finish(p *Player) {
	if _, ok := m.players[p]; !ok {
		return
	}
	delete(m.players, p)
	p.stoppedOn = currentThreadID()
	if p.onStop != nil {
		p.onStop(p)
	}
	p.clip.Release()
	close(p.done)
}

// threadID is the OS thread the manager's loop runs on.
func (m *nullAudioManager) threadID() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.thread == nil {
		return 0
	}
	return m.thread.ID()
}

func (m *nullAudioManager) Close() error {
	m.mu.Lock()
	t := m.thread
	m.thread, m.cmds = nil, nil
	m.mu.Unlock()
	if t == nil {
		return nil
	}
	t.Stop()
	t.Join()
	return nil
}
