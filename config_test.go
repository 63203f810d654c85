package rhfw

import (
	"testing"
	"time"

	"github.com/mandelsoft/vfs/pkg/memoryfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, NativePlatformName(), cfg.Platform)
	assert.Equal(t, RenderBackendNull, cfg.RenderBackend)
	assert.Equal(t, AudioBackendNull, cfg.AudioBackend)
}

func TestLoadConfig(t *testing.T) {
	fs := memoryfs.New()
	src := `
appName: game
platform: headless
renderBackend: webgpu
debug: true
log:
  format: zap
storage:
  root: /tmp/game
window:
  width: 800
  title: Game
network:
  dialTimeout: 250ms
`
	require.NoError(t, vfs.WriteFile(fs, "/rhfw.yaml", []byte(src), 0o644))

	cfg, err := LoadConfig(fs, "/rhfw.yaml")
	require.NoError(t, err)
	assert.Equal(t, "game", cfg.AppName)
	assert.Equal(t, HeadlessPlatformName, cfg.Platform)
	assert.Equal(t, RenderBackendWebGPU, cfg.RenderBackend)
	assert.Equal(t, AudioBackendNull, cfg.AudioBackend, "unset fields keep their defaults")
	assert.True(t, cfg.Debug)
	assert.Equal(t, LogFormatZap, cfg.Log.Format)
	assert.Equal(t, "rhfw", cfg.Log.Prefix)
	assert.Equal(t, "/tmp/game", cfg.Storage.Root)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 250*time.Millisecond, cfg.Network.DialTimeout)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(memoryfs.New(), "/nope.yaml")
	assert.Error(t, err)
}

func TestParseConfig_UnknownBackend(t *testing.T) {
	_, err := ParseConfig([]byte("renderBackend: vulkan\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown RenderBackend "vulkan"`)
}

func TestConfig_ValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AppName = ""
	cfg.Platform = "amiga"
	cfg.Log.Format = "xml"
	cfg.Window.Width = -1
	cfg.Network.DialTimeout = -time.Second
	cfg.RenderBackend = RenderBackendCount

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPlatform)
	for _, want := range []string{"appName", "amiga", "xml", "window size", "dial timeout", "renderBackend"} {
		assert.Contains(t, err.Error(), want)
	}
}
