package rhfw

import (
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config carries the settings an App is built from. Backend fields decode
// from their display names ("webgpu", "null", ...).
type Config struct {
	AppName       string        `yaml:"appName"`
	Platform      string        `yaml:"platform"`
	RenderBackend RenderBackend `yaml:"renderBackend"`
	AudioBackend  AudioBackend  `yaml:"audioBackend"`
	Debug         bool          `yaml:"debug"`
	Log           LogConfig     `yaml:"log"`
	Storage       StorageConfig `yaml:"storage"`
	Window        WindowConfig  `yaml:"window"`
	Network       NetworkConfig `yaml:"network"`
}

type LogConfig struct {
	Prefix string `yaml:"prefix"`
	// Format is LogFormatText or LogFormatZap.
	Format string `yaml:"format"`
}

type StorageConfig struct {
	// Root replaces the per-user directories with subdirectories of Root.
	Root string `yaml:"root"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type NetworkConfig struct {
	DialTimeout time.Duration `yaml:"dialTimeout"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		AppName:       "rhfw",
		Platform:      NativePlatformName(),
		RenderBackend: RenderBackendNull,
		AudioBackend:  AudioBackendNull,
		Log: LogConfig{
			Prefix: "rhfw",
			Format: LogFormatText,
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "rhfw",
		},
		Network: NetworkConfig{
			DialTimeout: 10 * time.Second,
		},
	}
}

// LoadConfig reads the yaml file at path on top of DefaultConfig and
// validates the result.
func LoadConfig(fs vfs.FileSystem, path string) (*Config, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var result *multierror.Error
	if c.AppName == "" {
		result = multierror.Append(result, errors.New("appName must not be empty"))
	}
	if _, ok := LookupPlatform(c.Platform); !ok {
		result = multierror.Append(result, errors.Wrapf(ErrUnknownPlatform, "%q", c.Platform))
	}
	if !c.RenderBackend.Valid() {
		result = multierror.Append(result, errors.Errorf("invalid renderBackend %d", int(c.RenderBackend)))
	}
	if !c.AudioBackend.Valid() {
		result = multierror.Append(result, errors.Errorf("invalid audioBackend %d", int(c.AudioBackend)))
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatZap:
	default:
		result = multierror.Append(result, errors.Errorf("unknown log format %q", c.Log.Format))
	}
	if c.Window.Width < 0 || c.Window.Height < 0 {
		result = multierror.Append(result, errors.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Network.DialTimeout < 0 {
		result = multierror.Append(result, errors.Errorf("negative dial timeout %s", c.Network.DialTimeout))
	}
	return result.ErrorOrNil()
}
