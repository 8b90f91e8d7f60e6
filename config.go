// config.go - Engine configuration loaded from YAML or TOML files

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package zeni

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the whole engine configuration. Files only need to name the
// keys they change; everything else keeps its DefaultConfig value.
type Config struct {
	Video     VideoConfig    `yaml:"video" toml:"video"`
	Audio     AudioConfig    `yaml:"audio" toml:"audio"`
	Joysticks JoystickConfig `yaml:"joysticks" toml:"joysticks"`
	Log       LogConfig      `yaml:"log" toml:"log"`
}

type VideoConfig struct {
	API           string `yaml:"api" toml:"api"` // gl, dx9 or auto
	Width         int    `yaml:"width" toml:"width"`
	Height        int    `yaml:"height" toml:"height"`
	Fullscreen    bool   `yaml:"fullscreen" toml:"fullscreen"`
	FrameVisible  bool   `yaml:"frame_visible" toml:"frame_visible"`
	VSync         bool   `yaml:"vsync" toml:"vsync"`
	Multisampling int    `yaml:"multisampling" toml:"multisampling"`
	Anisotropy    int    `yaml:"anisotropy" toml:"anisotropy"`
	Title         string `yaml:"title" toml:"title"`
}

type AudioConfig struct {
	SampleRate   int     `yaml:"sample_rate" toml:"sample_rate"`
	BufferSizeMS int     `yaml:"buffer_size_ms" toml:"buffer_size_ms"`
	MasterGain   float32 `yaml:"master_gain" toml:"master_gain"`
}

type JoystickConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
	// SDL GameControllerDB lines, one per device.
	Mappings []string `yaml:"mappings" toml:"mappings"`
}

type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // text, json or auto
}

func DefaultConfig() Config {
	return Config{
		Video: VideoConfig{
			API:          "auto",
			Width:        800,
			Height:       600,
			FrameVisible: true,
			VSync:        true,
			Anisotropy:   1,
			Title:        "Zenilib Application",
		},
		Audio: AudioConfig{
			SampleRate:   44100,
			BufferSizeMS: 20,
			MasterGain:   1,
		},
		Joysticks: JoystickConfig{Enabled: true},
		Log:       LogConfig{Level: "info", Format: "auto"},
	}
}

// DefaultConfigPaths lists the project file then the per-user file. The
// user file wins where both set a key.
func DefaultConfigPaths() []string {
	paths := []string{filepath.Join("config", "zenilib.yaml")}
	if user, err := homedir.Expand("~/.config/zenilib/zenilib.yaml"); err == nil {
		paths = append(paths, user)
	}
	return paths
}

// LoadConfig layers the given files over DefaultConfig in order. Missing
// files are skipped; unreadable or malformed ones are errors. With no
// paths, DefaultConfigPaths is used.
func LoadConfig(paths ...string) (Config, error) {
	if len(paths) == 0 {
		paths = DefaultConfigPaths()
	}
	cfg := DefaultConfig()
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return cfg, errors.Wrapf(err, "config %s", path)
		}
		if err := decodeConfig(data, filepath.Ext(path), &cfg); err != nil {
			return cfg, errors.Wrapf(err, "config %s", path)
		}
		Logger().Debug("config layer applied", "path", path)
	}
	return cfg, cfg.Validate()
}

func decodeConfig(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		return toml.Unmarshal(data, cfg)
	}
	return fmt.Errorf("unsupported config format %q", ext)
}

func (c Config) Validate() error {
	if _, err := ParseVideoMode(c.Video.API); err != nil {
		return err
	}
	if c.Video.Width <= 0 || c.Video.Height <= 0 {
		return fmt.Errorf("config: video size %dx%d must be positive", c.Video.Width, c.Video.Height)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("config: audio sample_rate %d must be positive", c.Audio.SampleRate)
	}
	if c.Audio.MasterGain < 0 {
		return fmt.Errorf("config: audio master_gain %g must not be negative", c.Audio.MasterGain)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Save writes c as YAML or TOML depending on the extension of path.
func (c Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		data, err = toml.Marshal(c)
	default:
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "write config")
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	var l slog.Level
	if c.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log level %q: %w", c.Level, err)
	}
	return l, nil
}
