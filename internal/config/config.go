// Package config loads the optional pathedit settings file.
//
// The file is TOML and lives at the XDG config location
// (%LOCALAPPDATA%\pathedit\config.toml on Windows). Every key is optional;
// a missing file yields Default().
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"pathedit/internal/errors"
)

// RelPath is the config file location relative to the XDG config home.
const RelPath = "pathedit/config.toml"

// Duration wraps time.Duration so it can be written as "2s" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config holds user settings.
type Config struct {
	// BroadcastTimeout bounds the WM_SETTINGCHANGE broadcast after a save.
	BroadcastTimeout Duration `toml:"broadcast_timeout"`
	// LogLevel is a zerolog level name.
	LogLevel string `toml:"log_level"`
	// LogFile overrides the default log file path.
	LogFile string `toml:"log_file"`
	// ConfirmQuit asks before quitting with unsaved edits.
	ConfirmQuit bool `toml:"confirm_quit"`
	// MarkdownStyle is the glamour style used for the help screen.
	MarkdownStyle string `toml:"markdown_style"`
	// WebPort is the port of the read-only web view.
	WebPort int `toml:"web_port"`
	// CheckUpdates runs the release check on startup of report modes.
	CheckUpdates bool `toml:"check_updates"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BroadcastTimeout: Duration{2 * time.Second},
		LogLevel:         "warn",
		ConfirmQuit:      true,
		MarkdownStyle:    "dark",
		WebPort:          8080,
	}
}

// DefaultPath returns the config file path under the XDG config home.
func DefaultPath() string {
	path, err := xdg.ConfigFile(RelPath)
	if err != nil {
		return ""
	}
	return path
}

// Load reads path over the defaults. An empty path means DefaultPath; a
// missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, errors.ErrConfigLoad, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrapf(err, errors.ErrConfigParse, "parse config %s", path)
	}
	cfg.normalize()
	return cfg, nil
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "encode config")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "create config dir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "write config %s", path)
	}
	return nil
}

func (c *Config) normalize() {
	def := Default()
	if c.BroadcastTimeout.Duration <= 0 {
		c.BroadcastTimeout = def.BroadcastTimeout
	}
	if c.WebPort <= 0 || c.WebPort > 65535 {
		c.WebPort = def.WebPort
	}
	if c.MarkdownStyle == "" {
		c.MarkdownStyle = def.MarkdownStyle
	}
}
