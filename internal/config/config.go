package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/lined/internal/input/keymap"
	"github.com/dshills/lined/internal/logging"
)

// Environment variables read by ApplyEnv and DefaultPath.
const (
	EnvConfig    = "LINED_CONFIG"
	EnvLogLevel  = "LINED_LOG_LEVEL"
	EnvLogFile   = "LINED_LOG_FILE"
	EnvQuitTimes = "LINED_QUIT_TIMES"
)

// Config holds all editor settings.
type Config struct {
	Editor EditorConfig      `toml:"editor"`
	Log    LogConfig         `toml:"log"`
	Keys   map[string]string `toml:"keys"`

	// Path is the file the settings were read from, empty if none.
	Path string `toml:"-"`
}

// EditorConfig holds session behavior settings.
type EditorConfig struct {
	// QuitTimes is how many extra Quit presses discard unsaved changes.
	QuitTimes int `toml:"quit_times"`

	// MessageSeconds is how long a status message stays visible.
	MessageSeconds int `toml:"message_seconds"`

	// Script is a Lua file run at startup to adjust bindings. A relative
	// path is resolved against the directory of the config file.
	Script string `toml:"script"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			QuitTimes:      3,
			MessageSeconds: 5,
		},
		Log: LogConfig{
			Level: logging.DefaultLevel,
		},
	}
}

// DefaultPath returns $LINED_CONFIG, or config.toml in the user config
// directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lined", "config.toml"), nil
}

// Load reads settings from path over the defaults. A missing file is not
// an error. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

func decode(source string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// ApplyEnv overrides settings from environment variables. lookup is
// usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Log.File = v
	}
	if v, ok := lookup(EnvQuitTimes); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Path: EnvQuitTimes, Message: "not an integer", Value: v}
		}
		c.Editor.QuitTimes = n
	}
	return nil
}

// Validate checks every setting and reports all problems together as
// *ValidationError values.
func (c *Config) Validate() error {
	var errs []error
	if c.Editor.QuitTimes < 0 {
		errs = append(errs, &ValidationError{
			Path: "editor.quit_times", Message: "must not be negative", Value: c.Editor.QuitTimes,
		})
	}
	if c.Editor.MessageSeconds <= 0 {
		errs = append(errs, &ValidationError{
			Path: "editor.message_seconds", Message: "must be positive", Value: c.Editor.MessageSeconds,
		})
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, &ValidationError{
			Path: "log.level", Message: "unknown level", Value: c.Log.Level,
		})
	}
	for _, spec := range c.sortedKeys() {
		if _, err := keymap.NewTable([]keymap.Binding{{Keys: spec, Action: c.Keys[spec]}}); err != nil {
			errs = append(errs, &ValidationError{
				Path: "keys." + spec, Message: err.Error(), Value: c.Keys[spec],
			})
		}
	}
	return errors.Join(errs...)
}

// MessageDuration returns how long status messages stay visible.
func (c *Config) MessageDuration() time.Duration {
	return time.Duration(c.Editor.MessageSeconds) * time.Second
}

// ScriptPath returns the resolved init script path, or empty if none.
func (c *Config) ScriptPath() string {
	s := c.Editor.Script
	if s == "" || filepath.IsAbs(s) || c.Path == "" {
		return s
	}
	return filepath.Join(filepath.Dir(c.Path), s)
}

// Bindings returns the full binding list: defaults, then [keys] in key
// order, then whatever the init script binds. Later entries win.
func (c *Config) Bindings() ([]keymap.Binding, error) {
	bindings := keymap.Default()
	for _, spec := range c.sortedKeys() {
		bindings = append(bindings, keymap.NewBinding(spec, c.Keys[spec]))
	}

	if path := c.ScriptPath(); path != "" {
		scripted, err := RunScript(path)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, scripted...)
	}
	return bindings, nil
}

// KeyTable builds the immutable key table for this configuration.
func (c *Config) KeyTable() (*keymap.Table, error) {
	bindings, err := c.Bindings()
	if err != nil {
		return nil, err
	}
	return keymap.NewTable(bindings)
}

func (c *Config) sortedKeys() []string {
	keys := make([]string, 0, len(c.Keys))
	for k := range c.Keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
