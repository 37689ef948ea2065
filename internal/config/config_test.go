package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/dshills/lined/internal/input/key"
	"github.com/dshills/lined/internal/input/keymap"
	"github.com/dshills/lined/internal/input/mode"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Editor.QuitTimes != 3 {
		t.Errorf("QuitTimes = %d, want 3", c.Editor.QuitTimes)
	}
	if c.MessageDuration() != 5*time.Second {
		t.Errorf("MessageDuration = %v, want 5s", c.MessageDuration())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if c.Path != "" || c.Editor.QuitTimes != 3 {
		t.Errorf("missing file should give defaults, got %+v", c)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[editor]
quit_times = 1
script = "init.lua"

[log]
level = "debug"
file = "/tmp/lined.log"

[keys]
"Ctrl+S" = "Write"
"Escape" = "None"
`)

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if c.Path != path {
		t.Errorf("Path = %q", c.Path)
	}
	if c.Editor.QuitTimes != 1 {
		t.Errorf("QuitTimes = %d, want 1", c.Editor.QuitTimes)
	}
	if c.Editor.MessageSeconds != 5 {
		t.Errorf("MessageSeconds = %d, want default 5", c.Editor.MessageSeconds)
	}
	if c.Log.Level != "debug" || c.Log.File != "/tmp/lined.log" {
		t.Errorf("Log = %+v", c.Log)
	}
	if c.Keys["Ctrl+S"] != "Write" || c.Keys["Escape"] != "None" {
		t.Errorf("Keys = %v", c.Keys)
	}
	if got := c.ScriptPath(); got != filepath.Join(filepath.Dir(path), "init.lua") {
		t.Errorf("ScriptPath = %q", got)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[editor]\nquit_times = \n")

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load error = %v, want *ParseError", err)
	}
	if perr.Path != path || perr.Line == 0 {
		t.Errorf("ParseError = %+v", perr)
	}
}

func TestLoadUnknownField(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\n")

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load error = %v, want *ParseError", err)
	}
}

func TestApplyEnv(t *testing.T) {
	c := Default()
	err := c.ApplyEnv(envMap(map[string]string{
		EnvLogLevel:  "warn",
		EnvLogFile:   "/var/log/lined.log",
		EnvQuitTimes: "0",
	}))
	if err != nil {
		t.Fatalf("ApplyEnv error = %v", err)
	}
	if c.Log.Level != "warn" || c.Log.File != "/var/log/lined.log" || c.Editor.QuitTimes != 0 {
		t.Errorf("config = %+v", c)
	}

	err = Default().ApplyEnv(envMap(map[string]string{EnvQuitTimes: "many"}))
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != EnvQuitTimes {
		t.Errorf("ApplyEnv error = %v, want ValidationError", err)
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Editor.QuitTimes = -1
	c.Editor.MessageSeconds = 0
	c.Log.Level = "shout"
	c.Keys = map[string]string{"Hyper+x": "Write", "Ctrl+S": "Save"}

	err := c.Validate()
	if err == nil {
		t.Fatal("Validate should fail")
	}

	for _, path := range []string{
		"editor.quit_times", "editor.message_seconds", "log.level", "keys.Hyper+x", "keys.Ctrl+S",
	} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("error does not mention %s: %v", path, err)
		}
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("error should contain *ValidationError, got %T", err)
	}
}

func TestBindingsOrder(t *testing.T) {
	c := Default()
	c.Keys = map[string]string{"Ctrl+S": "Write", "Escape": "None"}

	bindings, err := c.Bindings()
	if err != nil {
		t.Fatal(err)
	}
	n := len(keymap.Default())
	if len(bindings) != n+2 {
		t.Fatalf("got %d bindings, want %d", len(bindings), n+2)
	}
	if !slices.Equal(bindings[:n], keymap.Default()) {
		t.Error("defaults should come first")
	}

	tbl, err := c.KeyTable()
	if err != nil {
		t.Fatal(err)
	}
	if a, ok := tbl.Lookup(key.NewRuneEvent('s', key.ModCtrl)); !ok || a != mode.Write {
		t.Errorf("Ctrl+S = %v, %v", a, ok)
	}
	if _, ok := tbl.Lookup(key.NewSpecialEvent(key.KeyEscape, key.ModNone)); ok {
		t.Error("Escape should be unbound")
	}
}

func TestBindingsWithScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "init.lua")
	err := os.WriteFile(script, []byte(`
bind("Ctrl+Q", "Quit")
unbind("Alt+q")
`), 0o644)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\nscript = \"init.lua\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := c.KeyTable()
	if err != nil {
		t.Fatalf("KeyTable error = %v", err)
	}
	if a, ok := tbl.Lookup(key.NewRuneEvent('q', key.ModCtrl)); !ok || a != mode.Quit {
		t.Errorf("Ctrl+Q = %v, %v", a, ok)
	}
	if _, ok := tbl.Lookup(key.NewRuneEvent('q', key.ModAlt)); ok {
		t.Error("Alt+q should be unbound by the script")
	}
}

func TestBindingsMissingScript(t *testing.T) {
	c := Default()
	c.Editor.Script = filepath.Join(t.TempDir(), "missing.lua")

	_, err := c.Bindings()
	var serr *ScriptError
	if !errors.As(err, &serr) {
		t.Errorf("Bindings error = %v, want *ScriptError", err)
	}
}
