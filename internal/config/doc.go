// Package config loads editor settings.
//
// Settings come from, in increasing precedence: built-in defaults, a TOML
// file, and LINED_* environment variables. Key bindings are assembled
// from the built-in table, the [keys] section of the file, and an
// optional Lua script that calls bind and unbind:
//
//	[editor]
//	quit_times = 3
//	message_seconds = 5
//	script = "init.lua"
//
//	[log]
//	level = "debug"
//	file = "/tmp/lined.log"
//
//	[keys]
//	"Ctrl+S" = "Write"
//	"Escape" = "None"
package config
