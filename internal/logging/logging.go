// Package logging configures the process-wide zerolog logger.
//
// The terminal belongs to the editor while it runs, so logs go to a file
// or nowhere. Every record carries the session id of the run.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// Session identifies one run of the editor in the log.
type Session struct {
	ID     string
	Level  zerolog.Level
	closer io.Closer
}

// Close flushes and closes the log file, if any.
func (s *Session) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// ParseLevel parses a level name. An empty name is DefaultLevel.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultLevel
	}
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", name)
	}
	return lvl, nil
}

// Setup installs the global logger. With an empty file logging is
// disabled. The returned session must be closed on exit.
func Setup(level, file string) (*Session, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	s := &Session{ID: uuid.NewString(), Level: lvl}
	if file == "" {
		log.Logger = zerolog.Nop()
		return s, nil
	}

	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	s.closer = f

	Install(f, lvl, s.ID)
	return s, nil
}

// Install points the global logger at w. Exposed for tests and for callers
// that manage their own output.
func Install(w io.Writer, lvl zerolog.Level, session string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	log.Logger = zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("session", session).
		Logger()
}
