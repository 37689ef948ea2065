package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/lined/internal/config"
	"github.com/dshills/lined/internal/engine/document"
	"github.com/dshills/lined/internal/input/key"
	"github.com/dshills/lined/internal/input/keymap"
	"github.com/dshills/lined/internal/input/mode"
	"github.com/dshills/lined/internal/renderer/backend"
)

var (
	altE   = key.NewRuneEvent('e', key.ModAlt)
	altQ   = key.NewRuneEvent('q', key.ModAlt)
	ctrlW  = key.NewRuneEvent('w', key.ModCtrl)
	escape = key.NewSpecialEvent(key.KeyEscape, key.ModNone)
	enter  = key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	bksp   = key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
	del    = key.NewSpecialEvent(key.KeyDelete, key.ModNone)
	down   = key.NewSpecialEvent(key.KeyDown, key.ModNone)
	right  = key.NewSpecialEvent(key.KeyRight, key.ModNone)
)

const defaultHelp = "HELP: Ctrl-W = write | HELP: Alt-Q = quit"

func char(r rune) key.Event {
	return key.NewRuneEvent(r, key.ModNone)
}

// fakeClock is a settable time source.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

// newTestEditor creates an initialized session on an 40x10 null terminal.
func newTestEditor(t *testing.T, path string) (*Editor, *backend.NullBackend, *fakeClock) {
	t.Helper()
	term := backend.NewNullBackend(40, 10)
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	e, err := New(Options{Path: path, Version: "test", Clock: clock.Now}, term)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := term.Init(); err != nil {
		t.Fatal(err)
	}
	return e, term, clock
}

func press(t *testing.T, e *Editor, events ...key.Event) {
	t.Helper()
	for _, ev := range events {
		if err := e.processKey(ev); err != nil {
			t.Fatalf("processKey(%v) error = %v", ev, err)
		}
	}
}

func typeText(t *testing.T, e *Editor, s string) {
	t.Helper()
	for _, r := range s {
		press(t, e, char(r))
	}
}

func docLines(d *document.Document) []string {
	out := make([]string, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		l, _ := d.Row(i)
		out = append(out, l.String())
	}
	return out
}

func TestNewOpensFile(t *testing.T) {
	path := writeFile(t, "one\ntwo\n")
	e, _, _ := newTestEditor(t, path)

	if got := strings.Join(docLines(e.Document()), "|"); got != "one|two" {
		t.Errorf("lines = %q", got)
	}
	if e.Document().Path != path {
		t.Errorf("Path = %q, want %q", e.Document().Path, path)
	}
	if e.Document().IsDirty() {
		t.Error("opened document should be clean")
	}
	if e.visibleMessage() != defaultHelp {
		t.Errorf("message = %q, want help", e.visibleMessage())
	}
	if e.Editing() {
		t.Error("session should start in read mode")
	}
}

func TestNewMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	e, _, _ := newTestEditor(t, path)

	if !e.Document().IsEmpty() || e.Document().Path != "" {
		t.Errorf("want empty unnamed document, got %d lines path %q", e.Document().Len(), e.Document().Path)
	}
	if want := "ERR: could not open file: " + path; e.visibleMessage() != want {
		t.Errorf("message = %q, want %q", e.visibleMessage(), want)
	}
}

func TestNewBadKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = map[string]string{"Ctrl+X": "Explode"}

	_, err := New(Options{Config: cfg}, backend.NewNullBackend(10, 5))
	if err == nil {
		t.Fatal("New() should fail on an unknown action")
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "load" {
		t.Errorf("error = %v, want load OperationError", err)
	}
}

func TestReadModeIgnoresText(t *testing.T) {
	e, _, _ := newTestEditor(t, writeFile(t, "abc\n"))
	typeText(t, e, "xyz")
	press(t, e, bksp, del, enter)

	if got := docLines(e.Document()); len(got) != 1 || got[0] != "abc" {
		t.Errorf("lines = %q, want unchanged", got)
	}
	if e.Document().IsDirty() {
		t.Error("read mode must not dirty the document")
	}
}

func TestEditModeInserts(t *testing.T) {
	e, _, _ := newTestEditor(t, "")
	press(t, e, altE)
	typeText(t, e, "hi")
	press(t, e, enter)
	typeText(t, e, "there")

	if got := strings.Join(docLines(e.Document()), "|"); got != "hi|there" {
		t.Errorf("lines = %q", got)
	}
	if got := e.Cursor(); got != (document.Position{X: 5, Y: 1}) {
		t.Errorf("cursor = %+v", got)
	}

	press(t, e, escape)
	typeText(t, e, "zz")
	if got := strings.Join(docLines(e.Document()), "|"); got != "hi|there" {
		t.Errorf("after Escape lines = %q", got)
	}
}

func TestEditTab(t *testing.T) {
	e, _, _ := newTestEditor(t, "")
	press(t, e, altE, key.NewSpecialEvent(key.KeyTab, key.ModNone), char('x'))

	if got := docLines(e.Document()); len(got) != 1 || got[0] != "\tx" {
		t.Errorf("lines = %q", got)
	}
}

func TestBackspace(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		keys       []key.Event
		wantLines  string
		wantCursor document.Position
	}{
		{"at origin is noop", "ab\n", []key.Event{bksp}, "ab", document.Position{}},
		{"removes previous", "ab\n", []key.Event{right, right, bksp}, "a", document.Position{X: 1}},
		{"joins lines", "ab\ncd\n", []key.Event{down, bksp}, "abcd", document.Position{X: 2}},
		{"delete joins next", "ab\ncd\n", []key.Event{right, right, del}, "abcd", document.Position{X: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, _ := newTestEditor(t, writeFile(t, tt.content))
			press(t, e, altE)
			press(t, e, tt.keys...)

			if got := strings.Join(docLines(e.Document()), "|"); got != tt.wantLines {
				t.Errorf("lines = %q, want %q", got, tt.wantLines)
			}
			if e.Cursor() != tt.wantCursor {
				t.Errorf("cursor = %+v, want %+v", e.Cursor(), tt.wantCursor)
			}
		})
	}
}

func TestSaveNamedDocument(t *testing.T) {
	path := writeFile(t, "hello\n")
	e, _, _ := newTestEditor(t, path)

	press(t, e, altE, char('X'), ctrlW)

	if got := readFile(t, path); got != "Xhello\n" {
		t.Errorf("file = %q", got)
	}
	if e.Document().IsDirty() {
		t.Error("save should clear dirty")
	}
	if e.visibleMessage() != "File saved successfully" {
		t.Errorf("message = %q", e.visibleMessage())
	}
	if !e.Editing() {
		t.Error("saving should not leave edit mode")
	}
}

func TestSaveFailure(t *testing.T) {
	path := writeFile(t, "x\n")
	e, _, _ := newTestEditor(t, path)
	e.Document().Path = filepath.Join(path, "not-a-dir", "f.txt")

	press(t, e, altE, char('y'), ctrlW)

	if e.visibleMessage() != "Error writing file!" {
		t.Errorf("message = %q", e.visibleMessage())
	}
	if !e.Document().IsDirty() {
		t.Error("failed save must stay dirty")
	}
}

func TestSavePromptsForName(t *testing.T) {
	e, term, _ := newTestEditor(t, "")
	press(t, e, altE)
	typeText(t, e, "new")

	path := filepath.Join(t.TempDir(), "named.txt")
	for _, r := range path + "q" {
		term.PostEvent(backend.KeyEvent(char(r)))
	}
	term.PostEvent(backend.KeyEvent(bksp))
	term.PostEvent(backend.KeyEvent(enter))
	press(t, e, ctrlW)

	if e.Document().Path != path {
		t.Fatalf("Path = %q, want %q", e.Document().Path, path)
	}
	if got := readFile(t, path); got != "new\n" {
		t.Errorf("file = %q", got)
	}
	if e.visibleMessage() != "File saved successfully" {
		t.Errorf("message = %q", e.visibleMessage())
	}
}

func TestSavePromptAborted(t *testing.T) {
	tests := []struct {
		name   string
		events []key.Event
	}{
		{"escape", []key.Event{char('a'), escape}},
		{"empty answer", []key.Event{enter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, term, _ := newTestEditor(t, "")
			press(t, e, altE, char('z'))
			for _, ev := range tt.events {
				term.PostEvent(backend.KeyEvent(ev))
			}
			press(t, e, ctrlW)

			if e.Document().Path != "" {
				t.Errorf("Path = %q, want unnamed", e.Document().Path)
			}
			if e.visibleMessage() != "Save aborted." {
				t.Errorf("message = %q", e.visibleMessage())
			}
			if !e.Document().IsDirty() {
				t.Error("aborted save must stay dirty")
			}
		})
	}
}

func TestPromptIgnoresControlKeys(t *testing.T) {
	e, term, _ := newTestEditor(t, "")
	for _, ev := range []key.Event{char('a'), down, altQ, char('b'), enter} {
		term.PostEvent(backend.KeyEvent(ev))
	}

	got, ok := e.prompt("Name: ")
	if !ok || got != "ab" {
		t.Errorf("prompt() = %q, %v, want \"ab\", true", got, ok)
	}
	if e.visibleMessage() != "" {
		t.Errorf("message after prompt = %q, want cleared", e.visibleMessage())
	}
}

func TestDropLastCluster(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"a", ""},
		{"abc", "ab"},
		{"café", "caf"},
		{"x👨‍👩‍👧", "x"},
	}
	for _, tt := range tests {
		if got := dropLastCluster(tt.in); got != tt.want {
			t.Errorf("dropLastCluster(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuitClean(t *testing.T) {
	e, _, _ := newTestEditor(t, writeFile(t, "a\n"))
	if err := e.processKey(altQ); !errors.Is(err, ErrQuit) {
		t.Errorf("processKey(Alt+q) = %v, want ErrQuit", err)
	}
}

func TestQuitDirtyNeedsConfirmation(t *testing.T) {
	e, _, _ := newTestEditor(t, "")
	press(t, e, altE, char('a'))

	for _, left := range []int{3, 2, 1} {
		if err := e.processKey(altQ); err != nil {
			t.Fatalf("quit with %d left returned %v", left, err)
		}
		want := "WARNING! File has unsaved changes. Press Alt-Q " + string(rune('0'+left)) + " more times to quit."
		if e.visibleMessage() != want {
			t.Errorf("message = %q, want %q", e.visibleMessage(), want)
		}
	}
	if err := e.processKey(altQ); !errors.Is(err, ErrQuit) {
		t.Errorf("fourth Alt+q = %v, want ErrQuit", err)
	}
}

func TestQuitCountResets(t *testing.T) {
	e, _, _ := newTestEditor(t, "")
	press(t, e, altE, char('a'), altQ, altQ)
	press(t, e, right)

	if e.quitLeft != e.quitTimes {
		t.Errorf("quitLeft = %d, want %d", e.quitLeft, e.quitTimes)
	}
	if e.visibleMessage() != "" {
		t.Errorf("message = %q, want cleared", e.visibleMessage())
	}
	if err := e.processKey(altQ); err != nil {
		t.Errorf("first Alt+q after reset = %v, want warning", err)
	}
}

func TestQuitTimesZero(t *testing.T) {
	cfg := config.Default()
	cfg.Editor.QuitTimes = 0
	term := backend.NewNullBackend(20, 5)
	e, err := New(Options{Config: cfg}, term)
	if err != nil {
		t.Fatal(err)
	}
	_ = term.Init()

	press(t, e, altE, char('a'))
	if err := e.processKey(altQ); !errors.Is(err, ErrQuit) {
		t.Errorf("processKey(Alt+q) = %v, want ErrQuit", err)
	}
}

func TestMessageExpires(t *testing.T) {
	e, _, clock := newTestEditor(t, "")

	clock.Advance(4 * time.Second)
	if e.visibleMessage() != defaultHelp {
		t.Errorf("message before expiry = %q", e.visibleMessage())
	}
	clock.Advance(time.Second)
	if e.visibleMessage() != "" {
		t.Errorf("message after expiry = %q", e.visibleMessage())
	}
}

func TestScrollFollowsCursor(t *testing.T) {
	path := writeFile(t, "0\n1\n2\n3\n4\n5\n6\n7\n8\n9\n")
	term := backend.NewNullBackend(20, 5)
	e, err := New(Options{Path: path}, term)
	if err != nil {
		t.Fatal(err)
	}
	_ = term.Init()

	press(t, e, down, down, down, down)
	if e.offset.Y != 2 {
		t.Errorf("offset.Y = %d, want 2", e.offset.Y)
	}

	term.Resize(20, 10)
	if err := e.handleEvent(term.PollEvent()); err != nil {
		t.Fatal(err)
	}
	if e.offset.Y != 2 {
		t.Errorf("offset.Y after grow = %d, want unchanged 2", e.offset.Y)
	}

	term.Resize(20, 3)
	_ = e.handleEvent(term.PollEvent())
	if e.offset.Y != 4 {
		t.Errorf("offset.Y after shrink = %d, want 4", e.offset.Y)
	}
}

func TestFileChangedInterrupt(t *testing.T) {
	path := writeFile(t, "a\n")
	e, _, _ := newTestEditor(t, path)

	_ = e.handleEvent(backend.InterruptEvent(fileChanged{path: "/elsewhere"}))
	if e.visibleMessage() == "File changed on disk" {
		t.Error("change to another file should be ignored")
	}

	_ = e.handleEvent(backend.InterruptEvent(fileChanged{path: path}))
	if e.visibleMessage() != "File changed on disk" {
		t.Errorf("message = %q", e.visibleMessage())
	}
}

func TestWatcherReportsExternalWrite(t *testing.T) {
	path := writeFile(t, "a\n")
	term := backend.NewNullBackend(20, 5)
	e, err := New(Options{Path: path, WatchFile: true}, term)
	if err != nil {
		t.Fatal(err)
	}
	defer e.stopWatcher()
	if e.watcher == nil {
		t.Fatal("watcher should be running")
	}

	if err := os.WriteFile(path, []byte("b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan backend.Event, 1)
	go func() { got <- term.PollEvent() }()

	select {
	case ev := <-got:
		if ev.Type != backend.EventInterrupt {
			t.Fatalf("event type = %v, want interrupt", ev.Type)
		}
		if fc, ok := ev.Data.(fileChanged); !ok || fc.path != path {
			t.Errorf("data = %#v", ev.Data)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no change event")
	}
}

func TestRunEndToEnd(t *testing.T) {
	path := writeFile(t, "world\n")
	term := backend.NewNullBackend(40, 6)
	e, err := New(Options{Path: path, Version: "test"}, term)
	if err != nil {
		t.Fatal(err)
	}

	for _, ev := range []key.Event{altE} {
		term.PostEvent(backend.KeyEvent(ev))
	}
	for _, r := range "hello " {
		term.PostEvent(backend.KeyEvent(char(r)))
	}
	term.PostEvent(backend.KeyEvent(ctrlW))
	term.PostEvent(backend.KeyEvent(altQ))

	if err := e.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := readFile(t, path); got != "hello world\n" {
		t.Errorf("file = %q", got)
	}
	if !strings.HasPrefix(term.Dump(), "Goodbye.") {
		t.Errorf("final screen = %q", term.Dump())
	}
}

func TestRunEndsWhenTerminalCloses(t *testing.T) {
	term := backend.NewNullBackend(20, 5)
	e, err := New(Options{}, term)
	if err != nil {
		t.Fatal(err)
	}
	term.PostEvent(backend.Event{Type: backend.EventNone})

	if err := e.Run(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestStopEndsRun(t *testing.T) {
	term := backend.NewNullBackend(20, 5)
	e, err := New(Options{}, term)
	if err != nil {
		t.Fatal(err)
	}
	_ = term.Init()
	press(t, e, altE, char('a'))

	e.Stop()
	if err := e.Run(); err != nil {
		t.Errorf("Run() error = %v", err)
	}
	if !e.Document().IsDirty() {
		t.Error("Stop should not save")
	}
}

func TestStopDuringSavePrompt(t *testing.T) {
	e, _, _ := newTestEditor(t, "")
	press(t, e, altE, char('a'))

	e.Stop()
	press(t, e, ctrlW)

	if e.Document().Path != "" {
		t.Errorf("Path = %q, want unnamed", e.Document().Path)
	}

	done := make(chan error, 1)
	go func() { done <- e.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not end after Stop during the save prompt")
	}
	if !e.Document().IsDirty() {
		t.Error("Stop should not save")
	}
}

func TestMessagesNameBoundKeys(t *testing.T) {
	cfg := config.Default()
	cfg.Keys = map[string]string{
		"Ctrl+Q": "Quit",
		"Alt+q":  "None",
		"Ctrl+S": "Write",
		"Ctrl+W": "None",
	}
	term := backend.NewNullBackend(60, 6)
	e, err := New(Options{Config: cfg}, term)
	if err != nil {
		t.Fatal(err)
	}
	_ = term.Init()

	if want := "HELP: Ctrl-S = write | HELP: Ctrl-Q = quit"; e.visibleMessage() != want {
		t.Errorf("help = %q, want %q", e.visibleMessage(), want)
	}

	press(t, e, altE, char('a'), key.NewRuneEvent('q', key.ModCtrl))
	want := "WARNING! File has unsaved changes. Press Ctrl-Q 3 more times to quit."
	if e.visibleMessage() != want {
		t.Errorf("warning = %q, want %q", e.visibleMessage(), want)
	}
}

func TestKeyLabel(t *testing.T) {
	tbl, err := keymap.NewTable([]keymap.Binding{
		{Keys: "Alt+q", Action: "Quit"},
		{Keys: "Ctrl+Shift+Left", Action: "Head-Line"},
		{Keys: "F2", Action: "Write"},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		action mode.Action
		want   string
	}{
		{mode.Quit, "Alt-Q"},
		{mode.HeadLine, "Ctrl-Shift-Left"},
		{mode.Write, "F2"},
		{mode.Edit, "(unbound)"},
	}
	for _, tt := range tests {
		if got := keyLabel(tbl, tt.action); got != tt.want {
			t.Errorf("keyLabel(%v) = %q, want %q", tt.action, got, tt.want)
		}
	}
}
