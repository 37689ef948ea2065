// Package app runs an editing session.
//
// An Editor owns one document, the cursor and viewport offset, the mode
// dispatcher, and the terminal. Run loops over terminal events: each key
// goes through the dispatcher, and the resulting mode decides whether the
// session toggles editing, saves, quits, moves the cursor or edits text.
// After every key the viewport is scrolled so the cursor stays visible
// and the screen is redrawn.
//
// Everything runs on the goroutine that called Run. The file watcher is
// the only other goroutine and it talks to the session solely by posting
// interrupt events to the terminal queue.
package app
