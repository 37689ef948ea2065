// Package mode implements the input-mode dispatcher.
//
// Every mapped key resolves to exactly one Action. Actions come in two
// closed families: an EditorMode (Read, Edit, Write, Quit) changes what
// the session does with input, a CursorMode moves the cursor. The
// dispatcher keeps one slot per family and arms at most one of them per
// key:
//
//	key ──▶ Table.Lookup ──▶ EditorMode ──▶ Editor=(mode, armed)  Cursor=(None, unarmed)
//	                    └──▶ CursorMode ──▶ Cursor=(mode, armed)  Editor=(None, unarmed)
//
// The orchestrator reads the armed slot once per input cycle, performs the
// action and calls Disarm before reading the next key. Unmapped keys leave
// the state untouched and are the orchestrator's to treat as text.
package mode
