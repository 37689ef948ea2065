package app

import "time"

// statusMessage is the text on the message bar and when it was set.
type statusMessage struct {
	text string
	at   time.Time
}

func (e *Editor) setMessage(text string) {
	e.message = statusMessage{text: text, at: e.clock()}
}

// visibleMessage returns the message unless it has expired.
func (e *Editor) visibleMessage() string {
	if e.clock().Sub(e.message.at) >= e.messageTTL {
		return ""
	}
	return e.message.text
}
