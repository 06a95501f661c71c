package game

import "fmt"

// EventLog is an append-only record of game events as human-readable lines.
// A read cursor lets consumers fetch only what was appended since their last
// read; persisting the log anywhere is the caller's business.
type EventLog struct {
	entries []string
	cursor  int
}

// Append adds one event line.
func (l *EventLog) Append(msg string) {
	l.entries = append(l.entries, msg)
}

// Appendf adds one formatted event line.
func (l *EventLog) Appendf(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Since returns the entries appended since the previous Since or Full call.
func (l *EventLog) Since() []string {
	out := l.entries[l.cursor:]
	l.cursor = len(l.entries)
	return out
}

// Full returns the whole log and advances the read cursor to the end.
func (l *EventLog) Full() []string {
	l.cursor = len(l.entries)
	return l.entries
}

// Len reports the total number of entries.
func (l *EventLog) Len() int { return len(l.entries) }
