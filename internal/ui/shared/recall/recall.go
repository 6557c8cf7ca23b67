// Package recall remembers the record ids a user searched for, so the
// history search box can step back through them with the arrow keys.
package recall

import (
	"slices"
	"strings"
	"sync"
)

const (
	DefaultSize = 50
	MaxSize     = 1000
)

// List is a bounded most-recent-last list of searches with a navigation
// cursor. Safe for concurrent use.
type List struct {
	entries []string
	maxSize int
	pos     int    // -1 when not navigating
	draft   string // input typed before navigation began
	mu      sync.RWMutex
}

// New returns an empty list holding at most maxSize entries.
func New(maxSize int) *List {
	if maxSize <= 0 {
		maxSize = DefaultSize
	}
	maxSize = min(maxSize, MaxSize)
	return &List{entries: make([]string, 0, maxSize), maxSize: maxSize, pos: -1}
}

// Add records a search. Blank input is ignored; a repeated entry moves to
// the newest slot. Navigation resets.
func (l *List) Add(text string) {
	text = strings.TrimSpace(text)
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pos = -1
	l.draft = ""
	if text == "" {
		return
	}
	if i := slices.Index(l.entries, text); i >= 0 {
		l.entries = slices.Delete(l.entries, i, i+1)
	}
	if len(l.entries) >= l.maxSize {
		l.entries = slices.Delete(l.entries, 0, len(l.entries)-l.maxSize+1)
	}
	l.entries = append(l.entries, text)
}

// Previous steps toward older entries. current is what the input holds now;
// it is kept as the draft when navigation starts. Stops at the oldest.
func (l *List) Previous(current string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.entries) == 0 {
		return current
	}
	if l.pos == -1 {
		l.draft = current
		l.pos = len(l.entries) - 1
		return l.entries[l.pos]
	}
	if l.pos > 0 {
		l.pos--
	}
	return l.entries[l.pos]
}

// Next steps toward newer entries. Past the newest it ends navigation and
// returns the saved draft.
func (l *List) Next(current string) string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.pos == -1 {
		return current
	}
	if l.pos < len(l.entries)-1 {
		l.pos++
		return l.entries[l.pos]
	}
	l.pos = -1
	draft := l.draft
	l.draft = ""
	return draft
}

// Navigating reports whether Previous has been called since the last reset.
func (l *List) Navigating() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.pos != -1
}

// Reset ends navigation without touching entries.
func (l *List) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pos = -1
	l.draft = ""
}

// Clear drops every entry.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
	l.pos = -1
	l.draft = ""
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries returns a copy, oldest first.
func (l *List) Entries() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}
