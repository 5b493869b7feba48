package tui

import "sync"

// bufferTerminal collects Print and Clear calls made by commands while they
// run off the UI goroutine. The model drains it when the result arrives.
type bufferTerminal struct {
	mu      sync.Mutex
	lines   []string
	cleared bool
}

func (t *bufferTerminal) Print(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = append(t.lines, text)
}

func (t *bufferTerminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lines = nil
	t.cleared = true
}

// drain returns the pending lines and whether the screen was cleared first.
func (t *bufferTerminal) drain() ([]string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines, cleared := t.lines, t.cleared
	t.lines, t.cleared = nil, false
	return lines, cleared
}
