package processor

import "sync"

// History keeps the most recent input lines, oldest first.
type History struct {
	mu      sync.RWMutex
	max     int
	entries []string
}

// NewHistory returns a history bounded to max entries. A non-positive max
// means termquest.DefaultHistorySize.
func NewHistory(max int) *History {
	if max <= 0 {
		max = defaultHistorySize
	}
	return &History{max: max}
}

// Add appends line, evicting the oldest entry when full. Empty lines are
// ignored.
func (h *History) Add(line string) {
	if line == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == h.max {
		copy(h.entries, h.entries[1:])
		h.entries[len(h.entries)-1] = line
		return
	}
	h.entries = append(h.entries, line)
}

// Entries returns a copy of the stored lines.
func (h *History) Entries() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Clear drops every entry.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
}
