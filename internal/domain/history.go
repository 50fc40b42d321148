package domain

// HistoryRing is a bounded FIFO of command lines. When the capacity is
// exceeded the oldest entry is evicted. Not safe for concurrent use on its
// own; the owning Session serializes access.
type HistoryRing struct {
	entries []string
	max     int
}

// NewHistoryRing creates a ring holding at most max entries.
func NewHistoryRing(max int) *HistoryRing {
	return &HistoryRing{
		entries: make([]string, 0, min(max, 64)),
		max:     max,
	}
}

// Append adds a command line, evicting the oldest entry beyond capacity.
func (h *HistoryRing) Append(line string) {
	h.entries = append(h.entries, line)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
}

// Len returns the number of retained entries.
func (h *HistoryRing) Len() int { return len(h.entries) }

// Tail returns a copy of the most recent n entries, oldest first.
func (h *HistoryRing) Tail(n int) []string {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	cp := make([]string, n)
	copy(cp, h.entries[len(h.entries)-n:])
	return cp
}

// All returns a copy of every retained entry, oldest first.
func (h *HistoryRing) All() []string {
	return h.Tail(len(h.entries))
}
