package customization

import "resumeforge-utils/pkg/models"

// History is a bounded change log. Appends beyond capacity evict the
// oldest entry; undo pops from the newest end.
type History struct {
	entries  []models.CustomizationChange
	capacity int
}

func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = defaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

func (h *History) Append(change models.CustomizationChange) {
	if len(h.entries) >= h.capacity {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, change)
}

// Pop removes and returns the most recent change.
func (h *History) Pop() (models.CustomizationChange, bool) {
	if len(h.entries) == 0 {
		return models.CustomizationChange{}, false
	}
	change := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]
	return change, true
}

// Peek returns the most recent change without removing it.
func (h *History) Peek() (models.CustomizationChange, bool) {
	if len(h.entries) == 0 {
		return models.CustomizationChange{}, false
	}
	return h.entries[len(h.entries)-1], true
}

func (h *History) Len() int { return len(h.entries) }

func (h *History) Clear() { h.entries = h.entries[:0] }

// Entries returns a copy, oldest first.
func (h *History) Entries() []models.CustomizationChange {
	out := make([]models.CustomizationChange, len(h.entries))
	copy(out, h.entries)
	return out
}

// Replace swaps in an imported history, keeping only the newest entries
// when the input exceeds capacity.
func (h *History) Replace(entries []models.CustomizationChange) {
	if len(entries) > h.capacity {
		entries = entries[len(entries)-h.capacity:]
	}
	h.entries = make([]models.CustomizationChange, len(entries))
	copy(h.entries, entries)
}
