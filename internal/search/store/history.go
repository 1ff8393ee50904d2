package store

import (
	"time"

	"github.com/google/uuid"

	"searchdeck/internal/domain"
)

// History is a bounded, most-recent-first list of past searches,
// deduplicated by query text
type History struct {
	entries []domain.HistoryEntry
	limit   int
}

// NewHistory creates a history bounded to limit entries
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 20
	}
	return &History{limit: limit}
}

// Add records a search. Re-adding an existing query moves its entry to the
// front and refreshes the timestamp and result count; the entry id is kept.
func (h *History) Add(query string, resultCount int) domain.HistoryEntry {
	for i, e := range h.entries {
		if e.Query == query {
			e.ResultCount = resultCount
			e.Timestamp = time.Now()
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			h.entries = append([]domain.HistoryEntry{e}, h.entries...)
			return e
		}
	}

	entry := domain.HistoryEntry{
		ID:          uuid.NewString(),
		Query:       query,
		ResultCount: resultCount,
		Timestamp:   time.Now(),
	}
	h.entries = append([]domain.HistoryEntry{entry}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
	return entry
}

// Remove deletes the entry with the given id, if present
func (h *History) Remove(id string) bool {
	for i, e := range h.entries {
		if e.ID == id {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Entries returns a copy of the list, most recent first
func (h *History) Entries() []domain.HistoryEntry {
	return append([]domain.HistoryEntry(nil), h.entries...)
}

// Restore seeds the history from persisted entries, preserving order and
// assigning ids to entries that lack one
func (h *History) Restore(entries []domain.HistoryEntry) {
	h.entries = nil
	for _, e := range entries {
		if len(h.entries) >= h.limit {
			break
		}
		if e.Query == "" {
			continue
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		h.entries = append(h.entries, e)
	}
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}
