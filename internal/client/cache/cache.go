// Package cache holds the in-memory projection of the authenticated user's
// journal entries. It is never mutated optimistically: every visible change
// reflects a server-confirmed fact, which is what keeps it consistent with
// the backend without any conflict-resolution logic.
package cache

import "memento/internal/client/models"

// Cache is an ordered sequence of entries, newest first, unique by id.
// It is meant to be used from a single goroutine (the UI loop).
type Cache struct {
	entries []models.JournalEntry
}

func New() *Cache {
	return &Cache{}
}

// ReplaceAll swaps the entire contents for the given entries, preserving
// their order. Used after a full fetch for a fresh session.
func (c *Cache) ReplaceAll(entries []models.JournalEntry) {
	c.entries = make([]models.JournalEntry, len(entries))
	copy(c.entries, entries)
}

// InsertConfirmed prepends a server-confirmed new entry. If an entry with
// the same id is already present the call degrades to ApplyConfirmed, so
// the unique-by-id invariant holds even on a duplicate confirmation.
func (c *Cache) InsertConfirmed(entry models.JournalEntry) {
	if c.indexOf(entry.ID) >= 0 {
		c.ApplyConfirmed(entry)
		return
	}
	c.entries = append([]models.JournalEntry{entry}, c.entries...)
}

// ApplyConfirmed replaces the entry sharing the given entry's id, keeping
// its position. A missing id is a no-op: the entry may have been removed by
// an earlier-confirmed delete.
func (c *Cache) ApplyConfirmed(entry models.JournalEntry) {
	if i := c.indexOf(entry.ID); i >= 0 {
		c.entries[i] = entry
	}
}

// RemoveConfirmed removes the entry with the given id. A missing id is a
// no-op.
func (c *Cache) RemoveConfirmed(id string) {
	if i := c.indexOf(id); i >= 0 {
		c.entries = append(c.entries[:i], c.entries[i+1:]...)
	}
}

// Clear empties the cache unconditionally. Called when the session ends.
func (c *Cache) Clear() {
	c.entries = nil
}

// Entries returns a copy of the cached entries in order.
func (c *Cache) Entries() []models.JournalEntry {
	out := make([]models.JournalEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Get returns the entry with the given id, if present.
func (c *Cache) Get(id string) (models.JournalEntry, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.entries[i], true
	}
	return models.JournalEntry{}, false
}

func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) indexOf(id string) int {
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
