// SPDX-License-Identifier: Apache-2.0

// Package session provides the in-memory session table binding each
// live conversation to its pending response channel, and the
// single-assignment disposition slot that gives every channel
// exactly-once semantics.
package session

import "sync"

// Table maps conversation ids to their pending response channel. All
// operations are safe for concurrent use and none of them blocks;
// contention is expected to be low and critical sections are short, so
// a single mutex guards the whole map.
type Table struct {
	mu      sync.Mutex
	entries map[string]*Disposition
}

// NewTable creates an empty session table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]*Disposition),
	}
}

// OpenOrReplace stores the channel for the given conversation id and
// returns whatever was stored before, so the caller can detect a
// channel that was displaced without ever being used.
func (t *Table) OpenOrReplace(id string, d *Disposition) (prev *Disposition) {
	t.mu.Lock()
	defer t.mu.Unlock()
	prev = t.entries[id]
	t.entries[id] = d
	return prev
}

// Lookup returns the pending channel for the conversation id, if any.
// It never mutates the table.
func (t *Table) Lookup(id string) (*Disposition, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.entries[id]
	return d, ok
}

// Close removes the entry for the conversation id. Removing an absent
// id is a no-op.
func (t *Table) Close(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, id)
}

// Evict removes the entry only while it still holds the given channel.
// It reports whether an entry was removed. This keeps a stale timeout
// from tearing down a session a newer turn has already rebound.
func (t *Table) Evict(id string, d *Disposition) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cur, ok := t.entries[id]; ok && cur == d {
		delete(t.entries, id)
		return true
	}
	return false
}

// Clear evicts all sessions. Pending channels are left untouched; the
// transport owns their lifecycle.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]*Disposition)
}

// Len returns the number of live sessions.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
