// Package cache holds the per-session memo of model extraction results.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/joseph-ayodele/docfacts/internal/entity"
)

// KeyFrom builds a memo key from the extraction scope (provider/model) and
// the exact document text.
func KeyFrom(scope, text string) string {
	h := sha256.Sum256([]byte(scope + "\n\n" + text))
	return hex.EncodeToString(h[:])
}

// Memo maps a KeyFrom digest to the records extracted for it. One Memo
// belongs to one front-end session; it is never shared across sessions.
type Memo struct {
	mu      sync.Mutex
	entries map[string][]entity.Record
	hits    int
}

func NewMemo() *Memo {
	return &Memo{entries: make(map[string][]entity.Record)}
}

// Get returns a copy of the records stored under key.
func (m *Memo) Get(key string) ([]entity.Record, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	recs, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	m.hits++
	return append([]entity.Record(nil), recs...), true
}

// Put stores a copy of records under key.
func (m *Memo) Put(key string, records []entity.Record) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = append([]entity.Record(nil), records...)
}

// Clear drops every entry.
func (m *Memo) Clear() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string][]entity.Record)
	m.hits = 0
}

// Len reports the number of stored entries.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Hits reports how many Get calls were served since the last Clear.
func (m *Memo) Hits() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}
