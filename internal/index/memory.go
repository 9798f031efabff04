package index

import (
	"sync"
	"time"

	"github.com/linkminder/linkminder/internal/domain"
)

// MemoryIndex holds the in-memory snapshot of the link collection and
// the custom rule list, synced from Redis. Handlers and the clusterer
// read from here; writes go to Redis first and are mirrored in.
//
// Links are kept newest-first: that order is the clusterer's tie-break
// contract (among equally similar clusters the most recent wins).
type MemoryIndex struct {
	mu       sync.RWMutex
	links    []*domain.LinkRecord // newest first
	byID     map[string]int       // ID -> position in links
	rules    []domain.Rule        // declaration order
	lastSync time.Time
}

// NewMemoryIndex creates an empty index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		byID: make(map[string]int),
	}
}

// ReplaceLinks swaps in a full newest-first snapshot
func (idx *MemoryIndex) ReplaceLinks(links []*domain.LinkRecord) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.links = make([]*domain.LinkRecord, len(links))
	copy(idx.links, links)
	idx.rebuildPositionsLocked()
	idx.lastSync = time.Now()
}

// Links returns a copy of the newest-first link snapshot
func (idx *MemoryIndex) Links() []*domain.LinkRecord {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]*domain.LinkRecord, len(idx.links))
	copy(out, idx.links)
	return out
}

// GetLink retrieves a record by ID
func (idx *MemoryIndex) GetLink(id string) (*domain.LinkRecord, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	pos, ok := idx.byID[id]
	if !ok {
		return nil, false
	}
	return idx.links[pos], true
}

// UpsertLink replaces an existing record in place (keeping its
// position) or prepends a new one.
func (idx *MemoryIndex) UpsertLink(record *domain.LinkRecord) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if pos, ok := idx.byID[record.ID]; ok {
		idx.links[pos] = record
		return
	}
	idx.links = append([]*domain.LinkRecord{record}, idx.links...)
	idx.rebuildPositionsLocked()
}

// DeleteLink removes a record from the snapshot
func (idx *MemoryIndex) DeleteLink(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	pos, ok := idx.byID[id]
	if !ok {
		return
	}
	idx.links = append(idx.links[:pos], idx.links[pos+1:]...)
	idx.rebuildPositionsLocked()
}

// Count returns the number of records in the snapshot
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.links)
}

// LastSync returns the timestamp of the last full snapshot replacement
func (idx *MemoryIndex) LastSync() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastSync
}

func (idx *MemoryIndex) rebuildPositionsLocked() {
	idx.byID = make(map[string]int, len(idx.links))
	for i, record := range idx.links {
		idx.byID[record.ID] = i
	}
}

// ─────────────────────────────────────────────────────────────────
// Rule methods
// ─────────────────────────────────────────────────────────────────

// ReplaceRules swaps in the custom rule list, declaration order
func (idx *MemoryIndex) ReplaceRules(rules []domain.Rule) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.rules = make([]domain.Rule, len(rules))
	copy(idx.rules, rules)
}

// Rules returns a copy of the custom rule list
func (idx *MemoryIndex) Rules() []domain.Rule {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	out := make([]domain.Rule, len(idx.rules))
	copy(out, idx.rules)
	return out
}

// RuleCount returns the number of custom rules
func (idx *MemoryIndex) RuleCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.rules)
}
