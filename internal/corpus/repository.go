// File path: internal/corpus/repository.go
package corpus

import (
	"sync"
)

// Repository holds the loaded records per collection for the process
// lifetime. It is safe for concurrent use.
type Repository struct {
	mu      sync.RWMutex
	records map[Collection][]Record
}

func NewRepository() *Repository {
	return &Repository{records: make(map[Collection][]Record)}
}

// Replace swaps the records of one collection.
func (r *Repository) Replace(c Collection, records []Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[c] = append([]Record(nil), records...)
}

// All returns every record in canonical collection order, then source order.
func (r *Repository) All() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, recs := range r.records {
		total += len(recs)
	}
	out := make([]Record, 0, total)
	for _, c := range collections {
		out = append(out, r.records[c]...)
	}
	return out
}

// Counts returns the number of records per collection, including empty ones.
func (r *Repository) Counts() map[Collection]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[Collection]int, len(collections))
	for _, c := range collections {
		out[c] = len(r.records[c])
	}
	return out
}

// Count returns the number of records held for c.
func (r *Repository) Count(c Collection) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records[c])
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, recs := range r.records {
		total += len(recs)
	}
	return total
}
