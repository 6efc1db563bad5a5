// Package memory provides an in-memory reference corpus, primarily for
// tests and single-process deployments.
package memory

import (
	"context"
	"sync"

	"plagcheck/internal/domain"
)

// Store keeps corpus entries in insertion order, which the retriever
// relies on for stable tie-breaking.
type Store struct {
	mu      sync.RWMutex
	entries []domain.CorpusEntry
}

func NewStore() *Store { return &Store{} }

// FetchCandidates returns a snapshot of all entries. The hint is
// ignored: shortlisting against an in-memory corpus is the retriever's
// job.
func (s *Store) FetchCandidates(_ context.Context, _ string) ([]domain.CorpusEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CorpusEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// AddEntries appends entries, skipping those with an empty ID or text,
// and returns the number added.
func (s *Store) AddEntries(_ context.Context, entries []domain.CorpusEntry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, e := range entries {
		if e.ID == "" || e.Text == "" {
			continue
		}
		s.entries = append(s.entries, e)
		added++
	}
	return added, nil
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
