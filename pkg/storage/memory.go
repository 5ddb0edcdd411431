package storage

import (
	"context"
	"sort"
	"sync"

	"infoprom/poaudit/pkg/compliance"
)

// MemoryStore implements Store using an in-memory slice. It is intended
// for tests.
type MemoryStore struct {
	mu       sync.RWMutex
	verdicts []*StoredVerdict
}

// NewMemoryStore creates an in-memory verdict store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// StoreVerdicts persists all verdicts under the run ID.
func (s *MemoryStore) StoreVerdicts(ctx context.Context, runID string, verdicts []*compliance.Verdict) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range verdicts {
		s.verdicts = append(s.verdicts, NewStoredVerdict(runID, v))
	}
	return nil
}

// QueryVerdicts returns the verdicts matching the query, ordered by
// category then case ID.
func (s *MemoryStore) QueryVerdicts(ctx context.Context, q *Query) ([]*StoredVerdict, error) {
	if q == nil {
		q = &Query{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*StoredVerdict
	for _, sv := range s.verdicts {
		if q.RunID != "" && sv.RunID != q.RunID {
			continue
		}
		if q.Category != "" && sv.Category != q.Category {
			continue
		}
		if q.Compliant != nil && sv.Compliant != *q.Compliant {
			continue
		}
		copied := *sv
		results = append(results, &copied)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Category != results[j].Category {
			return results[i].Category < results[j].Category
		}
		return results[i].CaseID < results[j].CaseID
	})

	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}
	return results, nil
}

// Summary returns per-category counts for one run.
func (s *MemoryStore) Summary(ctx context.Context, runID string) ([]CategoryCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCategory := make(map[string]*CategoryCount)
	for _, sv := range s.verdicts {
		if sv.RunID != runID {
			continue
		}
		cc, ok := byCategory[sv.Category]
		if !ok {
			cc = &CategoryCount{Category: sv.Category}
			byCategory[sv.Category] = cc
		}
		cc.Total++
		if sv.Compliant {
			cc.Compliant++
		} else {
			cc.NonCompliant++
		}
	}

	counts := make([]CategoryCount, 0, len(byCategory))
	for _, cc := range byCategory {
		counts = append(counts, *cc)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Category < counts[j].Category })
	return counts, nil
}

// Runs returns the known run IDs, most recently stored first.
func (s *MemoryStore) Runs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var runs []string
	for i := len(s.verdicts) - 1; i >= 0; i-- {
		id := s.verdicts[i].RunID
		if !seen[id] {
			seen[id] = true
			runs = append(runs, id)
		}
	}
	return runs, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
