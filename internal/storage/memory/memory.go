// Package memory provides an in-memory transaction store with the same
// contract as the SQLite repository. It backs the "memory" data backend
// and the aggregation tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"fintrack/internal/core"
)

type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// Add validates and stores the transaction, assigning the next id.
// A zero date defaults to today.
func (s *Store) Add(_ context.Context, n core.NewTransaction) (core.Transaction, error) {
	if err := n.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if n.Date.IsZero() {
		n.Date = core.Today()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := core.Transaction{
		ID:       s.nextID,
		Date:     n.Date,
		Type:     n.Type,
		Category: n.Category,
		Amount:   n.Amount,
		Note:     n.Note,
	}
	s.nextID++
	s.items = append(s.items, t)
	return t, nil
}

// Query returns matching transactions in ascending date order, ties
// broken by id.
func (s *Store) Query(_ context.Context, f core.Filter) ([]core.Transaction, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.items {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date.Time) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// All returns the whole ledger.
func (s *Store) All(ctx context.Context) ([]core.Transaction, error) {
	return s.Query(ctx, core.Filter{})
}

// Count returns the number of stored records.
func (s *Store) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.items)), nil
}
