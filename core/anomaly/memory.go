package anomaly

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-process Store for tests and development.
type MemoryStore struct {
	mu    sync.Mutex
	flags map[uuid.UUID]*Flag
}

// NewMemoryStore creates an empty in-process flag store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{flags: make(map[uuid.UUID]*Flag)}
}

func (s *MemoryStore) Insert(_ context.Context, flag *Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *flag
	s.flags[flag.ID] = &stored
	return nil
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*Flag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flag, ok := s.flags[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *flag
	return &out, nil
}

func (s *MemoryStore) ListPending(_ context.Context) ([]Flag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []Flag
	for _, flag := range s.flags {
		if !flag.Reviewed {
			pending = append(pending, *flag)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (s *MemoryStore) MarkReviewed(_ context.Context, id uuid.UUID, actionTaken string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flag, ok := s.flags[id]
	if !ok {
		return ErrNotFound
	}
	flag.Reviewed = true
	flag.ActionTaken = actionTaken
	flag.ReviewedAt = at
	return nil
}
