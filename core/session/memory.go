package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a mutex-guarded in-process Store for tests and development.
// The single lock makes demote-then-insert atomic, so the exclusivity
// invariant holds under concurrent Create calls just as it does behind the
// Postgres transaction.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewMemoryStore creates an empty in-process session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[uuid.UUID]*Session)}
}

func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.sessions {
		if existing.UserID == sess.UserID && existing.IsCurrent {
			existing.IsCurrent = false
		}
	}

	stored := *sess
	stored.IsCurrent = true
	s.sessions[stored.ID] = &stored
	return nil
}

func (s *MemoryStore) GetCurrent(_ context.Context, userID uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.UserID == userID && sess.IsCurrent {
			out := *sess
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *sess
	return &out, nil
}

func (s *MemoryStore) List(_ context.Context, userID uuid.UUID) ([]Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Session
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			out = append(out, *sess)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *MemoryStore) Touch(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.LastActive = at
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) DeleteOthers(_ context.Context, userID uuid.UUID, token string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, sess := range s.sessions {
		if sess.UserID == userID && sess.Token != token {
			delete(s.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) DeleteAll(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}
