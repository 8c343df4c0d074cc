package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
)

// MemoryStore keeps the catalog in process memory. State is lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	activities model.Catalog
}

// NewMemoryStore constructs a MemoryStore holding a private copy of seed.
func NewMemoryStore(seed model.Catalog) *MemoryStore {
	activities := make(model.Catalog, len(seed))
	for name, a := range seed {
		activities[name] = a.Clone()
	}
	return &MemoryStore{activities: activities}
}

// List returns a deep copy so callers cannot mutate rosters behind the lock.
func (s *MemoryStore) List(_ context.Context) (model.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(model.Catalog, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

// AddParticipant checks existence, then duplicates, then (optionally) capacity.
func (s *MemoryStore) AddParticipant(_ context.Context, activity, email string, enforceCapacity bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activity]
	if !ok {
		return ErrNotFound
	}
	if a.HasParticipant(email) {
		return ErrAlreadySignedUp
	}
	if enforceCapacity && a.IsFull() {
		return ErrActivityFull
	}

	a.Participants = append(a.Participants, email)
	s.activities[activity] = a
	return nil
}

func (s *MemoryStore) RemoveParticipant(_ context.Context, activity, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[activity]
	if !ok {
		return ErrNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return ErrNotRegistered
	}

	a.Participants = slices.Delete(a.Participants, i, i+1)
	s.activities[activity] = a
	return nil
}
