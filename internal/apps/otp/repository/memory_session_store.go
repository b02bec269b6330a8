package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"spam-shield/internal/apps/otp/models"
)

// sweepEvery is how many saves pass between full expiry sweeps.
const sweepEvery = 256

type sessionItem struct {
	value   []byte
	expires time.Time
}

// memorySessionStore is an in-memory SessionStore with TTL support.
// It is only safe for single-process deployments.
type memorySessionStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]sessionItem
	saves int
	now   func() time.Time
}

// NewMemorySessionStore creates a SessionStore whose entries expire ttl after their last save
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		ttl:   ttl,
		items: make(map[string]sessionItem),
		now:   time.Now,
	}
}

func (s *memorySessionStore) Load(_ context.Context, id string) (*models.VerificationSession, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[id]
	if !ok {
		return nil, false, nil
	}
	if !it.expires.IsZero() && s.now().After(it.expires) {
		delete(s.items, id)
		return nil, false, nil
	}

	var session models.VerificationSession
	if err := json.Unmarshal(it.value, &session); err != nil {
		return nil, false, err
	}
	return &session, true, nil
}

func (s *memorySessionStore) Save(_ context.Context, session *models.VerificationSession) error {
	value, err := json.Marshal(session)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var exp time.Time
	if s.ttl > 0 {
		exp = s.now().Add(s.ttl)
	}
	s.items[session.ID] = sessionItem{value: value, expires: exp}
	s.saves++
	if s.saves%sweepEvery == 0 {
		s.evictExpiredLocked()
	}
	return nil
}

// evictExpiredLocked drops stale sessions so abandoned ones do not accumulate
func (s *memorySessionStore) evictExpiredLocked() {
	now := s.now()
	for id, it := range s.items {
		if !it.expires.IsZero() && now.After(it.expires) {
			delete(s.items, id)
		}
	}
}
