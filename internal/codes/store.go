// Package codes provides expiring key-value stores for password-change
// verification codes.
package codes

import (
	"context"
	"sync"
	"time"

	models "github.com/tayotravel/tourbook/internal"
)

type entry struct {
	code      models.VerificationCode
	expiresAt time.Time
}

// MemoryStore keeps codes in a process-local map. State is lost on
// restart and not shared across instances; deployments needing either
// should use the Redis store.
type MemoryStore struct {
	mu    sync.Mutex
	codes map[string]entry
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]entry),
		now:   time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, key string, code models.VerificationCode, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[key] = entry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

// Get returns nil when the key is absent or expired. Expired entries
// are removed on access.
func (s *MemoryStore) Get(_ context.Context, key string) (*models.VerificationCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.codes[key]
	if !ok {
		return nil, nil
	}
	if s.now().After(e.expiresAt) {
		delete(s.codes, key)
		return nil, nil
	}
	code := e.code
	return &code, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, key)
	return nil
}
