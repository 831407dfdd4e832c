// Package memory implements db.Store in process memory with per-key expiry.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/rankdex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type item struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// sweepInterval is the minimum time between two full expiry sweeps.
const sweepInterval = time.Minute

// Store is a map-backed store, safe for concurrent use. Expired keys are
// dropped on access and by a sweep that runs on writes at most once per
// sweepInterval.
type Store struct {
	mu        sync.RWMutex
	items     map[string]item
	now       func() time.Time
	lastSweep time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		items: make(map[string]item),
		now:   time.Now,
	}
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close drops every key.
func (s *Store) Close() {
	s.mu.Lock()
	s.items = make(map[string]item)
	s.mu.Unlock()
}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// Get retrieves a copy of the value at key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	if s.expired(it) {
		s.mu.Lock()
		if cur, ok := s.items[key]; ok && s.expired(cur) {
			delete(s.items, key)
		}
		s.mu.Unlock()
		return nil, db.ErrKeyNotFound
	}
	return append([]byte(nil), it.value...), nil
}

// Set stores value at key without expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores value at key. A non-positive ttl means no expiry.
func (s *Store) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := s.now()
	it := item{value: append([]byte(nil), value...)}
	if ttl > 0 {
		it.expiresAt = now.Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = it
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweepLocked(now)
	}
	s.mu.Unlock()
	return nil
}

// sweepLocked drops every expired key. Caller holds s.mu.
func (s *Store) sweepLocked(now time.Time) {
	for k, it := range s.items {
		if !it.expiresAt.IsZero() && !now.Before(it.expiresAt) {
			delete(s.items, k)
		}
	}
	s.lastSweep = now
}

// Del removes key. Missing keys are not an error.
func (s *Store) Del(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

// Exists reports whether a live value is stored at key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	it, ok := s.items[key]
	s.mu.RUnlock()
	return ok && !s.expired(it), nil
}

func (s *Store) expired(it item) bool {
	return !it.expiresAt.IsZero() && !s.now().Before(it.expiresAt)
}
