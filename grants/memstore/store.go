// Package memstore is the in-memory implementation of the grant store,
// suitable for single-instance deployments and tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-authz-server/grants"
	"github.com/pkg/errors"
)

const defaultJanitorInterval = time.Minute

var _ grants.Store = (*Store)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Store is a mutex-guarded map with per-key deadlines. Expired entries are
// dropped lazily on Take and swept by a background janitor so that abandoned
// flows do not accumulate.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry

	nowTime         func() time.Time
	janitorInterval time.Duration
	stopJanitor     chan struct{}
	stopOnce        sync.Once
}

// Option modifies a Store at construction time.
type Option func(*Store)

// WithNowTime sets the clock function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) Option {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithJanitorInterval sets how often expired entries are swept.
func WithJanitorInterval(interval time.Duration) Option {
	return func(s *Store) {
		s.janitorInterval = interval
	}
}

// New creates a store and starts its janitor.
func New(options ...Option) *Store {
	s := &Store{
		entries:         make(map[string]entry),
		nowTime:         time.Now,
		janitorInterval: defaultJanitorInterval,
		stopJanitor:     make(chan struct{}),
	}
	for _, opt := range options {
		opt(s)
	}
	go s.janitor()
	return s
}

// Put inserts or overwrites a key. The value becomes visible to Take
// immediately and expires after ttl if never taken.
func (s *Store) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("[memstore.Put] key cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("[memstore.Put] ttl must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	s.entries[key] = entry{value: v, expiresAt: s.nowTime().Add(ttl)}
	return nil
}

// Take atomically reads and removes a key. A missing or expired key yields
// grants.ErrNotFound.
func (s *Store) Take(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("[memstore.Take] key cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, grants.ErrNotFound
	}
	delete(s.entries, key)
	if s.nowTime().After(e.expiresAt) {
		return nil, grants.ErrNotFound
	}
	return e.value, nil
}

// Stop terminates the janitor goroutine.
func (s *Store) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopJanitor)
	})
}

func (s *Store) janitor() {
	ticker := time.NewTicker(s.janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopJanitor:
			return
		}
	}
}

func (s *Store) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowTime()
	for key, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}
