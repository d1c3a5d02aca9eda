package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/pkg/domain"
)

// Store implements ports.PlaygroundStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*entry
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
}

type entry struct {
	pg       *sail.Playground
	lastUsed time.Time
}

type Option func(*Store)

// WithTTL evicts sessions not saved or loaded for longer than ttl.
// Zero keeps sessions until deleted.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock replaces time.Now for expiry bookkeeping.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a new in-memory store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]*entry),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save registers the playground and refreshes its expiry.
func (s *Store) Save(ctx context.Context, pg *sail.Playground) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.prune(now)
	s.data[pg.ID()] = &entry{pg: pg, lastUsed: now}
	return nil
}

// Load retrieves a playground and refreshes its expiry. The live instance is
// returned: sessions are never serialized, so callers must hold the session
// lock while using it.
func (s *Store) Load(ctx context.Context, sessionID string) (*sail.Playground, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.prune(now)

	e, ok := s.data[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	e.lastUsed = now
	return e.pg, nil
}

// Delete removes the playground.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns active sessions in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	sort.Strings(sessions)
	return sessions, nil
}

// prune drops expired entries. Callers hold mu.
func (s *Store) prune(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, e := range s.data {
		if now.Sub(e.lastUsed) > s.ttl {
			delete(s.data, id)
		}
	}
}
