package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/ports"
	"github.com/google/uuid"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring that events on one
// playground are handled one at a time.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.PlaygroundStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	pgOpts   []sail.Option
	observer ports.SessionObserver
	locker   ports.DistributedLocker
	lockTTL  time.Duration
	logger   *slog.Logger
}

// DefaultLockTTL bounds how long a crashed replica can hold a session.
const DefaultLockTTL = 10 * time.Second

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithPlaygroundOptions sets options applied to every new playground.
func WithPlaygroundOptions(opts ...sail.Option) Option {
	return func(m *Manager) {
		m.pgOpts = append(m.pgOpts, opts...)
	}
}

// WithObserver reports session creation and removal.
func WithObserver(o ports.SessionObserver) Option {
	return func(m *Manager) {
		m.observer = o
	}
}

// WithLocker coordinates session access across replicas sharing a store.
// The local mutex is still taken first so that one process never contends
// with itself over the network.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(m *Manager) {
		m.locker = l
		m.lockTTL = ttl
	}
}

// NewManager creates a new Session Manager over the given store.
func NewManager(store ports.PlaygroundStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		logger:  logging.NewNop(),
		lockTTL: DefaultLockTTL,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Create starts a playground under a fresh ID and runs its first cycle.
// An empty source loads the built-in demo form.
func (m *Manager) Create(ctx context.Context, source string, initial map[string]string) (*sail.Playground, error) {
	id := uuid.NewString()
	var pg *sail.Playground
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		opts := append([]sail.Option{
			sail.WithSessionID(id),
			sail.WithLogger(m.logger),
			sail.WithInitialState(initial),
		}, m.pgOpts...)
		pg = sail.New(ctx, source, opts...)
		if err := m.store.Save(ctx, pg); err != nil {
			return fmt.Errorf("failed to register session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if m.observer != nil {
		m.observer.SessionOpened()
	}
	m.logger.Debug("Session created", "session_id", id)
	return pg, nil
}

// Do runs fn on the session's playground while holding its lock, then saves
// the playground back so that durable stores see the change.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(context.Context, *sail.Playground) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		pg, err := m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(ctx, pg); err != nil {
			return err
		}
		return m.store.Save(ctx, pg)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, err := m.store.Load(ctx, sessionID); err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				return nil
			}
			return err
		}
		if err := m.store.Delete(ctx, sessionID); err != nil {
			return err
		}
		if m.observer != nil {
			m.observer.SessionClosed()
		}
		return nil
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying store.
func (m *Manager) Store() ports.PlaygroundStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to lock session %s: %w", sessionID, err)
		}
		defer func() {
			if err := unlock(context.Background()); err != nil {
				m.logger.Warn("Failed to release session lock", "session_id", sessionID, "err", err)
			}
		}()
	}
	return fn(ctx)
}
