package ports

import (
	"context"

	"github.com/aretw0/sail/pkg/domain"
)

// ExampleLibrary is a read-only source of snippets.
type ExampleLibrary interface {
	// List returns every example, ordered by ID.
	List(ctx context.Context) ([]domain.Example, error)

	// Get returns one example or domain.ErrExampleNotFound.
	Get(ctx context.Context, id string) (domain.Example, error)
}

// Watchable is implemented by libraries that can report changes.
type Watchable interface {
	// Watch emits the ID of every changed example until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}

// SessionObserver is notified when sessions are created or dropped.
type SessionObserver interface {
	SessionOpened()
	SessionClosed()
}
