package ports

import (
	"context"

	"github.com/aretw0/sail"
)

// PlaygroundStore keeps live playground sessions.
// Implementations must be safe for concurrent use; callers serialize access
// to a single playground themselves.
type PlaygroundStore interface {
	// Save registers the playground under its ID.
	Save(ctx context.Context, pg *sail.Playground) error

	// Load returns the playground for sessionID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*sail.Playground, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of every stored session.
	List(ctx context.Context) ([]string, error)
}
