package ports

import (
	"context"
	"testing"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunPlaygroundStoreContract verifies that a PlaygroundStore implementation
// adheres to the interface contract.
func RunPlaygroundStoreContract(t *testing.T, store PlaygroundStore) {
	ctx := context.Background()

	t.Run("Save and Load", func(t *testing.T) {
		pg := sail.New(ctx, `a_buttonWidget({label: "A"})`, sail.WithSessionID("contract-a"))
		require.NoError(t, store.Save(ctx, pg))

		loaded, err := store.Load(ctx, "contract-a")
		require.NoError(t, err)
		assert.Equal(t, pg.ID(), loaded.ID())
		assert.Equal(t, pg.Source(), loaded.Source())
	})

	t.Run("Load Missing", func(t *testing.T) {
		_, err := store.Load(ctx, "contract-missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sail.New(ctx, "null", sail.WithSessionID("contract-b"))))

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, "contract-a")
		assert.Contains(t, ids, "contract-b")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "contract-a"))
		_, err := store.Load(ctx, "contract-a")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		assert.NoError(t, store.Delete(ctx, "contract-a"), "delete is idempotent")
	})
}
