package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/sail"
	"github.com/aretw0/sail/pkg/adapters/redis"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/ports"
	"github.com/aretw0/sail/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunPlaygroundStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_RestoresPlayground(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	pg := sail.New(ctx, `a_formLayout({label: "T", contents: [a_textField({label: "N", saveInto: "n"})]})`)
	_, err := pg.Input(ctx, "n", "saved")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, pg))

	loaded, err := store.Load(ctx, pg.ID())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"n": "saved"}, loaded.State())
	require.Len(t, loaded.History(), 2)
	assert.True(t, pg.History()[1].Tree.Equal(loaded.History()[1].Tree))
	assert.Equal(t, pg.Current().HTML(), loaded.Current().HTML())
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	pg := sail.New(ctx, "null", sail.WithSessionID("session-ttl"))
	require.NoError(t, store.Save(ctx, pg))

	sessions, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, sessions, "session-ttl")

	// Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "session-ttl")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	// The index is pruned against the wall clock.
	time.Sleep(1200 * time.Millisecond)

	sessions, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRedisStore_New(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := redis.New("redis://"+mr.Addr()+"/0", redis.WithPrefix("custom:"))
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), sail.New(context.Background(), "null", sail.WithSessionID("a"))))
	assert.True(t, mr.Exists("custom:a"))

	_, err = redis.New("not a url")
	assert.Error(t, err)
}

func TestSessionManager_SharedAcrossReplicas(t *testing.T) {
	_, client := newClient(t)
	ctx := context.Background()

	newReplica := func() *session.Manager {
		return session.NewManager(redis.NewFromClient(client),
			session.WithLocker(redis.NewLocker(client, redis.DefaultPrefix), time.Second),
		)
	}
	a, b := newReplica(), newReplica()

	pg, err := a.Create(ctx, `a_textField({saveInto: "n"})`, nil)
	require.NoError(t, err)

	err = b.Do(ctx, pg.ID(), func(ctx context.Context, pg *sail.Playground) error {
		_, err := pg.Input(ctx, "n", "from b")
		return err
	})
	require.NoError(t, err)

	err = a.Do(ctx, pg.ID(), func(ctx context.Context, pg *sail.Playground) error {
		assert.Equal(t, "from b", pg.State()["n"])
		assert.Equal(t, 2, pg.Current().HistoryLen)
		assert.Equal(t, 2, pg.Current().Seq, "loading does not advance seq")
		return nil
	})
	require.NoError(t, err)
}
