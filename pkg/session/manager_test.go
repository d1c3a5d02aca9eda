package session_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/pkg/adapters/memory"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	opened, closed atomic.Int32
}

func (c *countingObserver) SessionOpened() { c.opened.Add(1) }
func (c *countingObserver) SessionClosed() { c.closed.Add(1) }

func TestManager_CreateAndDo(t *testing.T) {
	ctx := context.Background()
	obs := &countingObserver{}
	mgr := session.NewManager(memory.NewStore(), session.WithObserver(obs))

	pg, err := mgr.Create(ctx, `a_textField({saveInto: "n"})`, map[string]string{"n": "seed"})
	require.NoError(t, err)
	assert.NotEmpty(t, pg.ID())
	assert.Contains(t, pg.Current().HTML(), `value="seed"`)

	err = mgr.Do(ctx, pg.ID(), func(ctx context.Context, p *sail.Playground) error {
		_, err := p.Input(ctx, "n", "typed")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "typed", pg.State()["n"])

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{pg.ID()}, ids)

	require.NoError(t, mgr.Delete(ctx, pg.ID()))
	require.NoError(t, mgr.Delete(ctx, pg.ID()), "second delete is a no-op")
	assert.Equal(t, int32(1), obs.opened.Load())
	assert.Equal(t, int32(1), obs.closed.Load())

	err = mgr.Do(ctx, pg.ID(), func(context.Context, *sail.Playground) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_SerializesEvents(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.NewStore())
	pg, err := mgr.Create(ctx, "null", nil)
	require.NoError(t, err)

	var active, maxActive atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := mgr.Do(ctx, pg.ID(), func(ctx context.Context, p *sail.Playground) error {
				n := active.Add(1)
				if n > maxActive.Load() {
					maxActive.Store(n)
				}
				time.Sleep(2 * time.Millisecond)
				p.Refresh(ctx)
				active.Add(-1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive.Load())
	assert.Len(t, pg.History(), 11)
}

func TestManager_CanceledContext(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := mgr.WithLock(ctx, "x", func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
