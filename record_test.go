package sail

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/sail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	pg := New(ctx, `a_textField({label: "N", saveInto: "n"})`, WithDumpMode(DumpLatest))
	_, err := pg.Input(ctx, "n", "typed")
	require.NoError(t, err)
	pg.Edit(ctx, `a_textField({`)

	data, err := json.Marshal(pg.Record())
	require.NoError(t, err)
	var rec Record
	require.NoError(t, json.Unmarshal(data, &rec))

	restored := Restore(ctx, rec)

	assert.Equal(t, pg.ID(), restored.ID())
	assert.Equal(t, pg.Source(), restored.Source())
	assert.Equal(t, pg.State(), restored.State())
	assert.Len(t, restored.History(), 2)
	assert.Equal(t, DumpLatest, restored.DumpMode())

	f := restored.Current()
	assert.Equal(t, PhaseShowingError, f.Phase)
	assert.Equal(t, pg.Current().Seq, f.Seq)
	assert.Equal(t, 2, f.HistoryLen)
}

func TestRestore_DoesNotRecord(t *testing.T) {
	ctx := context.Background()
	pg := New(ctx, `a_buttonWidget({label: "Go"})`)

	cycles := 0
	restored := Restore(ctx, pg.Record(), WithLifecycleHooks(domain.LifecycleHooks{
		OnCycleEnd: func(context.Context, *domain.CycleEvent) { cycles++ },
	}))

	assert.Zero(t, cycles)
	assert.Equal(t, PhaseRendering, restored.Current().Phase)
	assert.Equal(t, pg.History()[0].Tree, restored.History()[0].Tree)
	assert.Len(t, restored.History(), 1)
	assert.Contains(t, restored.Current().HTML(), ">Go</button>")
}
