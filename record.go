package sail

import (
	"context"

	"github.com/aretw0/sail/pkg/domain"
)

// Record is the serializable form of a playground, used by durable stores.
// The current frame is not part of it; Restore re-renders it.
type Record struct {
	ID       string            `json:"id"`
	Source   string            `json:"source"`
	State    map[string]string `json:"state"`
	History  []domain.Snapshot `json:"history"`
	Seq      int               `json:"seq"`
	DumpMode DumpMode          `json:"dump_mode,omitempty"`
}

// Record exports the playground's data.
func (p *Playground) Record() Record {
	return Record{
		ID:       p.id,
		Source:   p.source,
		State:    p.state.Snapshot(),
		History:  p.history.Entries(),
		Seq:      p.seq,
		DumpMode: p.dumpMode,
	}
}

// Restore rebuilds a playground from a record and re-renders its current
// frame. The replayed cycle keeps the saved seq, adds nothing to the history
// and fires no cycle hooks, so a restored playground looks exactly like the
// one that was saved.
func Restore(ctx context.Context, rec Record, opts ...Option) *Playground {
	p := build(rec.Source, append(append([]Option{}, opts...), WithSessionID(rec.ID)))
	p.state = domain.NewState(rec.State)
	p.history = domain.RestoreHistory(rec.History)
	p.seq = rec.Seq
	if rec.DumpMode != "" {
		p.dumpMode = rec.DumpMode
	}
	p.cycle(ctx, TriggerRestore)
	return p
}
