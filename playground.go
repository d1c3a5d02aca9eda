package sail

import (
	"context"
	"log/slog"

	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/internal/runtime"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/dsl"
	"github.com/google/uuid"
)

// Triggers recorded on cycle events.
const (
	TriggerLoad    = "load"
	TriggerEdit    = "edit"
	TriggerInput   = "input"
	TriggerRefresh = "refresh"
	TriggerReset   = "reset"
	TriggerRestore = "restore"
)

// Playground is one editing session: a source document, the field state it
// reads, the history of successful trees and the latest frame.
//
// A Playground is not safe for concurrent use. Hosts serving several clients
// serialize events per session (see pkg/session).
type Playground struct {
	id       string
	engine   *runtime.Engine
	source   string
	state    *domain.State
	history  *domain.History
	current  *Frame
	seq      int
	dumpMode DumpMode
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option configures a Playground.
type Option func(*Playground)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Playground) {
		p.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Playground) {
		p.hooks = p.hooks.Merge(hooks)
	}
}

// WithSessionID sets the identifier reported on events. A random one is used otherwise.
func WithSessionID(id string) Option {
	return func(p *Playground) {
		p.id = id
	}
}

// WithInitialState seeds the field state before the first cycle.
func WithInitialState(values map[string]string) Option {
	return func(p *Playground) {
		for k, v := range values {
			p.state.Set(k, v)
		}
	}
}

// WithDumpMode sets the default mode of Dump.
func WithDumpMode(mode DumpMode) Option {
	return func(p *Playground) {
		p.dumpMode = mode
	}
}

// New creates a playground for source and runs the first cycle.
// An empty source loads the built-in demo form.
func New(ctx context.Context, source string, opts ...Option) *Playground {
	if source == "" {
		source = dsl.DefaultSource
	}
	p := build(source, opts)
	p.cycle(ctx, TriggerLoad)
	return p
}

func build(source string, opts []Option) *Playground {
	p := &Playground{
		source:   source,
		state:    domain.NewState(nil),
		history:  domain.NewHistory(),
		dumpMode: DumpHistory,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.id == "" {
		p.id = uuid.NewString()
	}
	p.logger = p.logger.With("session_id", p.id)
	p.engine = runtime.NewEngine(
		runtime.WithLogger(p.logger),
		runtime.WithLifecycleHooks(p.hooks),
	)
	return p
}

// ID returns the session identifier.
func (p *Playground) ID() string { return p.id }

// Edit replaces the source text and re-renders.
func (p *Playground) Edit(ctx context.Context, source string) *Frame {
	p.source = source
	return p.cycle(ctx, TriggerEdit)
}

// Input records a field change and re-renders. The write is kept even when
// the following cycle fails. The value passes through domain.SanitizeValue
// first; a rejected value leaves state untouched.
func (p *Playground) Input(ctx context.Context, key, value string) (*Frame, error) {
	if key == "" {
		return nil, domain.ErrUnboundField
	}
	value, err := domain.SanitizeValue(value)
	if err != nil {
		return nil, err
	}
	p.state.Set(key, value)
	p.engine.NotifyStateChange(ctx, p.id, key, value)
	return p.cycle(ctx, TriggerInput), nil
}

// Submit handles a button activation and returns the current field values.
func (p *Playground) Submit(ctx context.Context) map[string]string {
	snapshot := p.state.Snapshot()
	p.engine.NotifySubmit(ctx, p.id, snapshot)
	p.logger.InfoContext(ctx, "Submit", "fields", len(snapshot))
	return snapshot
}

// Refresh re-runs the cycle on the current source.
func (p *Playground) Refresh(ctx context.Context) *Frame {
	return p.cycle(ctx, TriggerRefresh)
}

// Reset clears state and history and re-renders.
func (p *Playground) Reset(ctx context.Context) *Frame {
	p.state.Reset()
	p.history.Clear()
	return p.cycle(ctx, TriggerReset)
}

// Current returns the latest frame.
func (p *Playground) Current() *Frame { return p.current }

// Source returns the current document text.
func (p *Playground) Source() string { return p.source }

// State returns a copy of the field values.
func (p *Playground) State() map[string]string { return p.state.Snapshot() }

// History returns copies of the recorded trees.
func (p *Playground) History() []domain.Snapshot { return p.history.Entries() }

// DumpMode returns the default dump mode.
func (p *Playground) DumpMode() DumpMode { return p.dumpMode }

func (p *Playground) cycle(ctx context.Context, trigger string) *Frame {
	replay := trigger == TriggerRestore
	if !replay {
		p.seq++
	}
	p.current = p.engine.Run(ctx, runtime.Cycle{
		SessionID: p.id,
		Trigger:   trigger,
		Seq:       p.seq,
		Source:    p.source,
		State:     p.state,
		History:   p.history,
		Replay:    replay,
	})
	return p.current
}
