package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/render"
	"golang.org/x/net/html"
)

// Phase is a position in the render cycle.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseEvaluating   Phase = "evaluating"
	PhaseRendering    Phase = "rendering"
	PhaseShowingError Phase = "showing_error"
)

// Renderer produces element trees for successful and failed cycles.
type Renderer interface {
	Render(node *domain.Node, state domain.StateReader) *html.Node
	RenderError(err *domain.EvaluationError) *html.Node
}

// Frame is the outcome of one cycle.
type Frame struct {
	Seq        int
	Phase      Phase
	Root       *domain.Node
	Err        *domain.EvaluationError
	View       *html.Node
	State      map[string]string
	HistoryLen int
	Duration   time.Duration
}

// Failed reports whether the cycle ended on the error view.
func (f *Frame) Failed() bool {
	return f != nil && f.Err != nil
}

// Cycle describes the inputs of one pass. State and History belong to the
// caller, which must not run two cycles on them concurrently.
type Cycle struct {
	SessionID string
	Trigger   string
	Seq       int
	Source    string
	State     *domain.State
	History   *domain.History
	// Replay re-renders a restored session: the tree is not recorded and
	// no cycle events are emitted.
	Replay bool
}

// Engine runs render cycles. It holds no session data and is safe to share.
type Engine struct {
	evaluator *Evaluator
	renderer  Renderer
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger configures the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithRenderer replaces the default HTML renderer.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithClock overrides the time source used for event timestamps and durations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an engine with the default renderer.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.renderer == nil {
		e.renderer = render.New(render.WithLogger(e.logger))
	}
	e.evaluator = NewEvaluator(e.logger)
	return e
}

// Run evaluates the source, then either renders the tree and records it in
// History or renders the error view and leaves History untouched.
func (e *Engine) Run(ctx context.Context, c Cycle) *Frame {
	start := e.now()
	e.emitCycle(ctx, e.hooks.OnCycleStart, domain.EventCycleStart, c, 0, nil)
	e.transition(ctx, c, PhaseIdle, PhaseEvaluating)

	res := e.evaluator.Evaluate(ctx, c.Source, c.State)

	frame := &Frame{Seq: c.Seq, Root: res.Root, Err: res.Err}
	if res.Failed() {
		e.transition(ctx, c, PhaseEvaluating, PhaseShowingError)
		frame.Phase = PhaseShowingError
		frame.View = e.renderer.RenderError(res.Err)
		e.logger.InfoContext(ctx, "Cycle failed", "session_id", c.SessionID, "seq", c.Seq, "err", res.Err)
	} else {
		e.transition(ctx, c, PhaseEvaluating, PhaseRendering)
		frame.Phase = PhaseRendering
		frame.View = e.renderer.Render(res.Root, c.State)
		if !c.Replay {
			c.History.Append(res.Root)
		}
	}
	frame.State = c.State.Snapshot()
	frame.HistoryLen = c.History.Len()
	frame.Duration = e.now().Sub(start)
	e.transition(ctx, c, frame.Phase, PhaseIdle)

	event := domain.EventCycleSuccess
	if frame.Failed() {
		event = domain.EventCycleFailure
	}
	e.emitCycle(ctx, e.hooks.OnCycleEnd, event, c, frame.Duration, res.Err)
	return frame
}

// NotifyStateChange reports a field write to the hooks.
func (e *Engine) NotifyStateChange(ctx context.Context, sessionID, key, value string) {
	if e.hooks.OnStateChange == nil {
		return
	}
	e.hooks.OnStateChange(ctx, &domain.StateEvent{
		EventBase: e.base(domain.EventStateChange, sessionID),
		Key:       key,
		Value:     value,
	})
}

// NotifySubmit reports a button activation to the hooks.
func (e *Engine) NotifySubmit(ctx context.Context, sessionID string, state map[string]string) {
	if e.hooks.OnSubmit == nil {
		return
	}
	e.hooks.OnSubmit(ctx, &domain.SubmitEvent{
		EventBase: e.base(domain.EventSubmit, sessionID),
		State:     state,
	})
}

func (e *Engine) emitCycle(ctx context.Context, hook func(context.Context, *domain.CycleEvent), typ domain.EventType, c Cycle, d time.Duration, err *domain.EvaluationError) {
	if hook == nil || c.Replay {
		return
	}
	hook(ctx, &domain.CycleEvent{
		EventBase:  e.base(typ, c.SessionID),
		Seq:        c.Seq,
		Trigger:    c.Trigger,
		Duration:   d,
		HistoryLen: c.History.Len(),
		Err:        err,
	})
}

func (e *Engine) base(typ domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{Timestamp: e.now(), Type: typ, SessionID: sessionID}
}

func (e *Engine) transition(ctx context.Context, c Cycle, from, to Phase) {
	e.logger.DebugContext(ctx, "Cycle transition", "session_id", c.SessionID, "seq", c.Seq, "from", from, "to", to)
}
