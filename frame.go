package sail

import "github.com/aretw0/sail/internal/runtime"

// Frame is the outcome of one render cycle: the tree, the error, the rendered
// view and the state it was rendered with.
type Frame = runtime.Frame

// Phase is a position in the render cycle.
type Phase = runtime.Phase

const (
	PhaseIdle         = runtime.PhaseIdle
	PhaseEvaluating   = runtime.PhaseEvaluating
	PhaseRendering    = runtime.PhaseRendering
	PhaseShowingError = runtime.PhaseShowingError
)
