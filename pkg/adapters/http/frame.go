package http

import (
	"github.com/aretw0/sail"
	"github.com/aretw0/sail/pkg/domain"
)

// FrameResponse is the wire form of a render cycle.
type FrameResponse struct {
	SessionID  string                  `json:"session_id"`
	Seq        int                     `json:"seq"`
	Phase      string                  `json:"phase"`
	Source     string                  `json:"source,omitempty"`
	AST        *domain.Node            `json:"ast"`
	Error      *domain.EvaluationError `json:"error,omitempty"`
	HTML       string                  `json:"html"`
	State      map[string]string       `json:"state"`
	Dump       string                  `json:"dump"`
	HistoryLen int                     `json:"history_len"`
	Diff       *domain.StateDiff       `json:"diff,omitempty"`
}

// newFrameResponse describes the playground's current frame.
func newFrameResponse(pg *sail.Playground) FrameResponse {
	f := pg.Current()
	return FrameResponse{
		SessionID:  pg.ID(),
		Seq:        f.Seq,
		Phase:      string(f.Phase),
		Source:     pg.Source(),
		AST:        f.Root,
		Error:      f.Err,
		HTML:       f.HTML(),
		State:      f.State,
		Dump:       pg.Dump(""),
		HistoryLen: f.HistoryLen,
	}
}

// mark captures what a client already has, so that the next frame can carry a diff.
type mark struct {
	state      map[string]string
	historyLen int
}

func markOf(pg *sail.Playground) mark {
	return mark{state: pg.State(), historyLen: pg.Current().HistoryLen}
}

func (m mark) diff(pg *sail.Playground, resp *FrameResponse) {
	resp.Diff = domain.Diff(pg.ID(), m.state, resp.State, m.historyLen, resp.HistoryLen)
}
