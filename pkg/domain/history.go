package domain

import "time"

// Snapshot is a frozen copy of a successfully evaluated tree.
type Snapshot struct {
	Index      int       `json:"index"`
	Tree       *Node     `json:"tree"`
	CapturedAt time.Time `json:"captured_at"`
}

// History is the append-only log of successful trees.
type History struct {
	entries []Snapshot
	now     func() time.Time
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{now: time.Now}
}

// RestoreHistory rebuilds a history from previously exported snapshots.
// Indexes are renumbered in order.
func RestoreHistory(entries []Snapshot) *History {
	h := NewHistory()
	for i, e := range entries {
		e.Index = i
		e.Tree = e.Tree.Clone()
		h.entries = append(h.entries, e)
	}
	return h
}

// Append stores a deep copy of tree and returns the new snapshot.
func (h *History) Append(tree *Node) Snapshot {
	snap := Snapshot{
		Index:      len(h.entries),
		Tree:       tree.Clone(),
		CapturedAt: h.now(),
	}
	h.entries = append(h.entries, snap)
	return snap
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Entries returns the snapshots in capture order. Trees are cloned so that
// callers cannot reach the stored copies.
func (h *History) Entries() []Snapshot {
	out := make([]Snapshot, h.Len())
	for i, e := range h.entries {
		e.Tree = e.Tree.Clone()
		out[i] = e
	}
	return out
}

// Latest returns the most recent snapshot, if any.
func (h *History) Latest() (Snapshot, bool) {
	if h.Len() == 0 {
		return Snapshot{}, false
	}
	e := h.entries[len(h.entries)-1]
	e.Tree = e.Tree.Clone()
	return e, true
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.entries = nil
}
