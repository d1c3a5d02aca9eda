package domain

// StateDiff represents the changes between two consecutive frames of a session.
// It is designed to be serialized to JSON for partial updates on the client.
type StateDiff struct {
	// SessionID is always present to identify the target.
	SessionID string `json:"session_id"`

	// State contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	State map[string]*string `json:"state,omitempty"`

	// Appended counts the snapshots added to the history since the old frame.
	Appended int `json:"appended,omitempty"`

	// Cleared is set when the history shrank (session reset).
	Cleared bool `json:"cleared,omitempty"`
}

// Diff calculates the difference between two state snapshots and history lengths.
// A nil old map is treated as an initial load. It returns nil when nothing changed.
func Diff(sessionID string, oldState, newState map[string]string, oldLen, newLen int) *StateDiff {
	diff := &StateDiff{SessionID: sessionID}

	delta := make(map[string]*string)
	for k, v := range newState {
		if old, ok := oldState[k]; !ok || old != v {
			v := v
			delta[k] = &v
		}
	}
	for k := range oldState {
		if _, ok := newState[k]; !ok {
			delta[k] = nil
		}
	}
	if len(delta) > 0 {
		diff.State = delta
	}

	switch {
	case newLen > oldLen:
		diff.Appended = newLen - oldLen
	case newLen < oldLen:
		diff.Cleared = true
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *StateDiff) IsEmpty() bool {
	return len(d.State) == 0 && d.Appended == 0 && !d.Cleared
}
