package domain

import (
	"encoding/json"
	"sort"
)

// State holds the values of bound fields, keyed by their saveInto key.
// It lives for the whole session and is shared by evaluation and rendering.
// State is not safe for concurrent use; callers serialize access per session.
type State struct {
	fields map[string]string
}

// StateReader is the read-only view the renderer needs.
type StateReader interface {
	Get(key string) (string, bool)
}

// NewState creates an empty state, optionally seeded with initial values.
func NewState(initial map[string]string) *State {
	s := &State{fields: make(map[string]string, len(initial))}
	for k, v := range initial {
		s.fields[k] = v
	}
	return s
}

// Get returns the value stored under key and whether it was ever set.
func (s *State) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.fields[key]
	return v, ok
}

// Set stores value under key.
func (s *State) Set(key, value string) {
	s.fields[key] = value
}

// Len returns the number of stored keys.
func (s *State) Len() int {
	if s == nil {
		return 0
	}
	return len(s.fields)
}

// Keys returns the stored keys in lexical order.
func (s *State) Keys() []string {
	keys := make([]string, 0, s.Len())
	if s == nil {
		return keys
	}
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of the current values.
func (s *State) Snapshot() map[string]string {
	out := make(map[string]string, s.Len())
	if s == nil {
		return out
	}
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// Reset removes every stored value.
func (s *State) Reset() {
	s.fields = make(map[string]string)
}

// MarshalJSON encodes the state as a flat object.
func (s *State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON replaces the state with the decoded object.
func (s *State) UnmarshalJSON(data []byte) error {
	fields := make(map[string]string)
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	s.fields = fields
	return nil
}
