package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState_GetSetSnapshot(t *testing.T) {
	s := NewState(map[string]string{"role": "admin"})

	v, ok := s.Get("role")
	assert.True(t, ok)
	assert.Equal(t, "admin", v)

	_, ok = s.Get("name")
	assert.False(t, ok)

	s.Set("name", "")
	v, ok = s.Get("name")
	assert.True(t, ok, "an empty value still counts as set")
	assert.Empty(t, v)

	snap := s.Snapshot()
	snap["role"] = "mutated"
	v, _ = s.Get("role")
	assert.Equal(t, "admin", v)

	assert.Equal(t, []string{"name", "role"}, s.Keys())

	s.Reset()
	assert.Equal(t, 0, s.Len())
}

func TestState_NilIsEmpty(t *testing.T) {
	var s *State
	_, ok := s.Get("x")
	assert.False(t, ok)
	assert.Empty(t, s.Snapshot())
}

func TestHistory_AppendFreezesTree(t *testing.T) {
	h := NewHistory()
	tree := sampleTree()

	snap := h.Append(tree)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 1, h.Len())

	tree.Props["label"] = "mutated after capture"
	latest, ok := h.Latest()
	assert.True(t, ok)
	assert.Equal(t, "T", latest.Tree.Props["label"])

	h.Append(nil)
	entries := h.Entries()
	assert.Len(t, entries, 2)
	assert.Nil(t, entries[1].Tree)
	assert.Equal(t, 1, entries[1].Index)

	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestEvaluationError_Message(t *testing.T) {
	err := &EvaluationError{Kind: ErrorSyntax, Message: `unexpected token "}"`, Line: 1, Column: 12}
	assert.Equal(t, `SyntaxError: 1:12: unexpected token "}"`, err.Error())

	err = &EvaluationError{Kind: ErrorReference, Message: "foo is not defined"}
	assert.Equal(t, "ReferenceError: foo is not defined", err.Error())
}
