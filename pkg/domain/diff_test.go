package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	t.Run("initial load", func(t *testing.T) {
		d := Diff("s1", nil, map[string]string{"name": "Ana"}, 0, 1)
		require.NotNil(t, d)
		assert.Equal(t, "Ana", *d.State["name"])
		assert.Equal(t, 1, d.Appended)
	})

	t.Run("no changes", func(t *testing.T) {
		s := map[string]string{"name": "Ana"}
		assert.Nil(t, Diff("s1", s, s, 3, 3))
	})

	t.Run("modified and deleted keys", func(t *testing.T) {
		d := Diff("s1",
			map[string]string{"name": "Ana", "role": "admin"},
			map[string]string{"name": "Bea"},
			2, 3)
		require.NotNil(t, d)
		assert.Equal(t, "Bea", *d.State["name"])
		v, ok := d.State["role"]
		assert.True(t, ok)
		assert.Nil(t, v)
		assert.Equal(t, 1, d.Appended)
	})

	t.Run("reset clears history", func(t *testing.T) {
		d := Diff("s1", map[string]string{"a": "1"}, map[string]string{}, 4, 1)
		require.NotNil(t, d)
		assert.True(t, d.Cleared)
	})
}

func TestDiff_JSONDeletion(t *testing.T) {
	d := Diff("s1", map[string]string{"gone": "x"}, map[string]string{}, 0, 0)
	require.NotNil(t, d)
	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"session_id":"s1","state":{"gone":null}}`, string(raw))
}
