package dsl

import (
	"strings"
	"testing"

	"github.com/aretw0/sail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_Kinds(t *testing.T) {
	cfg := map[string]any{"label": "L"}

	assert.Equal(t, domain.KindFormLayout, FormLayout(cfg).Kind)
	assert.Equal(t, domain.KindTextField, TextField(cfg).Kind)
	assert.Equal(t, domain.KindDropdownField, DropdownField(cfg).Kind)
	assert.Equal(t, domain.KindButton, Button(cfg).Kind)
	assert.Equal(t, "L", Button(cfg).Props["label"])
}

func TestConstructors_NeverFail(t *testing.T) {
	for _, cfg := range []any{nil, "text", 42.0, []any{1.0}} {
		n := TextField(cfg)
		require.NotNil(t, n)
		assert.Nil(t, n.Props)
	}
}

func TestIf(t *testing.T) {
	x := Button(map[string]any{"label": "X"})

	assert.Same(t, x, If(true, x))
	assert.Nil(t, If(false, x))
	assert.Nil(t, If(false, "anything"))
	assert.Equal(t, "anything", If(true, "anything"))
}

func TestCatalog(t *testing.T) {
	require.Len(t, Catalog, 5)
	md := Markdown()
	for _, f := range Catalog {
		assert.True(t, strings.Contains(md, f.Name), "markdown should mention %s", f.Name)
	}
}
