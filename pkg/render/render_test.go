package render_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/dsl"
	"github.com/aretw0/sail/pkg/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_FormWithTextField(t *testing.T) {
	tree := dsl.FormLayout(map[string]any{
		"label": "T",
		"contents": []any{
			dsl.TextField(map[string]any{"label": "N", "value": "X", "saveInto": "n"}),
		},
	})

	out := render.HTML(render.New().Render(tree, domain.NewState(nil)))

	assert.Equal(t,
		`<div class="formLayout"><h2>T</h2>`+
			`<div class="textField"><label>N</label>`+
			`<input type="text" value="X" name="n" data-sail-bind="n"/></div></div>`,
		out)
}

func TestRender_TextFieldValue(t *testing.T) {
	field := dsl.TextField(map[string]any{"label": "N", "value": "X", "saveInto": "n"})
	r := render.New()

	t.Run("FromState", func(t *testing.T) {
		out := render.HTML(r.Render(field, domain.NewState(map[string]string{"n": "Y"})))
		assert.Contains(t, out, `value="Y"`)
	})

	t.Run("EmptyStateWins", func(t *testing.T) {
		out := render.HTML(r.Render(field, domain.NewState(map[string]string{"n": ""})))
		assert.Contains(t, out, `value=""`)
	})

	t.Run("ConfigFallback", func(t *testing.T) {
		out := render.HTML(r.Render(field, domain.NewState(nil)))
		assert.Contains(t, out, `value="X"`)
	})

	t.Run("Unbound", func(t *testing.T) {
		out := render.HTML(r.Render(dsl.TextField(map[string]any{"label": "L"}), nil))
		assert.Equal(t, `<div class="textField"><label>L</label><input type="text" value=""/></div>`, out)
	})
}

func TestRender_DropdownPreselect(t *testing.T) {
	field := dsl.DropdownField(map[string]any{
		"label": "Role",
		"choices": []any{
			map[string]any{"label": "Admin", "value": "Admin"},
			map[string]any{"label": "User", "value": "User"},
		},
		"saveInto": "role",
	})

	out := render.HTML(render.New().Render(field, domain.NewState(map[string]string{"role": "Admin"})))

	assert.Equal(t,
		`<div class="dropdownField"><label>Role</label>`+
			`<select name="role" data-sail-bind="role">`+
			`<option value="Admin" selected="selected">Admin</option>`+
			`<option value="User">User</option>`+
			`</select></div>`,
		out)
}

func TestRender_Button(t *testing.T) {
	out := render.HTML(render.New().Render(dsl.Button(map[string]any{"label": "Go"}), nil))
	assert.Equal(t, `<button type="button" data-sail-action="submit">Go</button>`, out)
}

func TestRender_Placeholders(t *testing.T) {
	r := render.New()

	t.Run("NilRoot", func(t *testing.T) {
		assert.Equal(t, "", render.HTML(r.Render(nil, nil)))
	})

	t.Run("UnknownKind", func(t *testing.T) {
		assert.Equal(t, "Unknown: string", render.HTML(r.Render(&domain.Node{Kind: "string"}, nil)))
	})

	t.Run("MixedContents", func(t *testing.T) {
		tree := dsl.FormLayout(map[string]any{
			"contents": []any{nil, domain.Undefined, "text", 3.0, dsl.Button(map[string]any{"label": "B"})},
		})
		out := render.HTML(r.Render(tree, nil))
		assert.Equal(t,
			`<div class="formLayout">Unknown: stringUnknown: number`+
				`<button type="button" data-sail-action="submit">B</button></div>`,
			out)
	})
}

func TestRender_LenientProps(t *testing.T) {
	r := render.New()

	t.Run("NumberLabel", func(t *testing.T) {
		out := render.HTML(r.Render(dsl.Button(map[string]any{"label": 42.0}), nil))
		assert.Contains(t, out, ">42</button>")
	})

	t.Run("UndefinedLabel", func(t *testing.T) {
		out := render.HTML(r.Render(dsl.Button(map[string]any{"label": domain.Undefined}), nil))
		assert.Contains(t, out, "></button>")
	})

	t.Run("MalformedChoices", func(t *testing.T) {
		field := dsl.DropdownField(map[string]any{"choices": "nope", "saveInto": "x"})
		out := render.HTML(r.Render(field, nil))
		assert.Contains(t, out, `<select name="x" data-sail-bind="x">`)
	})

	t.Run("NoProps", func(t *testing.T) {
		out := render.HTML(r.Render(dsl.FormLayout("oops"), nil))
		assert.Equal(t, `<div class="formLayout"></div>`, out)
	})

	t.Run("FalsyLabels", func(t *testing.T) {
		for _, label := range []any{0.0, "", false, nil, domain.Undefined} {
			tree := dsl.FormLayout(map[string]any{"label": label, "contents": []any{}})
			assert.Equal(t, `<div class="formLayout"></div>`, render.HTML(r.Render(tree, nil)), "label %#v", label)
		}
	})

	t.Run("TruthyNonStringLabel", func(t *testing.T) {
		tree := dsl.FormLayout(map[string]any{"label": 7.0, "contents": []any{}})
		assert.Equal(t, `<div class="formLayout"><h2>7</h2></div>`, render.HTML(r.Render(tree, nil)))
	})
}

func TestRender_NodeShapedObjects(t *testing.T) {
	r := render.New()

	t.Run("UnknownKind", func(t *testing.T) {
		tree := dsl.FormLayout(map[string]any{
			"contents": []any{map[string]any{"type": "slider", "props": map[string]any{}}},
		})
		assert.Equal(t, `<div class="formLayout">Unknown: slider</div>`, render.HTML(r.Render(tree, nil)))
	})

	t.Run("KnownKind", func(t *testing.T) {
		tree := dsl.FormLayout(map[string]any{
			"contents": []any{map[string]any{"type": "buttonWidget", "props": map[string]any{"label": "Go"}}},
		})
		assert.Equal(t,
			`<div class="formLayout"><button type="button" data-sail-action="submit">Go</button></div>`,
			render.HTML(r.Render(tree, nil)))
	})

	t.Run("ExtraKeys", func(t *testing.T) {
		tree := dsl.FormLayout(map[string]any{
			"contents": []any{map[string]any{"type": "slider", "min": 0.0}},
		})
		assert.Equal(t, `<div class="formLayout">Unknown: slider</div>`, render.HTML(r.Render(tree, nil)))
	})

	t.Run("NonStringType", func(t *testing.T) {
		tree := dsl.FormLayout(map[string]any{
			"contents": []any{map[string]any{"type": 3.0}},
		})
		assert.Equal(t, `<div class="formLayout">Unknown: object</div>`, render.HTML(r.Render(tree, nil)))
	})
}

func TestRenderError(t *testing.T) {
	err := &domain.EvaluationError{Kind: domain.ErrorReference, Message: "x is not defined"}

	var buf bytes.Buffer
	require.NoError(t, render.WriteHTML(&buf, render.New().RenderError(err)))
	assert.Equal(t, `<pre class="error">ReferenceError: x is not defined</pre>`, buf.String())
}
