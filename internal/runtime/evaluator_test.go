package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/sail/internal/runtime"
	"github.com/aretw0/sail/pkg/domain"
	"github.com/aretw0/sail/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, source string, state map[string]string) domain.Result {
	t.Helper()
	return runtime.NewEvaluator(nil).Evaluate(context.Background(), source, domain.NewState(state))
}

// labelOf evaluates expr as the label of a button and returns the raw value.
func labelOf(t *testing.T, expr string, state map[string]string) any {
	t.Helper()
	res := evaluate(t, `a_buttonWidget({label: `+expr+`})`, state)
	require.Nil(t, res.Err, "unexpected error for %s", expr)
	require.NotNil(t, res.Root)
	v, ok := res.Root.Prop(domain.PropLabel)
	require.True(t, ok)
	return v
}

func TestEvaluate_Button(t *testing.T) {
	res := evaluate(t, `a_buttonWidget({label: "Go"})`, nil)

	require.False(t, res.Failed())
	assert.Equal(t, domain.KindButton, res.Root.Kind)
	assert.Equal(t, "Go", res.Root.Props[domain.PropLabel])
}

func TestEvaluate_DefaultDocument(t *testing.T) {
	res := evaluate(t, dsl.DefaultSource, nil)
	require.False(t, res.Failed())

	assert.Equal(t, domain.KindFormLayout, res.Root.Kind)
	children := res.Root.Children()
	require.Len(t, children, 4)
	assert.Equal(t, domain.KindTextField, children[0].Kind)
	assert.Equal(t, domain.KindDropdownField, children[1].Kind)
	assert.Nil(t, children[2], "conditional field hidden without role")
	assert.Equal(t, domain.KindButton, children[3].Kind)

	choices := children[1].Props[domain.PropChoices].([]any)
	require.Len(t, choices, 2)
	assert.Equal(t, map[string]any{"label": "Admin", "value": "admin"}, choices[0])
}

func TestEvaluate_Idempotent(t *testing.T) {
	state := map[string]string{"role": "admin"}
	first := evaluate(t, dsl.DefaultSource, state)
	second := evaluate(t, dsl.DefaultSource, state)

	require.False(t, first.Failed())
	require.False(t, second.Failed())
	assert.True(t, first.Root.Equal(second.Root))
	assert.NotSame(t, first.Root, second.Root)
}

func TestEvaluate_ConditionalReactivity(t *testing.T) {
	src := `a_formLayout({contents: [a_if(state.role === "Admin", a_textField({label: "Secret"}))]})`

	t.Run("Shown", func(t *testing.T) {
		res := evaluate(t, src, map[string]string{"role": "Admin"})
		require.False(t, res.Failed())
		children := res.Root.Children()
		require.Len(t, children, 1)
		require.NotNil(t, children[0])
		assert.Equal(t, "Secret", children[0].Props[domain.PropLabel])
	})

	t.Run("Hidden", func(t *testing.T) {
		res := evaluate(t, src, map[string]string{"role": "User"})
		require.False(t, res.Failed())
		children := res.Root.Children()
		require.Len(t, children, 1)
		assert.Nil(t, children[0])
	})
}

func TestEvaluate_Operators(t *testing.T) {
	state := map[string]string{"name": "Ada", "empty": ""}
	tests := []struct {
		expr string
		want any
	}{
		{`"a" || "b"`, "a"},
		{`"" || "b"`, "b"},
		{`0 && 1`, 0.0},
		{`1 && "x"`, "x"},
		{`!""`, true},
		{`!!state.name`, true},
		{`1 == "1"`, true},
		{`1 === "1"`, false},
		{`true == 1`, true},
		{`null == undefined`, true},
		{`null === undefined`, false},
		{`state.name !== "Bob"`, true},
		{`[1, 2, 3].length`, 3.0},
		{`"abc"[1]`, "b"},
		{`state["name"].length`, 3.0},
		{`-"3"`, -3.0},
		{`(state.empty || "fallback")`, "fallback"},
		{`state.missing`, domain.Undefined},
		{`a_textField({label: "x"}).type`, "textField"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			assert.Equal(t, tt.want, labelOf(t, tt.expr, state))
		})
	}
}

func TestEvaluate_NaNStoredAsNull(t *testing.T) {
	assert.Nil(t, labelOf(t, `-"abc"`, nil))
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		kind    domain.ErrorKind
		message string
	}{
		{"UnknownIdentifier", `foo()`, domain.ErrorReference, "foo is not defined"},
		{"UnknownInArgs", `a_formLayout({contents: [window]})`, domain.ErrorReference, "window is not defined"},
		{"NotAFunction", `state()`, domain.ErrorType, "state is not a function"},
		{"UndefinedProperty", `state.user.name`, domain.ErrorType, "Cannot read properties of undefined (reading 'name')"},
		{"NullProperty", `a_if(false, 1).x`, domain.ErrorType, "Cannot read properties of null (reading 'x')"},
		{"Syntax", `a_buttonWidget({label: "x"`, domain.ErrorSyntax, ""},
		{"Empty", "  \n", domain.ErrorSyntax, "empty document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluate(t, tt.source, nil)
			require.True(t, res.Failed())
			assert.Nil(t, res.Root)
			assert.Equal(t, tt.kind, res.Err.Kind)
			if tt.message != "" {
				assert.Equal(t, tt.message, res.Err.Message)
			}
		})
	}
}

func TestEvaluate_ErrorPosition(t *testing.T) {
	res := evaluate(t, "a_formLayout({\n  contents: [nope]\n})", nil)

	require.True(t, res.Failed())
	assert.Equal(t, 2, res.Err.Line)
	assert.Equal(t, 14, res.Err.Column)
}

func TestEvaluate_Roots(t *testing.T) {
	t.Run("Null", func(t *testing.T) {
		res := evaluate(t, `null`, nil)
		assert.False(t, res.Failed())
		assert.Nil(t, res.Root)
	})

	t.Run("IfWithoutComponent", func(t *testing.T) {
		res := evaluate(t, `a_if(true)`, nil)
		assert.False(t, res.Failed())
		assert.Nil(t, res.Root)
	})

	t.Run("String", func(t *testing.T) {
		res := evaluate(t, `"hello"`, nil)
		require.False(t, res.Failed())
		assert.Equal(t, domain.Kind("string"), res.Root.Kind)
	})

	t.Run("Function", func(t *testing.T) {
		res := evaluate(t, `a_if`, nil)
		require.False(t, res.Failed())
		assert.Equal(t, domain.Kind("function"), res.Root.Kind)
	})

	t.Run("NodeShapedObject", func(t *testing.T) {
		res := evaluate(t, `({type: "buttonWidget", props: {label: "Go"}})`, nil)
		require.False(t, res.Failed())
		assert.Equal(t, domain.KindButton, res.Root.Kind)
		assert.Equal(t, "Go", res.Root.Props[domain.PropLabel])
	})

	t.Run("UnknownKindObject", func(t *testing.T) {
		res := evaluate(t, `({type: "slider"})`, nil)
		require.False(t, res.Failed())
		assert.Equal(t, domain.Kind("slider"), res.Root.Kind)
	})

	t.Run("PlainObject", func(t *testing.T) {
		res := evaluate(t, `({x: 1})`, nil)
		require.False(t, res.Failed())
		assert.Equal(t, domain.Kind("object"), res.Root.Kind)
	})

	t.Run("NonObjectConfig", func(t *testing.T) {
		res := evaluate(t, `a_textField("oops")`, nil)
		require.False(t, res.Failed())
		assert.Equal(t, domain.KindTextField, res.Root.Kind)
		assert.Nil(t, res.Root.Props)
	})
}

func TestEvaluate_NodeLiteralsInContents(t *testing.T) {
	res := evaluate(t, `a_formLayout({contents: [{type: "textField", props: {label: "don\'t", saveInto: "n"}}]})`, nil)
	require.False(t, res.Failed())

	children := res.Root.Children()
	require.Len(t, children, 1)
	require.NotNil(t, children[0])
	assert.Equal(t, domain.KindTextField, children[0].Kind)
	assert.Equal(t, "don't", children[0].Props[domain.PropLabel])
}

func TestEvaluate_StateIsSnapshot(t *testing.T) {
	state := domain.NewState(map[string]string{"k": "v"})
	res := runtime.NewEvaluator(nil).Evaluate(context.Background(), `a_buttonWidget({label: state.k})`, state)
	require.False(t, res.Failed())

	state.Set("k", "changed")
	assert.Equal(t, "v", res.Root.Props[domain.PropLabel])
}
