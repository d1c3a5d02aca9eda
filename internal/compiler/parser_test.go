package compiler

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/sail/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CallWithObject(t *testing.T) {
	prog, err := Parse(`a_formLayout({label:"T", contents:[a_textField({label:"N", value:"X", saveInto:"n"})]});`)
	require.NoError(t, err)

	ref := prog.Expr.Left.Left.Left.Operand.Primary.Reference
	require.NotNil(t, ref)
	assert.Equal(t, "a_formLayout", ref.Name)
	require.NotNil(t, ref.Call)
	require.Len(t, ref.Call.Args, 1)

	obj := ref.Call.Args[0].Left.Left.Left.Operand.Primary.Object
	require.NotNil(t, obj)
	require.Len(t, obj.Props, 2)
	assert.Equal(t, "label", obj.Props[0].Key)
	assert.Equal(t, "contents", obj.Props[1].Key)
}

func TestParse_Operators(t *testing.T) {
	prog, err := Parse(`a_if(state.role === "admin" && !false || state["x"] != null, null)`)
	require.NoError(t, err)

	args := prog.Expr.Left.Left.Left.Operand.Primary.Reference.Call.Args
	require.Len(t, args, 2)
	cond := args[0]
	assert.Len(t, cond.Right, 1, "one || operand")
	assert.Len(t, cond.Left.Right, 1, "one && operand")
	assert.Equal(t, "===", cond.Left.Left.Rest[0].Op)
}

func TestParse_TrailingCommasAndComments(t *testing.T) {
	src := `
// a comment
a_formLayout({
  label: 'Quoted',   /* inline */
  contents: [
    a_buttonWidget({label: "Go",}),
  ],
})
`
	_, err := Parse(src)
	require.NoError(t, err)
}

func TestParse_SyntaxErrors(t *testing.T) {
	cases := map[string]string{
		"unbalanced braces": `a_formLayout({label: "T"`,
		"stray operator":    `a_buttonWidget({label: "x"}) +`,
		"unterminated":      `a_buttonWidget({label: "x})`,
		"empty":             "   \n",
		"two expressions":   `a_buttonWidget({}) a_buttonWidget({})`,
		"missing value":     `a_buttonWidget({label:})`,
		"object hole":       `a_formLayout({label: "x",, contents: []})`,
		"leading comma":     `a_formLayout({, label: "x"})`,
		"argument hole":     `a_if(true,, null)`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(src)
			require.Error(t, err)
			var evalErr *domain.EvaluationError
			require.True(t, errors.As(err, &evalErr))
			assert.Equal(t, domain.ErrorSyntax, evalErr.Kind)
			assert.NotEmpty(t, evalErr.Message)
		})
	}
}

func TestParse_ErrorPosition(t *testing.T) {
	_, err := Parse("a_buttonWidget({\n  label: \"x\" ]\n})")
	var evalErr *domain.EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, 2, evalErr.Line)
	assert.Positive(t, evalErr.Column)
}

func TestParse_DeepNesting(t *testing.T) {
	depth := domain.MaxNestingDepth + 1
	_, err := Parse(strings.Repeat("[", depth) + strings.Repeat("]", depth))

	var evalErr *domain.EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, domain.ErrorSyntax, evalErr.Kind)
	assert.Contains(t, evalErr.Message, "nesting")
	assert.Equal(t, 1, evalErr.Line)
	assert.Equal(t, depth, evalErr.Column)
}

func TestParse_HugeNestingFailsFast(t *testing.T) {
	src := strings.Repeat("(", 200000) + "null" + strings.Repeat(")", 200000)
	_, err := Parse(src)
	var evalErr *domain.EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, domain.ErrorSyntax, evalErr.Kind)
}

func TestParse_NestingAtLimit(t *testing.T) {
	depth := domain.MaxNestingDepth
	_, err := Parse(strings.Repeat("[", depth) + strings.Repeat("]", depth))
	require.NoError(t, err)
}

func TestParse_BracketsInStringsAndComments(t *testing.T) {
	deep := strings.Repeat("[", domain.MaxNestingDepth+1)
	src := "// " + deep + "\n/* " + deep + " */ a_buttonWidget({label: \"" + deep + "\"})"
	_, err := Parse(src)
	require.NoError(t, err)
}

func TestParse_SourceTooLarge(t *testing.T) {
	src := `a_buttonWidget({label: "` + strings.Repeat("x", domain.MaxSourceSize) + `"})`
	_, err := Parse(src)
	var evalErr *domain.EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, domain.ErrorSyntax, evalErr.Kind)
	assert.Contains(t, evalErr.Message, "limit")
}

func TestUnquote(t *testing.T) {
	cases := map[string]string{
		`"plain"`:        "plain",
		`'single'`:       "single",
		`'it\'s'`:        "it's",
		`'say "hi"'`:     `say "hi"`,
		`"tab\there"`:    "tab\there",
		`'line\nbreak'`:  "line\nbreak",
		`"quote \" in"`:  `quote " in`,
		`'back\\slash'`:  `back\slash`,
		`"don\'t"`:       "don't",
		`"a\d"`:          "ad",
		`"\u{41}"`:       "A",
		`"\u0041\x42"`:   "AB",
		`'\u{1F600}'`:    "\U0001F600",
		`"\uD83D\uDE00"`: "\U0001F600",
		`"nul\0end"`:     "nul\x00end",
		`"\101"`:         "A",
		`"caf\u00e9"`:    "café",
	}
	for raw, want := range cases {
		got, err := Unquote(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, bad := range []string{`'`, `"\x4"`, `"\u12"`, `"\u{}"`, `"\u{110000}"`, `"a\"`} {
		_, err := Unquote(bad)
		assert.Error(t, err, bad)
	}
}
