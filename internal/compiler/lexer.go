package compiler

import "github.com/alecthomas/participle/v2/lexer"

// Lexer defines the tokens of a SAIL document.
// Rule order matters: longer operators come before their prefixes.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*[\s\S]*?\*/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\\n])*"|'(?:\\.|[^'\\\n])*'`},
	{Name: "Number", Pattern: `\d+(?:\.\d+)?(?:[eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Operator", Pattern: `===|!==|==|!=|&&|\|\||!|-`},
	{Name: "Punct", Pattern: `[{}\[\](),.:;]`},
})
