package compiler

import "github.com/alecthomas/participle/v2/lexer"

// Program is a whole document: one expression, optionally followed by semicolons.
type Program struct {
	Pos  lexer.Position
	Expr *Expression `parser:"@@ ';'*"`
}

// Expression is a chain of "||" operands.
type Expression struct {
	Pos   lexer.Position
	Left  *And   `parser:"@@"`
	Right []*And `parser:"( '||' @@ )*"`
}

// And is a chain of "&&" operands.
type And struct {
	Pos   lexer.Position
	Left  *Equality   `parser:"@@"`
	Right []*Equality `parser:"( '&&' @@ )*"`
}

// Equality is a left-associative chain of comparisons.
type Equality struct {
	Pos  lexer.Position
	Left *Unary        `parser:"@@"`
	Rest []*Comparison `parser:"@@*"`
}

type Comparison struct {
	Pos   lexer.Position
	Op    string `parser:"@( '===' | '!==' | '==' | '!=' )"`
	Right *Unary `parser:"@@"`
}

// Unary applies prefix operators right to left.
type Unary struct {
	Pos     lexer.Position
	Ops     []string `parser:"@( '!' | '-' )*"`
	Operand *Postfix `parser:"@@"`
}

// Postfix reads properties off a primary value.
type Postfix struct {
	Pos       lexer.Position
	Primary   *Primary    `parser:"@@"`
	Accessors []*Accessor `parser:"@@*"`
}

type Primary struct {
	Pos       lexer.Position
	String    *string     `parser:"  @String"`
	Number    *float64    `parser:"| @Number"`
	True      bool        `parser:"| @'true'"`
	False     bool        `parser:"| @'false'"`
	Null      bool        `parser:"| @'null'"`
	Undefined bool        `parser:"| @'undefined'"`
	Object    *Object     `parser:"| @@"`
	Array     *Array      `parser:"| @@"`
	Reference *Reference  `parser:"| @@"`
	Group     *Expression `parser:"| '(' @@ ')'"`
}

// Object is an object literal. A single trailing comma is allowed.
type Object struct {
	Pos   lexer.Position
	Props []*Property `parser:"'{' ( @@ ( ',' @@ )* ','? )? '}'"`
}

type Property struct {
	Pos   lexer.Position
	Key   string      `parser:"@( Ident | String )"`
	Value *Expression `parser:"':' @@"`
}

// Array is an array literal. Empty slots between commas are skipped.
type Array struct {
	Pos   lexer.Position
	Items []*Expression `parser:"'[' ( @@ ( ',' @@? )* )? ']'"`
}

// Reference names a binding, optionally calling it.
type Reference struct {
	Pos  lexer.Position
	Name string `parser:"@Ident"`
	Call *Call  `parser:"@@?"`
}

type Call struct {
	Pos  lexer.Position
	Args []*Expression `parser:"'(' ( @@ ( ',' @@ )* ','? )? ')'"`
}

type Accessor struct {
	Pos   lexer.Position
	Field *string     `parser:"  '.' @Ident"`
	Index *Expression `parser:"| '[' @@ ']'"`
}
