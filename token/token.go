// Package token defines nilan's lexical token model: the token kind,
// its payload, and its source line.
package token

import "fmt"

// Kind classifies a Token. Literal categories (Null, Bool, Int, Float,
// Char, Str) carry their decoded value in Token.Literal; Symbol and
// Compound carry punctuation in Token.Lexeme; Err carries its message in
// Token.Literal.
type Kind string

const (
	Null       Kind = "NULL"
	Bool       Kind = "BOOL"
	Int        Kind = "INT"
	Float      Kind = "FLOAT"
	Char       Kind = "CHAR"
	Str        Kind = "STR"
	Keyword    Kind = "KEYWORD"
	Identifier Kind = "IDENTIFIER"
	Symbol     Kind = "SYMBOL"
	Compound   Kind = "COMPOUND"
	EOF        Kind = "EOF"
	Err        Kind = "ERR"
)

// Keywords is the set of reserved keyword lexemes (each maps to true).
// During tokenization, an identifier-like run is first matched here
// before falling back to the null/true/false literals, then to a plain
// Identifier.
var Keywords = map[string]bool{
	"let":    true,
	"if":     true,
	"else":   true,
	"while":  true,
	"do":     true,
	"for":    true,
	"def":    true,
	"return": true,
	"class":  true,
	"this":   true,
	"super":  true,
	"print":  true,
}

// Token is a lexical token: its kind, decoded payload or punctuation
// lexeme, and 1-based source line.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int32
}

// New constructs a Token with the given kind, lexeme, literal payload, and
// line.
func New(kind Kind, lexeme string, literal any, line int32) Token {
	return Token{Kind: kind, Lexeme: lexeme, Literal: literal, Line: line}
}

// NewSymbol constructs a single-character punctuation Token.
func NewSymbol(symbol byte, line int32) Token {
	return Token{Kind: Symbol, Lexeme: string(symbol), Line: line}
}

// NewCompound constructs a two-character punctuation Token (`&&` or `||`).
func NewCompound(a, b byte, line int32) Token {
	return Token{Kind: Compound, Lexeme: string(a) + string(b), Line: line}
}

// NewErr constructs an Err token carrying a diagnostic message. The
// tokenizer continues scanning after emitting one, aggregating a single
// failure at the end.
func NewErr(message string, line int32) Token {
	return Token{Kind: Err, Literal: message, Line: line}
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("Token {Kind: %s, Value: %v, Line: %d}", t.Kind, t.Literal, t.Line)
	}
	return fmt.Sprintf("Token {Kind: %s, Lexeme: %q, Line: %d}", t.Kind, t.Lexeme, t.Line)
}
