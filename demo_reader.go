package main

import (
	"fmt"

	"nilan/ast"
	"nilan/token"
	"nilan/value"
)

// readProgram builds a tiny demo AST from a token stream: exactly
// `LITERAL (OP LITERAL)* | print EXPR`, where LITERAL is an int, float,
// string, char, null or bool token and OP is one of `+ - * /`, enough to
// exercise Literal, BinaryExpression, and PrintExpression end to end. It is not a general
// parser: no grammar recursion, no operator precedence, no statements
// beyond the one top-level expression or print.
type demoReader struct {
	tokens []token.Token
	pos    int
}

func readProgram(tokens []token.Token) (*ast.Program, error) {
	r := &demoReader{tokens: tokens}
	stmt, err := r.statement()
	if err != nil {
		return nil, err
	}
	if r.peek().Kind != token.EOF {
		return nil, fmt.Errorf("unexpected trailing token %v", r.peek())
	}
	return &ast.Program{Body: []ast.Node{stmt}}, nil
}

func (r *demoReader) peek() token.Token { return r.tokens[r.pos] }

func (r *demoReader) next() token.Token {
	t := r.tokens[r.pos]
	if r.pos < len(r.tokens)-1 {
		r.pos++
	}
	return t
}

func (r *demoReader) statement() (ast.Node, error) {
	if r.peek().Kind == token.Keyword && r.peek().Lexeme == "print" {
		r.next()
		expr, err := r.expression()
		if err != nil {
			return nil, err
		}
		return &ast.PrintExpression{Inner: expr}, nil
	}
	return r.expression()
}

var arithOperators = map[string]bool{"+": true, "-": true, "*": true, "/": true}

func (r *demoReader) expression() (ast.Node, error) {
	left, err := r.primary()
	if err != nil {
		return nil, err
	}
	for r.peek().Kind == token.Symbol && arithOperators[r.peek().Lexeme] {
		op := r.next()
		right, err := r.primary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Operator: op, Left: left, Right: right}
	}
	return left, nil
}

func (r *demoReader) primary() (ast.Node, error) {
	tok := r.next()
	switch tok.Kind {
	case token.Int:
		return &ast.Literal{Value: value.Int64(tok.Literal.(int64))}, nil
	case token.Float:
		return &ast.Literal{Value: value.Float64(tok.Literal.(float64))}, nil
	case token.Str:
		return &ast.Literal{Value: value.Str(tok.Literal.(string))}, nil
	case token.Char:
		return &ast.Literal{Value: value.Char(tok.Literal.(rune))}, nil
	case token.Null:
		return &ast.Literal{Value: value.Null()}, nil
	case token.Bool:
		if tok.Literal.(bool) {
			return &ast.Literal{Value: value.True()}, nil
		}
		return &ast.Literal{Value: value.False()}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}
