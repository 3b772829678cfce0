// Package compiler implements the AST→bytecode lowering pass: it walks
// an ast.Program and emits the ordered bytecode.Instruction stream, then
// flattens it to bytes.
package compiler

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"nilan/ast"
	"nilan/bytecode"
	"nilan/token"
)

// Compiler lowers an AST to a flat instruction stream. It is stateless
// across Compile calls beyond the instructions accumulated for the
// in-flight call.
type Compiler struct {
	instructions []bytecode.Instruction
}

// New constructs a Compiler.
func New() *Compiler {
	return &Compiler{}
}

// Compile lowers program to an ordered instruction stream, ending in Halt.
// It accepts the tree by reference and does not mutate or consume it.
func (c *Compiler) Compile(program *ast.Program) ([]bytecode.Instruction, error) {
	c.instructions = nil
	if err := program.Accept(c); err != nil {
		return nil, err
	}
	return c.instructions, nil
}

func (c *Compiler) emit(i bytecode.Instruction) {
	c.instructions = append(c.instructions, i)
}

func (c *Compiler) fail(message string) error {
	err := LoweringError{Message: message}
	log.Error().Err(err).Msg("lowering failed")
	return err
}

func (c *Compiler) VisitProgram(n *ast.Program) error {
	for _, stmt := range n.Body {
		if err := stmt.Accept(c); err != nil {
			return err
		}
	}
	c.emit(bytecode.Halt())
	return nil
}

func (c *Compiler) VisitLiteral(n *ast.Literal) error {
	c.emit(bytecode.Push(n.Value))
	return nil
}

func (c *Compiler) VisitPrintExpression(n *ast.PrintExpression) error {
	if err := n.Inner.Accept(c); err != nil {
		return err
	}
	c.emit(bytecode.Print())
	return nil
}

var reservedOperators = map[string]bool{
	"%": true, "&": true, "|": true,
	"&&": true, "||": true, "==": true, "!=": true,
}

// VisitBinaryExpression lowers Left, then Right, then the arithmetic op
// `+ - * /`. `% & |` and the compound operators are reserved but not yet
// lowered; any other operator token is a fatal error.
func (c *Compiler) VisitBinaryExpression(n *ast.BinaryExpression) error {
	if err := n.Left.Accept(c); err != nil {
		return err
	}
	if err := n.Right.Accept(c); err != nil {
		return err
	}

	switch n.Operator.Lexeme {
	case "+":
		c.emit(bytecode.Add())
	case "-":
		c.emit(bytecode.Sub())
	case "*":
		c.emit(bytecode.Mul())
	case "/":
		c.emit(bytecode.Div())
	default:
		if reservedOperators[n.Operator.Lexeme] {
			return c.fail(fmt.Sprintf("operator %q is reserved but not yet lowered", n.Operator.Lexeme))
		}
		return c.fail(fmt.Sprintf("invalid operator token %q in binary position", n.Operator.Lexeme))
	}
	return nil
}

func (c *Compiler) VisitEmptyStatement(n *ast.EmptyStatement) error { return nil }

func (c *Compiler) notImplemented(kind string) error {
	return c.fail(fmt.Sprintf("%s is not yet implemented", kind))
}

func (c *Compiler) VisitBlock(n *ast.Block) error                             { return c.notImplemented("Block") }
func (c *Compiler) VisitIfStatement(n *ast.IfStatement) error                 { return c.notImplemented("IfStatement") }
func (c *Compiler) VisitWhileStatement(n *ast.WhileStatement) error           { return c.notImplemented("WhileStatement") }
func (c *Compiler) VisitForStatement(n *ast.ForStatement) error               { return c.notImplemented("ForStatement") }
func (c *Compiler) VisitDoWhileStatement(n *ast.DoWhileStatement) error       { return c.notImplemented("DoWhileStatement") }
func (c *Compiler) VisitFunction(n *ast.Function) error                       { return c.notImplemented("Function") }
func (c *Compiler) VisitClass(n *ast.Class) error                             { return c.notImplemented("Class") }
func (c *Compiler) VisitCall(n *ast.Call) error                               { return c.notImplemented("Call") }
func (c *Compiler) VisitMember(n *ast.Member) error                           { return c.notImplemented("Member") }
func (c *Compiler) VisitUnary(n *ast.Unary) error                             { return c.notImplemented("Unary") }
func (c *Compiler) VisitVariable(n *ast.Variable) error                       { return c.notImplemented("Variable") }
func (c *Compiler) VisitReturn(n *ast.Return) error                           { return c.notImplemented("Return") }
func (c *Compiler) VisitThis(n *ast.This) error                               { return c.notImplemented("This") }
func (c *Compiler) VisitSuper(n *ast.Super) error                             { return c.notImplemented("Super") }
func (c *Compiler) VisitIdentifier(n *ast.Identifier) error                   { return c.notImplemented("Identifier") }
func (c *Compiler) VisitExpressionStatement(n *ast.ExpressionStatement) error { return c.notImplemented("ExpressionStatement") }

// CompileProgram lowers program and flattens the result into its byte
// encoding, optionally prefixed with the magic number.
func CompileProgram(program *ast.Program, withMagic bool) ([]byte, error) {
	instrs, err := New().Compile(program)
	if err != nil {
		return nil, err
	}
	return bytecode.Assemble(instrs, withMagic)
}

// reservedKind is used by tests to assert a token is a reserved-but-not-lowered
// operator rather than an outright invalid one.
func reservedKind(tok token.Token) bool { return reservedOperators[tok.Lexeme] }
