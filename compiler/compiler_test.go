package compiler

import (
	"testing"

	"nilan/ast"
	"nilan/bytecode"
	"nilan/token"
	"nilan/value"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func opToken(lexeme string) token.Token {
	return token.Token{Kind: token.Symbol, Lexeme: lexeme, Line: 1}
}

// TestScenarioE checks that Program[PrintExpression(Literal(Int64(7)))]
// lowers to Push(Int64(7)), Print, Halt.
func TestScenarioE(t *testing.T) {
	program := &ast.Program{Body: []ast.Node{
		&ast.PrintExpression{Inner: &ast.Literal{Value: value.Int64(7)}},
	}}

	instrs, err := New().Compile(program)
	assert(t, err == nil, "compile error: %v", err)
	assert(t, len(instrs) == 3, "expected 3 instructions, got %d", len(instrs))
	assert(t, instrs[0].Op == bytecode.OpPush, "got %v", instrs[0])
	assert(t, instrs[1].Op == bytecode.OpPrint, "got %v", instrs[1])
	assert(t, instrs[2].Op == bytecode.OpHalt, "got %v", instrs[2])
}

// TestScenarioF checks that a top-level `2+40` lowers to Push, Push, Add,
// Halt (the stream the vm package's TestScenarioF runs to exit code 42),
// and that the same expression wrapped in an ExpressionStatement is a
// lowering error.
func TestScenarioF(t *testing.T) {
	program := &ast.Program{Body: []ast.Node{
		&ast.ExpressionStatement{Expression: &ast.BinaryExpression{
			Operator: opToken("+"),
			Left:     &ast.Literal{Value: value.Int64(2)},
			Right:    &ast.Literal{Value: value.Int64(40)},
		}},
	}}

	// ExpressionStatement is an unimplemented placeholder; a top-level
	// expression lowers the same way BinaryExpression's operands do:
	// pushed directly.
	direct := &ast.Program{Body: []ast.Node{
		&ast.BinaryExpression{
			Operator: opToken("+"),
			Left:     &ast.Literal{Value: value.Int64(2)},
			Right:    &ast.Literal{Value: value.Int64(40)},
		},
	}}

	_, err := New().Compile(program)
	assert(t, err != nil, "ExpressionStatement should be fatal: not yet lowered")

	instrs, err := New().Compile(direct)
	assert(t, err == nil, "compile error: %v", err)
	assert(t, len(instrs) == 4, "expected 4 instructions, got %d", len(instrs))
	assert(t, instrs[2].Op == bytecode.OpAdd, "got %v", instrs[2])
	assert(t, instrs[3].Op == bytecode.OpHalt, "got %v", instrs[3])
}

func TestEmptyStatementEmitsNothing(t *testing.T) {
	program := &ast.Program{Body: []ast.Node{&ast.EmptyStatement{}}}
	instrs, err := New().Compile(program)
	assert(t, err == nil, "compile error: %v", err)
	assert(t, len(instrs) == 1 && instrs[0].Op == bytecode.OpHalt, "expected only Halt, got %v", instrs)
}

func TestReservedOperatorsAreFatal(t *testing.T) {
	for _, op := range []string{"%", "&", "|", "&&", "||"} {
		program := &ast.Program{Body: []ast.Node{
			&ast.BinaryExpression{
				Operator: opToken(op),
				Left:     &ast.Literal{Value: value.Int32(1)},
				Right:    &ast.Literal{Value: value.Int32(2)},
			},
		}}
		_, err := New().Compile(program)
		assert(t, err != nil, "operator %q should be fatal", op)
		assert(t, reservedKind(opToken(op)), "operator %q should be classified reserved", op)
	}
}

func TestUnimplementedNodeKindIsFatal(t *testing.T) {
	program := &ast.Program{Body: []ast.Node{&ast.Variable{Name: token.Token{Kind: token.Identifier, Lexeme: "x"}}}}
	_, err := New().Compile(program)
	assert(t, err != nil, "Variable node should be fatal: not yet lowered")
}

func TestCompileProgramProducesAssembledBytes(t *testing.T) {
	program := &ast.Program{Body: []ast.Node{
		&ast.PrintExpression{Inner: &ast.Literal{Value: value.Int32(1)}},
	}}

	buf, err := CompileProgram(program, true)
	assert(t, err == nil, "compile error: %v", err)
	assert(t, bytecode.HasMagic(buf), "expected magic prefix")

	out, err := Disassemble(buf)
	assert(t, err == nil, "disassemble error: %v", err)
	assert(t, len(out) > 0, "expected non-empty disassembly")
}
