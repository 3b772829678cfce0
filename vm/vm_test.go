package vm

import (
	"strings"
	"testing"

	"nilan/bytecode"
	"nilan/value"
)

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func mustAssemble(t *testing.T, instrs []bytecode.Instruction, withMagic bool) []byte {
	t.Helper()
	buf, err := bytecode.Assemble(instrs, withMagic)
	assert(t, err == nil, "assemble: %v", err)
	return buf
}

// TestScenarioE checks that printing 7 then halting exits 0 and writes "7".
func TestScenarioE(t *testing.T) {
	code := mustAssemble(t, []bytecode.Instruction{
		bytecode.Push(value.Int64(7)),
		bytecode.Print(),
		bytecode.Halt(),
	}, false)

	var out strings.Builder
	vm := New()
	vm.Out = &out

	exitCode, err := vm.Run(code)
	assert(t, err == nil, "run error: %v", err)
	assert(t, exitCode == 0, "expected exit code 0, got %d", exitCode)
	assert(t, out.String() == "7", "expected stdout %q, got %q", "7", out.String())
	assert(t, vm.State() == StateHalted, "expected Halted, got %v", vm.State())
}

// TestScenarioF checks that 2+40 left on the stack at Halt exits 42.
func TestScenarioF(t *testing.T) {
	code := mustAssemble(t, []bytecode.Instruction{
		bytecode.Push(value.Int64(2)),
		bytecode.Push(value.Int64(40)),
		bytecode.Add(),
		bytecode.Halt(),
	}, false)

	exitCode, err := vmRun(t, code)
	assert(t, err == nil, "run error: %v", err)
	assert(t, exitCode == 42, "expected exit code 42, got %d", exitCode)
}

// TestScenarioG checks that a Float64 on top of the stack at Halt is a
// fatal fault, not an exit code.
func TestScenarioG(t *testing.T) {
	code := mustAssemble(t, []bytecode.Instruction{
		bytecode.Push(value.Float64(1.5)),
		bytecode.Halt(),
	}, false)

	_, err := vmRun(t, code)
	assert(t, err != nil, "expected fatal error for non-integer exit code")
	assert(t, strings.Contains(err.Error(), "cannot use"), "got %v", err)
}

func TestEmptyStackHaltExitsZero(t *testing.T) {
	code := mustAssemble(t, []bytecode.Instruction{bytecode.Halt()}, false)
	exitCode, err := vmRun(t, code)
	assert(t, err == nil, "run error: %v", err)
	assert(t, exitCode == 0, "expected 0, got %d", exitCode)
}

func TestInt64ExitCodeTruncatesTo32Bits(t *testing.T) {
	code := mustAssemble(t, []bytecode.Instruction{
		bytecode.Push(value.Int64(1<<32 + 5)),
		bytecode.Halt(),
	}, false)
	exitCode, err := vmRun(t, code)
	assert(t, err == nil, "run error: %v", err)
	assert(t, exitCode == 5, "expected truncated exit code 5, got %d", exitCode)
}

func TestStackUnderflowOnPop(t *testing.T) {
	code := mustAssemble(t, []bytecode.Instruction{bytecode.Pop(), bytecode.Halt()}, false)
	_, err := vmRun(t, code)
	assert(t, err != nil, "expected stack underflow error")
}

func TestRunsOutWithoutHalt(t *testing.T) {
	code := mustAssemble(t, []bytecode.Instruction{bytecode.Push(value.Int32(1))}, false)
	_, err := vmRun(t, code)
	assert(t, err != nil, "expected error for missing Halt")
	assert(t, strings.Contains(err.Error(), "HALT"), "got %v", err)
}

// TestMagicPrefixIdempotence checks that running a buffer's behavior is
// independent of the magic prefix's presence.
func TestMagicPrefixIdempotence(t *testing.T) {
	instrs := []bytecode.Instruction{
		bytecode.Push(value.Int32(9)),
		bytecode.Halt(),
	}
	plain := mustAssemble(t, instrs, false)
	withMagic := mustAssemble(t, instrs, true)

	exitPlain, err := vmRun(t, plain)
	assert(t, err == nil, "run plain: %v", err)
	exitMagic, err := vmRun(t, withMagic)
	assert(t, err == nil, "run with magic: %v", err)
	assert(t, exitPlain == exitMagic, "exit codes differ: %d vs %d", exitPlain, exitMagic)
}

func TestDivisionByZeroIsFatal(t *testing.T) {
	code := mustAssemble(t, []bytecode.Instruction{
		bytecode.Push(value.Int32(10)),
		bytecode.Push(value.Int32(0)),
		bytecode.Div(),
		bytecode.Halt(),
	}, false)
	_, err := vmRun(t, code)
	assert(t, err != nil, "expected division-by-zero fault")
}

func vmRun(t *testing.T, code []byte) (int32, error) {
	t.Helper()
	var out strings.Builder
	vm := New()
	vm.Out = &out
	return vm.Run(code)
}
