// Package vm implements the stack-based virtual machine: a
// decode-and-dispatch loop over a byte buffer, operating on a value
// stack, producing an integer process exit code.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"nilan/bytecode"
	"nilan/value"
)

// State is one of the VM's three states: Running while code remains,
// Halted once a Halt instruction dispatches, Faulted on any arithmetic,
// stack, or decoding failure.
type State int

const (
	StateRunning State = iota
	StateHalted
	StateFaulted
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateHalted:
		return "Halted"
	case StateFaulted:
		return "Faulted"
	default:
		return "Unknown"
	}
}

// VM is a stack-based virtual machine. It owns its value stack exclusively;
// nothing else holds a reference into it.
type VM struct {
	stack Stack
	state State
	Out   io.Writer
}

// New constructs a VM. Print writes to os.Stdout unless Out is overridden.
func New() *VM {
	return &VM{state: StateRunning, Out: os.Stdout}
}

// State reports the VM's current state machine position.
func (vm *VM) State() State { return vm.state }

func (vm *VM) fault(message string) error {
	vm.state = StateFaulted
	err := FaultError{Message: message}
	log.Error().Err(err).Msg("vm fault")
	return err
}

// Run decodes and dispatches code front-to-back until Halt, returning the
// derived process exit code. Any fault terminates execution immediately
// with a non-nil error; there is no retry, no partial execution, and no
// transactional stack rollback.
//
// The magic prefix, if present, is stripped before execution begins. Run
// treats code as an immutable slice and advances a cursor through it
// rather than destructively popping bytes.
func (vm *VM) Run(code []byte) (int32, error) {
	code = bytecode.StripMagic(code)
	vm.state = StateRunning
	ip := 0

	for {
		if len(code) == 0 {
			return 0, vm.fault("program exited without HALT instruction!")
		}

		instr, n, err := bytecode.Decode(code)
		if err != nil {
			return 0, vm.fault(err.Error())
		}
		code = code[n:]

		log.Debug().
			Int("ip", ip).
			Str("op", instr.Op.String()).
			Int("stackDepth", len(vm.stack)).
			Msg("vm dispatch")
		ip += n

		switch instr.Op {
		case bytecode.OpHalt:
			vm.state = StateHalted
			return vm.exitCode()

		case bytecode.OpPush:
			vm.stack.Push(instr.Value)

		case bytecode.OpPop:
			if _, ok := vm.stack.Pop(); !ok {
				return 0, vm.fault("stack underflow")
			}

		case bytecode.OpAdd, bytecode.OpSub, bytecode.OpMul, bytecode.OpDiv:
			b, ok := vm.stack.Pop()
			if !ok {
				return 0, vm.fault("stack underflow")
			}
			a, ok := vm.stack.Pop()
			if !ok {
				return 0, vm.fault("stack underflow")
			}
			result, err := binaryOp(instr.Op, a, b)
			if err != nil {
				return 0, vm.fault(err.Error())
			}
			vm.stack.Push(result)

		case bytecode.OpPrint:
			v, ok := vm.stack.Pop()
			if !ok {
				return 0, vm.fault("stack underflow")
			}
			fmt.Fprint(vm.Out, v.String())

		default:
			return 0, vm.fault(fmt.Sprintf("unknown opcode byte 0x%02X", byte(instr.Op)))
		}
	}
}

func binaryOp(op bytecode.Op, a, b value.Value) (value.Value, error) {
	switch op {
	case bytecode.OpAdd:
		return value.Add(a, b)
	case bytecode.OpSub:
		return value.Sub(a, b)
	case bytecode.OpMul:
		return value.Mul(a, b)
	case bytecode.OpDiv:
		return value.Div(a, b)
	default:
		panic(fmt.Sprintf("vm: binaryOp called with non-arithmetic op %v", op))
	}
}

// exitCode derives the process exit code from the stack top: empty stack
// exits 0, Int32(v) exits v, Int64(v) exits v truncated to 32 bits,
// anything else is a fatal fault.
func (vm *VM) exitCode() (int32, error) {
	top, ok := vm.stack.Peek()
	if !ok {
		return 0, nil
	}
	switch top.Kind {
	case value.KindInt32:
		return top.Int32Value(), nil
	case value.KindInt64:
		return int32(top.Int64Value()), nil
	default:
		return 0, vm.fault(fmt.Sprintf("cannot use %s as exit code", top.Debug()))
	}
}
