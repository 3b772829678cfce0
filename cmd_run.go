package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"nilan/compiler"
	"nilan/vm"
)

// runCmd implements the `run` subcommand.
type runCmd struct {
	debug bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a compiled .nib bytecode file" }
func (*runCmd) Usage() string {
	return `run <file.nib>:
  Decode and execute a compiled bytecode file, exiting with the code the
  program leaves on the stack at Halt.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.debug, "debug", false, "print the disassembled program and enable debug-level logging")
	f.BoolVar(&r.debug, "di", false, "shorthand for -debug")
}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	if r.debug {
		enableDebugLogging()
		disasm, err := compiler.Disassemble(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 Failed to disassemble: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprint(os.Stderr, disasm)
	}

	machine := vm.New()
	exitCode, err := machine.Run(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitStatus(1)
	}
	return subcommands.ExitStatus(exitCode)
}
