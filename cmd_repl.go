package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"

	"nilan/compiler"
	"nilan/lexer"
	"nilan/vm"
)

// replCmd implements the `repl` subcommand.
type replCmd struct {
	debug bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive session. Each line is tokenized, lowered to
  bytecode, and run against a fresh VM. Accepts LITERAL (OP LITERAL)* or
  print EXPR — it is a demo reader, not the full language parser.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&r.debug, "debug", false, "print each line's disassembled bytecode and enable debug-level logging")
	f.BoolVar(&r.debug, "di", false, "shorthand for -debug")
}

func repl(out io.Writer, debug bool) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      ">>> ",
		HistoryFile: "/tmp/nilan_repl_history",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if line == "exit" {
			return nil
		}

		lex := lexer.New(line)
		tokens, err := lex.Scan()
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		program, err := readProgram(tokens)
		if err != nil {
			fmt.Fprintf(out, "💥 %v\n", err)
			continue
		}

		code, err := compiler.CompileProgram(program, false)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		if debug {
			disasm, err := compiler.Disassemble(code)
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			fmt.Fprint(out, disasm)
		}

		machine := vm.New()
		machine.Out = out
		if _, err := machine.Run(code); err != nil {
			fmt.Fprintln(out, err)
		}
		fmt.Fprintln(out)
	}
}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if r.debug {
		enableDebugLogging()
	}
	fmt.Println("\n\nWelcome to Nilan!")
	if err := repl(os.Stdout, r.debug); err != nil {
		fmt.Fprintf(os.Stderr, "💥 %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
