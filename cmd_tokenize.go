package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"nilan/lexer"
)

// tokenizeCmd implements the `tokenize` subcommand: a standalone window
// onto the lexer, independent of running or compiling anything.
type tokenizeCmd struct {
	debug bool
}

func (*tokenizeCmd) Name() string     { return "tokenize" }
func (*tokenizeCmd) Synopsis() string { return "Print the token stream for a source file" }
func (*tokenizeCmd) Usage() string {
	return `tokenize <file>:
  Scan a source file and print its token vector, one token per line.
`
}
func (t *tokenizeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&t.debug, "debug", false, "enable debug-level logging for each tokenize error")
	f.BoolVar(&t.debug, "di", false, "shorthand for -debug")
}

func (t *tokenizeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "💥 File not provided\n")
		return subcommands.ExitUsageError
	}

	if t.debug {
		enableDebugLogging()
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return subcommands.ExitFailure
	}

	lex := lexer.New(string(data))
	tokens, err := lex.Scan()
	for _, tok := range tokens {
		fmt.Println(tok)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
