package compiler

import "fmt"

// LoweringError is a fatal error raised while compiling an AST to
// bytecode: an unsupported operator, an unsupported node kind, or an
// invalid operator token in binary position.
type LoweringError struct {
	Message string
}

func (e LoweringError) Error() string {
	return fmt.Sprintf("💥 LoweringError: %s", e.Message)
}
