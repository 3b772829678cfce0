package compiler

import (
	"fmt"
	"strings"

	"nilan/bytecode"
)

// Disassemble renders a bytecode buffer's instruction stream
// human-readably as a string. It is read-only and never writes to disk.
func Disassemble(buf []byte) (string, error) {
	instrs, err := bytecode.DecodeAll(buf)
	if err != nil {
		return "", fmt.Errorf("disassemble: %w", err)
	}

	var sb strings.Builder
	for i, instr := range instrs {
		fmt.Fprintf(&sb, "%04d %s\n", i, instr.String())
	}
	return sb.String(), nil
}
