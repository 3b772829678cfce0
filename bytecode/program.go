package bytecode

// Magic is the optional 3-byte prefix identifying a bytecode artifact.
var Magic = [3]byte{0x6E, 0x79, 0x62}

// HasMagic reports whether buf begins with the magic prefix.
func HasMagic(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == Magic[0] && buf[1] == Magic[1] && buf[2] == Magic[2]
}

// StripMagic drops the magic prefix from buf if present, otherwise returns
// buf unchanged.
func StripMagic(buf []byte) []byte {
	if HasMagic(buf) {
		return buf[3:]
	}
	return buf
}

// Assemble flattens an ordered instruction sequence into its byte
// encoding, optionally prefixed with the magic number.
func Assemble(instrs []Instruction, withMagic bool) ([]byte, error) {
	var out []byte
	if withMagic {
		out = append(out, Magic[0], Magic[1], Magic[2])
	}
	for _, instr := range instrs {
		b, err := instr.Bytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// DecodeAll decodes buf (after stripping any magic prefix) into its full
// ordered instruction sequence. Used by tests and the disassembler; the VM
// itself decodes lazily, one instruction at a time.
func DecodeAll(buf []byte) ([]Instruction, error) {
	buf = StripMagic(buf)
	var out []Instruction
	for len(buf) > 0 {
		instr, n, err := Decode(buf)
		if err != nil {
			return nil, err
		}
		out = append(out, instr)
		buf = buf[n:]
	}
	return out, nil
}
