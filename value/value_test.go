package value

import "testing"

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestCodecRoundTrip(t *testing.T) {
	samples := []Value{
		Null(), True(), False(),
		Int32(-42), Int32(0), Int32(2147483647),
		Int64(-1), Int64(9223372036854775807),
		Float32(3.5), Float32(-0.0),
		Float64(3.14159), Float64(-1e100),
		Char('z'), Char(0),
		Str(""), Str("Hello World!"),
	}

	for _, v := range samples {
		buf, err := v.Bytes()
		assert(t, err == nil, "encode %v: unexpected error %v", v, err)

		decoded, n, err := Decode(buf)
		assert(t, err == nil, "decode %v: unexpected error %v", v, err)
		assert(t, n == len(buf), "decode %v: consumed %d of %d bytes", v, n, len(buf))
		assert(t, decoded.Equal(v), "round-trip mismatch: got %#v want %#v", decoded, v)
	}
}

func TestCharOutOfRangeIsEncodeError(t *testing.T) {
	_, err := Char(0x1F600).Bytes()
	assert(t, err != nil, "expected encode error for char above 0xFF")
}

func TestArithmeticCommutativity(t *testing.T) {
	pairs := [][2]Value{
		{Int32(3), Int32(4)},
		{Int32(3), Int64(4)},
		{Float32(1.5), Float32(2.5)},
		{Float64(1.5), Int32(2)},
		{True(), Int32(5)},
		{False(), Float64(9.0)},
	}

	for _, p := range pairs {
		a, b := p[0], p[1]
		sum1, err1 := Add(a, b)
		sum2, err2 := Add(b, a)
		assert(t, err1 == nil && err2 == nil, "add(%v,%v) errors: %v %v", a, b, err1, err2)
		assert(t, sum1.Kind == sum2.Kind, "add(%v,%v) kind mismatch: %v vs %v", a, b, sum1.Kind, sum2.Kind)
		assert(t, sum1.Equal(sum2), "add(%v,%v) value mismatch: %v vs %v", a, b, sum1, sum2)

		prod1, err1 := Mul(a, b)
		prod2, err2 := Mul(b, a)
		assert(t, err1 == nil && err2 == nil, "mul(%v,%v) errors: %v %v", a, b, err1, err2)
		assert(t, prod1.Kind == prod2.Kind, "mul(%v,%v) kind mismatch: %v vs %v", a, b, prod1.Kind, prod2.Kind)
	}
}

func TestDivisionByZero(t *testing.T) {
	zeros := []Value{Int32(0), Int64(0), Float32(0), Float64(0), False()}
	numerators := []Value{Int32(7), Int64(7), Float32(7), Float64(7)}

	for _, a := range numerators {
		for _, z := range zeros {
			_, err := Div(a, z)
			assert(t, err != nil, "%v / %v should fail", a, z)
		}
	}
}

func TestMagicDivisionSkipsNonNumeric(t *testing.T) {
	_, err := Div(Str("x"), Int32(0))
	assert(t, err != nil, "Str / 0 should fail (invalid operation, not div-by-zero confusion)")
}

func TestStrConcat(t *testing.T) {
	v, err := Add(Str("n="), Int32(42))
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, v.Kind == KindStr, "expected Str, got %v", v.Kind)
	assert(t, v.StrValue() == "n=42", "got %q", v.StrValue())

	v, err = Add(Str("x is "), Null())
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, v.StrValue() == "x is null", "got %q", v.StrValue())
}

func TestStrRejectsNonAdd(t *testing.T) {
	for _, op := range []Op{OpSub, OpMul, OpDiv} {
		_, err := Arith(op, Str("x"), Int32(1))
		assert(t, err != nil, "Str %s x should fail", op)
	}
}

func TestInvalidOperandPairing(t *testing.T) {
	_, err := Add(Null(), Int32(1))
	assert(t, err != nil, "Null + Int32 should fail")
}
