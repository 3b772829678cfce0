package value

import "fmt"

// Op identifies a binary arithmetic operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
)

func (o Op) String() string { return string(rune(o)) }

func isBool(v Value) bool { return v.Kind == KindTrue || v.Kind == KindFalse }

func isPureFloat(v Value) bool { return v.Kind == KindFloat32 || v.Kind == KindFloat64 }

func isNumeric(v Value) bool {
	switch v.Kind {
	case KindInt32, KindInt64, KindFloat32, KindFloat64, KindTrue, KindFalse:
		return true
	default:
		return false
	}
}

// isZeroDivisor reports whether v acts as zero for division purposes:
// integer zero, floating zero, or False.
func isZeroDivisor(v Value) bool {
	switch v.Kind {
	case KindInt32:
		return v.i32 == 0
	case KindInt64:
		return v.i64 == 0
	case KindFloat32:
		return v.f32 == 0
	case KindFloat64:
		return v.f64 == 0
	case KindFalse:
		return true
	default:
		return false
	}
}

// asInt returns v's integer identity: its own value for Int32/Int64, 1 for
// True, 0 for False. ok is false for anything else.
func asInt(v Value) (val int64, ok bool) {
	switch v.Kind {
	case KindInt32:
		return int64(v.i32), true
	case KindInt64:
		return v.i64, true
	case KindTrue:
		return 1, true
	case KindFalse:
		return 0, true
	default:
		return 0, false
	}
}

// asFloat returns v's floating identity: its own value for Float32/Float64
// and for Int32/Int64 (widened), 1.0 for True, 0.0 for False.
func asFloat(v Value) (val float64, ok bool) {
	switch v.Kind {
	case KindFloat32:
		return float64(v.f32), true
	case KindFloat64:
		return v.f64, true
	case KindInt32:
		return float64(v.i32), true
	case KindInt64:
		return float64(v.i64), true
	case KindTrue:
		return 1, true
	case KindFalse:
		return 0, true
	default:
		return 0, false
	}
}

func applyInt(op Op, a, b int64) int64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	default:
		panic(fmt.Sprintf("value: unknown op %v", op))
	}
}

func applyFloat(op Op, a, b float64) float64 {
	switch op {
	case OpAdd:
		return a + b
	case OpSub:
		return a - b
	case OpMul:
		return a * b
	case OpDiv:
		return a / b
	default:
		panic(fmt.Sprintf("value: unknown op %v", op))
	}
}

// Arith evaluates a binary operator over two values. Int32/Int64 combine
// with each other and with booleans (True=1, False=0), widening to Int64
// if either operand is Int64. Float32/Float64 combine with each other,
// with booleans, and with ints, widening to Float64 unless both operands
// are Float32 or one side is a lone Float32 paired with a bool.
// Subtraction and multiplication mirror addition's lattice; division
// additionally guards against zero divisors. Str only supports
// concatenation via Add, with the left operand Str.
func Arith(op Op, a, b Value) (Value, error) {
	if op == OpAdd && a.Kind == KindStr {
		return Str(a.str + b.String()), nil
	}

	if op == OpDiv && isNumeric(a) && isZeroDivisor(b) {
		return Value{}, fmt.Errorf("cannot divide by 0")
	}

	if aInt, aIsInt := asInt(a); aIsInt {
		if bInt, bIsInt := asInt(b); bIsInt && !(isBool(a) && isBool(b)) {
			resultKind := KindInt32
			if a.Kind == KindInt64 || b.Kind == KindInt64 {
				resultKind = KindInt64
			}
			res := applyInt(op, aInt, bInt)
			if resultKind == KindInt64 {
				return Int64(res), nil
			}
			return Int32(int32(res)), nil
		}
	}

	if isPureFloat(a) || isPureFloat(b) {
		aFloat, aOk := asFloat(a)
		bFloat, bOk := asFloat(b)
		if aOk && bOk {
			var resultKind Kind
			switch {
			case isPureFloat(a) && isPureFloat(b):
				if a.Kind == KindFloat32 && b.Kind == KindFloat32 {
					resultKind = KindFloat32
				} else {
					resultKind = KindFloat64
				}
			case isPureFloat(a) && isBool(b):
				resultKind = a.Kind
			case isBool(a) && isPureFloat(b):
				resultKind = b.Kind
			default:
				resultKind = KindFloat64
			}
			res := applyFloat(op, aFloat, bFloat)
			if resultKind == KindFloat32 {
				return Float32(float32(res)), nil
			}
			return Float64(res), nil
		}
	}

	return Value{}, fmt.Errorf("invalid operation %s %s %s", a.String(), op.String(), b.String())
}

func Add(a, b Value) (Value, error) { return Arith(OpAdd, a, b) }
func Sub(a, b Value) (Value, error) { return Arith(OpSub, a, b) }
func Mul(a, b Value) (Value, error) { return Arith(OpMul, a, b) }
func Div(a, b Value) (Value, error) { return Arith(OpDiv, a, b) }
