// Package value implements nilan's dynamically-typed value domain: the
// tagged sum of runtime values the VM pushes, pops, and arithmetic-combines,
// and its byte encoding.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies a Value's variant. Its numeric value is also the wire
// opcode byte used by Bytes/Decode.
type Kind byte

const (
	KindNull    Kind = 0x10
	KindTrue    Kind = 0x11
	KindFalse   Kind = 0x12
	KindInt32   Kind = 0x13
	KindInt64   Kind = 0x14
	KindFloat32 Kind = 0x15
	KindFloat64 Kind = 0x16
	KindChar    Kind = 0x17
	KindStr     Kind = 0x18
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindChar:
		return "Char"
	case KindStr:
		return "Str"
	default:
		return fmt.Sprintf("Kind(0x%02X)", byte(k))
	}
}

// Value is a tagged union over nilan's runtime value domain. Only the
// field matching Kind is meaningful; the rest are zero.
//
// Booleans are their own Kind variants (KindTrue/KindFalse), never a single
// Bool(bool) payload: this is load-bearing for the byte codec (distinct
// tags) and for arithmetic (True contributes 1, False contributes 0).
type Value struct {
	Kind Kind
	i32  int32
	i64  int64
	f32  float32
	f64  float64
	char rune
	str  string
}

func Null() Value          { return Value{Kind: KindNull} }
func True() Value          { return Value{Kind: KindTrue} }
func False() Value         { return Value{Kind: KindFalse} }
func Int32(v int32) Value  { return Value{Kind: KindInt32, i32: v} }
func Int64(v int64) Value  { return Value{Kind: KindInt64, i64: v} }
func Float32(v float32) Value { return Value{Kind: KindFloat32, f32: v} }
func Float64(v float64) Value { return Value{Kind: KindFloat64, f64: v} }
func Char(r rune) Value    { return Value{Kind: KindChar, char: r} }
func Str(s string) Value   { return Value{Kind: KindStr, str: s} }

// Int32Value returns the payload of an Int32 value. The caller must check Kind.
func (v Value) Int32Value() int32     { return v.i32 }
func (v Value) Int64Value() int64     { return v.i64 }
func (v Value) Float32Value() float32 { return v.f32 }
func (v Value) Float64Value() float64 { return v.f64 }
func (v Value) CharValue() rune       { return v.char }
func (v Value) StrValue() string      { return v.str }

// String renders a Value's textual form, the same form Print writes to
// standard output: null, true, false, the natural decimal form for numbers,
// the character itself, or the raw string bytes.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindInt32:
		return strconv.FormatInt(int64(v.i32), 10)
	case KindInt64:
		return strconv.FormatInt(v.i64, 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(v.f32), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	case KindChar:
		return string(v.char)
	case KindStr:
		return v.str
	default:
		return fmt.Sprintf("<invalid value kind 0x%02X>", byte(v.Kind))
	}
}

// Debug renders a Value in a "Kind(payload)" form, used for diagnostics
// where the raw printed form (String) would be ambiguous — e.g. the VM's
// "cannot use <v> as exit code" fault message.
func (v Value) Debug() string {
	switch v.Kind {
	case KindNull:
		return "Null"
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindInt32:
		return fmt.Sprintf("Int32(%d)", v.i32)
	case KindInt64:
		return fmt.Sprintf("Int64(%d)", v.i64)
	case KindFloat32:
		return fmt.Sprintf("Float32(%s)", strconv.FormatFloat(float64(v.f32), 'g', -1, 32))
	case KindFloat64:
		return fmt.Sprintf("Float64(%s)", strconv.FormatFloat(v.f64, 'g', -1, 64))
	case KindChar:
		return fmt.Sprintf("Char(%q)", v.char)
	case KindStr:
		return fmt.Sprintf("Str(%q)", v.str)
	default:
		return fmt.Sprintf("<invalid value kind 0x%02X>", byte(v.Kind))
	}
}

// Equal reports whether two values carry the same Kind and payload. Used by
// codec round-trip tests.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindInt32:
		return v.i32 == other.i32
	case KindInt64:
		return v.i64 == other.i64
	case KindFloat32:
		return v.f32 == other.f32
	case KindFloat64:
		return v.f64 == other.f64
	case KindChar:
		return v.char == other.char
	case KindStr:
		return v.str == other.str
	default:
		return true
	}
}

// ErrCharOutOfRange is returned by Bytes when encoding a Char whose scalar
// value exceeds the single-byte wire width, rather than truncating it.
var ErrCharOutOfRange = fmt.Errorf("char value exceeds one byte on the wire")

// Bytes appends a self-describing little-endian encoding of v: an opcode
// tag byte identifying Kind, followed by Kind's payload.
func (v Value) Bytes() ([]byte, error) {
	buf := []byte{byte(v.Kind)}
	switch v.Kind {
	case KindNull, KindTrue, KindFalse:
		// no payload
	case KindInt32:
		buf = append(buf, byte(v.i32), byte(v.i32>>8), byte(v.i32>>16), byte(v.i32>>24))
	case KindInt64:
		u := uint64(v.i64)
		for i := 0; i < 8; i++ {
			buf = append(buf, byte(u>>(8*i)))
		}
	case KindFloat32:
		bits := math.Float32bits(v.f32)
		buf = append(buf, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	case KindFloat64:
		bits := math.Float64bits(v.f64)
		for i := 0; i < 8; i++ {
			buf = append(buf, byte(bits>>(8*i)))
		}
	case KindChar:
		if v.char > 0xFF {
			return nil, fmt.Errorf("%w: %U", ErrCharOutOfRange, v.char)
		}
		buf = append(buf, byte(v.char))
	case KindStr:
		raw := []byte(v.str)
		if len(raw) > 0xFFFF {
			return nil, fmt.Errorf("string too long to encode: %d bytes", len(raw))
		}
		n := uint16(len(raw))
		buf = append(buf, byte(n), byte(n>>8))
		buf = append(buf, raw...)
	default:
		return nil, fmt.Errorf("cannot encode value of unknown kind 0x%02X", byte(v.Kind))
	}
	return buf, nil
}

// Decode reads a single Value from the front of buf without mutating it,
// returning the decoded Value and the number of bytes it consumed.
//
// Decode is a bounded-lookahead, index-based reader: it never pops bytes
// from a growable buffer, only advances a cursor over an immutable slice,
// so observable semantics match a destructive front-consuming decoder
// without its O(n²) cost.
func Decode(buf []byte) (Value, int, error) {
	if len(buf) == 0 {
		return Value{}, 0, fmt.Errorf("unexpected end of input decoding value")
	}
	kind := Kind(buf[0])
	switch kind {
	case KindNull:
		return Null(), 1, nil
	case KindTrue:
		return True(), 1, nil
	case KindFalse:
		return False(), 1, nil
	case KindInt32:
		if len(buf) < 5 {
			return Value{}, 0, fmt.Errorf("truncated Int32 payload")
		}
		u := uint32(buf[1]) | uint32(buf[2])<<8 | uint32(buf[3])<<16 | uint32(buf[4])<<24
		return Int32(int32(u)), 5, nil
	case KindInt64:
		if len(buf) < 9 {
			return Value{}, 0, fmt.Errorf("truncated Int64 payload")
		}
		var u uint64
		for i := 0; i < 8; i++ {
			u |= uint64(buf[1+i]) << (8 * i)
		}
		return Int64(int64(u)), 9, nil
	case KindFloat32:
		if len(buf) < 5 {
			return Value{}, 0, fmt.Errorf("truncated Float32 payload")
		}
		u := uint32(buf[1]) | uint32(buf[2])<<8 | uint32(buf[3])<<16 | uint32(buf[4])<<24
		return Float32(math.Float32frombits(u)), 5, nil
	case KindFloat64:
		if len(buf) < 9 {
			return Value{}, 0, fmt.Errorf("truncated Float64 payload")
		}
		var u uint64
		for i := 0; i < 8; i++ {
			u |= uint64(buf[1+i]) << (8 * i)
		}
		return Float64(math.Float64frombits(u)), 9, nil
	case KindChar:
		if len(buf) < 2 {
			return Value{}, 0, fmt.Errorf("truncated Char payload")
		}
		return Char(rune(buf[1])), 2, nil
	case KindStr:
		if len(buf) < 3 {
			return Value{}, 0, fmt.Errorf("truncated Str length prefix")
		}
		n := int(uint16(buf[1]) | uint16(buf[2])<<8)
		if len(buf) < 3+n {
			return Value{}, 0, fmt.Errorf("truncated Str payload: want %d bytes, have %d", n, len(buf)-3)
		}
		return Str(string(buf[3 : 3+n])), 3 + n, nil
	default:
		return Value{}, 0, fmt.Errorf("unknown opcode byte 0x%02X", byte(kind))
	}
}
