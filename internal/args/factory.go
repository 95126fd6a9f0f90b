package args

import (
	"fmt"
	"math"
	"strconv"
)

var (
	positiveInfinity = []byte("+inf")
	negativeInfinity = []byte("-inf")
)

// FromInt renders v in base 10. It goes through FromInt64 so an int and an
// int64 holding the same number always produce identical bytes.
func FromInt(v int) Raw {
	return FromInt64(int64(v))
}

// FromInt64 renders v in base 10 without any floating point step, so values
// outside the 32-bit range survive exactly.
func FromInt64(v int64) Raw {
	return Raw(strconv.AppendInt(nil, v, 10))
}

// FromUint64 renders v in base 10.
func FromUint64(v uint64) Raw {
	return Raw(strconv.AppendUint(nil, v, 10))
}

// FromFloat64 renders v in the shortest form that parses back to the same
// float64. Infinities use the +inf / -inf spelling Redis expects for score
// bounds.
func FromFloat64(v float64) Raw {
	switch {
	case math.IsInf(v, 1):
		return clone(positiveInfinity)
	case math.IsInf(v, -1):
		return clone(negativeInfinity)
	}
	return Raw(strconv.AppendFloat(nil, v, 'g', -1, 64))
}

// FromFloat32 is FromFloat64 with the shortest form computed at 32-bit
// precision, so float32(0.1) renders as 0.1 rather than its widened value.
func FromFloat32(v float32) Raw {
	if math.IsInf(float64(v), 0) {
		return FromFloat64(float64(v))
	}
	return Raw(strconv.AppendFloat(nil, float64(v), 'g', -1, 32))
}

// FromString returns the bytes of s unchanged.
func FromString(s string) Raw {
	return Raw(s)
}

// FromBytes copies b so later changes to the caller's slice cannot leak into
// the argument. A nil slice is a programming error and panics; use an empty
// slice for an empty argument.
func FromBytes(b []byte) Raw {
	if b == nil {
		panic("args: FromBytes called with nil slice")
	}
	return clone(b)
}

// FromBool renders true as 1 and false as 0.
func FromBool(v bool) Raw {
	if v {
		return Raw{'1'}
	}
	return Raw{'0'}
}

// From converts a native Go value into an argument. Unsupported types and
// nil panic: they indicate a bug at the call site, not a runtime condition.
func From(v any) Rawable {
	switch val := v.(type) {
	case nil:
		panic("args: From called with nil value")
	case Rawable:
		return val
	case int:
		return FromInt(val)
	case int8:
		return FromInt64(int64(val))
	case int16:
		return FromInt64(int64(val))
	case int32:
		return FromInt64(int64(val))
	case int64:
		return FromInt64(val)
	case uint8:
		return FromUint64(uint64(val))
	case uint16:
		return FromUint64(uint64(val))
	case uint32:
		return FromUint64(uint64(val))
	case uint:
		return FromUint64(uint64(val))
	case uint64:
		return FromUint64(val)
	case float32:
		return FromFloat32(val)
	case float64:
		return FromFloat64(val)
	case string:
		return FromString(val)
	case []byte:
		return FromBytes(val)
	case bool:
		return FromBool(val)
	default:
		panic(fmt.Sprintf("args: unsupported argument type %T", v))
	}
}

func clone(b []byte) Raw {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
