package bridge

import (
	"math"
	"reflect"

	"go.bytecodealliance.org/wit"
)

// decodeValue coerces one raw host value into the Go type declared at a
// parameter position. Conversions are range-checked: values outside the
// representable range of the target type, and floats with a fractional
// part, are rejected rather than wrapped or truncated. Non-numeric values
// at numeric positions are rejected.
func decodeValue(declared wit.Type, target reflect.Type, raw any) (reflect.Value, bool) {
	switch declared.(type) {
	case wit.S8:
		return decodeSigned(target, raw, math.MinInt8, math.MaxInt8)
	case wit.S16:
		return decodeSigned(target, raw, math.MinInt16, math.MaxInt16)
	case wit.S32:
		return decodeSigned(target, raw, math.MinInt32, math.MaxInt32)
	case wit.S64:
		return decodeSigned(target, raw, math.MinInt64, math.MaxInt64)
	case wit.U8:
		return decodeUnsigned(target, raw, math.MaxUint8)
	case wit.U16:
		return decodeUnsigned(target, raw, math.MaxUint16)
	case wit.U32:
		return decodeUnsigned(target, raw, math.MaxUint32)
	case wit.U64:
		return decodeUnsigned(target, raw, math.MaxUint64)
	case wit.F32:
		f, ok := coerceFloat(raw)
		if !ok || (!math.IsInf(f, 0) && math.IsInf(float64(float32(f)), 0)) {
			return reflect.Value{}, false
		}
		v := reflect.New(target).Elem()
		v.SetFloat(f)
		return v, true
	case wit.F64:
		f, ok := coerceFloat(raw)
		if !ok {
			return reflect.Value{}, false
		}
		v := reflect.New(target).Elem()
		v.SetFloat(f)
		return v, true
	case wit.Bool:
		b, ok := raw.(bool)
		if !ok {
			return reflect.Value{}, false
		}
		v := reflect.New(target).Elem()
		v.SetBool(b)
		return v, true
	case wit.String:
		s, ok := raw.(string)
		if !ok {
			return reflect.Value{}, false
		}
		v := reflect.New(target).Elem()
		v.SetString(s)
		return v, true
	default:
		return reflect.Value{}, false
	}
}

func decodeSigned(target reflect.Type, raw any, min, max int64) (reflect.Value, bool) {
	n, ok := coerceInt(raw)
	if !ok || n < min || n > max {
		return reflect.Value{}, false
	}
	v := reflect.New(target).Elem()
	v.SetInt(n)
	return v, true
}

func decodeUnsigned(target reflect.Type, raw any, max uint64) (reflect.Value, bool) {
	u, ok := coerceUint(raw)
	if !ok || u > max {
		return reflect.Value{}, false
	}
	v := reflect.New(target).Elem()
	v.SetUint(u)
	return v, true
}

// coerceInt widens any dynamic integer representation to int64. Floats
// are accepted only when they carry an exact integer value.
func coerceInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < math.MaxInt64 && v == float64(int64(v)) {
			return int64(v), true
		}
	case float32:
		f := float64(v)
		if f >= math.MinInt64 && f < math.MaxInt64 && f == float64(int64(f)) {
			return int64(f), true
		}
	}
	return 0, false
}

// coerceUint widens any dynamic integer representation to uint64,
// rejecting negative values.
func coerceUint(raw any) (uint64, bool) {
	switch v := raw.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case int8:
		if v >= 0 {
			return uint64(v), true
		}
	case int16:
		if v >= 0 {
			return uint64(v), true
		}
	case int32:
		if v >= 0 {
			return uint64(v), true
		}
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case float64:
		if v >= 0 && v < math.MaxUint64 && v == float64(uint64(v)) {
			return uint64(v), true
		}
	case float32:
		f := float64(v)
		if f >= 0 && f < math.MaxUint64 && f == float64(uint64(f)) {
			return uint64(f), true
		}
	}
	return 0, false
}

func coerceFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
