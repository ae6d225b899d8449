package bridge

import (
	"math"
	"reflect"

	"go.bytecodealliance.org/wit"

	"github.com/hostbind/hostbind/errors"
)

// encodeResult converts the native return value into the value shape the
// host runtime receives. The conversion into the declared type is
// range-checked; a result outside its representable range is a
// result-encoding failure, never wrapped or saturated.
func encodeResult(function string, declared wit.Type, out reflect.Value) (any, error) {
	fail := func() error {
		return errors.ResultEncoding(function, TypeName(declared), out.Interface())
	}

	switch declared.(type) {
	case wit.S8:
		n, ok := resultInt(out)
		if !ok || n < math.MinInt8 || n > math.MaxInt8 {
			return nil, fail()
		}
		return int8(n), nil
	case wit.S16:
		n, ok := resultInt(out)
		if !ok || n < math.MinInt16 || n > math.MaxInt16 {
			return nil, fail()
		}
		return int16(n), nil
	case wit.S32:
		n, ok := resultInt(out)
		if !ok || n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fail()
		}
		return int32(n), nil
	case wit.S64:
		n, ok := resultInt(out)
		if !ok {
			return nil, fail()
		}
		return n, nil
	case wit.U8:
		u, ok := resultUint(out)
		if !ok || u > math.MaxUint8 {
			return nil, fail()
		}
		return uint8(u), nil
	case wit.U16:
		u, ok := resultUint(out)
		if !ok || u > math.MaxUint16 {
			return nil, fail()
		}
		return uint16(u), nil
	case wit.U32:
		u, ok := resultUint(out)
		if !ok || u > math.MaxUint32 {
			return nil, fail()
		}
		return uint32(u), nil
	case wit.U64:
		u, ok := resultUint(out)
		if !ok {
			return nil, fail()
		}
		return u, nil
	case wit.F32:
		f := out.Float()
		if !math.IsInf(f, 0) && math.IsInf(float64(float32(f)), 0) {
			return nil, fail()
		}
		return float32(f), nil
	case wit.F64:
		return out.Float(), nil
	case wit.Bool:
		return out.Bool(), nil
	case wit.String:
		return out.String(), nil
	default:
		return nil, errors.Unsupported(errors.PhaseEncode, "result type "+TypeName(declared))
	}
}

func resultInt(out reflect.Value) (int64, bool) {
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return out.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := out.Uint()
		if u > math.MaxInt64 {
			return 0, false
		}
		return int64(u), true
	default:
		return 0, false
	}
}

func resultUint(out reflect.Value) (uint64, bool) {
	switch out.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return out.Uint(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := out.Int()
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	default:
		return 0, false
	}
}
