package bridge

import (
	"math"
	"reflect"
	"testing"

	"go.bytecodealliance.org/wit"
)

func TestDecodeValue_RangeChecks(t *testing.T) {
	tests := []struct {
		name     string
		declared wit.Type
		target   reflect.Type
		raw      any
		want     any
		ok       bool
	}{
		{"s32 from int", wit.S32{}, reflect.TypeOf(int32(0)), 41, int32(41), true},
		{"s32 negative", wit.S32{}, reflect.TypeOf(int32(0)), -7, int32(-7), true},
		{"s32 at max", wit.S32{}, reflect.TypeOf(int32(0)), int64(math.MaxInt32), int32(math.MaxInt32), true},
		{"s32 above max", wit.S32{}, reflect.TypeOf(int32(0)), int64(math.MaxInt32) + 1, nil, false},
		{"s32 below min", wit.S32{}, reflect.TypeOf(int32(0)), int64(math.MinInt32) - 1, nil, false},
		{"s32 from integral float", wit.S32{}, reflect.TypeOf(int32(0)), float64(12), int32(12), true},
		{"s32 from fractional float", wit.S32{}, reflect.TypeOf(int32(0)), 12.5, nil, false},
		{"s32 from string", wit.S32{}, reflect.TypeOf(int32(0)), "12", nil, false},
		{"s32 from bool", wit.S32{}, reflect.TypeOf(int32(0)), true, nil, false},
		{"s32 from nil", wit.S32{}, reflect.TypeOf(int32(0)), nil, nil, false},
		{"s8 above max", wit.S8{}, reflect.TypeOf(int8(0)), 128, nil, false},
		{"u32 negative", wit.U32{}, reflect.TypeOf(uint32(0)), -1, nil, false},
		{"u32 from int", wit.U32{}, reflect.TypeOf(uint32(0)), 9, uint32(9), true},
		{"u8 above max", wit.U8{}, reflect.TypeOf(uint8(0)), 256, nil, false},
		{"s64 from uint64 in range", wit.S64{}, reflect.TypeOf(int64(0)), uint64(5), int64(5), true},
		{"s64 from uint64 above max", wit.S64{}, reflect.TypeOf(int64(0)), uint64(math.MaxUint64), nil, false},
		{"f64 from int", wit.F64{}, reflect.TypeOf(float64(0)), 3, float64(3), true},
		{"f64 from float", wit.F64{}, reflect.TypeOf(float64(0)), 3.25, 3.25, true},
		{"f64 from string", wit.F64{}, reflect.TypeOf(float64(0)), "3.25", nil, false},
		{"bool from bool", wit.Bool{}, reflect.TypeOf(false), true, true, true},
		{"bool from int", wit.Bool{}, reflect.TypeOf(false), 1, nil, false},
		{"string from string", wit.String{}, reflect.TypeOf(""), "hi", "hi", true},
		{"string from int", wit.String{}, reflect.TypeOf(""), 1, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeValue(tt.declared, tt.target, tt.raw)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Interface() != tt.want {
				t.Errorf("got %v (%T), want %v (%T)", got.Interface(), got.Interface(), tt.want, tt.want)
			}
		})
	}
}

func TestEncodeResult_RangeChecks(t *testing.T) {
	tests := []struct {
		name     string
		declared wit.Type
		out      any
		want     any
		ok       bool
	}{
		{"s32 in range", wit.S32{}, int64(5), int32(5), true},
		{"s32 at max", wit.S32{}, int64(math.MaxInt32), int32(math.MaxInt32), true},
		{"s32 overflow", wit.S32{}, int64(math.MaxInt32) + 1, nil, false},
		{"s32 underflow", wit.S32{}, int64(math.MinInt32) - 1, nil, false},
		{"s64 passthrough", wit.S64{}, int64(1) << 40, int64(1) << 40, true},
		{"u8 from negative", wit.U8{}, int64(-1), nil, false},
		{"u8 in range", wit.U8{}, int64(200), uint8(200), true},
		{"f64 passthrough", wit.F64{}, 2.5, 2.5, true},
		{"bool passthrough", wit.Bool{}, true, true, true},
		{"string passthrough", wit.String{}, "ok", "ok", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeResult("f", tt.declared, reflect.ValueOf(tt.out))
			if tt.ok {
				if err != nil {
					t.Fatalf("encodeResult: %v", err)
				}
				if got != tt.want {
					t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected result_encoding failure, got %v", got)
			}
		})
	}
}
