package core

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindBytes
	KindTime
)

// String returns the kind name for error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindBytes:
		return "bytes"
	case KindTime:
		return "time"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a single cell of a result set. Only the variant selected by
// Kind is meaningful. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	raw  []byte
	t    time.Time
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a bool Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a text Value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Bytes returns a raw byte Value.
func Bytes(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// Time returns a date/time Value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// FromAny converts a driver-native value into a Value. database/sql
// drivers report cells as int64, float64, bool, []byte, string,
// time.Time or nil; anything else is preserved through its string form.
func FromAny(v any) Value {
	switch v := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(v)
	case int64:
		return Int(v)
	case int:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case float64:
		return Float(v)
	case float32:
		return Float(float64(v))
	case string:
		return Text(v)
	case []byte:
		return Bytes(v)
	case time.Time:
		return Time(v)
	}
	return Text(fmt.Sprint(v))
}

// Kind returns the variant held by the Value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Any returns the native Go value: nil, bool, int64, float64, string,
// []byte or time.Time depending on the kind.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindBytes:
		return v.raw
	case KindTime:
		return v.t
	}
	return nil
}

// Int64 coerces the Value to an int64. Floats truncate, bools map to
// 0/1 and text is parsed.
func (v Value) Int64() (int64, error) {
	switch v.kind {
	case KindInt:
		return v.i, nil
	case KindFloat:
		return int64(v.f), nil
	case KindBool:
		if v.b {
			return 1, nil
		}
		return 0, nil
	case KindText:
		n, err := strconv.ParseInt(v.s, 10, 64)
		if err != nil {
			return 0, &CoercionError{From: v.kind, To: "int64", Err: err}
		}
		return n, nil
	}
	return 0, &CoercionError{From: v.kind, To: "int64"}
}

// Float64 coerces the Value to a float64.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case KindFloat:
		return v.f, nil
	case KindInt:
		return float64(v.i), nil
	case KindText:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0, &CoercionError{From: v.kind, To: "float64", Err: err}
		}
		return f, nil
	}
	return 0, &CoercionError{From: v.kind, To: "float64"}
}

// Text coerces the Value to a string. Every non-null kind has a text
// form.
func (v Value) Text() (string, error) {
	switch v.kind {
	case KindText:
		return v.s, nil
	case KindBytes:
		return string(v.raw), nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64), nil
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindTime:
		return v.t.Format(time.RFC3339Nano), nil
	}
	return "", &CoercionError{From: v.kind, To: "string"}
}

// Bool coerces the Value to a bool. Integers map 0/1 and text is
// parsed with strconv.ParseBool.
func (v Value) Bool() (bool, error) {
	switch v.kind {
	case KindBool:
		return v.b, nil
	case KindInt:
		switch v.i {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	case KindText:
		b, err := strconv.ParseBool(v.s)
		if err != nil {
			return false, &CoercionError{From: v.kind, To: "bool", Err: err}
		}
		return b, nil
	}
	return false, &CoercionError{From: v.kind, To: "bool"}
}

// BytesValue coerces the Value to a byte slice.
func (v Value) BytesValue() ([]byte, error) {
	switch v.kind {
	case KindBytes:
		return v.raw, nil
	case KindText:
		return []byte(v.s), nil
	}
	return nil, &CoercionError{From: v.kind, To: "[]byte"}
}

// TimeValue coerces the Value to a time.Time. Text is parsed as
// RFC 3339.
func (v Value) TimeValue() (time.Time, error) {
	switch v.kind {
	case KindTime:
		return v.t, nil
	case KindText:
		t, err := time.Parse(time.RFC3339Nano, v.s)
		if err != nil {
			return time.Time{}, &CoercionError{From: v.kind, To: "time.Time", Err: err}
		}
		return t, nil
	}
	return time.Time{}, &CoercionError{From: v.kind, To: "time.Time"}
}
