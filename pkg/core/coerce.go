package core

import (
	"fmt"
	"time"
)

// Coerce converts a Value to T using the same rules as the Value
// accessor methods. Supported targets are the integer and float types,
// string, bool, []byte, time.Time, Value itself and any.
func Coerce[T any](v Value) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *int64:
		n, err := v.Int64()
		*p = n
		return out, err
	case *int:
		n, err := v.Int64()
		*p = int(n)
		return out, err
	case *int32:
		n, err := v.Int64()
		*p = int32(n)
		return out, err
	case *int16:
		n, err := v.Int64()
		*p = int16(n)
		return out, err
	case *float64:
		f, err := v.Float64()
		*p = f
		return out, err
	case *float32:
		f, err := v.Float64()
		*p = float32(f)
		return out, err
	case *string:
		s, err := v.Text()
		*p = s
		return out, err
	case *bool:
		b, err := v.Bool()
		*p = b
		return out, err
	case *[]byte:
		b, err := v.BytesValue()
		*p = b
		return out, err
	case *time.Time:
		t, err := v.TimeValue()
		*p = t
		return out, err
	case *Value:
		*p = v
		return out, nil
	case *any:
		*p = v.Any()
		return out, nil
	}
	return out, &CoercionError{From: v.Kind(), To: fmt.Sprintf("%T", out)}
}
