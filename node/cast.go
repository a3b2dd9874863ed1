package node

import "strconv"

// Cross-type conversion matrix. Every conversion is total: an input that
// cannot convert yields the target's zero value, never an error. String
// and numeric casts parse or format; bool maps through 0/1.

func valueToString(v Value) string {
	switch v.kind {
	case ValueString:
		return v.s
	case ValueBool:
		if v.b {
			return "true"
		}
		return "false"
	case ValueInt32, ValueInt64:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return ""
}

func valueToInt64(v Value) int64 {
	switch v.kind {
	case ValueInt32, ValueInt64:
		return v.i
	case ValueFloat64:
		return int64(v.f)
	case ValueBool:
		if v.b {
			return 1
		}
		return 0
	case ValueString:
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(v.s, 64); err == nil {
			return int64(f)
		}
	}
	return 0
}

func valueToFloat64(v Value) float64 {
	switch v.kind {
	case ValueFloat64:
		return v.f
	case ValueInt32, ValueInt64:
		return float64(v.i)
	case ValueBool:
		if v.b {
			return 1
		}
		return 0
	case ValueString:
		if f, err := strconv.ParseFloat(v.s, 64); err == nil {
			return f
		}
	}
	return 0
}

func valueToBool(v Value) bool {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueInt32, ValueInt64:
		return v.i != 0
	case ValueFloat64:
		return v.f != 0
	case ValueString:
		if b, err := strconv.ParseBool(v.s); err == nil {
			return b
		}
	}
	return false
}

// castValue converts a Value into the requested Go type per the matrix.
// Unknown target types keep their zero value.
func castValue[T any](v Value) T {
	var zero T
	switch p := any(&zero).(type) {
	case *string:
		*p = valueToString(v)
	case *int:
		*p = int(valueToInt64(v))
	case *int8:
		*p = int8(valueToInt64(v))
	case *int16:
		*p = int16(valueToInt64(v))
	case *int32:
		*p = int32(valueToInt64(v))
	case *int64:
		*p = valueToInt64(v)
	case *uint:
		*p = uint(valueToInt64(v))
	case *uint32:
		*p = uint32(valueToInt64(v))
	case *uint64:
		*p = uint64(valueToInt64(v))
	case *float32:
		*p = float32(valueToFloat64(v))
	case *float64:
		*p = valueToFloat64(v)
	case *bool:
		*p = valueToBool(v)
	case *Value:
		*p = v
	case *any:
		*p = v.Native()
	}
	return zero
}

// castToKind converts a value into a target value kind, truncating where
// the matrix truncates. Casting to null keeps the input's natural kind, so
// a null scalar adopts the first concrete value written to it.
func castToKind(v Value, k ValueKind) Value {
	if v.kind == k || k == ValueNull {
		return v
	}
	switch k {
	case ValueBool:
		return BoolValue(valueToBool(v))
	case ValueInt32:
		return Int32Value(int32(valueToInt64(v)))
	case ValueInt64:
		return Int64Value(valueToInt64(v))
	case ValueFloat64:
		return Float64Value(valueToFloat64(v))
	case ValueString:
		return StringValue(valueToString(v))
	}
	return NullValue()
}
