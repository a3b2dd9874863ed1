package node

import (
	"fmt"
	"strconv"
)

// ValueKind tags the primitive payload of a scalar node or value array
// element.
type ValueKind byte

const (
	ValueNull ValueKind = iota
	ValueBool
	ValueInt32
	ValueInt64
	ValueFloat64
	ValueString
)

func (k ValueKind) String() string {
	switch k {
	case ValueNull:
		return "null"
	case ValueBool:
		return "bool"
	case ValueInt32:
		return "int32"
	case ValueInt64:
		return "int64"
	case ValueFloat64:
		return "float64"
	case ValueString:
		return "string"
	}
	return "unknown"
}

// Codec tag alphabet. Fixed; the snapshot format depends on these bytes.
const (
	TagObject      = '1'
	TagString      = '2'
	TagInt32       = '3'
	TagInt64       = '4'
	TagFloat64     = '5'
	TagBool        = '6'
	TagObjectArray = '7'
	TagValueArray  = '8'
)

// TagChar returns the codec tag byte for the value kind. Null has no tag of
// its own and borrows the object tag; the payload carries the null literal.
func (k ValueKind) TagChar() byte {
	switch k {
	case ValueBool:
		return TagBool
	case ValueInt32:
		return TagInt32
	case ValueInt64:
		return TagInt64
	case ValueFloat64:
		return TagFloat64
	case ValueString:
		return TagString
	}
	return TagObject
}

// ValueKindForTag reverses TagChar for the snapshot reader.
func ValueKindForTag(tag byte) (ValueKind, bool) {
	switch tag {
	case TagObject:
		return ValueNull, true
	case TagString:
		return ValueString, true
	case TagInt32:
		return ValueInt32, true
	case TagInt64:
		return ValueInt64, true
	case TagFloat64:
		return ValueFloat64, true
	case TagBool:
		return ValueBool, true
	}
	return ValueNull, false
}

// Value is one typed primitive.
type Value struct {
	kind ValueKind
	b    bool
	i    int64
	f    float64
	s    string
}

func NullValue() Value              { return Value{kind: ValueNull} }
func BoolValue(b bool) Value       { return Value{kind: ValueBool, b: b} }
func Int32Value(i int32) Value     { return Value{kind: ValueInt32, i: int64(i)} }
func Int64Value(i int64) Value     { return Value{kind: ValueInt64, i: i} }
func Float64Value(f float64) Value { return Value{kind: ValueFloat64, f: f} }
func StringValue(s string) Value   { return Value{kind: ValueString, s: s} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == ValueNull }

// Native returns the payload as its natural Go type; nil for null.
func (v Value) Native() any {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueInt32:
		return int32(v.i)
	case ValueInt64:
		return v.i
	case ValueFloat64:
		return v.f
	case ValueString:
		return v.s
	}
	return nil
}

// Text renders the value for the codec and for composite index keys.
func (v Value) Text(opts *Options) string {
	switch v.kind {
	case ValueBool:
		if v.b {
			return "true"
		}
		return "false"
	case ValueInt32, ValueInt64:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueString:
		return v.s
	}
	return opts.NullLiteral
}

// ValueOf converts a Go value into a Value. Integers keep int32 when they
// fit, matching the JSON parser's behavior.
func ValueOf(value any) (Value, error) {
	switch x := value.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(x), nil
	case int:
		return intValue(int64(x)), nil
	case int32:
		return Int32Value(x), nil
	case int64:
		return Int64Value(x), nil
	case float32:
		return Float64Value(float64(x)), nil
	case float64:
		return Float64Value(x), nil
	case string:
		return StringValue(x), nil
	case Value:
		return x, nil
	}
	return Value{}, fmt.Errorf("value of %T: %w", value, ErrUnsupported)
}

func intValue(i int64) Value {
	if i >= -1<<31 && i < 1<<31 {
		return Int32Value(int32(i))
	}
	return Int64Value(i)
}

// ParseValueText decodes a codec payload produced by Text under the given
// tag byte.
func ParseValueText(tag byte, text string, opts *Options) (Value, error) {
	if text == opts.NullLiteral {
		return NullValue(), nil
	}
	switch tag {
	case TagObject:
		return NullValue(), nil
	case TagString:
		return StringValue(text), nil
	case TagInt32:
		i, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("parse int32 %q: %w", text, err)
		}
		return Int32Value(int32(i)), nil
	case TagInt64:
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse int64 %q: %w", text, err)
		}
		return Int64Value(i), nil
	case TagFloat64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parse float64 %q: %w", text, err)
		}
		return Float64Value(f), nil
	case TagBool:
		switch text {
		case "true":
			return BoolValue(true), nil
		case "false":
			return BoolValue(false), nil
		}
		return Value{}, fmt.Errorf("parse bool %q: invalid literal", text)
	}
	return Value{}, fmt.Errorf("unknown value tag %q", tag)
}
