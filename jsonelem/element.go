// Package jsonelem wraps raw JSON bytes in a read-only element DOM.
// An Element knows its kind, can enumerate object members or array
// elements, and hands back the original raw text. Container members are
// not parsed until asked for, which is what makes lazy tree nodes cheap.
package jsonelem

import (
	"fmt"

	"github.com/buger/jsonparser"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindObject
	KindArray
)

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
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Element is one JSON value. Scalars carry their decoded form; objects and
// arrays keep only the raw bytes and decode members on demand.
type Element struct {
	kind Kind
	raw  []byte // original bytes; for strings these exclude the quotes

	b bool
	i int64
	f float64
	s string
}

// Parse validates data and returns the root element.
func Parse(data []byte) (*Element, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return fromParts(value, dataType)
}

// fromParts builds an element from a jsonparser value slice and its type.
func fromParts(value []byte, dataType jsonparser.ValueType) (*Element, error) {
	e := &Element{raw: value}
	switch dataType {
	case jsonparser.Null:
		e.kind = KindNull
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return nil, fmt.Errorf("parse bool: %w", err)
		}
		e.kind = KindBool
		e.b = b
	case jsonparser.Number:
		if i, err := jsonparser.ParseInt(value); err == nil {
			e.kind = KindInt
			e.i = i
			break
		}
		f, err := jsonparser.ParseFloat(value)
		if err != nil {
			return nil, fmt.Errorf("parse number %q: %w", value, err)
		}
		e.kind = KindFloat
		e.f = f
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return nil, fmt.Errorf("parse string: %w", err)
		}
		e.kind = KindString
		e.s = s
	case jsonparser.Object:
		e.kind = KindObject
	case jsonparser.Array:
		e.kind = KindArray
	default:
		return nil, fmt.Errorf("unsupported json value type %v", dataType)
	}
	return e, nil
}

func (e *Element) Kind() Kind { return e.kind }

func (e *Element) Bool() bool   { return e.b }
func (e *Element) Int() int64   { return e.i }
func (e *Element) Float() float64 { return e.f }
func (e *Element) Str() string  { return e.s }

// RawText returns the element's original text with insignificant
// whitespace stripped. Strings are re-quoted so the result is valid JSON.
func (e *Element) RawText() string {
	if e.kind == KindString {
		return `"` + string(e.raw) + `"`
	}
	return string(compact(e.raw))
}

// Members iterates an object's members in document order. The callback
// receives each key and a child element; returning an error stops the walk.
func (e *Element) Members(fn func(key string, v *Element) error) error {
	if e.kind != KindObject {
		return fmt.Errorf("members: element is %v, not object", e.kind)
	}
	return jsonparser.ObjectEach(e.raw, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			k = string(key)
		}
		child, err := fromParts(value, dataType)
		if err != nil {
			return err
		}
		return fn(k, child)
	})
}

// Elements iterates an array in order.
func (e *Element) Elements(fn func(i int, v *Element) error) error {
	if e.kind != KindArray {
		return fmt.Errorf("elements: element is %v, not array", e.kind)
	}
	var idx int
	var walkErr error
	_, err := jsonparser.ArrayEach(e.raw, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if walkErr != nil {
			return
		}
		if err != nil {
			walkErr = err
			return
		}
		child, cerr := fromParts(value, dataType)
		if cerr != nil {
			walkErr = cerr
			return
		}
		walkErr = fn(idx, child)
		idx++
	})
	if err != nil {
		return err
	}
	return walkErr
}

// Len counts an array's elements.
func (e *Element) Len() int {
	if e.kind != KindArray {
		return 0
	}
	n := 0
	_, _ = jsonparser.ArrayEach(e.raw, func([]byte, jsonparser.ValueType, int, error) {
		n++
	})
	return n
}

// Index returns the i-th element of an array, 0-based.
func (e *Element) Index(i int) (*Element, error) {
	if e.kind != KindArray {
		return nil, fmt.Errorf("index: element is %v, not array", e.kind)
	}
	value, dataType, _, err := jsonparser.Get(e.raw, fmt.Sprintf("[%d]", i))
	if err != nil {
		return nil, fmt.Errorf("index %d: %w", i, err)
	}
	return fromParts(value, dataType)
}

// compact strips whitespace outside of string literals.
func compact(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	inStr := false
	escaped := false
	for _, c := range raw {
		if inStr {
			out = append(out, c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inStr = false
			}
			continue
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '"':
			inStr = true
		}
		out = append(out, c)
	}
	return out
}
