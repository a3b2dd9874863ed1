package node

import (
	"fmt"
	"strings"

	"JsonDB/jsonelem"
)

func normalize(opts *Options) *Options {
	if opts == nil {
		return DefaultOptions()
	}
	return opts
}

func NewObject(key string, opts *Options) *Node {
	return &Node{key: key, kind: KindObject, opts: normalize(opts)}
}

func NewScalar(key string, v Value, opts *Options) *Node {
	return &Node{key: key, kind: KindScalar, opts: normalize(opts), val: v}
}

func NewValueArray(key string, opts *Options) *Node {
	return &Node{key: key, kind: KindValueArray, opts: normalize(opts)}
}

func NewObjectArray(key string, opts *Options) *Node {
	return &Node{key: key, kind: KindObjectArray, opts: normalize(opts)}
}

// NewValueArrayOf builds a value array with its element type already
// fixed, as the snapshot reader needs for empty arrays.
func NewValueArrayOf(key string, elem ValueKind, opts *Options) *Node {
	return &Node{key: key, kind: KindValueArray, opts: normalize(opts), elemKind: elem}
}

func NewLazyObject(key string, el *jsonelem.Element, opts *Options) *Node {
	return &Node{key: key, kind: KindLazyObject, opts: normalize(opts), lazy: el}
}

func NewLazyArray(key string, el *jsonelem.Element, opts *Options) *Node {
	return &Node{key: key, kind: KindLazyArray, opts: normalize(opts), lazy: el}
}

// ParseObject parses JSON text that must be an object and builds its node
// tree. The root carries no key.
func ParseObject(data []byte, opts *Options) (*Node, error) {
	return ParseObjectKey("", data, opts)
}

// ParseObjectKey is ParseObject with an explicit key for the root.
func ParseObjectKey(key string, data []byte, opts *Options) (*Node, error) {
	opts = normalize(opts)
	el, err := jsonelem.Parse(data)
	if err != nil {
		return nil, err
	}
	if el.Kind() != jsonelem.KindObject {
		return nil, fmt.Errorf("parse object: got %v: %w", el.Kind(), ErrShape)
	}
	return fromElement(key, el, opts, opts.LazyParse)
}

// ParseArrayKey parses JSON text that must be an array.
func ParseArrayKey(key string, data []byte, opts *Options) (*Node, error) {
	opts = normalize(opts)
	el, err := jsonelem.Parse(data)
	if err != nil {
		return nil, err
	}
	if el.Kind() != jsonelem.KindArray {
		return nil, fmt.Errorf("parse array: got %v: %w", el.Kind(), ErrShape)
	}
	return fromElement(key, el, opts, opts.LazyParse)
}

// ParseAny parses an object or an array, dispatching on the first
// non-space byte the way add_json does.
func ParseAny(key string, data []byte, opts *Options) (*Node, error) {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		return ParseArrayKey(key, data, opts)
	}
	return ParseObjectKey(key, data, opts)
}

// scalarFromElement maps a scalar json element onto a Value.
func scalarFromElement(el *jsonelem.Element) (Value, bool) {
	switch el.Kind() {
	case jsonelem.KindNull:
		return NullValue(), true
	case jsonelem.KindBool:
		return BoolValue(el.Bool()), true
	case jsonelem.KindInt:
		return intValue(el.Int()), true
	case jsonelem.KindFloat:
		return Float64Value(el.Float()), true
	case jsonelem.KindString:
		return StringValue(el.Str()), true
	}
	return Value{}, false
}

// fromElement builds the node for a parsed json element. With lazyChildren
// set, nested objects and arrays become lazy nodes that hold their element
// unparsed.
func fromElement(key string, el *jsonelem.Element, opts *Options, lazyChildren bool) (*Node, error) {
	if v, ok := scalarFromElement(el); ok {
		return NewScalar(key, v, opts), nil
	}
	switch el.Kind() {
	case jsonelem.KindObject:
		obj := NewObject(key, opts)
		err := el.Members(func(k string, child *jsonelem.Element) error {
			var cn *Node
			var cerr error
			switch child.Kind() {
			case jsonelem.KindObject:
				if lazyChildren {
					cn = NewLazyObject(k, child, opts)
				} else {
					cn, cerr = fromElement(k, child, opts, false)
				}
			case jsonelem.KindArray:
				if lazyChildren {
					cn = NewLazyArray(k, child, opts)
				} else {
					cn, cerr = fromElement(k, child, opts, false)
				}
			default:
				cn, cerr = fromElement(k, child, opts, lazyChildren)
			}
			if cerr != nil {
				return cerr
			}
			obj.addChild(cn)
			return nil
		})
		if err != nil {
			return nil, err
		}
		return obj, nil
	case jsonelem.KindArray:
		return arrayFromElement(key, el, opts, lazyChildren)
	}
	return nil, fmt.Errorf("element kind %v: %w", el.Kind(), ErrShape)
}

// arrayFromElement decides between a value array and an object array from
// the first element and builds it. Heterogeneous arrays are rejected.
func arrayFromElement(key string, el *jsonelem.Element, opts *Options, lazyChildren bool) (*Node, error) {
	arr := NewValueArray(key, opts)
	var objArr *Node
	err := el.Elements(func(i int, child *jsonelem.Element) error {
		switch child.Kind() {
		case jsonelem.KindObject:
			if objArr == nil {
				if len(arr.elems) > 0 {
					return fmt.Errorf("array element %d: %w", i, ErrMixedTypes)
				}
				objArr = NewObjectArray(key, opts)
			}
			var cn *Node
			var cerr error
			if lazyChildren {
				cn = NewLazyObject("", child, opts)
			} else {
				cn, cerr = fromElement("", child, opts, false)
			}
			if cerr != nil {
				return cerr
			}
			return objArr.addElement(cn)
		case jsonelem.KindArray:
			return fmt.Errorf("array element %d: nested array: %w", i, ErrShape)
		default:
			if objArr != nil {
				return fmt.Errorf("array element %d: %w", i, ErrMixedTypes)
			}
			v, _ := scalarFromElement(child)
			return arr.appendValue(v)
		}
	})
	if err != nil {
		return nil, err
	}
	if objArr != nil {
		return objArr, nil
	}
	return arr, nil
}

// appendValue appends one element to a value array, establishing the
// element type on first insertion. Int32 widens to an existing Int64
// element type, nothing else converts.
func (n *Node) appendValue(v Value) error {
	if n.kind != KindValueArray {
		return ErrShape
	}
	if len(n.elems) == 0 {
		n.elemKind = v.kind
		n.elems = append(n.elems, v)
		return nil
	}
	if v.kind != n.elemKind {
		if n.elemKind == ValueInt64 && v.kind == ValueInt32 {
			n.elems = append(n.elems, Int64Value(v.i))
			return nil
		}
		if n.elemKind == ValueInt32 && v.kind == ValueInt64 {
			// widen the whole array once
			for i, e := range n.elems {
				n.elems[i] = Int64Value(e.i)
			}
			n.elemKind = ValueInt64
			n.elems = append(n.elems, v)
			return nil
		}
		return fmt.Errorf("append %v to %v array: %w", v.kind, n.elemKind, ErrMixedTypes)
	}
	n.elems = append(n.elems, v)
	return nil
}
