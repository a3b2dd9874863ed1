package node

import (
	"fmt"
	"strings"
)

// Get resolves a path and returns the value cast to T. Scalars and value
// array elements go through the conversion matrix; a container node is
// returned as-is when T is *Node, otherwise T's zero value with ok still
// true. ok is false only on a navigation miss.
func Get[T any](n *Node, path string) (T, bool) {
	var zero T
	hit, ei := n.resolve(path)
	if hit == nil {
		return zero, false
	}
	if ei >= 0 {
		return castValue[T](hit.elems[ei]), true
	}
	if _, wantsNode := any(zero).(*Node); wantsNode {
		return any(hit).(T), true
	}
	if hit.kind == KindScalar {
		return castValue[T](hit.val), true
	}
	if v, ok := any(hit).(T); ok {
		return v, true
	}
	return zero, true
}

// Set resolves a path and overwrites the target.
//
// Scalars convert the incoming value to their current value kind (a null
// scalar adopts the value's natural kind). An object target accepts a JSON
// string and reparses its subtree in place. A $N terminal writes a value
// array element or replaces an object array element from JSON.
func Set[T any](n *Node, path string, value T) error {
	hit, ei := n.resolve(path)
	if hit == nil {
		return fmt.Errorf("set %q: %w", path, ErrNotFound)
	}
	if ei >= 0 {
		v, err := ValueOf(value)
		if err != nil {
			return fmt.Errorf("set %q: %w", path, err)
		}
		hit.elems[ei] = castToKind(v, hit.elemKind)
		return nil
	}
	switch hit.kind {
	case KindScalar:
		v, err := ValueOf(value)
		if err != nil {
			return fmt.Errorf("set %q: %w", path, err)
		}
		hit.val = castToKind(v, hit.val.kind)
		return nil
	case KindObject, KindLazyObject:
		text, ok := any(value).(string)
		if !ok {
			return fmt.Errorf("set %q: object target needs a json string: %w", path, ErrUnsupported)
		}
		return hit.setFromJSON(text)
	}
	return fmt.Errorf("set %q on %v: %w", path, hit.kind, ErrUnsupported)
}

// setFromJSON reparses an object node's subtree in place, preserving the
// node's identity, key and parent link.
func (n *Node) setFromJSON(text string) error {
	repl, err := ParseObjectKey(n.key, []byte(text), n.opts)
	if err != nil {
		return err
	}
	n.kind = KindObject
	n.lazy = nil
	n.val = Value{}
	n.elems = nil
	n.children = repl.children
	for _, c := range n.children {
		c.parent = n
	}
	return nil
}

// looksLikeJSONObject is the add_json dispatch test.
func looksLikeJSONObject(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, " \t\r\n"), "{")
}
