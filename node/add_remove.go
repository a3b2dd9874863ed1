package node

import "fmt"

// Add appends a value to a value array, establishing the element type on
// the first insertion. When value is a *Node the node is attached instead:
// objects take it as a child, object arrays as an element.
func Add[T any](n *Node, value T) error {
	if !n.Materialized() {
		if _, err := n.materialize(); err != nil {
			return err
		}
	}
	if child, ok := any(value).(*Node); ok {
		switch n.kind {
		case KindObject:
			n.addChild(child)
			return nil
		case KindObjectArray:
			return n.addElement(child)
		}
		return fmt.Errorf("add node to %v: %w", n.kind, ErrUnsupported)
	}
	if n.kind != KindValueArray {
		return fmt.Errorf("add to %v: %w", n.kind, ErrUnsupported)
	}
	v, err := ValueOf(value)
	if err != nil {
		return err
	}
	return n.appendValue(v)
}

// AddKey creates a scalar child with the given key on an object, replacing
// an existing child with the same key. A *Node value is attached under the
// key instead.
func AddKey[T any](n *Node, key string, value T) error {
	if !n.Materialized() {
		if _, err := n.materialize(); err != nil {
			return err
		}
	}
	if n.kind != KindObject {
		return fmt.Errorf("add %q to %v: %w", key, n.kind, ErrUnsupported)
	}
	if child, ok := any(value).(*Node); ok {
		child.key = key
		n.addChild(child)
		return nil
	}
	v, err := ValueOf(value)
	if err != nil {
		return err
	}
	n.addChild(NewScalar(key, v, n.opts))
	return nil
}

// AddJSON parses JSON text as an object and appends it to an object array.
func (n *Node) AddJSON(jsonText string) (*Node, error) {
	if !n.Materialized() {
		if _, err := n.materialize(); err != nil {
			return nil, err
		}
	}
	if n.kind != KindObjectArray {
		return nil, fmt.Errorf("add json to %v: %w", n.kind, ErrUnsupported)
	}
	doc, err := ParseObjectKey("", []byte(jsonText), n.opts)
	if err != nil {
		return nil, err
	}
	if err := n.addElement(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// AddJSONKey parses JSON text and attaches it to an object under key,
// dispatching to the object or array parser on the leading byte.
func (n *Node) AddJSONKey(key, jsonText string) (*Node, error) {
	if !n.Materialized() {
		if _, err := n.materialize(); err != nil {
			return nil, err
		}
	}
	if n.kind != KindObject {
		return nil, fmt.Errorf("add json %q to %v: %w", key, n.kind, ErrUnsupported)
	}
	var doc *Node
	var err error
	if looksLikeJSONObject(jsonText) {
		doc, err = ParseObjectKey(key, []byte(jsonText), n.opts)
	} else {
		doc, err = ParseArrayKey(key, []byte(jsonText), n.opts)
	}
	if err != nil {
		return nil, err
	}
	n.addChild(doc)
	return doc, nil
}

// Append navigates to path and adds value there.
func Append[T any](n *Node, path string, value T) error {
	hit, _ := n.resolve(path)
	if hit == nil {
		return fmt.Errorf("append %q: %w", path, ErrNotFound)
	}
	return Add(hit, value)
}

// AppendKey navigates to path and adds a keyed value there.
func AppendKey[T any](n *Node, path, key string, value T) error {
	hit, _ := n.resolve(path)
	if hit == nil {
		return fmt.Errorf("append %q: %w", path, ErrNotFound)
	}
	return AddKey(hit, key, value)
}

// AppendJSON navigates to path and adds a parsed object there.
func (n *Node) AppendJSON(path, jsonText string) (*Node, error) {
	hit, _ := n.resolve(path)
	if hit == nil {
		return nil, fmt.Errorf("append %q: %w", path, ErrNotFound)
	}
	return hit.AddJSON(jsonText)
}

// AppendJSONKey navigates to path and attaches parsed JSON under key there.
func (n *Node) AppendJSONKey(path, key, jsonText string) (*Node, error) {
	hit, _ := n.resolve(path)
	if hit == nil {
		return nil, fmt.Errorf("append %q: %w", path, ErrNotFound)
	}
	return hit.AddJSONKey(key, jsonText)
}

// ReplaceElement swaps an object array element for a replacement at the
// same position, found by identity.
func (n *Node) ReplaceElement(old, repl *Node) error {
	if n.kind != KindObjectArray && n.kind != KindObject {
		return fmt.Errorf("replace element in %v: %w", n.kind, ErrUnsupported)
	}
	if repl.kind != KindObject && repl.kind != KindLazyObject && n.kind == KindObjectArray {
		return ErrShape
	}
	if !n.replaceChild(old, repl) {
		return ErrNotFound
	}
	return nil
}

// RemoveElement detaches a child found by identity.
func (n *Node) RemoveElement(el *Node) error {
	i := n.indexOfChild(el)
	if i < 0 {
		return ErrNotFound
	}
	n.removeChildAt(i)
	return nil
}

// Remove resolves a path and detaches the target from its parent. A $N
// terminal splices the array element out.
func (n *Node) Remove(path string) error {
	hit, ei := n.resolve(path)
	if hit == nil {
		return fmt.Errorf("remove %q: %w", path, ErrNotFound)
	}
	if ei >= 0 {
		hit.elems = append(hit.elems[:ei], hit.elems[ei+1:]...)
		return nil
	}
	p := hit.parent
	if p == nil {
		return fmt.Errorf("remove %q: node has no parent: %w", path, ErrUnsupported)
	}
	i := p.indexOfChild(hit)
	if i < 0 {
		return fmt.Errorf("remove %q: detached node: %w", path, ErrNotFound)
	}
	p.removeChildAt(i)
	return nil
}
