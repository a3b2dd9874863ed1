// Package node implements the document tree: a tagged node model with
// dotted-path navigation, structural mutation, lazy subtree
// materialization and canonical JSON rendering.
/*

Node tree
 ├── Object (ordered children, unique keys)
 │      ├── Scalar (typed primitive leaf)
 │      ├── ValueArray (homogeneous primitives)
 │      └── ObjectArray (object elements, each with a parent link back)
 └── LazyObject / LazyArray (unparsed json element, materialized on access)

- every non-root node has exactly one parent holding it
- sorted objects keep children in ascending ordinal key order
- value arrays fix their element type at first insertion

*/
package node

import (
	"sort"
	"strings"

	"JsonDB/jsonelem"
)

type Kind int

// Kind values double as the snapshot node-kind column; do not reorder.
const (
	KindScalar Kind = iota
	KindObject
	KindValueArray
	KindObjectArray
	KindLazyObject
	KindLazyArray
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindValueArray:
		return "value_array"
	case KindObjectArray:
		return "object_array"
	case KindLazyObject:
		return "lazy_object"
	case KindLazyArray:
		return "lazy_array"
	}
	return "unknown"
}

// Node is the sum type over all document node kinds. The payload fields are
// tag-dependent: val for scalars, children for objects and object arrays,
// elems for value arrays, lazy for unmaterialized subtrees.
type Node struct {
	key    string
	kind   Kind
	parent *Node
	opts   *Options

	val      Value
	children []*Node
	elems    []Value
	elemKind ValueKind
	lazy     *jsonelem.Element
}

func (n *Node) Key() string       { return n.key }
func (n *Node) Kind() Kind        { return n.kind }
func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Options() *Options { return n.opts }

// Value returns the scalar payload; the zero (null) value for other kinds.
func (n *Node) Value() Value { return n.val }

// NumChildren reports the child count of objects and object arrays.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the i-th child node, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// NumValues reports the element count of a value array.
func (n *Node) NumValues() int { return len(n.elems) }

// ValueAt returns the i-th value array element.
func (n *Node) ValueAt(i int) Value {
	if i < 0 || i >= len(n.elems) {
		return NullValue()
	}
	return n.elems[i]
}

// ElemKind is the fixed element type of a value array; ValueNull until the
// first insertion.
func (n *Node) ElemKind() ValueKind { return n.elemKind }

// SetKey renames the node. The caller is responsible for keeping a sorted
// parent consistent.
func (n *Node) SetKey(key string) { n.key = key }

// findChild locates a direct child of an object by key. Binary search is
// used when both the sort and binary search options are set; ties break to
// the first inserted child under linear search.
func (n *Node) findChild(key string) (int, *Node) {
	if n.opts != nil && n.opts.Sort && n.opts.BinarySearch {
		i := sort.Search(len(n.children), func(i int) bool {
			return strings.Compare(n.children[i].key, key) >= 0
		})
		if i < len(n.children) && n.children[i].key == key {
			return i, n.children[i]
		}
		return -1, nil
	}
	for i, c := range n.children {
		if c.key == key {
			return i, c
		}
	}
	return -1, nil
}

// addChild attaches a child to an object. A duplicate key replaces the
// existing child in place; with the sort option the child lands at its
// ordinal position.
func (n *Node) addChild(c *Node) {
	c.parent = n
	if n.opts != nil && n.opts.Sort {
		i := sort.Search(len(n.children), func(i int) bool {
			return strings.Compare(n.children[i].key, c.key) >= 0
		})
		if i < len(n.children) && n.children[i].key == c.key {
			n.children[i].parent = nil
			n.children[i] = c
			return
		}
		n.children = append(n.children, nil)
		copy(n.children[i+1:], n.children[i:])
		n.children[i] = c
		return
	}
	for i, old := range n.children {
		if old.key == c.key {
			old.parent = nil
			n.children[i] = c
			return
		}
	}
	n.children = append(n.children, c)
}

// addElement appends an element to an object array.
func (n *Node) addElement(c *Node) error {
	if c.kind != KindObject && c.kind != KindLazyObject {
		return ErrShape
	}
	c.parent = n
	n.children = append(n.children, c)
	return nil
}

// removeChildAt splices the i-th child out of the payload.
func (n *Node) removeChildAt(i int) {
	n.children[i].parent = nil
	n.children = append(n.children[:i], n.children[i+1:]...)
}

// indexOfChild finds a child by identity.
func (n *Node) indexOfChild(c *Node) int {
	for i, x := range n.children {
		if x == c {
			return i
		}
	}
	return -1
}

// replaceChild swaps old for new at the same payload position.
func (n *Node) replaceChild(old, repl *Node) bool {
	i := n.indexOfChild(old)
	if i < 0 {
		return false
	}
	old.parent = nil
	repl.parent = n
	n.children[i] = repl
	return true
}
