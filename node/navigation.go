package node

import (
	"strconv"
	"strings"
)

// splitPath cuts a dotted path into segments. An empty path addresses the
// node itself.
func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// arrayIndex decodes a $N segment; N is 1-based.
func arrayIndex(seg string) (int, bool) {
	if len(seg) < 2 || seg[0] != '$' {
		return 0, false
	}
	n, err := strconv.Atoi(seg[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// resolve navigates a dotted path from this node. It returns the resolved
// node and, when the terminal segment selects a value array element, the
// element's 0-based position; otherwise -1. A miss returns (nil, -1).
func (n *Node) resolve(path string) (*Node, int) {
	keys := splitPath(path)
	if len(keys) == 0 {
		return n, -1
	}
	if n.opts != nil && n.opts.RecursiveMode {
		return n.findRecursive(keys, 0)
	}
	return n.findLoop(keys, 0)
}

// findLoop is the navigational (default) lookup: one segment consumes one
// level of the tree.
func (n *Node) findLoop(keys []string, idx int) (*Node, int) {
	curr := n
	for idx < len(keys) {
		seg := keys[idx]
		term := idx == len(keys)-1
		switch curr.kind {
		case KindLazyObject, KindLazyArray:
			m, err := curr.materialize()
			if err != nil {
				return nil, -1
			}
			curr = m
		case KindScalar:
			if term && curr.key == seg {
				return curr, -1
			}
			return nil, -1
		case KindObject:
			_, child := curr.findChild(seg)
			if child == nil {
				return nil, -1
			}
			if term {
				return child, -1
			}
			curr = child
			idx++
		case KindValueArray:
			num, ok := arrayIndex(seg)
			if !ok || num < 1 || num > len(curr.elems) {
				return nil, -1
			}
			return curr, num - 1
		case KindObjectArray:
			num, ok := arrayIndex(seg)
			if !ok || num < 1 || num > len(curr.children) {
				return nil, -1
			}
			el := curr.children[num-1]
			if term {
				return el, -1
			}
			curr = el
			idx++
		default:
			return nil, -1
		}
	}
	return curr, -1
}

// findRecursive treats each segment as findable at any descendant depth:
// a segment matching the current node's own key is consumed, otherwise
// every child is tried depth-first and the first hit wins.
func (n *Node) findRecursive(keys []string, idx int) (*Node, int) {
	if n.key == keys[idx] {
		if idx == len(keys)-1 {
			return n, -1
		}
		idx++
	}
	switch n.kind {
	case KindScalar:
		return nil, -1
	case KindLazyObject, KindLazyArray:
		m, err := n.materialize()
		if err != nil {
			return nil, -1
		}
		return m.findRecursive(keys, idx)
	case KindValueArray:
		if num, ok := arrayIndex(keys[idx]); ok && idx == len(keys)-1 {
			if num >= 1 && num <= len(n.elems) {
				return n, num - 1
			}
		}
		return nil, -1
	case KindObjectArray:
		if num, ok := arrayIndex(keys[idx]); ok {
			if num < 1 || num > len(n.children) {
				return nil, -1
			}
			el := n.children[num-1]
			if idx == len(keys)-1 {
				return el, -1
			}
			return el.findRecursive(keys, idx+1)
		}
		for i := 0; i < len(n.children); i++ {
			if hit, ei := n.children[i].findRecursive(keys, idx); hit != nil {
				return hit, ei
			}
		}
		return nil, -1
	default: // object
		for i := 0; i < len(n.children); i++ {
			if hit, ei := n.children[i].findRecursive(keys, idx); hit != nil {
				return hit, ei
			}
		}
		return nil, -1
	}
}

// GetNode resolves a path and returns the node reference, or nil on a miss.
// A terminal $N into a value array returns the array node itself; the
// elements are not nodes.
func (n *Node) GetNode(path string) *Node {
	hit, _ := n.resolve(path)
	return hit
}
