package node

import "slices"

// Clone deep-copies the subtree. Lazy nodes copy shallowly: the clone
// shares the unparsed element, which is immutable. The clone's parent link
// is nil; parent links inside the copy point at the copied nodes.
func (n *Node) Clone() *Node {
	c := &Node{
		key:      n.key,
		kind:     n.kind,
		opts:     n.opts,
		val:      n.val,
		elemKind: n.elemKind,
		lazy:     n.lazy,
	}
	c.elems = slices.Clone(n.elems)
	if len(n.children) > 0 {
		c.children = make([]*Node, len(n.children))
		for i, ch := range n.children {
			cc := ch.Clone()
			cc.parent = c
			c.children[i] = cc
		}
	}
	return c
}
