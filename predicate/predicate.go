// Package predicate builds composable boolean functions over document
// nodes for table filtering.
package predicate

import (
	"cmp"

	"JsonDB/node"
)

// Predicate reports whether a document matches.
type Predicate func(*node.Node) bool

// Eq matches documents whose value at path equals want.
func Eq[T comparable](path string, want T) Predicate {
	return func(n *node.Node) bool {
		v, ok := node.Get[T](n, path)
		return ok && v == want
	}
}

// Ne matches documents whose value at path differs from want; the path
// must resolve.
func Ne[T comparable](path string, want T) Predicate {
	return func(n *node.Node) bool {
		v, ok := node.Get[T](n, path)
		return ok && v != want
	}
}

func Lt[T cmp.Ordered](path string, want T) Predicate {
	return ordered(path, want, func(c int) bool { return c < 0 })
}

func Le[T cmp.Ordered](path string, want T) Predicate {
	return ordered(path, want, func(c int) bool { return c <= 0 })
}

func Gt[T cmp.Ordered](path string, want T) Predicate {
	return ordered(path, want, func(c int) bool { return c > 0 })
}

func Ge[T cmp.Ordered](path string, want T) Predicate {
	return ordered(path, want, func(c int) bool { return c >= 0 })
}

func ordered[T cmp.Ordered](path string, want T, keep func(int) bool) Predicate {
	return func(n *node.Node) bool {
		v, ok := node.Get[T](n, path)
		return ok && keep(cmp.Compare(v, want))
	}
}

// Like matches the string at path against a pattern where '%' spans any
// run of characters and '_' exactly one.
func Like(path, pattern string) Predicate {
	return func(n *node.Node) bool {
		s, ok := node.Get[string](n, path)
		return ok && likeMatch([]rune(s), []rune(pattern))
	}
}

func likeMatch(s, p []rune) bool {
	if len(p) == 0 {
		return len(s) == 0
	}
	switch p[0] {
	case '%':
		for i := 0; i <= len(s); i++ {
			if likeMatch(s[i:], p[1:]) {
				return true
			}
		}
		return false
	case '_':
		return len(s) > 0 && likeMatch(s[1:], p[1:])
	default:
		return len(s) > 0 && s[0] == p[0] && likeMatch(s[1:], p[1:])
	}
}

// In matches when the value at path equals any of the candidates.
func In[T comparable](path string, candidates ...T) Predicate {
	return func(n *node.Node) bool {
		v, ok := node.Get[T](n, path)
		if !ok {
			return false
		}
		for _, c := range candidates {
			if v == c {
				return true
			}
		}
		return false
	}
}

// Null matches when path resolves to a null scalar.
func Null(path string) Predicate {
	return func(n *node.Node) bool {
		hit := n.GetNode(path)
		return hit != nil && hit.Kind() == node.KindScalar && hit.Value().IsNull()
	}
}

// NotNull matches when path resolves to anything but a null scalar.
func NotNull(path string) Predicate {
	return func(n *node.Node) bool {
		hit := n.GetNode(path)
		if hit == nil {
			return false
		}
		return hit.Kind() != node.KindScalar || !hit.Value().IsNull()
	}
}

// Len matches when the length of the value at path equals want: rune
// count for strings, element count for arrays, child count for objects.
func Len(path string, want int) Predicate {
	return func(n *node.Node) bool {
		hit := n.GetNode(path)
		if hit == nil {
			return false
		}
		switch hit.Kind() {
		case node.KindScalar:
			return len([]rune(hit.Value().Text(hit.Options()))) == want
		case node.KindValueArray:
			return hit.NumValues() == want
		default:
			return hit.NumChildren() == want
		}
	}
}

// And matches when every predicate matches.
func And(ps ...Predicate) Predicate {
	return func(n *node.Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(ps ...Predicate) Predicate {
	return func(n *node.Node) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(n *node.Node) bool { return !p(n) }
}
