package table

import (
	"fmt"

	"JsonDB/index"
	"JsonDB/node"
	"JsonDB/predicate"
)

// Get returns the record with the given id, O(1) through the primary map.
func (t *Table) Get(id string) *node.Node {
	return t.main[id]
}

// At reads the value at the 1-based array position, cast to T. In
// document mode it returns the record node when T is *node.Node.
func At[T any](t *Table, i int) (T, bool) {
	var zero T
	if t.tableNode == nil {
		return zero, false
	}
	return node.Get[T](t.tableNode, fmt.Sprintf("$%d", i))
}

// GetNode resolves a path against the table node.
func (t *Table) GetNode(path string) *node.Node {
	if t.tableNode == nil {
		return nil
	}
	return t.tableNode.GetNode(path)
}

// Find dispatches an exact (or leading-field bound) lookup to a named
// index.
func (t *Table) Find(indexName string, args ...any) ([]*node.Node, error) {
	idx, ok := t.indexes[indexName]
	if !ok {
		return nil, fmt.Errorf("find %s: %w", indexName, ErrUnknownIndex)
	}
	return idx.Find(args...)
}

// FindOne is Find for unique indexes; nil when absent.
func (t *Table) FindOne(indexName string, args ...any) (*node.Node, error) {
	docs, err := t.Find(indexName, args...)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

// LeftFind dispatches a prefix search to a named index.
func (t *Table) LeftFind(indexName string, args ...any) ([]*node.Node, error) {
	idx, ok := t.indexes[indexName]
	if !ok {
		return nil, fmt.Errorf("left find %s: %w", indexName, ErrUnknownIndex)
	}
	return idx.LeftFind(args...)
}

// RangeFind dispatches an inclusive [lo, hi] scan to a named index. A nil
// cmp keeps the index's key order.
func (t *Table) RangeFind(indexName string, lo, hi any, cmp index.Compare) ([]*node.Node, error) {
	idx, ok := t.indexes[indexName]
	if !ok {
		return nil, fmt.Errorf("range find %s: %w", indexName, ErrUnknownIndex)
	}
	return idx.RangeFind(lo, hi, cmp)
}

// Filter yields the stored records matching the predicate, in array
// order.
func (t *Table) Filter(pred predicate.Predicate) []*node.Node {
	if t.tableNode == nil || t.tableNode.Kind() != node.KindObjectArray {
		return nil
	}
	var out []*node.Node
	for i := 0; i < t.tableNode.NumChildren(); i++ {
		doc := t.tableNode.Child(i)
		if pred(doc) {
			out = append(out, doc)
		}
	}
	return out
}
