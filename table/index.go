package table

import (
	"fmt"

	"JsonDB/index"
	"JsonDB/node"
)

// AddIndex registers a secondary index with ordinal key order and
// back-populates it from the records already stored.
func (t *Table) AddIndex(name string, unique bool, fields ...string) error {
	return t.AddIndexCmp(name, unique, nil, nil, fields...)
}

// AddIndexCmp registers an index with explicit comparators: cmp orders
// the composite keys in the tree, leftCmp answers prefix probes. Either
// may be nil for the defaults. Requires a document table.
func (t *Table) AddIndexCmp(name string, unique bool, cmp, leftCmp index.Compare, fields ...string) error {
	if t.tableNode != nil && t.tableNode.Kind() != node.KindObjectArray {
		return fmt.Errorf("add index %s: %w", name, node.ErrShape)
	}
	if _, exists := t.indexes[name]; exists {
		return fmt.Errorf("add index %s: already registered", name)
	}
	mgr, err := index.New(index.Config{
		Name:     name,
		Unique:   unique,
		Fields:   fields,
		Cmp:      cmp,
		LeftCmp:  leftCmp,
		Resolver: t.Get,
		Options:  t.opts,
	})
	if err != nil {
		return fmt.Errorf("add index %s: %w", name, err)
	}
	// scan existing records so an index added late still answers
	if t.tableNode != nil {
		for i := 0; i < t.tableNode.NumChildren(); i++ {
			if err := mgr.Insert(t.tableNode.Child(i)); err != nil {
				return fmt.Errorf("add index %s: populate: %w", name, err)
			}
		}
	}
	t.indexes[name] = mgr
	return nil
}

// Index returns a registered index manager.
func (t *Table) Index(name string) (index.Manager, bool) {
	m, ok := t.indexes[name]
	return m, ok
}

// IndexNames lists the registered indexes.
func (t *Table) IndexNames() []string {
	out := make([]string, 0, len(t.indexes))
	for name := range t.indexes {
		out = append(out, name)
	}
	return out
}

// rebuildIndexes clears and re-populates every index from the table
// node, used after a snapshot load.
func (t *Table) rebuildIndexes() error {
	for _, idx := range t.indexes {
		idx.Clear()
	}
	if t.tableNode == nil || t.tableNode.Kind() != node.KindObjectArray {
		return nil
	}
	for i := 0; i < t.tableNode.NumChildren(); i++ {
		doc := t.tableNode.Child(i)
		for _, idx := range t.indexes {
			if err := idx.Insert(doc); err != nil {
				return fmt.Errorf("rebuild index %s: %w", idx.Name(), err)
			}
		}
	}
	return nil
}
