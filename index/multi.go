package index

import (
	"fmt"
	"slices"

	bplus "JsonDB/bplustree"
	"JsonDB/node"
)

type multi struct {
	base
	tree *bplus.Tree[string, []string]
}

func (m *multi) IsUnique() bool { return false }
func (m *multi) Len() int       { return m.tree.Len() }
func (m *multi) Clear()         { m.tree.Clear() }

// Insert appends the document's id to its key's entry list.
func (m *multi) Insert(doc *node.Node) error {
	id, err := m.idOf(doc)
	if err != nil {
		return err
	}
	key := m.compositeKey(doc)
	ids, _ := m.tree.Find(key)
	if slices.Contains(ids, id) {
		return nil
	}
	m.tree.Insert(key, append(ids, id))
	return nil
}

// Remove drops the document's id from its key's list and deletes the
// entry when the list empties.
func (m *multi) Remove(doc *node.Node) error {
	id, err := m.idOf(doc)
	if err != nil {
		return err
	}
	key := m.compositeKey(doc)
	ids, ok := m.tree.Find(key)
	if !ok {
		return nil
	}
	ids = slices.DeleteFunc(ids, func(x string) bool { return x == id })
	if len(ids) == 0 {
		m.tree.Remove(key)
		return nil
	}
	m.tree.Insert(key, ids)
	return nil
}

func (m *multi) Update(oldDoc, newDoc *node.Node) error {
	oldKey := m.compositeKey(oldDoc)
	newKey := m.compositeKey(newDoc)
	if oldKey == newKey {
		return nil
	}
	if err := m.Remove(oldDoc); err != nil {
		return err
	}
	return m.Insert(newDoc)
}

func (m *multi) Find(args ...any) ([]*node.Node, error) {
	if len(args) == len(m.fields) {
		key, err := m.probeKey(args, false)
		if err != nil {
			return nil, err
		}
		ids, _ := m.tree.Find(key)
		return m.resolve(ids), nil
	}
	key, err := m.probeKey(args, true)
	if err != nil {
		return nil, err
	}
	return m.resolve(flatten(m.tree.LeftFind(key, m.leftCmp))), nil
}

func (m *multi) LeftFind(args ...any) ([]*node.Node, error) {
	key, err := m.probeKey(args, false)
	if err != nil {
		return nil, err
	}
	return m.resolve(flatten(m.tree.LeftFind(key, m.leftCmp))), nil
}

func (m *multi) RangeFind(lo, hi any, cmp Compare) ([]*node.Node, error) {
	loV, err := node.ValueOf(lo)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", m.name, err)
	}
	hiV, err := node.ValueOf(hi)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", m.name, err)
	}
	lists := m.tree.RangeFind(loV.Text(m.opts), hiV.Text(m.opts), cmp)
	return m.resolve(flatten(lists)), nil
}

func flatten(lists [][]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
