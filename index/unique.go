package index

import (
	"fmt"

	bplus "JsonDB/bplustree"
	"JsonDB/node"
)

type unique struct {
	base
	tree *bplus.Tree[string, string]
}

func (u *unique) IsUnique() bool { return true }
func (u *unique) Len() int       { return u.tree.Len() }
func (u *unique) Clear()         { u.tree.Clear() }

// Insert records the document under its composite key. A duplicate key
// overwrites the previous entry; latest wins.
func (u *unique) Insert(doc *node.Node) error {
	id, err := u.idOf(doc)
	if err != nil {
		return err
	}
	u.tree.Insert(u.compositeKey(doc), id)
	return nil
}

func (u *unique) Remove(doc *node.Node) error {
	u.tree.Remove(u.compositeKey(doc))
	return nil
}

// Update moves the entry when the composite key changed; otherwise a
// no-op.
func (u *unique) Update(oldDoc, newDoc *node.Node) error {
	oldKey := u.compositeKey(oldDoc)
	newKey := u.compositeKey(newDoc)
	if oldKey == newKey {
		return nil
	}
	u.tree.Remove(oldKey)
	id, err := u.idOf(newDoc)
	if err != nil {
		return err
	}
	u.tree.Insert(newKey, id)
	return nil
}

// Find returns at most one document. A full argument list is an exact
// lookup; fewer arguments bind whole leading fields.
func (u *unique) Find(args ...any) ([]*node.Node, error) {
	if len(args) == len(u.fields) {
		key, err := u.probeKey(args, false)
		if err != nil {
			return nil, err
		}
		id, ok := u.tree.Find(key)
		if !ok {
			return nil, nil
		}
		return u.resolve([]string{id}), nil
	}
	key, err := u.probeKey(args, true)
	if err != nil {
		return nil, err
	}
	ids := u.tree.LeftFind(key, u.leftCmp)
	return u.resolve(ids), nil
}

func (u *unique) LeftFind(args ...any) ([]*node.Node, error) {
	key, err := u.probeKey(args, false)
	if err != nil {
		return nil, err
	}
	return u.resolve(u.tree.LeftFind(key, u.leftCmp)), nil
}

func (u *unique) RangeFind(lo, hi any, cmp Compare) ([]*node.Node, error) {
	loV, err := node.ValueOf(lo)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", u.name, err)
	}
	hiV, err := node.ValueOf(hi)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", u.name, err)
	}
	ids := u.tree.RangeFind(loV.Text(u.opts), hiV.Text(u.opts), cmp)
	return u.resolve(ids), nil
}
