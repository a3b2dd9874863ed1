// Package table is the record container: it owns a document tree whose
// table node holds the records, assigns record ids, keeps the id to node
// primary map, forwards mutations to secondary indexes and serves
// predicate and index queries.
package table

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"JsonDB/index"
	"JsonDB/node"
)

var (
	ErrUnknownIndex = errors.New("unknown index")
	ErrUnknownID    = errors.New("unknown record id")
	ErrEmptyName    = errors.New("table name must not be empty")
)

// Table is not safe for concurrent use; callers serialize access.
type Table struct {
	name      string
	opts      *node.Options
	root      *node.Node
	tableNode *node.Node // child of root named after the table; nil until first insert
	main      map[string]*node.Node
	indexes   map[string]index.Manager
	renders   *ristretto.Cache[string, string]
}

// Create initializes an empty table. The table node is created on first
// insert, which also fixes the table's mode (document or scalar).
func Create(name string, opts *node.Options) (*Table, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if opts == nil {
		opts = node.DefaultOptions()
	}
	renders, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: 10_000,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("render cache: %w", err)
	}
	return &Table{
		name:    name,
		opts:    opts,
		root:    node.NewObject("", opts),
		main:    make(map[string]*node.Node),
		indexes: make(map[string]index.Manager),
		renders: renders,
	}, nil
}

func (t *Table) Name() string           { return t.name }
func (t *Table) Root() *node.Node       { return t.root }
func (t *Table) Options() *node.Options { return t.opts }

// Node returns the table's record array node; nil before the first
// insert.
func (t *Table) Node() *node.Node { return t.tableNode }

// Len counts stored records.
func (t *Table) Len() int {
	if t.tableNode == nil {
		return 0
	}
	if t.tableNode.Kind() == node.KindValueArray {
		return t.tableNode.NumValues()
	}
	return t.tableNode.NumChildren()
}

// Close releases the render cache.
func (t *Table) Close() {
	t.renders.Close()
}

// ensureObjectArray creates or checks the table node for document mode.
func (t *Table) ensureObjectArray() (*node.Node, error) {
	if t.tableNode == nil {
		arr := node.NewObjectArray(t.name, t.opts)
		if err := node.AddKey(t.root, t.name, arr); err != nil {
			return nil, err
		}
		t.tableNode = arr
		return arr, nil
	}
	if t.tableNode.Kind() != node.KindObjectArray {
		return nil, fmt.Errorf("table %s holds scalars: %w", t.name, node.ErrShape)
	}
	return t.tableNode, nil
}

// ensureValueArray creates or checks the table node for scalar mode.
func (t *Table) ensureValueArray() (*node.Node, error) {
	if t.tableNode == nil {
		arr := node.NewValueArray(t.name, t.opts)
		if err := node.AddKey(t.root, t.name, arr); err != nil {
			return nil, err
		}
		t.tableNode = arr
		return arr, nil
	}
	if t.tableNode.Kind() != node.KindValueArray {
		return nil, fmt.Errorf("table %s holds documents: %w", t.name, node.ErrShape)
	}
	return t.tableNode, nil
}
