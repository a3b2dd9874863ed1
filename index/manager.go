// Package index maintains secondary indexes over table documents: B+
// trees keyed on the comma-joined textual forms of configured document
// fields, in a unique and a multi-entry variant.
package index

import (
	"errors"
	"fmt"
	"strings"

	bplus "JsonDB/bplustree"
	"JsonDB/node"
)

// Compare is a total order over composite keys.
type Compare = bplus.Compare[string]

// Resolver maps a record id back to its document; the owning table
// supplies one.
type Resolver func(id string) *node.Node

var (
	ErrNoID     = errors.New("document has no _id field")
	ErrArgCount = errors.New("wrong number of key arguments")
	ErrNilField = errors.New("index needs at least one field")
)

// Manager is the common surface of both index variants.
type Manager interface {
	Name() string
	Fields() []string
	IsUnique() bool
	Len() int
	Insert(doc *node.Node) error
	Remove(doc *node.Node) error
	Update(oldDoc, newDoc *node.Node) error
	Find(args ...any) ([]*node.Node, error)
	LeftFind(args ...any) ([]*node.Node, error)
	RangeFind(lo, hi any, cmp Compare) ([]*node.Node, error)
	Clear()
}

// Config carries everything needed to build an index.
type Config struct {
	Name     string
	Unique   bool
	Fields   []string
	Cmp      Compare // total order for the tree; ordinal when nil
	LeftCmp  Compare // prefix comparator; synthesized when nil
	Order    int     // B+ tree order; default when zero
	Resolver Resolver
	Options  *node.Options
}

// New builds the configured index variant.
func New(cfg Config) (Manager, error) {
	if len(cfg.Fields) == 0 {
		return nil, ErrNilField
	}
	if cfg.Options == nil {
		cfg.Options = node.DefaultOptions()
	}
	cmp := cfg.Cmp
	if cmp == nil {
		cmp = strings.Compare
	}
	leftCmp := cfg.LeftCmp
	if leftCmp == nil {
		leftCmp = prefixCompare
	}
	b := base{
		name:     cfg.Name,
		fields:   cfg.Fields,
		leftCmp:  leftCmp,
		resolver: cfg.Resolver,
		opts:     cfg.Options,
	}
	if cfg.Unique {
		tree, err := bplus.New[string, string](cfg.Order, cmp)
		if err != nil {
			return nil, err
		}
		return &unique{base: b, tree: tree}, nil
	}
	tree, err := bplus.New[string, []string](cfg.Order, cmp)
	if err != nil {
		return nil, err
	}
	return &multi{base: b, tree: tree}, nil
}

// prefixCompare is the synthesized default: 0 when the stored key begins
// with the probe, ordinal order otherwise.
func prefixCompare(stored, probe string) int {
	if strings.HasPrefix(stored, probe) {
		return 0
	}
	return strings.Compare(stored, probe)
}

type base struct {
	name     string
	fields   []string
	leftCmp  Compare
	resolver Resolver
	opts     *node.Options
}

func (b *base) Name() string     { return b.name }
func (b *base) Fields() []string { return b.fields }

// compositeKey joins the textual forms of the document's configured
// fields, in declared order. A missing field contributes the null literal.
func (b *base) compositeKey(doc *node.Node) string {
	parts := make([]string, len(b.fields))
	for i, f := range b.fields {
		hit := doc.GetNode(f)
		switch {
		case hit == nil:
			parts[i] = b.opts.NullLiteral
		case hit.Kind() == node.KindScalar:
			parts[i] = hit.Value().Text(b.opts)
		default:
			parts[i] = hit.JSON()
		}
	}
	return strings.Join(parts, ",")
}

// probeKey builds a lookup key from caller arguments. With fewer
// arguments than fields and bind set, a trailing separator is appended so
// the prefix comparator binds whole fields only ("张三" matches
// "张三,..." but not "张三丰,...").
func (b *base) probeKey(args []any, bind bool) (string, error) {
	if len(args) == 0 || len(args) > len(b.fields) {
		return "", fmt.Errorf("index %s: got %d args for %d fields: %w",
			b.name, len(args), len(b.fields), ErrArgCount)
	}
	parts := make([]string, len(args))
	for i, a := range args {
		v, err := node.ValueOf(a)
		if err != nil {
			return "", fmt.Errorf("index %s: %w", b.name, err)
		}
		parts[i] = v.Text(b.opts)
	}
	key := strings.Join(parts, ",")
	if bind && len(args) < len(b.fields) {
		key += ","
	}
	return key, nil
}

func (b *base) idOf(doc *node.Node) (string, error) {
	id, ok := node.Get[string](doc, "_id")
	if !ok || id == "" {
		return "", ErrNoID
	}
	return id, nil
}

func (b *base) resolve(ids []string) []*node.Node {
	out := make([]*node.Node, 0, len(ids))
	for _, id := range ids {
		if doc := b.resolver(id); doc != nil {
			out = append(out, doc)
		}
	}
	return out
}
