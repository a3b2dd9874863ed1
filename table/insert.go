package table

import (
	"fmt"

	"github.com/google/uuid"

	"JsonDB/node"
)

// Insert parses a JSON object, appends it to the table, assigns a fresh
// record id under "_id" and notifies every index. Index state after a
// failed insert is undefined; callers treat mutation errors as fatal for
// the table.
func (t *Table) Insert(jsonText string) (*node.Node, error) {
	arr, err := t.ensureObjectArray()
	if err != nil {
		return nil, err
	}
	doc, err := arr.AddJSON(jsonText)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", t.name, err)
	}
	return t.register(doc)
}

// InsertNode appends an existing object node as a record.
func (t *Table) InsertNode(doc *node.Node) (*node.Node, error) {
	arr, err := t.ensureObjectArray()
	if err != nil {
		return nil, err
	}
	if err := node.Add(arr, doc); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", t.name, err)
	}
	return t.register(doc)
}

// register assigns the id, fills the primary map and feeds the indexes.
func (t *Table) register(doc *node.Node) (*node.Node, error) {
	id, ok := node.Get[string](doc, "_id")
	if !ok || id == "" {
		id = uuid.NewString()
		if err := node.AddKey(doc, "_id", id); err != nil {
			return nil, err
		}
	}
	t.main[id] = doc
	for _, idx := range t.indexes {
		if err := idx.Insert(doc); err != nil {
			return doc, fmt.Errorf("index %s: %w", idx.Name(), err)
		}
	}
	return doc, nil
}

// InsertValues appends scalars to a value array table. Scalar tables have
// no record ids and no indexes.
func InsertValues[T any](t *Table, values ...T) error {
	arr, err := t.ensureValueArray()
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := node.Add(arr, v); err != nil {
			return fmt.Errorf("insert into %s: %w", t.name, err)
		}
	}
	return nil
}
