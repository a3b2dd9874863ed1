package table

import (
	"fmt"

	"JsonDB/node"
)

// Update replaces the record's document with freshly parsed JSON,
// preserving its id and array position, and moves every index entry.
func (t *Table) Update(id, jsonText string) (*node.Node, error) {
	repl, err := node.ParseObject([]byte(jsonText), t.opts)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", id, err)
	}
	return t.UpdateNode(id, repl)
}

// UpdateNode replaces the record's document with the given object node.
func (t *Table) UpdateNode(id string, repl *node.Node) (*node.Node, error) {
	old, ok := t.main[id]
	if !ok {
		return nil, fmt.Errorf("update %s: %w", id, ErrUnknownID)
	}
	if err := node.AddKey(repl, "_id", id); err != nil {
		return nil, err
	}
	if err := t.tableNode.ReplaceElement(old, repl); err != nil {
		return nil, fmt.Errorf("update %s: %w", id, err)
	}
	t.main[id] = repl
	t.renders.Del(id)
	for _, idx := range t.indexes {
		if err := idx.Update(old, repl); err != nil {
			return repl, fmt.Errorf("index %s: %w", idx.Name(), err)
		}
	}
	return repl, nil
}

// UpdateAt replaces the record at the 1-based array position.
func (t *Table) UpdateAt(i int, jsonText string) (*node.Node, error) {
	doc := t.GetNode(fmt.Sprintf("$%d", i))
	if doc == nil {
		return nil, fmt.Errorf("update at %d: %w", i, ErrUnknownID)
	}
	id, ok := node.Get[string](doc, "_id")
	if !ok {
		return nil, fmt.Errorf("update at %d: %w", i, ErrUnknownID)
	}
	return t.Update(id, jsonText)
}

// Set applies a path write to a record. The prior document is cloned
// first so the indexes can see the old composite key.
func Set[T any](t *Table, id, path string, value T) error {
	doc, ok := t.main[id]
	if !ok {
		return fmt.Errorf("set %s: %w", id, ErrUnknownID)
	}
	old := doc.Clone()
	if err := node.Set(doc, path, value); err != nil {
		return err
	}
	return t.afterMutate(id, old, doc)
}

// Add appends a value inside a record at path; clone-then-apply like Set.
func Add[T any](t *Table, id, path string, value T) error {
	doc, ok := t.main[id]
	if !ok {
		return fmt.Errorf("add %s: %w", id, ErrUnknownID)
	}
	old := doc.Clone()
	if err := node.Append(doc, path, value); err != nil {
		return err
	}
	return t.afterMutate(id, old, doc)
}

// AddKey creates a keyed value inside a record at path.
func AddKey[T any](t *Table, id, path, key string, value T) error {
	doc, ok := t.main[id]
	if !ok {
		return fmt.Errorf("add %s: %w", id, ErrUnknownID)
	}
	old := doc.Clone()
	if err := node.AppendKey(doc, path, key, value); err != nil {
		return err
	}
	return t.afterMutate(id, old, doc)
}

// AddJSON appends a parsed object to an object array inside a record.
func (t *Table) AddJSON(id, path, jsonText string) error {
	doc, ok := t.main[id]
	if !ok {
		return fmt.Errorf("add %s: %w", id, ErrUnknownID)
	}
	old := doc.Clone()
	if _, err := doc.AppendJSON(path, jsonText); err != nil {
		return err
	}
	return t.afterMutate(id, old, doc)
}

// AddJSONKey attaches parsed JSON under a key inside a record.
func (t *Table) AddJSONKey(id, path, key, jsonText string) error {
	doc, ok := t.main[id]
	if !ok {
		return fmt.Errorf("add %s: %w", id, ErrUnknownID)
	}
	old := doc.Clone()
	if _, err := doc.AppendJSONKey(path, key, jsonText); err != nil {
		return err
	}
	return t.afterMutate(id, old, doc)
}

func (t *Table) afterMutate(id string, old, doc *node.Node) error {
	t.renders.Del(id)
	for _, idx := range t.indexes {
		if err := idx.Update(old, doc); err != nil {
			return fmt.Errorf("index %s: %w", idx.Name(), err)
		}
	}
	return nil
}

// Delete detaches a record and removes it from the primary map and every
// index.
func (t *Table) Delete(id string) error {
	doc, ok := t.main[id]
	if !ok {
		return fmt.Errorf("delete %s: %w", id, ErrUnknownID)
	}
	if err := t.tableNode.RemoveElement(doc); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	delete(t.main, id)
	t.renders.Del(id)
	for _, idx := range t.indexes {
		if err := idx.Remove(doc); err != nil {
			return fmt.Errorf("index %s: %w", idx.Name(), err)
		}
	}
	return nil
}

// DeleteNode deletes the record holding the given document node.
func (t *Table) DeleteNode(doc *node.Node) error {
	id, ok := node.Get[string](doc, "_id")
	if !ok {
		return ErrUnknownID
	}
	return t.Delete(id)
}

// DeleteValue removes the first equal scalar from a value array table.
func DeleteValue[T any](t *Table, value T) error {
	if t.tableNode == nil || t.tableNode.Kind() != node.KindValueArray {
		return fmt.Errorf("delete value: %w", node.ErrShape)
	}
	v, err := node.ValueOf(value)
	if err != nil {
		return err
	}
	want := v.Text(t.opts)
	for i := 0; i < t.tableNode.NumValues(); i++ {
		if t.tableNode.ValueAt(i).Text(t.opts) == want {
			return t.tableNode.Remove(fmt.Sprintf("$%d", i+1))
		}
	}
	return fmt.Errorf("delete value %v: %w", value, ErrUnknownID)
}
