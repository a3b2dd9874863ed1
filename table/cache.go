package table

// JSON returns the canonical render of a stored record. Renders are kept
// in the ristretto cache until the record mutates, so repeated reads of
// hot documents skip the tree walk.
func (t *Table) JSON(id string) (string, bool) {
	if s, ok := t.renders.Get(id); ok {
		return s, true
	}
	doc, ok := t.main[id]
	if !ok {
		return "", false
	}
	s := doc.JSON()
	if t.renders.Set(id, s, int64(len(s))) {
		t.renders.Wait()
	}
	return s, true
}
