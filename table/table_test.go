package table

import (
	"testing"

	"JsonDB/node"
	"JsonDB/predicate"
)

func newTable(t *testing.T, name string) *Table {
	t.Helper()
	tbl, err := Create(name, nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(tbl.Close)
	return tbl
}

func TestInsertAndPathRead(t *testing.T) {
	tbl := newTable(t, "students")
	doc, err := tbl.Insert(`{"name":"张三","age":1}`)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if doc == nil {
		t.Fatal("Insert returned nil node")
	}
	if got, ok := node.Get[string](tbl.Node(), "$1.name"); !ok || got != "张三" {
		t.Errorf("$1.name = %q ok=%v", got, ok)
	}
	if got, ok := node.Get[int](tbl.Node(), "$1.age"); !ok || got != 1 {
		t.Errorf("$1.age = %d ok=%v", got, ok)
	}
}

func TestInsertAssignsID(t *testing.T) {
	tbl := newTable(t, "students")
	doc, err := tbl.Insert(`{"name":"张三"}`)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	id, ok := node.Get[string](doc, "_id")
	if !ok || len(id) != 36 {
		t.Fatalf("_id = %q", id)
	}
	if tbl.Get(id) != doc {
		t.Error("primary map does not resolve the id")
	}
	// invariant: get(id)._id == id
	if got, _ := node.Get[string](tbl.Get(id), "_id"); got != id {
		t.Errorf("round-tripped id = %q", got)
	}
}

func TestUpdateViaPath(t *testing.T) {
	tbl := newTable(t, "students")
	if _, err := tbl.Insert(`{"name":"张三","age":1}`); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	n := tbl.GetNode("$1")
	if n == nil {
		t.Fatal("$1 missing")
	}
	if err := node.Set(n, "name", "李四"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got, _ := node.Get[string](tbl.Node(), "$1.name"); got != "李四" {
		t.Errorf("$1.name = %q", got)
	}
}

func TestPredicateFilter(t *testing.T) {
	tbl := newTable(t, "students")
	for _, d := range []string{
		`{"name":"a","age":10}`,
		`{"name":"b","age":15}`,
		`{"name":"c","age":20}`,
	} {
		if _, err := tbl.Insert(d); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	got := tbl.Filter(predicate.Ge("age", 15))
	if len(got) != 2 {
		t.Fatalf("filter hits = %d", len(got))
	}
	// insertion order
	if age, _ := node.Get[int](got[0], "age"); age != 15 {
		t.Errorf("first hit age = %d", age)
	}
	if age, _ := node.Get[int](got[1], "age"); age != 20 {
		t.Errorf("second hit age = %d", age)
	}
}

func TestSetClonesForIndexes(t *testing.T) {
	tbl := newTable(t, "students")
	if err := tbl.AddIndex("age", false, "age"); err != nil {
		t.Fatalf("AddIndex: %v", err)
	}
	doc, err := tbl.Insert(`{"name":"a","age":10}`)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	id, _ := node.Get[string](doc, "_id")
	if err := Set(tbl, id, "age", 11); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if docs, _ := tbl.Find("age", 10); len(docs) != 0 {
		t.Error("old index entry survived")
	}
	docs, err := tbl.Find("age", 11)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(docs) != 1 || docs[0] != doc {
		t.Errorf("Find(11) = %v", docs)
	}
}

func TestUpdatePreservesID(t *testing.T) {
	tbl := newTable(t, "students")
	doc, _ := tbl.Insert(`{"name":"a","age":10}`)
	id, _ := node.Get[string](doc, "_id")

	repl, err := tbl.Update(id, `{"name":"b","age":20}`)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got, _ := node.Get[string](repl, "_id"); got != id {
		t.Errorf("id changed: %q", got)
	}
	if tbl.Get(id) != repl {
		t.Error("primary map not updated")
	}
	if got, _ := node.Get[string](tbl.Node(), "$1.name"); got != "b" {
		t.Errorf("$1.name = %q", got)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len = %d", tbl.Len())
	}
}

func TestDelete(t *testing.T) {
	tbl := newTable(t, "students")
	if err := tbl.AddIndex("name", false, "name"); err != nil {
		t.Fatalf("AddIndex: %v", err)
	}
	d1, _ := tbl.Insert(`{"name":"a"}`)
	d2, _ := tbl.Insert(`{"name":"b"}`)
	id1, _ := node.Get[string](d1, "_id")

	if err := tbl.Delete(id1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if tbl.Get(id1) != nil {
		t.Error("deleted id still resolves")
	}
	if tbl.Len() != 1 {
		t.Errorf("Len = %d", tbl.Len())
	}
	if docs, _ := tbl.Find("name", "a"); len(docs) != 0 {
		t.Error("index entry survived delete")
	}
	if got, _ := node.Get[string](tbl.Node(), "$1.name"); got != "b" {
		t.Errorf("remaining record = %q", got)
	}
	if err := tbl.DeleteNode(d2); err != nil {
		t.Fatalf("DeleteNode: %v", err)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len = %d", tbl.Len())
	}
	if err := tbl.Delete("no-such-id"); err == nil {
		t.Fatal("deleting an unknown id must fail")
	}
}

func TestValueArrayMode(t *testing.T) {
	tbl := newTable(t, "nums")
	if err := InsertValues(tbl, 1, 2, 3); err != nil {
		t.Fatalf("InsertValues: %v", err)
	}
	if tbl.Len() != 3 {
		t.Errorf("Len = %d", tbl.Len())
	}
	if got, ok := At[int](tbl, 2); !ok || got != 2 {
		t.Errorf("At(2) = %d ok=%v", got, ok)
	}
	// scalar tables cannot take documents or indexes
	if _, err := tbl.Insert(`{"a":1}`); err == nil {
		t.Fatal("document insert into scalar table must fail")
	}
	if err := tbl.AddIndex("x", false, "a"); err == nil {
		t.Fatal("index on scalar table must fail")
	}
	if err := DeleteValue(tbl, 2); err != nil {
		t.Fatalf("DeleteValue: %v", err)
	}
	if got, _ := At[int](tbl, 2); got != 3 {
		t.Errorf("after delete At(2) = %d", got)
	}
}

func TestRenderCache(t *testing.T) {
	tbl := newTable(t, "students")
	doc, _ := tbl.Insert(`{"name":"a"}`)
	id, _ := node.Get[string](doc, "_id")

	first, ok := tbl.JSON(id)
	if !ok || first == "" {
		t.Fatalf("JSON = %q ok=%v", first, ok)
	}
	if again, _ := tbl.JSON(id); again != first {
		t.Error("render not stable")
	}
	if err := Set(tbl, id, "name", "b"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	after, _ := tbl.JSON(id)
	if after == first {
		t.Error("stale render after mutation")
	}
	if _, ok := tbl.JSON("ghost"); ok {
		t.Error("unknown id rendered")
	}
}
