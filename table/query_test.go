package table

import (
	"errors"
	"strconv"
	"testing"

	"JsonDB/node"
)

func numericCmp(a, b string) int {
	ai, _ := strconv.Atoi(a)
	bi, _ := strconv.Atoi(b)
	return ai - bi
}

func TestMultiIndexRange(t *testing.T) {
	tbl := newTable(t, "students")
	if err := tbl.AddIndexCmp("age", false, numericCmp, nil, "age"); err != nil {
		t.Fatalf("AddIndexCmp: %v", err)
	}
	for _, age := range []int{10, 12, 15, 20, 25} {
		if _, err := tbl.Insert(`{"age":` + strconv.Itoa(age) + `}`); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	docs, err := tbl.RangeFind("age", 12, 20, nil)
	if err != nil {
		t.Fatalf("RangeFind: %v", err)
	}
	ages := make([]int, 0, len(docs))
	for _, d := range docs {
		age, _ := node.Get[int](d, "age")
		ages = append(ages, age)
	}
	if len(ages) != 3 || ages[0] != 12 || ages[1] != 15 || ages[2] != 20 {
		t.Errorf("ages = %v", ages)
	}
}

func TestCompositePrefixIndex(t *testing.T) {
	tbl := newTable(t, "students")
	if err := tbl.AddIndex("name_sex", false, "name", "sex"); err != nil {
		t.Fatalf("AddIndex: %v", err)
	}
	if _, err := tbl.Insert(`{"name":"张三1","sex":"male"}`); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := tbl.Insert(`{"name":"张三2","sex":"female"}`); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	docs, err := tbl.LeftFind("name_sex", "张三")
	if err != nil {
		t.Fatalf("LeftFind: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("LeftFind(张三) = %d docs", len(docs))
	}
	docs, _ = tbl.LeftFind("name_sex", "张三1")
	if len(docs) != 1 {
		t.Fatalf("LeftFind(张三1) = %d docs", len(docs))
	}
	if name, _ := node.Get[string](docs[0], "name"); name != "张三1" {
		t.Errorf("hit name = %q", name)
	}
}

func TestUniqueIndexFindOne(t *testing.T) {
	tbl := newTable(t, "students")
	if err := tbl.AddIndex("name", true, "name"); err != nil {
		t.Fatalf("AddIndex: %v", err)
	}
	d, _ := tbl.Insert(`{"name":"张三","age":1}`)
	hit, err := tbl.FindOne("name", "张三")
	if err != nil {
		t.Fatalf("FindOne: %v", err)
	}
	if hit != d {
		t.Error("FindOne returned wrong doc")
	}
	miss, err := tbl.FindOne("name", "李四")
	if err != nil {
		t.Fatalf("FindOne miss: %v", err)
	}
	if miss != nil {
		t.Error("FindOne miss returned a doc")
	}
}

func TestAddIndexBackPopulates(t *testing.T) {
	tbl := newTable(t, "students")
	for _, d := range []string{`{"name":"a"}`, `{"name":"b"}`} {
		if _, err := tbl.Insert(d); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	// index added after the inserts must still answer
	if err := tbl.AddIndex("name", false, "name"); err != nil {
		t.Fatalf("AddIndex: %v", err)
	}
	docs, err := tbl.Find("name", "a")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if len(docs) != 1 {
		t.Errorf("Find(a) = %d docs", len(docs))
	}
}

func TestUnknownIndex(t *testing.T) {
	tbl := newTable(t, "students")
	if _, err := tbl.Find("ghost", 1); !errors.Is(err, ErrUnknownIndex) {
		t.Errorf("Find err = %v", err)
	}
	if _, err := tbl.LeftFind("ghost", 1); !errors.Is(err, ErrUnknownIndex) {
		t.Errorf("LeftFind err = %v", err)
	}
	if _, err := tbl.RangeFind("ghost", 1, 2, nil); !errors.Is(err, ErrUnknownIndex) {
		t.Errorf("RangeFind err = %v", err)
	}
}

func TestDuplicateIndexName(t *testing.T) {
	tbl := newTable(t, "students")
	if err := tbl.AddIndex("name", false, "name"); err != nil {
		t.Fatalf("AddIndex: %v", err)
	}
	if err := tbl.AddIndex("name", false, "name"); err == nil {
		t.Fatal("duplicate index name must fail")
	}
}
