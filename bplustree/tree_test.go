package bplus

import (
	"math/rand"
	"strconv"
	"testing"
)

func intCmp(a, b int) int { return a - b }

func newIntTree(t *testing.T, order int) *Tree[int, int] {
	t.Helper()
	tree, err := New[int, int](order, intCmp)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tree
}

func TestNewRejectsNilComparator(t *testing.T) {
	if _, err := New[int, int](10, nil); err == nil {
		t.Fatal("nil comparator must be rejected")
	}
}

func TestOrderRounding(t *testing.T) {
	tree, err := New[int, int](11, intCmp)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tree.Order() != 10 {
		t.Errorf("order = %d, want 10", tree.Order())
	}
	tree, _ = New[int, int](0, intCmp)
	if tree.Order() != DefaultOrder {
		t.Errorf("default order = %d", tree.Order())
	}
	tree, _ = New[int, int](3, intCmp)
	if tree.Order() != MinOrder {
		t.Errorf("clamped order = %d", tree.Order())
	}
}

func TestInsertFind(t *testing.T) {
	tree := newIntTree(t, 4)
	for i := 1; i <= 100; i++ {
		tree.Insert(i, i*10)
	}
	if tree.Len() != 100 {
		t.Fatalf("Len = %d", tree.Len())
	}
	for i := 1; i <= 100; i++ {
		v, ok := tree.Find(i)
		if !ok || v != i*10 {
			t.Fatalf("Find(%d) = %d, %v", i, v, ok)
		}
	}
	if _, ok := tree.Find(0); ok {
		t.Error("Find(0) hit")
	}
	if _, ok := tree.Find(101); ok {
		t.Error("Find(101) hit")
	}
	if err := tree.checkInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestInsertOverwrites(t *testing.T) {
	tree := newIntTree(t, 4)
	tree.Insert(1, 10)
	tree.Insert(1, 20)
	if tree.Len() != 1 {
		t.Errorf("Len = %d, want 1", tree.Len())
	}
	if v, _ := tree.Find(1); v != 20 {
		t.Errorf("Find(1) = %d, want 20", v)
	}
}

func TestInsertDescending(t *testing.T) {
	tree := newIntTree(t, 4)
	for i := 100; i >= 1; i-- {
		tree.Insert(i, i)
	}
	if err := tree.checkInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	it := tree.SeekFirst()
	prev := 0
	count := 0
	for it.Valid() {
		if it.Key() <= prev {
			t.Fatalf("iteration out of order at %d", it.Key())
		}
		prev = it.Key()
		count++
		if !it.Next() {
			break
		}
	}
	if count != 100 {
		t.Errorf("iterated %d entries", count)
	}
}

func TestRemoveSimple(t *testing.T) {
	tree := newIntTree(t, 4)
	for i := 1; i <= 20; i++ {
		tree.Insert(i, i)
	}
	for i := 1; i <= 20; i += 2 {
		if !tree.Remove(i) {
			t.Fatalf("Remove(%d) missed", i)
		}
	}
	if tree.Remove(1) {
		t.Error("double remove succeeded")
	}
	for i := 1; i <= 20; i++ {
		_, ok := tree.Find(i)
		if want := i%2 == 0; ok != want {
			t.Errorf("Find(%d) = %v, want %v", i, ok, want)
		}
	}
	if err := tree.checkInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}

func TestRemoveToEmpty(t *testing.T) {
	tree := newIntTree(t, 4)
	for i := 1; i <= 50; i++ {
		tree.Insert(i, i)
	}
	for i := 50; i >= 1; i-- {
		if !tree.Remove(i) {
			t.Fatalf("Remove(%d) missed", i)
		}
	}
	if tree.Len() != 0 {
		t.Errorf("Len = %d", tree.Len())
	}
	if tree.Height() != 0 {
		t.Errorf("Height = %d", tree.Height())
	}
	// tree stays usable
	tree.Insert(7, 7)
	if v, ok := tree.Find(7); !ok || v != 7 {
		t.Errorf("Find after refill = %d, %v", v, ok)
	}
}

// TestChurn is the boundary scenario: M=4, insert 1..1000, remove a
// random half, re-insert, and check Find against a reference set.
// Deterministic under the fixed seed.
func TestChurn(t *testing.T) {
	tree := newIntTree(t, 4)
	rng := rand.New(rand.NewSource(42))

	present := make(map[int]bool)
	for i := 1; i <= 1000; i++ {
		tree.Insert(i, i)
		present[i] = true
	}
	perm := rng.Perm(1000)
	for _, p := range perm[:500] {
		k := p + 1
		if !tree.Remove(k) {
			t.Fatalf("Remove(%d) missed", k)
		}
		delete(present, k)
	}
	if err := tree.checkInvariants(); err != nil {
		t.Fatalf("invariants after removal: %v", err)
	}
	for _, p := range perm[:250] {
		k := p + 1
		tree.Insert(k, k)
		present[k] = true
	}
	if err := tree.checkInvariants(); err != nil {
		t.Fatalf("invariants after re-insert: %v", err)
	}
	for k := 1; k <= 1000; k++ {
		if tree.Contains(k) != present[k] {
			t.Fatalf("Contains(%d) = %v, want %v", k, tree.Contains(k), present[k])
		}
	}
	if tree.Len() != len(present) {
		t.Errorf("Len = %d, want %d", tree.Len(), len(present))
	}
}

func TestHeightBound(t *testing.T) {
	tree := newIntTree(t, 4)
	lastHeight := 0
	for i := 1; i <= 2000; i++ {
		tree.Insert(i, i)
		h := tree.Height()
		if h < lastHeight {
			t.Fatalf("height shrank during inserts: %d -> %d", lastHeight, h)
		}
		lastHeight = h
	}
	// ceil(log_2(2000)) + 1 = 12 for min occupancy M/2 = 2
	if lastHeight > 12 {
		t.Errorf("height %d exceeds bound", lastHeight)
	}
}

func TestStringKeys(t *testing.T) {
	tree, err := New[string, string](10, func(a, b string) int {
		if a < b {
			return -1
		}
		if a > b {
			return 1
		}
		return 0
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 200; i++ {
		k := "key-" + strconv.Itoa(i)
		tree.Insert(k, k)
	}
	if v, ok := tree.Find("key-123"); !ok || v != "key-123" {
		t.Errorf("Find = %q, %v", v, ok)
	}
	if err := tree.checkInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}
