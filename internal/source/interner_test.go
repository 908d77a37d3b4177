package source

import (
	"fmt"
	"sync"
	"testing"
)

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// NoStringID зарезервирован для пустой строки
	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID lookup = %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("hello")
	if id1 == NoStringID {
		t.Fatal("Intern returned NoStringID for a non-empty string")
	}
	if id2 := interner.Intern("hello"); id1 != id2 {
		t.Errorf("same string interned twice: %d != %d", id1, id2)
	}
	if s := interner.MustLookup(id1); s != "hello" {
		t.Errorf("MustLookup = %q", s)
	}
	if id3 := interner.Intern("world"); id3 == id1 {
		t.Error("different strings share an id")
	}
	if interner.Len() != 3 {
		t.Errorf("Len = %d, want 3", interner.Len())
	}
	if interner.Has(StringID(9999)) {
		t.Error("Has reported an unknown id")
	}
	if snap := interner.Snapshot(); len(snap) != 3 || snap[1] != "hello" {
		t.Errorf("Snapshot = %v", snap)
	}
}

func TestInternerMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLookup did not panic on an unknown id")
		}
	}()
	NewInterner().MustLookup(StringID(42))
}

func TestInternerConcurrent(t *testing.T) {
	interner := NewInterner()
	const workers = 8
	ids := make([][]StringID, workers)

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				ids[w] = append(ids[w], interner.Intern(fmt.Sprintf("s%d", i)))
			}
		}()
	}
	wg.Wait()

	for w := 1; w < workers; w++ {
		for i := range ids[0] {
			if ids[w][i] != ids[0][i] {
				t.Fatalf("worker %d got id %d for s%d, worker 0 got %d", w, ids[w][i], i, ids[0][i])
			}
		}
	}
	if interner.Len() != 101 {
		t.Errorf("Len = %d, want 101", interner.Len())
	}
}
