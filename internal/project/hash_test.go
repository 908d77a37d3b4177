package project

import (
	"crypto/sha256"
	"testing"
)

func TestCombine(t *testing.T) {
	content := Digest(sha256.Sum256([]byte("[[struct]]")))

	a := Combine(content, []byte("ab"), []byte("c"))
	b := Combine(content, []byte("a"), []byte("bc"))
	if a == b {
		t.Fatal("parts must be length-prefixed")
	}
	if a != Combine(content, []byte("ab"), []byte("c")) {
		t.Fatal("Combine is not deterministic")
	}
	if Combine(content) == content {
		t.Fatal("Combine without parts should still rehash")
	}
	if a.IsZero() || !(Digest{}).IsZero() {
		t.Fatal("IsZero")
	}
	if len(a.String()) != 64 {
		t.Fatalf("String() = %q", a.String())
	}
}
