package source

import (
	"testing"
)

func TestSpan_IsDummy(t *testing.T) {
	if !NoSpan.IsDummy() {
		t.Fatal("NoSpan must be dummy")
	}
	if (Span{File: 1}).IsDummy() {
		t.Fatal("span with a file is not dummy")
	}
	if NoSpan.String() != "<unknown>" {
		t.Errorf("NoSpan.String() = %q", NoSpan.String())
	}
	if got := (Span{File: 2, Start: 3, End: 7}).String(); got != "2:3-7" {
		t.Errorf("String() = %q, want 2:3-7", got)
	}
}

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "overlapping",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 5, End: 15},
			expected: Span{File: 1, Start: 5, End: 20},
		},
		{
			name:     "disjoint",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "different files keep receiver",
			a:        Span{File: 1, Start: 10, End: 20},
			b:        Span{File: 2, Start: 0, End: 50},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "dummy receiver adopts other",
			a:        NoSpan,
			b:        Span{File: 3, Start: 1, End: 2},
			expected: Span{File: 3, Start: 1, End: 2},
		},
		{
			name:     "dummy other is ignored",
			a:        Span{File: 3, Start: 1, End: 2},
			b:        NoSpan,
			expected: Span{File: 3, Start: 1, End: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{File: 1, Start: 0, End: 100}
	if !outer.Contains(Span{File: 1, Start: 10, End: 100}) {
		t.Error("expected containment")
	}
	if outer.Contains(Span{File: 1, Start: 10, End: 101}) {
		t.Error("end overflow must not be contained")
	}
	if outer.Contains(Span{File: 2, Start: 10, End: 20}) {
		t.Error("other file must not be contained")
	}
}
