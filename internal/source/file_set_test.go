package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSet_AddAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("gen.toml", []byte("a = 1\nbb = 2\n"))
	if id == NoFileID {
		t.Fatal("AddVirtual returned NoFileID")
	}
	f := fs.Get(id)
	if f == nil || f.Path != "gen.toml" || f.Flags&FileVirtual == 0 {
		t.Fatalf("unexpected file: %+v", f)
	}

	start, end := fs.Resolve(Span{File: id, Start: 6, End: 8})
	if start != (LineCol{Line: 2, Col: 1}) {
		t.Errorf("start = %+v, want 2:1", start)
	}
	if end != (LineCol{Line: 2, Col: 3}) {
		t.Errorf("end = %+v, want 2:3", end)
	}
	if got := fs.Position(Span{File: id, Start: 2, End: 3}); got != "gen.toml:1:3" {
		t.Errorf("Position = %q", got)
	}
}

func TestFileSet_DummySpan(t *testing.T) {
	fs := NewFileSet()
	if fs.Get(NoFileID) != nil {
		t.Error("NoFileID must not resolve to a file")
	}
	if got := fs.Position(NoSpan); got != "<unknown>" {
		t.Errorf("Position(NoSpan) = %q", got)
	}
	start, end := fs.Resolve(NoSpan)
	if start != (LineCol{}) || end != (LineCol{}) {
		t.Errorf("Resolve(NoSpan) = %+v %+v", start, end)
	}
}

func TestFileSet_LoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.toml")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFx = 1\r\ny = 2\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "x = 1\ny = 2\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b", f.Flags)
	}
	if latest, ok := fs.GetLatest(path); !ok || latest != id {
		t.Errorf("GetLatest = %d, %v", latest, ok)
	}
}

func TestFileSet_LoadMissing(t *testing.T) {
	if _, err := NewFileSet().Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for a missing file")
	}
}
