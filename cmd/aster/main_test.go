package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--color=off"}, args...))
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestFmtType(t *testing.T) {
	out, _, err := execute(t, "fmt-type", "Vec< (u8,i32) >", "&mut [u8;4]")
	if err != nil {
		t.Fatalf("fmt-type: %v", err)
	}
	if want := "Vec<(u8, i32)>\n&mut [u8; 4]\n"; out != want {
		t.Fatalf("got %q, want %q", out, want)
	}

	_, errOut, err := execute(t, "fmt-type", "Vec<")
	if err == nil || !strings.Contains(errOut, "error:") {
		t.Fatalf("expected failure, err=%v stderr=%q", err, errOut)
	}
}

func TestGenToOutDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shapes.toml")
	content := "[[struct]]\nname = \"Point\"\nkind = \"tuple\"\n[[struct.field]]\ntype = \"f64\"\n[[struct.field]]\ntype = \"f64\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "out")

	_, errOut, err := execute(t, "gen", "--out", outDir, path)
	if err != nil {
		t.Fatalf("gen: %v\n%s", err, errOut)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "shapes.rs"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "struct Point(f64, f64);\n"; string(data) != want {
		t.Fatalf("got %q, want %q", data, want)
	}
	if !strings.Contains(errOut, "1 manifest(s), 0 failed") {
		t.Fatalf("missing summary: %q", errOut)
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if payload.Tool != "aster" || payload.Version == "" || payload.Schema == 0 {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestGenReportsExcerpt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[[struct]]\nname = \"A\"\ncolour = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, errOut, err := execute(t, "gen", "--timings", "--out", filepath.Join(dir, "out"), path)
	if err == nil {
		t.Fatal("expected gen to fail")
	}
	for _, want := range []string{
		`bad.toml:3:1: error: unknown key "struct.colour"`,
		"3 | colour = 1\n",
		"  | ^",
		"timings " + path + ":",
		"1 manifest(s), 1 failed",
	} {
		if !strings.Contains(errOut, want) {
			t.Errorf("stderr missing %q:\n%s", want, errOut)
		}
	}
}

func TestGenSummaryCountsCachedStructs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	write := func(name, structName string) string {
		path := filepath.Join(dir, name)
		content := "[[struct]]\nname = \"" + structName + "\"\nkind = \"unit\"\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}
	first := write("first.toml", "First")
	second := write("second.toml", "Second")
	out := filepath.Join(dir, "out")

	if _, errOut, err := execute(t, "gen", "--timings=false", "--cache", "--out", out, first); err != nil {
		t.Fatalf("warm-up gen: %v\n%s", err, errOut)
	}
	_, errOut, err := execute(t, "gen", "--timings=false", "--cache", "--out", out, first, second)
	if err != nil {
		t.Fatalf("gen: %v\n%s", err, errOut)
	}
	if want := "2 manifest(s), 0 failed, 2 struct(s), 1 from cache"; !strings.Contains(errOut, want) {
		t.Fatalf("summary missing %q:\n%s", want, errOut)
	}
}
