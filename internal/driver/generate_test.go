package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"aster/internal/astcodec"
	"aster/internal/manifest"
	"aster/internal/source"
	"aster/internal/testkit"
	"aster/internal/trace"
)

func writeManifest(t *testing.T, dir, name, structName string) string {
	t.Helper()
	content := fmt.Sprintf(`[[struct]]
name = %q
pub = true

  [[struct.field]]
  name = "id"
  type = "u64"

  [[struct.field]]
  name = "tags"
  type = "Vec<(String, i32)>"
`, structName)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateOrderAndIDs(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 8 {
		paths = append(paths, writeManifest(t, dir, fmt.Sprintf("m%d.toml", i), fmt.Sprintf("S%d", i)))
	}
	fs := source.NewFileSet()
	results, err := Generate(context.Background(), paths, Options{Jobs: 3, Files: fs})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(results) != len(paths) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if r.Path != paths[i] {
			t.Errorf("result %d path = %s, want %s", i, r.Path, paths[i])
		}
		want := fmt.Sprintf("pub struct S%d {", i)
		if !strings.HasPrefix(string(r.Output), want) {
			t.Errorf("result %d output:\n%s", i, r.Output)
		}
		if err := testkit.CheckIDs(r.Items, r.Nodes); err != nil {
			t.Errorf("result %d: %v", i, err)
		}
		if err := testkit.CheckSpans(r.Items, fs.Get(r.File)); err != nil {
			t.Errorf("result %d: %v", i, err)
		}
	}
}

func TestGeneratePartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeManifest(t, dir, "good.toml", "Good")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[[struct]]\nname = \"9lives\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.toml")

	results, err := Generate(context.Background(), []string{good, bad, missing}, Options{})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if results[0].Err != nil || len(results[0].Output) == 0 {
		t.Fatalf("good manifest failed: %v", results[0].Err)
	}
	var merr *manifest.Error
	if !errors.As(results[1].Err, &merr) || !strings.HasPrefix(merr.Pos, bad+":1:1") {
		t.Fatalf("bad manifest error = %v", results[1].Err)
	}
	if !errors.Is(results[2].Err, os.ErrNotExist) {
		t.Fatalf("missing manifest error = %v", results[2].Err)
	}
	if !errors.Is(err, os.ErrNotExist) || !errors.As(err, &merr) {
		t.Fatalf("joined error lost a cause: %v", err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writeManifest(t, dir, "a.toml", "A"), writeManifest(t, dir, "b.toml", "B")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := Generate(ctx, paths, Options{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	for i, r := range results {
		if r.Path != paths[i] || !errors.Is(r.Err, context.Canceled) || r.Output != nil {
			t.Errorf("result %d = %+v", i, r)
		}
	}
}

func TestGenerateEmitKinds(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "user.toml", "User")
	out := filepath.Join(dir, "out")

	for _, emit := range []Emit{EmitSource, EmitMsgpack, EmitJSON} {
		t.Run(emit.String(), func(t *testing.T) {
			results, err := Generate(context.Background(), []string{path}, Options{Emit: emit, OutDir: out})
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			r := results[0]
			if want := filepath.Join(out, "user"+emit.Ext()); r.OutPath != want {
				t.Fatalf("OutPath = %s, want %s", r.OutPath, want)
			}
			data, err := os.ReadFile(r.OutPath)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(data, r.Output) {
				t.Fatal("file content differs from Result.Output")
			}
			if emit == EmitMsgpack {
				items, err := astcodec.Unmarshal(data)
				if err != nil || len(items) != 1 || items[0].Ident.String() != "User" {
					t.Fatalf("decoded %v, %v", items, err)
				}
			}
		})
	}
}

func TestGenerateOutputClash(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	paths := []string{writeManifest(t, a, "m.toml", "A"), writeManifest(t, b, "m.toml", "B")}
	_, err := Generate(context.Background(), paths, Options{OutDir: t.TempDir()})
	if !errors.Is(err, ErrOutputClash) {
		t.Fatalf("expected ErrOutputClash, got %v", err)
	}
}

func TestGenerateCache(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "c.toml", "Cached")
	cache, err := NewDiskCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	opt := Options{Cache: cache}

	first, err := Generate(context.Background(), []string{path}, opt)
	if err != nil || first[0].Cached {
		t.Fatalf("first run: cached=%v err=%v", first[0].Cached, err)
	}
	second, err := Generate(context.Background(), []string{path}, opt)
	if err != nil || !second[0].Cached {
		t.Fatalf("second run: cached=%v err=%v", second[0].Cached, err)
	}
	if !bytes.Equal(first[0].Output, second[0].Output) || first[0].Nodes != second[0].Nodes {
		t.Fatal("cached output differs")
	}
	if first[0].Structs != 1 || second[0].Structs != 1 {
		t.Fatalf("struct counts = %d fresh, %d cached; want 1 each", first[0].Structs, second[0].Structs)
	}

	opt.Format.AlignFields = true
	third, err := Generate(context.Background(), []string{path}, opt)
	if err != nil || third[0].Cached {
		t.Fatalf("changed options must miss the cache: cached=%v err=%v", third[0].Cached, err)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fourth, err := Generate(context.Background(), []string{path}, Options{Cache: cache})
	if err != nil || fourth[0].Cached {
		t.Fatalf("after DropAll: cached=%v err=%v", fourth[0].Cached, err)
	}
}

func TestGenerateTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "t.toml", "T")
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	if _, err := Generate(ctx, []string{path}, Options{}); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind != trace.KindSpanEnd {
			names = append(names, ev.Kind.String()+":"+ev.Name)
		}
	}
	want := "begin:gen begin:manifest:t.toml begin:load begin:lower begin:assign point:item:T begin:emit"
	if got := strings.Join(names, " "); got != want {
		t.Fatalf("events:\n got %s\nwant %s", got, want)
	}
}

func TestParseEmit(t *testing.T) {
	for in, want := range map[string]Emit{"source": EmitSource, "": EmitSource, "msgpack": EmitMsgpack, "JSON": EmitJSON} {
		got, err := ParseEmit(in)
		if err != nil || got != want {
			t.Errorf("ParseEmit(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseEmit("xml"); err == nil {
		t.Error("expected error")
	}
}

func TestGenerateTimings(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "tm.toml", "Timed")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[[struct]]\nname = \"9lives\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	results, _ := Generate(context.Background(), []string{path, bad}, Options{})
	stages := func(r Result) string {
		var names []string
		for _, s := range r.Timings.Stages {
			names = append(names, s.Name)
		}
		return strings.Join(names, " ")
	}
	if got := stages(results[0]); got != "load lower assign emit" {
		t.Errorf("ok manifest stages = %q", got)
	}
	if got := results[0].Timings.Stages[3].Note; got != "source" {
		t.Errorf("emit note = %q", got)
	}
	if got := stages(results[1]); got != "load lower" {
		t.Errorf("failed manifest stages = %q", got)
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestGenerateProgress(t *testing.T) {
	dir := t.TempDir()
	good := writeManifest(t, dir, "p.toml", "P")
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[[struct]]\nname = \"9lives\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	sink := &recordSink{}
	_, _ = Generate(context.Background(), []string{good, bad}, Options{Jobs: 1, Progress: sink})

	perPath := map[string][]string{}
	for _, ev := range sink.events {
		label := string(ev.Status)
		if ev.Stage != "" {
			label = string(ev.Stage)
		}
		perPath[ev.Path] = append(perPath[ev.Path], label)
	}
	if got := strings.Join(perPath[good], " "); got != "queued load lower assign emit done" {
		t.Errorf("good events = %q", got)
	}
	if got := strings.Join(perPath[bad], " "); got != "queued load lower error" {
		t.Errorf("bad events = %q", got)
	}

	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{Path: "x"})
	if ev := <-ch; ev.Path != "x" {
		t.Errorf("channel sink forwarded %+v", ev)
	}
	ChannelSink{}.OnEvent(Event{})
}
