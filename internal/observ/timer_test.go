package observ

import (
	"bytes"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	load := tm.Begin("load")
	tm.End(load, "2 structs")
	emit := tm.Begin("emit")
	tm.End(emit, "")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Stages) != 2 {
		t.Fatalf("expected 2 stages, got %d", len(r.Stages))
	}
	if r.Stages[0].Name != "load" || r.Stages[0].Note != "2 structs" {
		t.Errorf("unexpected first stage %+v", r.Stages[0])
	}
	if sum := r.Stages[0].DurationMS + r.Stages[1].DurationMS; r.TotalMS != sum {
		t.Errorf("total %v != sum %v", r.TotalMS, sum)
	}

	var buf bytes.Buffer
	if err := r.Print(&buf, "a.toml"); err != nil {
		t.Fatalf("Print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"timings a.toml:\n", "  load ", "// 2 structs", "  total "} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	var nilTimer *Timer
	if r := nilTimer.Report(); r.Stages != nil || r.TotalMS != 0 {
		t.Errorf("nil timer report = %+v", r)
	}
	if r := NewTimer().Report(); r.Stages != nil {
		t.Errorf("empty timer report = %+v", r)
	}
}
