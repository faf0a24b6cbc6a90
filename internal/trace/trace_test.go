package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopeRewrite, false},
		{LevelDetail, ScopeRewrite, true},
		{LevelDetail, ScopeScan, false},
		{LevelDebug, ScopeScan, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelOff, LevelError, LevelPhase, LevelDetail, LevelDebug} {
		got, err := ParseLevel(strings.ToUpper(l.String()))
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamTracerFiltersByScope(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	file := Begin(tr, ScopeFile, "file:a.rs", 0)
	Point(tr, ScopeRewrite, "invocation", "dbg", file.ID(), nil)
	file.WithExtra("invocations", "1").End("ok")

	out := buf.String()
	if strings.Contains(out, "invocation ") {
		t.Errorf("rewrite-scope event leaked at LevelPhase:\n%s", out)
	}
	if !strings.Contains(out, "→ file file:a.rs") || !strings.Contains(out, "← file file:a.rs (ok) {invocations=1}") {
		t.Errorf("missing span events:\n%s", out)
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeScan, "scan.step", "include", 7, map[string]string{"token": "x"})

	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["scope"] != "scan" || ev["kind"] != "point" || ev["parent_id"] != float64(7) {
		t.Errorf("unexpected event %v", ev)
	}
}

func TestRingWrapsAndDumps(t *testing.T) {
	r := NewRingTracer(2, LevelError)
	// при LevelError Point ничего не шлёт, пишем в кольцо напрямую
	for _, name := range []string{"a", "b", "c"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot = %+v", snap)
	}

	r.Emit(&Event{Kind: KindPoint, Scope: ScopeScan, Name: "scan"})
	if got := r.Snapshot(); got[1].Name != "c" {
		t.Errorf("scan event stored below LevelDebug: %+v", got)
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestStreamTracerReportsWriteError(t *testing.T) {
	tr := NewStreamTracer(failWriter{}, LevelPhase, FormatText)
	Begin(tr, ScopeDriver, "run", 0).End("")
	if err := tr.Flush(); err == nil || err.Error() != "disk full" {
		t.Fatalf("Flush() = %v", err)
	}
}

func TestMultiAndFindRing(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelPhase)
	m := NewMultiTracer(LevelPhase, NewStreamTracer(&buf, LevelPhase, FormatText), ring)

	Begin(m, ScopeDriver, "run", 0).End("")
	if len(ring.Snapshot()) != 2 || buf.Len() == 0 {
		t.Fatalf("multi did not fan out: ring=%d stream=%q", len(ring.Snapshot()), buf.String())
	}
	if FindRing(m) != ring {
		t.Error("FindRing did not find the ring")
	}
	if FindRing(Nop) != nil {
		t.Error("FindRing(Nop) != nil")
	}
}

func TestNewConfig(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("LevelOff: %v, enabled=%v", err, tr.Enabled())
	}

	var buf bytes.Buffer
	tr, err = New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if FindRing(tr) == nil {
		t.Error("ModeBoth without ring")
	}

	if _, err := New(Config{Level: LevelPhase, Mode: 42}); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context should give Nop")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx := WithParent(WithTracer(context.Background(), ring), 42)
	if FromContext(ctx) != ring || ParentSpan(ctx) != 42 {
		t.Error("context lost tracer or parent")
	}
}

func TestHeartbeat(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Error("heartbeat started for disabled tracer")
	}
	ring := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	if len(ring.Snapshot()) == 0 {
		t.Fatal("no heartbeat recorded")
	}
}
