package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"postfix/internal/diag"
	"postfix/internal/lexer"
	"postfix/internal/source"
)

func TestBuildDiagnosticsOutput(t *testing.T) {
	bag, fs := testBag(t)
	bag.Add(diag.New(diag.SevWarning, diag.RewNotFormatted, source.Span{File: 0, Start: 0, End: 3}, "needs rewriting"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		Max:              1,
		IncludeNotes:     true,
	})
	if out.Count != 1 || out.Total != 2 {
		t.Fatalf("count/total = %d/%d, want 1/2", out.Count, out.Total)
	}
	d := out.Diagnostics[0]
	if d.Code != "REW7001" || d.Severity != "ERROR" {
		t.Errorf("unexpected header %+v", d)
	}
	if d.Location.File != "test.rs" || d.Location.StartLine != 1 || d.Location.StartCol != 9 {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "statement starts here" {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "start_line") {
		t.Errorf("positions present without IncludePositions:\n%s", buf.String())
	}

	var decoded DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Count != 1 || decoded.Diagnostics[0].Notes != nil {
		t.Errorf("unexpected output %+v", decoded)
	}
}

func TestTokensOutput(t *testing.T) {
	ts, err := lexer.ParseString("f!(x)")
	if err != nil {
		t.Fatal(err)
	}
	out := BuildTokensOutput(ts, nil)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[1].Kind != "Punct" || out[1].Text != "!" || out[1].Spacing != "Alone" {
		t.Errorf("bang = %+v", out[1])
	}
	if out[2].Delim != "Paren" || len(out[2].Stream) != 1 || out[2].Stream[0].Text != "x" {
		t.Errorf("group = %+v", out[2])
	}
}

func TestTokensPrettyAndDump(t *testing.T) {
	ts, err := lexer.ParseString("a.f!(1)")
	if err != nil {
		t.Fatal(err)
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, ts, nil); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(pretty.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("pretty printed %d lines, want 6:\n%s", len(lines), pretty.String())
	}
	if !strings.HasPrefix(lines[5], "   6:   Literal") {
		t.Errorf("nested token not indented: %q", lines[5])
	}

	var dump bytes.Buffer
	if err := FormatTokensDump(&dump, ts); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dump.String(), `"f"`) {
		t.Errorf("dump lacks identifier text:\n%s", dump.String())
	}
}
