package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"postfix/internal/diag"
	"postfix/internal/source"
)

func testBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fs.SetBaseDir("/home/user/project")
	id := fs.AddVirtual("/home/user/project/src/test.rs", []byte("let x = a.f!();\n"))

	bag := diag.NewBag(10)
	d := diag.NewError(diag.RewEmptyReceiver, source.Span{File: id, Start: 8, End: 9}, "postfix macro has no receiver").
		WithNote(source.Span{File: id, Start: 0, End: 3}, "statement starts here")
	bag.Add(d)
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := testBag(t)

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.rs:1:9"},
		{"relative", PathModeRelative, "src/test.rs:1:9"},
		{"basename", PathModeBasename, "test.rs:1:9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode})
			out := buf.String()
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected %q in output:\n%s", tt.contains, out)
			}
			if !strings.Contains(out, "ERROR REW7001") {
				t.Errorf("expected severity and code in output:\n%s", out)
			}
		})
	}
}

func TestPrettyLayout(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})

	want := "test.rs:1:9: ERROR REW7001: postfix macro has no receiver\n" +
		"1 | let x = a.f!();\n" +
		"  |         ^\n" +
		"  note: test.rs:1:1: statement starts here\n"
	if got := buf.String(); got != want {
		t.Fatalf("Pretty output mismatch:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotesHidden(t *testing.T) {
	bag, fs := testBag(t)
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyUnknownFile(t *testing.T) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.IOLoadError, source.Span{File: 7}, "cannot read"))
	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if got := buf.String(); got != "ERROR IO4001: cannot read\n" {
		t.Fatalf("got %q", got)
	}
}

func TestUnderline(t *testing.T) {
	tests := []struct {
		line     string
		from, to uint32
		pad      string
		mark     string
	}{
		{"abc", 1, 4, "", "^~~"},
		{"\tx", 2, 3, "\t", "^"},
		{"日本.f!()", 7, 8, "    ", "^"},
		{"ab", 2, 2, " ", "^"},
		{"ab", 9, 12, "  ", "^"},
	}
	for _, tt := range tests {
		pad, mark := underline(tt.line, tt.from, tt.to)
		if pad != tt.pad || mark != tt.mark {
			t.Errorf("underline(%q, %d, %d) = %q, %q; want %q, %q", tt.line, tt.from, tt.to, pad, mark, tt.pad, tt.mark)
		}
	}
}

func TestParsePathMode(t *testing.T) {
	for _, m := range []PathMode{PathModeAuto, PathModeAbsolute, PathModeRelative, PathModeBasename} {
		got, ok := ParsePathMode(m.String())
		if !ok || got != m {
			t.Errorf("ParsePathMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParsePathMode("nope"); ok {
		t.Error("ParsePathMode accepted unknown mode")
	}
}
