package printer_test

import (
	"bytes"
	"testing"

	"postfix/internal/lexer"
	"postfix/internal/printer"
	"postfix/internal/rewrite"
	"postfix/internal/source"
	"postfix/internal/token"
)

func parse(t *testing.T, src string) (token.Stream, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rs", []byte(src)))
	return lexer.ParseFile(file, lexer.Options{}), fs
}

func TestCompact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo(); dbg!(bar, 1);", "foo(); dbg!(bar, 1);"},
		{"if cond { a } else { b }", "if cond { a } else { b }"},
		{"#[inline] fn f() {}", "#[inline] fn f() {}"},
		{"0..10", "0..10"},
		{"a::b::c", "a::b::c"},
		{"fn f(x: u32) {}", "fn f(x: u32) {}"},
		{"a - -b", "a - -b"},
		{"x? + 1", "x? + 1"},
		{"arr[0]", "arr[0]"},
		{"foo   (  a ,b )", "foo(a, b)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, _ := parse(t, tt.in)
			if got := printer.Print(ts, printer.Options{}); got != tt.want {
				t.Fatalf("Print(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompactRewritten(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"x.f!()", "f!(x)"},
		{"a.b.c!(1)", "c!({a.b}, 1)"},
		{"&mut x.f!()", "&mut f!(x)"},
		{"a.0.f!(&mut y)", "f!({a.0}, &mut y)"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, _ := parse(t, tt.in)
			out, err := rewrite.Rewrite(ts)
			if err != nil {
				t.Fatalf("Rewrite(%q): %v", tt.in, err)
			}
			if got := printer.Print(out, printer.Options{}); got != tt.want {
				t.Fatalf("Print = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutUnchanged(t *testing.T) {
	src := "// lead\n\nfn f() { a /* c */ + b }\n\n// tail\n"
	ts, fs := parse(t, src)
	got := printer.Print(ts, printer.Options{Mode: printer.Layout, Files: fs})
	if got != src {
		t.Fatalf("Print = %q, want %q", got, src)
	}
}

func TestLayoutRewritten(t *testing.T) {
	src := "// header\nfn main() {\n    let v = x.dbg!(); // note\n    foo(a)\n        .map(|v| v + 1)\n        .dbg!();\n}\n"
	want := "// header\nfn main() {\n    let v = dbg!(x); // note\n    dbg!({foo(a)\n        .map(|v| v + 1)});\n}\n"

	ts, fs := parse(t, src)
	out, err := rewrite.Rewrite(ts)
	if err != nil {
		t.Fatal(err)
	}
	got := printer.Print(out, printer.Options{Mode: printer.Layout, Files: fs})
	if got != want {
		t.Fatalf("Print =\n%s\nwant\n%s", got, want)
	}
}

func TestLayoutWithoutFilesFallsBack(t *testing.T) {
	ts, _ := parse(t, "a  +  b")
	if got := printer.Print(ts, printer.Options{Mode: printer.Layout}); got != "a + b" {
		t.Fatalf("Print = %q", got)
	}
}

func TestFprint(t *testing.T) {
	ts, _ := parse(t, "x.f!(1)")
	out, err := rewrite.Rewrite(ts)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, out, printer.Options{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "f!(x, 1)" {
		t.Fatalf("Fprint wrote %q", buf.String())
	}
}

func TestParseMode(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want printer.Mode
		ok   bool
	}{
		{"compact", printer.Compact, true},
		{"Layout", printer.Layout, true},
		{"", printer.Compact, true},
		{"pretty", printer.Compact, false},
	} {
		got, ok := printer.ParseMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, ok)
		}
	}
	if printer.Layout.String() != "layout" {
		t.Errorf("Layout.String() = %q", printer.Layout.String())
	}
}
