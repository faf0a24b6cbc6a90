package scan_test

import (
	"errors"
	"testing"

	"postfix/internal/lexer"
	"postfix/internal/scan"
	"postfix/internal/token"
)

func mustParse(t *testing.T, src string) token.Stream {
	t.Helper()
	ts, err := lexer.ParseString(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return ts
}

func TestExprLen(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string // the receiver tokens
	}{
		{"ident", "x", "x"},
		{"literal", `"hello"`, `"hello"`},
		{"after let", "let y = x", "x"},
		{"method chain", "a.b().c", "a.b().c"},
		{"path call", "Default::default()", "Default::default()"},
		{"try operator", "foo()?", "foo()?"},
		{"index", "arr[0]", "arr[0]"},
		{"array literal", "[0, 1, 2,]", "[0, 1, 2,]"},
		{"paren", "(a + b)", "(a + b)"},
		{"binary plus", "a + b", "b"},
		{"binary minus", "6 - 3", "3"},
		{"binary minus before group", "0 -(0)", "(0)"},
		{"binary and", "a && b", "b"},
		{"binary then unary", "a - -b", "-b"},
		{"unary after and-and", "a && &b", "&b"},
		{"ref mut group", "&mut ()", "&mut ()"},
		{"ref mut ident", "&mut X", "X"},
		{"double ref joint", "&&(0)", "&&(0)"},
		{"double ref spaced", "& &(0)", "& &(0)"},
		{"ref in tuple", "0, &()", "&()"},
		{"deref", "*x", "*x"},
		{"prefix after fn body", "fn _foo() {} &-0", "&-0"},
		{"prefix after if block", "if false {} &-0", "&-0"},
		{"negation excluded", "!x", "x"},
		{"negation after keyword", "return !x", "x"},
		{"macro call", "vec![1, 2]", "vec![1, 2]"},
		{"macro braces", "dbg!{ 42 }", "dbg!{ 42 }"},
		{"block", "{ 42 }", "{ 42 }"},
		{"block after comma", `0, { "hello" }`, `{ "hello" }`},
		{"block statement", "foo(); { 1 }", "{ 1 }"},
		{"if else", "if cond { a } else { b }", "if cond { a } else { b }"},
		{"if else method", "if cond { a } else { b }.to_string()", "if cond { a } else { b }.to_string()"},
		{"else if chain", "if a { 1 } else if b { 2 } else { 3 }", "if a { 1 } else if b { 2 } else { 3 }"},
		{"if if", "if if c { true } else { false } { 1 } else { 2 }", "if if c { true } else { false } { 1 } else { 2 }"},
		{"if call condition", "let v = if f(x) { 1 } else { 2 }", "if f(x) { 1 } else { 2 }"},
		{"match", "match x { _ => 1 }", "match x { _ => 1 }"},
		{"match after assign", "let y = match x.y { _ => 1 }", "match x.y { _ => 1 }"},
		{"inside if condition", "if hello", "hello"},
		{"struct literal at start", "Foo { a: 1 }", "Foo { a: 1 }"},
		{"after fn body", "fn f() {} x", "x"},
		{"two words", "foo bar", "bar"},
		{"range", "0..x", "x"},
		{"not equal", "a != b", "b"},
		{"not equal call", "if a != b.c()", "b.c()"},
		{"inclusive range", "0..=x", "x"},
		{"self", "self.items", "self.items"},
		{"tuple field", "t.0", "t.0"},
		{"attribute", "#[inline] x", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := mustParse(t, tt.prefix)
			n, err := scan.ExprLen(toks)
			if err != nil {
				t.Fatalf("ExprLen(%q): %v", tt.prefix, err)
			}
			if n > len(toks) {
				t.Fatalf("length %d exceeds input %d", n, len(toks))
			}
			want := mustParse(t, tt.want)
			if got := toks[len(toks)-n:]; !got.Equal(want) {
				t.Fatalf("ExprLen(%q) = %d tokens, want receiver %q", tt.prefix, n, tt.want)
			}
		})
	}
}

func TestExprLenEmpty(t *testing.T) {
	tests := []string{"", "let x =", "a,", "return", "foo;"}
	for _, src := range tests {
		n, err := scan.ExprLen(mustParse(t, src))
		if err != nil || n != 0 {
			t.Errorf("ExprLen(%q) = %d, %v; want 0, nil", src, n, err)
		}
	}
}

func TestExprLenUnsupported(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"closure", "v.map(|x| x) |y| { y }"},
		{"eq eq condition", "if a == b { 1 }"},
		{"if let", "if let Some(x) = y { x }"},
		{"struct after assign", "let p = Point { x: 1 }"},
		{"bang after punct", "x! ."},
		{"lifetime", "'a"},
		{"hash", "x #"},
		{"dollar", "$x"},
		{"else without block", "else { 1 }"},
		{"while", "while c { 1 }"},
		{"loop at start", "loop { break 1 }"},
		{"unsafe block", "let y = unsafe { x }"},
		{"async block", "let y = async { 1 }"},
		{"return block", "return { 1 }"},
		{"block after assign", "let y = { 42 }"},
		{"block after plus", "x = a + { 42 }"},
		{"block after ref", "let y = &{ 42 }"},
		{"block after deref", "*{ p }"},
		{"block after minus", "0 - { 1 }"},
		{"block after less", "a < { b }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := mustParse(t, tt.prefix)
			_, err := scan.ExprLen(toks)
			if !errors.Is(err, scan.ErrUnsupported) {
				t.Fatalf("ExprLen(%q) err = %v, want ErrUnsupported", tt.prefix, err)
			}
			var se *scan.Error
			if !errors.As(err, &se) || se.Kind != scan.KindUnsupported {
				t.Fatalf("expected *scan.Error, got %T", err)
			}
		})
	}
}

func TestInvisibleGroupUnsupported(t *testing.T) {
	toks := token.Stream{token.NewGroup(token.None, token.Stream{token.NewIdent("x", source0)}, source0)}
	if _, err := scan.ExprLen(toks); !errors.Is(err, scan.ErrUnsupported) {
		t.Fatalf("err = %v", err)
	}
}

func TestDepthLimit(t *testing.T) {
	// if if if ... c {} {} ...: каждый уровень - отдельный под-скан
	src := "c"
	for range 8 {
		src = "if " + src + " { 1 } else { 2 }"
	}
	toks := mustParse(t, src)

	s := scan.New(scan.Options{MaxDepth: 3})
	_, err := s.ExprLen(toks)
	if !errors.Is(err, scan.ErrDepthExceeded) {
		t.Fatalf("err = %v, want ErrDepthExceeded", err)
	}

	n, err := scan.New(scan.Options{MaxDepth: 16}).ExprLen(toks)
	if err != nil || n != len(toks) {
		t.Fatalf("ExprLen = %d, %v; want %d", n, err, len(toks))
	}
}

func TestHookSeesDecisions(t *testing.T) {
	var steps []scan.Step
	s := scan.New(scan.Options{Hook: func(st scan.Step) { steps = append(steps, st) }})
	n, err := s.ExprLen(mustParse(t, "a + if c { 1 } else { 2 }"))
	if err != nil || n != 5 {
		t.Fatalf("ExprLen = %d, %v", n, err)
	}
	seen := map[scan.Decision]bool{}
	maxDepth := 0
	for _, st := range steps {
		seen[st.Decision] = true
		maxDepth = max(maxDepth, st.Depth)
	}
	for _, d := range []scan.Decision{scan.BraceChain, scan.SubScan, scan.BraceHead} {
		if !seen[d] {
			t.Errorf("decision %s not reported", d)
		}
	}
	if maxDepth != 1 {
		t.Errorf("max depth = %d, want 1", maxDepth)
	}
}
