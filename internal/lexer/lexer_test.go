package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"postfix/internal/diag"
	"postfix/internal/lexer"
	"postfix/internal/source"
	"postfix/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.rs", []byte(input)))
	bag := diag.NewBag(32)
	return lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

// describe сворачивает лексемы в компактную строку для сравнения
func describe(lexemes []lexer.Lexeme) string {
	parts := make([]string, 0, len(lexemes))
	for _, l := range lexemes {
		switch l.Kind {
		case lexer.LexPunct:
			sp := ""
			if l.Spacing == token.Joint {
				sp = "+"
			}
			parts = append(parts, fmt.Sprintf("P(%c%s)", l.Char, sp))
		case lexer.LexOpen, lexer.LexClose:
			parts = append(parts, fmt.Sprintf("%s(%s)", l.Kind, l.Delim))
		default:
			parts = append(parts, fmt.Sprintf("%s(%s)", l.Kind, l.Text))
		}
	}
	return strings.Join(parts, " ")
}

func expectLexemes(t *testing.T, input, want string) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	got := describe(lx.All())
	if got != want {
		t.Errorf("lex %q:\n got: %s\nwant: %s", input, got, want)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics for %q: %v", input, bag.Items())
	}
}

func TestIdentifiers(t *testing.T) {
	tests := []struct{ input, want string }{
		{"foo", "Ident(foo)"},
		{"_bar x123", "Ident(_bar) Ident(x123)"},
		{"_", "Ident(_)"},
		{"r#match", "Ident(r#match)"},
		{"self Self", "Ident(self) Ident(Self)"},
		{"привет", "Ident(привет)"},
		// e + combining acute → NFC é
		{"caf\u0065\u0301", "Ident(caf\u00e9)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) { expectLexemes(t, tt.input, tt.want) })
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct{ input, want string }{
		{"0 42 1_000", "Literal(0) Literal(42) Literal(1_000)"},
		{"0xFF_u8 0b1010 0o17", "Literal(0xFF_u8) Literal(0b1010) Literal(0o17)"},
		{"1.5 2.5e-3 1e10f64", "Literal(1.5) Literal(2.5e-3) Literal(1e10f64)"},
		{"3usize 1.0f32", "Literal(3usize) Literal(1.0f32)"},
		{"1.", "Literal(1.)"},
		{"1.foo", "Literal(1) P(.) Ident(foo)"},
		{"0..10", "Literal(0) P(.+) P(.) Literal(10)"},
		{"t.0", "Ident(t) P(.) Literal(0)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) { expectLexemes(t, tt.input, tt.want) })
	}
}

func TestStringsAndChars(t *testing.T) {
	tests := []struct{ input, want string }{
		{`"hello"`, `Literal("hello")`},
		{`"a\"b"`, `Literal("a\"b")`},
		{"\"multi\nline\"", "Literal(\"multi\nline\")"},
		{`r"raw\n"`, `Literal(r"raw\n")`},
		{`r#"has "quotes""#`, `Literal(r#"has "quotes""#)`},
		{`b"bytes" br"raw" c"cstr"`, `Literal(b"bytes") Literal(br"raw") Literal(c"cstr")`},
		{`'a' '\n' '\'' '\u{1F600}' b'x'`, `Literal('a') Literal('\n') Literal('\'') Literal('\u{1F600}') Literal(b'x')`},
		{`'я'`, `Literal('я')`},
		{"'a: loop", "P('+) Ident(a) P(:) Ident(loop)"},
		{"&'static str", "P(&+) P('+) Ident(static) Ident(str)"},
		{`"s"suffix`, `Literal("s"suffix)`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) { expectLexemes(t, tt.input, tt.want) })
	}
}

func TestPunctSpacing(t *testing.T) {
	tests := []struct{ input, want string }{
		{"x.f!()", "Ident(x) P(.) Ident(f) P(!) Open(Paren) Close(Paren)"},
		{"a && b", "Ident(a) P(&+) P(&) Ident(b)"},
		{"a::b", "Ident(a) P(:+) P(:) Ident(b)"},
		{"x?.y", "Ident(x) P(?+) P(.) Ident(y)"},
		{"a != b", "Ident(a) P(!+) P(=) Ident(b)"},
		{"->", "P(-+) P(>)"},
		{"#[a]", "P(#) Open(Bracket) Ident(a) Close(Bracket)"},
		{"x! // c\n()", "Ident(x) P(!) Open(Paren) Close(Paren)"},
		{"x!/* c */()", "Ident(x) P(!) Open(Paren) Close(Paren)"},
		{"$x @ ~", "P($) Ident(x) P(@) P(~)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) { expectLexemes(t, tt.input, tt.want) })
	}
}

func TestTriviaSkipped(t *testing.T) {
	expectLexemes(t, "a // line\n/* block /* nested */ */ b /// doc\n//! inner\nc", "Ident(a) Ident(b) Ident(c)")
}

func TestSpans(t *testing.T) {
	lx, _ := makeTestLexer("ab  \"c\"")
	all := lx.All()
	if all[0].Span.Start != 0 || all[0].Span.End != 2 {
		t.Errorf("ident span = %v", all[0].Span)
	}
	if all[1].Span.Start != 4 || all[1].Span.End != 7 {
		t.Errorf("string span = %v", all[1].Span)
	}
	if next := lx.Next(); next.Kind != lexer.LexEOF {
		t.Errorf("expected EOF after All, got %v", next.Kind)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("Next = %q", n.Text)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{`r#"open"`, diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"'a", diag.Code(0)},
		{"'", diag.LexUnterminatedChar},
		{"x € y", diag.LexUnknownChar},
		{"0x", diag.LexBadNumber},
		{"a \\ b", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			lx.All()
			if tt.code == 0 {
				if bag.Len() != 0 {
					t.Fatalf("unexpected diagnostics: %v", bag.Items())
				}
				return
			}
			if bag.Len() == 0 || bag.Items()[0].Code != tt.code {
				t.Fatalf("diagnostics = %v, want %s", bag.Items(), tt.code.ID())
			}
		})
	}
}

func TestTokenTooLong(t *testing.T) {
	content := strings.Repeat("a", 1<<20+1)
	lx, bag := makeTestLexer(content)
	if l := lx.Next(); l.Kind != lexer.LexInvalid {
		t.Fatalf("expected invalid lexeme, got %v", l.Kind)
	}
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexTokenTooLong {
		t.Fatalf("expected LexTokenTooLong, got %v", bag.Items())
	}
}

func TestOnlyTrivia(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"  \n\t", true},
		{" // c\n ", true},
		{"/* a /* b */ c */", true},
		{"/* open", false},
		{" x ", false},
		{" / ", false},
	}
	for _, tt := range tests {
		if got := lexer.OnlyTrivia([]byte(tt.text)); got != tt.want {
			t.Errorf("OnlyTrivia(%q) = %v", tt.text, got)
		}
	}
}
