package token

import (
	"testing"

	"postfix/internal/source"
)

func TestStreamEqualIgnoresSpans(t *testing.T) {
	a := Stream{
		NewIdent("x", source.Span{File: 1, Start: 0, End: 1}),
		NewGroup(Paren, Stream{NewLiteral("1", source.Span{Start: 2, End: 3})}, source.Span{Start: 1, End: 4}),
	}
	b := Stream{
		NewIdent("x", source.Span{}),
		NewGroup(Paren, Stream{NewLiteral("1", source.Span{})}, source.Span{}),
	}
	if !a.Equal(b) {
		t.Fatal("streams that differ only in spans must be equal")
	}
	c := Stream{NewIdent("x", source.Span{}), NewGroup(Bracket, Stream{NewLiteral("1", source.Span{})}, source.Span{})}
	if a.Equal(c) {
		t.Fatal("delimiter mismatch must not be equal")
	}
	if a.Count() != 3 {
		t.Errorf("Count() = %d", a.Count())
	}
}

func TestPunctSpacingMatters(t *testing.T) {
	alone := NewPunct('&', Alone, source.Span{})
	joint := NewPunct('&', Joint, source.Span{})
	if alone.Equal(joint) {
		t.Error("spacing must be compared")
	}
	if !joint.IsPunct('&') || joint.IsAlone('&') {
		t.Error("IsPunct/IsAlone mismatch")
	}
}

func TestKeywordRoles(t *testing.T) {
	tests := []struct {
		text    string
		role    KeywordRole
		operand bool
	}{
		{"foo", NotKeyword, true},
		{"self", KwAtom, true},
		{"true", KwAtom, true},
		{"mut", KwMut, false},
		{"if", KwStop, false},
		{"return", KwStop, false},
		{"If", NotKeyword, true},
	}
	for _, tt := range tests {
		tok := NewIdent(tt.text, source.Span{})
		if got := tok.Keyword(); got != tt.role {
			t.Errorf("%s: role = %d, want %d", tt.text, got, tt.role)
		}
		if got := tok.IsOperand(); got != tt.operand {
			t.Errorf("%s: IsOperand = %v", tt.text, got)
		}
	}
}

func TestDelimiters(t *testing.T) {
	for _, ch := range []byte("([{)]}") {
		d, ok := DelimiterFor(ch)
		if !ok || (d.Open() != ch && d.Close() != ch) {
			t.Errorf("DelimiterFor(%q) = %v", ch, d)
		}
	}
	if _, ok := DelimiterFor('<'); ok {
		t.Error("angle brackets are not delimiters")
	}
	if None.Open() != 0 {
		t.Error("None has no open char")
	}
}
