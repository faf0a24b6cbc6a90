package lexer

import (
	"postfix/internal/source"
	"postfix/internal/token"
)

// LexKind is the kind of a flat lexeme, before brackets are matched.
type LexKind uint8

const (
	LexEOF LexKind = iota
	LexIdent
	LexLiteral
	LexPunct
	LexOpen
	LexClose
	LexInvalid
)

func (k LexKind) String() string {
	switch k {
	case LexEOF:
		return "EOF"
	case LexIdent:
		return "Ident"
	case LexLiteral:
		return "Literal"
	case LexPunct:
		return "Punct"
	case LexOpen:
		return "Open"
	case LexClose:
		return "Close"
	default:
		return "Invalid"
	}
}

// Lexeme is one flat lexer output item.
type Lexeme struct {
	Kind    LexKind
	Span    source.Span
	Text    string          // ident (NFC) / literal as written
	Char    byte            // punct
	Spacing token.Spacing   // punct
	Delim   token.Delimiter // open/close
}
