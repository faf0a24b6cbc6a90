package lexer

import (
	"postfix/internal/source"
	"postfix/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *Lexeme // 1 элементный буфер
	// lifetime: после `'` следующий идентификатор уже начат
	pendingLifetime bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующую лексему, пропуская trivia.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() Lexeme {
	if lx.look != nil {
		lex := *lx.look
		lx.look = nil
		return lex
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return Lexeme{Kind: LexEOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case lx.pendingLifetime:
		lx.pendingLifetime = false
		return lx.scanIdent()

	case (ch == 'r' || ch == 'b' || ch == 'c') && lx.isPrefixedLiteral():
		return lx.scanPrefixedLiteral()

	case ch == 'r' && lx.isRawIdent():
		return lx.scanRawIdent()

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		return lx.scanIdent()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '"':
		return lx.scanString(lx.cursor.Mark())

	case ch == '\'':
		return lx.scanCharOrLifetime()

	case ch == '(' || ch == '[' || ch == '{':
		return lx.scanDelimiter(LexOpen)

	case ch == ')' || ch == ']' || ch == '}':
		return lx.scanDelimiter(LexClose)

	default:
		return lx.scanPunct()
	}
}

// Peek возвращает следующую лексему, не потребляя её.
func (lx *Lexer) Peek() Lexeme {
	lex := lx.Next()
	lx.look = &lex
	return lex
}

// All lexes the file to the end; EOF is not included.
func (lx *Lexer) All() []Lexeme {
	out := make([]Lexeme, 0, len(lx.file.Content)/3+1)
	for {
		lex := lx.Next()
		if lex.Kind == LexEOF {
			return out
		}
		out = append(out, lex)
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) literal(sp source.Span) Lexeme {
	return Lexeme{Kind: LexLiteral, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) invalid(sp source.Span) Lexeme {
	return Lexeme{Kind: LexInvalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanDelimiter(kind LexKind) Lexeme {
	start := lx.cursor.Mark()
	d, _ := token.DelimiterFor(lx.cursor.Bump())
	return Lexeme{Kind: kind, Span: lx.cursor.SpanFrom(start), Delim: d}
}
