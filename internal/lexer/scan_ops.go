package lexer

import (
	"postfix/internal/diag"
	"postfix/internal/token"
)

// isPunctChar - символы, из которых состоят операторы.
// Скобки сюда не входят: они становятся группами.
func isPunctChar(b byte) bool {
	switch b {
	case '=', '<', '>', '!', '~', '+', '-', '*', '/', '%', '^', '&', '|', '@', '.', ',', ';', ':', '#', '$', '?', '\'':
		return true
	}
	return false
}

// scanPunct выдаёт ровно один символ пунктуации.
// Spacing = Joint, если следующий символ тоже пунктуация ("&&" → '&' Joint, '&' Alone).
func (lx *Lexer) scanPunct() Lexeme {
	start := lx.cursor.Mark()
	ch := lx.cursor.Peek()
	if !isPunctChar(ch) || ch == '\'' {
		return lx.unknownChar()
	}
	lx.cursor.Bump()
	spacing := token.Alone
	if next := lx.cursor.Peek(); isPunctChar(next) {
		spacing = token.Joint
		// комментарий - не пунктуация
		if after := lx.cursor.PeekAt(1); next == '/' && (after == '/' || after == '*') {
			spacing = token.Alone
		}
	}
	return Lexeme{Kind: LexPunct, Span: lx.cursor.SpanFrom(start), Char: ch, Spacing: spacing}
}

func (lx *Lexer) unknownChar() Lexeme {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteRune(r))
	return lx.invalid(sp)
}
