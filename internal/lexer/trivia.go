package lexer

import (
	"postfix/internal/diag"
)

// skipTrivia пропускает пробелы, переводы строк и комментарии.
// Доc-комментарии (///, //!, /** */) тоже пропускаются: атрибутов из них не строим.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); {
		case isSpace(b):
			lx.cursor.Bump()
		case b == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case b == '/' && lx.cursor.PeekAt(1) == '*':
			lx.skipBlockComment()
		default:
			return
		}
	}
}

// /* ... */ с вложенностью; незакрытый - репорт и обрезаем на EOF
func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	depth := 1
	for !lx.cursor.EOF() && depth > 0 {
		if b0, b1, ok := lx.cursor.Peek2(); ok {
			if b0 == '/' && b1 == '*' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth++
				continue
			}
			if b0 == '*' && b1 == '/' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				depth--
				continue
			}
		}
		lx.cursor.Bump()
	}
	if depth > 0 {
		lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// OnlyTrivia reports whether text consists solely of whitespace and
// complete comments, i.e. no token was lexed from it.
func OnlyTrivia(text []byte) bool {
	i := 0
	for i < len(text) {
		switch {
		case isSpace(text[i]):
			i++
		case text[i] == '/' && i+1 < len(text) && text[i+1] == '/':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case text[i] == '/' && i+1 < len(text) && text[i+1] == '*':
			i += 2
			depth := 1
			for i < len(text) && depth > 0 {
				switch {
				case i+1 < len(text) && text[i] == '/' && text[i+1] == '*':
					depth++
					i += 2
				case i+1 < len(text) && text[i] == '*' && text[i+1] == '/':
					depth--
					i += 2
				default:
					i++
				}
			}
			if depth > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
