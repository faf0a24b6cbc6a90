package lexer

import (
	"postfix/internal/diag"

	"golang.org/x/text/unicode/norm"
)

const utf8RuneSelf = 0x80

// scanIdent сканирует идентификатор или ключевое слово.
// Ключевые слова не выделяются: их роль определяет token.LookupKeyword.
// Не-ASCII идентификаторы приводятся к NFC, чтобы `é` и `é` совпадали.
func (lx *Lexer) scanIdent() Lexeme {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		return Lexeme{Kind: LexEOF, Span: lx.emptySpan()}
	}
	ascii := true
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanPunct()
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return lx.unknownChar()
		}
		ascii = false
		lx.bumpRune()
	}
	for {
		b := lx.cursor.Peek()
		if isIdentContinueByte(b) {
			lx.cursor.Bump()
			continue
		}
		if b >= utf8RuneSelf {
			r2, sz2 := lx.peekRune()
			if sz2 > 0 && isIdentContinueRune(r2) {
				ascii = false
				lx.bumpRune()
				continue
			}
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	if sp.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, sp, "identifier is too long")
		return lx.invalid(sp)
	}
	text := lx.text(sp)
	if !ascii {
		text = norm.NFC.String(text)
	}
	return Lexeme{Kind: LexIdent, Span: sp, Text: text}
}

// isRawIdent: r#ident, но не r#"raw string"
func (lx *Lexer) isRawIdent() bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != 'r' || b1 != '#' {
		return false
	}
	b2 := lx.cursor.PeekAt(2)
	return isIdentStartByte(b2) || b2 >= utf8RuneSelf
}

func (lx *Lexer) scanRawIdent() Lexeme {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // r
	lx.cursor.Bump() // #
	id := lx.scanIdent()
	if id.Kind != LexIdent {
		return id
	}
	id.Span = lx.cursor.SpanFrom(start)
	id.Text = "r#" + id.Text
	return id
}
