package lexer

import (
	"postfix/internal/diag"
	"postfix/internal/token"
)

// scanString сканирует "..." начиная с открывающей кавычки; start может
// указывать на префикс (b, c). Переводы строк внутри допустимы.
func (lx *Lexer) scanString(start Mark) Lexeme {
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			lx.skipSuffix()
			return lx.literal(lx.cursor.SpanFrom(start))
		case '\\':
			// escape не валидируем: достаточно не споткнуться о \"
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.invalid(sp)
}

// scanRawString: r"..." / r#"..."# с любым числом '#'.
func (lx *Lexer) scanRawString(start Mark) Lexeme {
	lx.cursor.Bump() // r
	hashes := 0
	for lx.cursor.Eat('#') {
		hashes++
	}
	if !lx.cursor.Eat('"') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedString, sp, "expected '\"' in raw string literal")
		return lx.invalid(sp)
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() != '"' {
			continue
		}
		n := 0
		for n < hashes && lx.cursor.Peek() == '#' {
			lx.cursor.Bump()
			n++
		}
		if n == hashes {
			lx.skipSuffix()
			return lx.literal(lx.cursor.SpanFrom(start))
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated raw string literal")
	return lx.invalid(sp)
}

// isPrefixedLiteral: b"..", b'..', br"..", r"..", r#"..", c"..", cr"..".
func (lx *Lexer) isPrefixedLiteral() bool {
	b0 := lx.cursor.Peek()
	off := uint32(1)
	if (b0 == 'b' || b0 == 'c') && lx.cursor.PeekAt(1) == 'r' {
		b0 = 'r'
		off = 2
	}
	next := lx.cursor.PeekAt(off)
	switch b0 {
	case 'r':
		if next == '"' {
			return true
		}
		if next != '#' {
			return false
		}
		// r#"...": после решёток должна быть кавычка, иначе это r#ident
		for next == '#' {
			off++
			next = lx.cursor.PeekAt(off)
		}
		return next == '"'
	case 'b':
		return next == '"' || next == '\''
	case 'c':
		return next == '"'
	}
	return false
}

func (lx *Lexer) scanPrefixedLiteral() Lexeme {
	start := lx.cursor.Mark()
	b0 := lx.cursor.Peek()
	if b0 == 'b' || b0 == 'c' {
		if lx.cursor.PeekAt(1) == 'r' {
			lx.cursor.Bump()
			return lx.scanRawString(start)
		}
		lx.cursor.Bump()
		if b0 == 'b' && lx.cursor.Peek() == '\'' {
			return lx.scanChar(start)
		}
		return lx.scanString(start)
	}
	return lx.scanRawString(start)
}

// scanCharOrLifetime различает 'x' / '\n' и 'label / 'static.
// Лайфтайм выдаётся как `'` (Joint) и следующий за ним идентификатор.
func (lx *Lexer) scanCharOrLifetime() Lexeme {
	start := lx.cursor.Mark()
	if lx.cursor.PeekAt(1) != '\\' {
		lx.cursor.Bump() // '
		r, sz := lx.peekRune()
		lx.cursor.Reset(start)
		if sz > 0 && r != '\'' {
			usz := uint32(sz) // #nosec G115 -- rune size is at most 4
			closed := lx.cursor.PeekAt(1+usz) == '\''
			if !closed && (r == '_' || (r < utf8RuneSelf && isIdentStartByte(byte(r))) || (r >= utf8RuneSelf && isIdentStartRune(r))) {
				lx.cursor.Bump()
				lx.pendingLifetime = true
				return Lexeme{Kind: LexPunct, Span: lx.cursor.SpanFrom(start), Char: '\'', Spacing: token.Joint}
			}
		}
	}
	return lx.scanChar(start)
}

// scanChar сканирует '...' с текущей кавычки; start может указывать на префикс b.
func (lx *Lexer) scanChar(start Mark) Lexeme {
	lx.cursor.Bump() // opening '
	if lx.cursor.Peek() == '\\' {
		lx.cursor.Bump()
		if lx.cursor.Peek() == 'u' && lx.cursor.PeekAt(1) == '{' {
			for !lx.cursor.EOF() && lx.cursor.Peek() != '}' && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		}
		lx.bumpRune()
	} else if lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
		lx.bumpRune()
	}
	// \x7F и подобные: дочитываем до кавычки в пределах строки
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' && lx.cursor.Off-uint32(start) < 16 {
		lx.bumpRune()
	}
	if !lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated character literal")
		return lx.invalid(sp)
	}
	lx.skipSuffix()
	return lx.literal(lx.cursor.SpanFrom(start))
}
