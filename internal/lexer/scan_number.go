package lexer

import (
	"postfix/internal/diag"
)

// Поддержка: 0, 1_000, 0b1010, 0o17, 0xFF, 1.0, 1., 1e-3, 2.5E+10 и суффиксы (u8, f32, usize...).
// Суффикс остаётся частью текста литерала. `1.foo` и `1..2` - это число и точка.
func (lx *Lexer) scanNumber() Lexeme {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		var digit func(byte) bool
		switch lx.cursor.PeekAt(1) {
		case 'b':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Bump()
			lx.cursor.Bump()
			n := 0
			for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
				if lx.cursor.Bump() != '_' {
					n++
				}
			}
			if n == 0 {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digits after base prefix")
				lx.skipSuffix()
				return lx.literal(lx.cursor.SpanFrom(start))
			}
			goto suffix
		}
	}

	lx.skipDigits()

	// дробная часть: только если за точкой не идёт '.', идентификатор или руна
	if lx.cursor.Peek() == '.' {
		next := lx.cursor.PeekAt(1)
		switch {
		case isDec(next):
			lx.cursor.Bump()
			lx.skipDigits()
		case next == '.' || isIdentStartByte(next) || next >= utf8RuneSelf:
			goto suffix
		default:
			lx.cursor.Bump() // "1."
			return lx.literal(lx.cursor.SpanFrom(start))
		}
	}

	// экспонента: e, e+, e- и обязательно цифра
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if next == '+' || next == '-' {
			next = lx.cursor.PeekAt(2)
		}
		if isDec(next) {
			lx.cursor.Bump()
			if c := lx.cursor.Peek(); c == '+' || c == '-' {
				lx.cursor.Bump()
			}
			lx.skipDigits()
		}
	}

suffix:
	lx.skipSuffix()
	sp := lx.cursor.SpanFrom(start)
	if sp.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, sp, "number literal is too long")
		return lx.invalid(sp)
	}
	return lx.literal(sp)
}

func (lx *Lexer) skipDigits() {
	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) skipSuffix() {
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
