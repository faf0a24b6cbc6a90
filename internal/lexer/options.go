package lexer

import (
	"postfix/internal/diag"
	"postfix/internal/source"
)

// maxTokenLength ограничивает один литерал или идентификатор (1 MiB).
const maxTokenLength = 1 << 20

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
