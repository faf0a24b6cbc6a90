package lexer

import (
	"postfix/internal/diag"
	"postfix/internal/source"
	"postfix/internal/token"
)

type frame struct {
	delim token.Delimiter
	open  source.Span
	toks  token.Stream
}

// BuildTree matches brackets and turns flat lexemes into a token tree.
// Invalid lexemes are dropped. Unbalanced input is reported and recovered
// from: a stray closer is skipped, a missing closer is assumed at the end.
func BuildTree(lexemes []Lexeme, r diag.Reporter) token.Stream {
	stack := []frame{{delim: token.None}}
	top := func() *frame { return &stack[len(stack)-1] }

	closeTop := func(closeSpan source.Span) {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g := token.NewGroup(f.delim, f.toks, f.open.Cover(closeSpan))
		g.Close = closeSpan
		top().toks = append(top().toks, g)
	}

	for _, lex := range lexemes {
		switch lex.Kind {
		case LexIdent:
			top().toks = append(top().toks, token.NewIdent(lex.Text, lex.Span))
		case LexLiteral:
			top().toks = append(top().toks, token.NewLiteral(lex.Text, lex.Span))
		case LexPunct:
			top().toks = append(top().toks, token.NewPunct(lex.Char, lex.Spacing, lex.Span))
		case LexOpen:
			stack = append(stack, frame{delim: lex.Delim, open: lex.Span})
		case LexClose:
			if len(stack) == 1 {
				report(r, diag.SynUnexpectedClose, lex.Span, "unexpected closing delimiter `"+string(lex.Delim.Close())+"`", nil)
				continue
			}
			if top().delim == lex.Delim {
				closeTop(lex.Span)
				continue
			}
			// ищем подходящую открывающую ниже по стеку
			match := -1
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].delim == lex.Delim {
					match = i
					break
				}
			}
			open := top()
			report(r, diag.SynMismatchedClose, lex.Span,
				"mismatched closing delimiter `"+string(lex.Delim.Close())+"`",
				[]diag.Note{{Span: open.open, Msg: "unclosed `" + string(open.delim.Open()) + "` opened here"}})
			if match < 0 {
				continue
			}
			for len(stack)-1 > match {
				closeTop(top().open.At())
			}
			closeTop(lex.Span)
		}
	}
	for len(stack) > 1 {
		f := top()
		report(r, diag.SynUnclosedDelimiter, f.open, "unclosed delimiter `"+string(f.delim.Open())+"`", nil)
		closeTop(f.open.At())
	}
	return stack[0].toks
}

func report(r diag.Reporter, code diag.Code, sp source.Span, msg string, notes []diag.Note) {
	if r != nil {
		r.Report(code, diag.SevError, sp, msg, notes)
	}
}
