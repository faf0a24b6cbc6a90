package driver

import (
	"postfix/internal/diag"
	"postfix/internal/rewrite"
	"postfix/internal/token"
)

// wrapperMacro is the item macro whose bodies are rewritten in place of
// the whole file.
const wrapperMacro = "postfix_macros"

// unwrapMacros returns the bodies when the top level of ts is nothing but
// `postfix_macros! { ... }` invocations. Otherwise ts is returned as the
// only body with wrapped == false.
func unwrapMacros(ts token.Stream) (bodies []token.Stream, wrapped bool, bad *diag.Diagnostic) {
	if len(ts) == 0 {
		return []token.Stream{ts}, false, nil
	}
	for i := 0; i < len(ts); {
		if !ts[i].IsIdent(wrapperMacro) || i+1 >= len(ts) || !ts[i+1].IsAlone('!') {
			return []token.Stream{ts}, false, nil
		}
		if i+2 >= len(ts) || ts[i+2].Kind != token.Group || ts[i+2].Delim == token.None {
			d := diag.NewError(diag.SynBadWrapper, ts[i+1].Span, "expected a delimited body after `"+wrapperMacro+"!`")
			return nil, false, &d
		}
		g := ts[i+2]
		bodies = append(bodies, g.Stream)
		i += 3

		semi := i < len(ts) && ts[i].IsPunct(';')
		if g.Delim != token.Brace && !semi {
			d := diag.NewError(diag.SynBadWrapper, g.Close, "expected `;` after `"+wrapperMacro+"!"+string(g.Delim.Open())+"...`")
			return nil, false, &d
		}
		if semi {
			i++
		}
	}
	return bodies, true, nil
}

// rewriteBodies rewrites every body on its own: a receiver never reaches
// across two wrapper invocations. The results are joined in order.
func rewriteBodies(rw *rewrite.Rewriter, bodies []token.Stream) (token.Stream, error) {
	var out token.Stream
	for _, body := range bodies {
		part, err := rw.Rewrite(body)
		if err != nil {
			return nil, err
		}
		out = append(out, part...)
	}
	return out, nil
}
