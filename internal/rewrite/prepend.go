package rewrite

import (
	"postfix/internal/source"
	"postfix/internal/token"
)

// PrependArg returns group with receiver inserted as its first argument.
// A lone identifier or literal is passed as is; anything else is wrapped in
// a brace group so it stays one expression. A comma follows the receiver
// only when the group already had content. The delimiter is kept, and the
// synthetic tokens carry the span at.
func PrependArg(receiver token.Stream, group token.Token, at source.Span) token.Token {
	var expr token.Token
	if len(receiver) == 1 && (receiver[0].Kind == token.Ident || receiver[0].Kind == token.Literal) {
		expr = receiver[0]
	} else {
		expr = token.NewGroup(token.Brace, receiver, at)
		expr.Close = at
	}

	stream := make(token.Stream, 0, len(group.Stream)+2)
	stream = append(stream, expr)
	if len(group.Stream) > 0 {
		stream = append(stream, token.NewPunct(',', token.Alone, at))
		stream = append(stream, group.Stream...)
	}

	out := group
	out.Stream = stream
	return out
}
