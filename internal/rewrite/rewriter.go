// Package rewrite turns postfix macro invocations `recv.name!(args)` into
// prefix ones `name!(recv, args)` across a whole token tree.
package rewrite

import (
	"postfix/internal/scan"
	"postfix/internal/source"
	"postfix/internal/token"
)

// Invocation describes one rewritten call site.
type Invocation struct {
	Depth    int          // group nesting of the call site
	Name     token.Token  // macro name
	Receiver token.Stream // tokens moved into the argument list
	Result   token.Token  // the new argument group
	Site     source.Span  // the `.` that introduced the call
}

type Options struct {
	MaxDepth     int              // 0 → scan.DefaultMaxDepth
	Hook         scan.Hook        // решения сканера
	OnInvocation func(Invocation) // вызывается после каждой замены
}

// Rewriter is stateless between calls; one value may serve many streams.
type Rewriter struct {
	opts    Options
	scanner *scan.Scanner
}

func New(opts Options) *Rewriter {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = scan.DefaultMaxDepth
	}
	return &Rewriter{
		opts:    opts,
		scanner: scan.New(scan.Options{MaxDepth: opts.MaxDepth, Hook: opts.Hook}),
	}
}

// Rewrite rewrites in with default options.
func Rewrite(in token.Stream) (token.Stream, error) {
	return New(Options{}).Rewrite(in)
}

// Rewrite returns a new stream with every postfix invocation turned into a
// prefix one. The input is not modified. On error no partial output is returned.
func (r *Rewriter) Rewrite(in token.Stream) (token.Stream, error) {
	out, err := r.visitStream(in, 0)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Rewriter) visitStream(in token.Stream, depth int) (token.Stream, error) {
	res := make(token.Stream, 0, len(in))
	for _, tt := range in {
		if tt.Kind != token.Group {
			res = append(res, tt)
			continue
		}
		group, err := r.visitGroup(tt, depth)
		if err != nil {
			return nil, err
		}
		if !isPostfixCall(res) {
			res = append(res, group)
			continue
		}

		// снимаем `!`, имя и `.`
		bang, name, dot := res[len(res)-1], res[len(res)-2], res[len(res)-3]
		res = res[:len(res)-3]

		n, err := r.scanner.ExprLenAt(res, depth)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, &scan.Error{
				Kind:  scan.KindEmptyReceiver,
				Token: dot,
				Span:  dot.Span,
				Msg:   "expected an expression before `." + name.Text + "!`",
			}
		}
		if n > len(res) {
			return nil, &scan.Error{Kind: scan.KindInternal, Token: dot, Span: dot.Span, Msg: "receiver longer than its input"}
		}

		// копия: res ниже переиспользуется под name и bang
		receiver := append(token.Stream(nil), res[len(res)-n:]...)
		res = res[:len(res)-n]
		arg := PrependArg(receiver, group, dot.Span)

		if r.opts.OnInvocation != nil {
			r.opts.OnInvocation(Invocation{Depth: depth, Name: name, Receiver: receiver, Result: arg, Site: dot.Span})
		}
		res = append(res, name, bang, arg)
	}
	return res, nil
}

func (r *Rewriter) visitGroup(g token.Token, depth int) (token.Token, error) {
	if depth+1 > r.opts.MaxDepth {
		return token.Token{}, scan.DepthError(g, r.opts.MaxDepth)
	}
	inner, err := r.visitStream(g.Stream, depth+1)
	if err != nil {
		return token.Token{}, err
	}
	g.Stream = inner
	return g, nil
}

// isPostfixCall reports whether res ends with `. name !`, both puncts Alone.
// The second dot of `..` does not count.
func isPostfixCall(res token.Stream) bool {
	if len(res) < 3 {
		return false
	}
	tail := res[len(res)-3:]
	if !tail[0].IsAlone('.') || tail[1].Kind != token.Ident || !tail[2].IsAlone('!') {
		return false
	}
	if len(res) > 3 {
		if prev := res[len(res)-4]; prev.IsPunct('.') && prev.Spacing == token.Joint {
			return false
		}
	}
	return true
}
