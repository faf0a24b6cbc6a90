package scan

import (
	"errors"
	"fmt"

	"postfix/internal/source"
	"postfix/internal/token"
)

// Kind classifies a rewrite failure.
type Kind uint8

const (
	KindEmptyReceiver Kind = iota + 1
	KindUnsupported
	KindInternal
	KindDepth
)

func (k Kind) String() string {
	switch k {
	case KindEmptyReceiver:
		return "empty receiver"
	case KindUnsupported:
		return "unsupported construct"
	case KindInternal:
		return "internal error"
	case KindDepth:
		return "depth exceeded"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyReceiver = errors.New("postfix macro invocation without receiver")
	ErrUnsupported   = errors.New("unsupported receiver expression")
	ErrInternal      = errors.New("internal rewriter error")
	ErrDepthExceeded = errors.New("nesting depth exceeded")
)

// Error is returned by the scanner and the rewriter.
// Token and Span point at the offending token when there is one.
type Error struct {
	Kind  Kind
	Token token.Token
	Span  source.Span
	Msg   string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is matches the package sentinels by kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrEmptyReceiver:
		return e.Kind == KindEmptyReceiver
	case ErrUnsupported:
		return e.Kind == KindUnsupported
	case ErrInternal:
		return e.Kind == KindInternal
	case ErrDepthExceeded:
		return e.Kind == KindDepth
	}
	return false
}

func unsupported(tok token.Token, format string, args ...any) *Error {
	return &Error{Kind: KindUnsupported, Token: tok, Span: tok.Span, Msg: fmt.Sprintf(format, args...)}
}

func internal(tok token.Token, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Token: tok, Span: tok.Span, Msg: fmt.Sprintf(format, args...)}
}

// DepthError reports that nesting went past max.
func DepthError(tok token.Token, max int) *Error {
	return &Error{Kind: KindDepth, Token: tok, Span: tok.Span, Msg: fmt.Sprintf("nesting deeper than %d levels", max)}
}
