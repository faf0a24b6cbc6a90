package scan

import (
	"errors"
	"fmt"
	"testing"

	"postfix/internal/source"
	"postfix/internal/token"
)

func TestErrorIs(t *testing.T) {
	tok := token.NewPunct('|', token.Alone, source.Span{Start: 3, End: 4})
	err := fmt.Errorf("rewrite main.rs: %w", unsupported(tok, "closures are not supported"))
	if !errors.Is(err, ErrUnsupported) || errors.Is(err, ErrInternal) {
		t.Fatalf("sentinel mismatch for %v", err)
	}
	var se *Error
	if !errors.As(err, &se) || se.Span.Start != 3 {
		t.Fatalf("errors.As failed: %v", err)
	}
	if got := se.Error(); got != "unsupported construct: closures are not supported" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(DepthError(tok, 4), ErrDepthExceeded) {
		t.Error("depth error must match ErrDepthExceeded")
	}
	if got := (&Error{Kind: KindEmptyReceiver}).Error(); got != "empty receiver" {
		t.Errorf("Error() = %q", got)
	}
}
