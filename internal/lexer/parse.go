package lexer

import (
	"fmt"

	"postfix/internal/diag"
	"postfix/internal/source"
	"postfix/internal/token"
)

// ParseFile lexes file and builds its token tree. Problems go to
// opts.Reporter; the returned stream is best effort.
func ParseFile(file *source.File, opts Options) token.Stream {
	lexemes := New(file, opts).All()
	return BuildTree(lexemes, opts.Reporter)
}

// ParseString is ParseFile for an in-memory snippet. The first problem,
// if any, is returned as an error.
func ParseString(src string) (token.Stream, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<input>", []byte(src)))
	bag := diag.NewBag(16)
	ts := ParseFile(file, Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		d := bag.Items()[0]
		return nil, fmt.Errorf("%s at %s: %s", d.Code.ID(), d.Primary, d.Message)
	}
	return ts, nil
}
