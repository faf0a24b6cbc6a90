package driver

import (
	"fmt"

	"postfix/internal/diag"
	"postfix/internal/lexer"
	"postfix/internal/rewrite"
	"postfix/internal/source"
)

// VerifyOutput re-lexes a rewritten file and rewrites it again. The output
// must lex cleanly and must not contain postfix invocations any more, so a
// second rewrite has to leave the token tree as it is.
// It returns (ok, report string).
func VerifyOutput(path, output string, maxDepth int) (ok bool, msg string) {
	fs := source.NewFileSetWithBase("")
	file := fs.Get(fs.AddVirtual(path, []byte(output)))

	bag := diag.NewBag(1)
	ts := lexer.ParseFile(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		d := bag.Items()[0]
		return false, fmt.Sprintf("verify: rewritten output does not lex: %s %s", d.Code.ID(), d.Message)
	}

	again, err := rewrite.New(rewrite.Options{MaxDepth: maxDepth}).Rewrite(ts)
	if err != nil {
		return false, "verify: rewritten output fails to rewrite: " + err.Error()
	}
	if !again.Equal(ts) {
		return false, "verify: rewritten output still contains postfix invocations"
	}
	return true, ""
}
