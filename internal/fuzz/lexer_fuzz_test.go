package fuzztests

import (
	"testing"

	"postfix/internal/diag"
	"postfix/internal/lexer"
	"postfix/internal/source"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.rs", clampInput(input)))

		bag := diag.NewBag(64)
		ts := lexer.ParseFile(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if bag.HasErrors() {
			return
		}
		// без ошибок каждый токен лежит внутри файла
		for _, tok := range ts {
			if int(tok.Span.End) > len(file.Content) || tok.Span.Start > tok.Span.End {
				t.Fatalf("token %s has span %v outside the file", tok.Describe(), tok.Span)
			}
		}
	})
}
