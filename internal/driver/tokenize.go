package driver

import (
	"postfix/internal/diag"
	"postfix/internal/lexer"
	"postfix/internal/source"
	"postfix/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Stream  token.Stream
	Bag     *diag.Bag
}

// Tokenize lexes path into its token tree without rewriting it.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	ts := lexer.ParseFile(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Stream:  ts,
		Bag:     bag,
	}, nil
}
