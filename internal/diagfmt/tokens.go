package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"postfix/internal/source"
	"postfix/internal/token"
)

type TokenOutput struct {
	Kind    string        `json:"kind"`
	Text    string        `json:"text,omitempty"`
	Spacing string        `json:"spacing,omitempty"`
	Delim   string        `json:"delim,omitempty"`
	Span    source.Span   `json:"span"`
	Line    uint32        `json:"line,omitempty"`
	Col     uint32        `json:"col,omitempty"`
	Stream  []TokenOutput `json:"stream,omitempty"`
}

// FormatTokensPretty выводит дерево токенов по строке на токен,
// вложенность групп показана отступом.
func FormatTokensPretty(w io.Writer, ts token.Stream, fs *source.FileSet) error {
	n := 0
	return prettyStream(w, ts, fs, 0, &n)
}

func prettyStream(w io.Writer, ts token.Stream, fs *source.FileSet, depth int, n *int) error {
	indent := strings.Repeat("  ", depth)
	for _, tok := range ts {
		*n++
		pos := ""
		if fs != nil && fs.Get(tok.Span.File) != nil {
			start, end := fs.Resolve(tok.Span)
			pos = fmt.Sprintf(" at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		}

		var err error
		switch tok.Kind {
		case token.Group:
			_, err = fmt.Fprintf(w, "%4d: %s%-8s %s%c%s\n", *n, indent, tok.Kind, tok.Delim, tok.Delim.Open(), pos)
			if err == nil {
				err = prettyStream(w, tok.Stream, fs, depth+1, n)
			}
		case token.Punct:
			_, err = fmt.Fprintf(w, "%4d: %s%-8s %q %s%s\n", *n, indent, tok.Kind, tok.Char, tok.Spacing, pos)
		default:
			_, err = fmt.Fprintf(w, "%4d: %s%-8s %q%s\n", *n, indent, tok.Kind, tok.Text, pos)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// BuildTokensOutput converts ts into its JSON shape.
func BuildTokensOutput(ts token.Stream, fs *source.FileSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(ts))
	for _, tok := range ts {
		to := TokenOutput{Kind: tok.Kind.String(), Span: tok.Span}
		switch tok.Kind {
		case token.Group:
			to.Delim = tok.Delim.String()
			to.Stream = BuildTokensOutput(tok.Stream, fs)
		case token.Punct:
			to.Text = string(tok.Char)
			to.Spacing = tok.Spacing.String()
		default:
			to.Text = tok.Text
		}
		if fs != nil && fs.Get(tok.Span.File) != nil {
			start, _ := fs.Resolve(tok.Span)
			to.Line, to.Col = start.Line, start.Col
		}
		out = append(out, to)
	}
	return out
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, ts token.Stream, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(ts, fs))
}

// FormatTokensDump печатает сырые структуры токенов (go-spew), для отладки.
func FormatTokensDump(w io.Writer, ts token.Stream) error {
	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(w, ts)
	return nil
}
