// Package highlight colors rewritten Rust source for terminal output.
package highlight

import (
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/formatters"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/styles"
)

// Formatter names accepted by Options.Formatter.
const (
	Terminal256 = "terminal256"
	Terminal16  = "terminal16"
	TrueColor   = "terminal16m"
)

type Options struct {
	Style     string // chroma style, "" → monokai
	Formatter string // "" → Terminal256
}

// Write highlights text as Rust and writes it to w. Unknown styles fall back
// to chroma's default style; an unknown formatter is an error.
func Write(w io.Writer, text string, opts Options) error {
	lexer := lexers.Get("rust")
	if lexer == nil {
		_, err := io.WriteString(w, text)
		return err
	}
	lexer = chroma.Coalesce(lexer)

	name := opts.Style
	if name == "" {
		name = "monokai"
	}
	style := styles.Get(name)

	fname := opts.Formatter
	if fname == "" {
		fname = Terminal256
	}
	formatter := formatters.Get(fname)
	if formatter == nil || !slices.Contains(formatters.Names(), fname) {
		return fmt.Errorf("unknown highlight formatter %q", fname)
	}

	iter, err := lexer.Tokenise(nil, text)
	if err != nil {
		return fmt.Errorf("highlight: %w", err)
	}
	return formatter.Format(w, style, iter)
}

// Styles lists the style names Write understands.
func Styles() []string {
	names := styles.Names()
	slices.Sort(names)
	return names
}

// HasStyle reports whether name is a registered style.
func HasStyle(name string) bool {
	return slices.Contains(styles.Names(), name)
}
