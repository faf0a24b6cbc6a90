// Package printer renders a token tree back to source text.
//
// Compact mode spaces tokens the way macro stringification does, with a few
// readability rules (no space inside paren groups, after `.`, before `,`).
// Layout mode reuses the original whitespace and comments wherever the
// source between two printed tokens was trivia only, and falls back to
// Compact elsewhere.
package printer

import (
	"io"
	"slices"
	"strings"

	"postfix/internal/lexer"
	"postfix/internal/source"
	"postfix/internal/token"
)

type Mode uint8

const (
	Compact Mode = iota
	Layout
)

func (m Mode) String() string {
	if m == Layout {
		return "layout"
	}
	return "compact"
}

// ParseMode maps "compact" / "layout" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "compact", "":
		return Compact, true
	case "layout":
		return Layout, true
	}
	return Compact, false
}

type Options struct {
	Mode  Mode
	Files *source.FileSet // нужен для Layout; без него печатаем Compact
}

// Print renders ts to a string.
func Print(ts token.Stream, opts Options) string {
	if opts.Mode == Layout && opts.Files == nil {
		opts.Mode = Compact
	}
	p := &printer{opts: opts}
	atoms := flatten(ts, nil)
	if opts.Mode == Layout {
		p.index(atoms)
	}
	p.leader()
	for i := range atoms {
		p.emit(atoms[i])
	}
	p.trailer()
	return p.out.String()
}

// Fprint writes the rendering of ts to w.
func Fprint(w io.Writer, ts token.Stream, opts Options) error {
	_, err := io.WriteString(w, Print(ts, opts))
	return err
}

type atomKind uint8

const (
	atomToken atomKind = iota
	atomOpen
	atomClose
)

// atom - одна печатаемая единица: токен или скобка группы.
type atom struct {
	kind     atomKind
	tok      token.Token // для open/close - сама группа
	span     source.Span
	wrapper  bool // фигурная обёртка получателя, созданная переписыванием
	original bool // текст по span совпадает с атомом (Layout)
}

func flatten(ts token.Stream, out []atom) []atom {
	for _, t := range ts {
		if t.Kind != token.Group {
			out = append(out, atom{kind: atomToken, tok: t, span: t.Span})
			continue
		}
		if t.Delim == token.None {
			out = flatten(t.Stream, out)
			continue
		}
		wrapper := isWrapper(t)
		open := t.Span
		if !open.IsZero() && !wrapper {
			open.End = open.Start + 1
		}
		out = append(out, atom{kind: atomOpen, tok: t, span: open, wrapper: wrapper})
		out = flatten(t.Stream, out)
		out = append(out, atom{kind: atomClose, tok: t, span: t.Close, wrapper: wrapper})
	}
	return out
}

// isWrapper: обёртка, созданная переписыванием, имеет одинаковые Span и Close.
func isWrapper(g token.Token) bool {
	return g.Delim == token.Brace && !g.Span.IsZero() && g.Span == g.Close
}

func text(a atom) string {
	switch a.kind {
	case atomOpen:
		return string(a.tok.Delim.Open())
	case atomClose:
		return string(a.tok.Delim.Close())
	}
	if a.tok.Kind == token.Punct {
		return string(a.tok.Char)
	}
	return a.tok.Text
}

type printer struct {
	opts Options
	out  strings.Builder

	// Layout: начала исходных атомов по файлам, отсортированы
	starts      map[source.FileID][]uint32
	first, last source.Span

	prev       *atom
	prevPrev   *atom
	operandEnd bool // предыдущий атом завершает операнд
	prevUnary  bool // предыдущий атом - префиксный оператор
	prevBinary bool // предыдущий атом - часть бинарного оператора
}

func (p *printer) index(atoms []atom) {
	p.starts = make(map[source.FileID][]uint32)
	for i := range atoms {
		a := &atoms[i]
		if a.span.IsZero() || a.wrapper {
			continue
		}
		if string(p.opts.Files.Text(a.span)) != text(*a) {
			continue
		}
		a.original = true
		p.starts[a.span.File] = append(p.starts[a.span.File], a.span.Start)
		if p.first.IsZero() || a.span.Start < p.first.Start {
			p.first = a.span
		}
		if p.last.IsZero() || a.span.End > p.last.End {
			p.last = a.span
		}
	}
	for _, s := range p.starts {
		slices.Sort(s)
	}
}

func (p *printer) emit(a atom) {
	p.out.WriteString(p.separator(&a))
	p.out.WriteString(text(a))

	unary, binary := false, false
	if a.kind == atomToken && a.tok.Kind == token.Punct {
		switch a.tok.Char {
		case '&', '*', '-', '!':
			continued := p.prev != nil && p.prev.kind == atomToken && p.prev.tok.Kind == token.Punct &&
				p.prev.tok.Spacing == token.Joint && p.prevBinary
			unary = !p.operandEnd && !continued
		}
		binary = !unary
	}

	p.prevPrev, p.prev = p.prev, &a
	p.prevUnary, p.prevBinary = unary, binary
	p.operandEnd = endsOperand(a)
}

func endsOperand(a atom) bool {
	switch a.kind {
	case atomClose:
		return true
	case atomToken:
		switch a.tok.Kind {
		case token.Literal:
			return true
		case token.Ident:
			return a.tok.IsOperand()
		case token.Punct:
			return a.tok.Char == '?'
		}
	}
	return false
}

func (p *printer) separator(a *atom) string {
	if p.prev == nil {
		return ""
	}
	if gap, ok := p.originalGap(a); ok {
		return gap
	}
	return p.compactSeparator(a)
}

// originalGap берёт исходный текст после предыдущего атома до следующего
// исходного токена, если там только пробелы и комментарии. Пустой промежуток
// годится только для настоящих соседей.
func (p *printer) originalGap(a *atom) (string, bool) {
	prev := p.prev
	if p.opts.Mode != Layout || !prev.original || a.wrapper {
		return "", false
	}
	starts := p.starts[prev.span.File]
	i, _ := slices.BinarySearch(starts, prev.span.End)
	if i == len(starts) {
		return "", false
	}
	next := starts[i]
	gap := p.opts.Files.Text(source.Span{File: prev.span.File, Start: prev.span.End, End: next})
	if gap == nil || !lexer.OnlyTrivia(gap) {
		return "", false
	}
	neighbour := a.original && a.span.File == prev.span.File && a.span.Start == next
	if len(gap) == 0 && !neighbour {
		return "", false
	}
	return string(gap), true
}

func (p *printer) compactSeparator(a *atom) string {
	prev := p.prev
	switch {
	case prev.kind == atomOpen:
		if a.kind == atomClose || prev.wrapper || prev.tok.Delim != token.Brace {
			return ""
		}
		return " "
	case a.kind == atomClose:
		if a.wrapper || a.tok.Delim != token.Brace {
			return ""
		}
		return " "
	}

	if prev.kind == atomToken && prev.tok.Kind == token.Punct {
		pt := prev.tok
		pp := p.prevPrev
		switch {
		case pt.Spacing == token.Joint, pt.Char == '.', p.prevUnary:
			return ""
		case pt.Char == ':' && pp != nil && pp.kind == atomToken && pp.tok.IsPunct(':') && pp.tok.Spacing == token.Joint:
			return "" // a::b
		case pt.Char == '!' && a.kind == atomOpen && pp != nil && pp.kind == atomToken && pp.tok.Kind == token.Ident:
			return "" // name!(..)
		case pt.Char == '#' && a.kind == atomOpen && a.tok.Delim == token.Bracket:
			return "" // #[attr]
		}
	}

	if a.kind == atomToken && a.tok.Kind == token.Punct {
		switch a.tok.Char {
		case ',', ';', '.', '?', ':':
			return ""
		case '!':
			if prev.kind == atomToken && prev.tok.Kind == token.Ident && prev.tok.Keyword() == token.NotKeyword {
				return ""
			}
		}
	}

	// вызов или индексирование: f(x), a[0]
	if a.kind == atomOpen && a.tok.Delim != token.Brace && p.operandEnd {
		return ""
	}
	return " "
}

// leader печатает комментарии и пробелы перед первым токеном файла.
func (p *printer) leader() {
	if p.first.IsZero() {
		return
	}
	lead := p.opts.Files.Text(source.Span{File: p.first.File, Start: 0, End: p.first.Start})
	if lead != nil && lexer.OnlyTrivia(lead) {
		p.out.Write(lead)
	}
}

// trailer печатает хвост файла после последнего токена.
func (p *printer) trailer() {
	if p.last.IsZero() {
		return
	}
	f := p.opts.Files.Get(p.last.File)
	if f == nil || int(p.last.End) > len(f.Content) {
		return
	}
	if tail := f.Content[p.last.End:]; lexer.OnlyTrivia(tail) {
		p.out.Write(tail)
	}
}
