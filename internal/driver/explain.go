package driver

import (
	"context"

	"postfix/internal/diag"
	"postfix/internal/lexer"
	"postfix/internal/printer"
	"postfix/internal/rewrite"
	"postfix/internal/scan"
	"postfix/internal/source"
	"postfix/internal/token"
	"postfix/internal/trace"
)

// Site is one postfix invocation as `explain` shows it.
type Site struct {
	Name     string
	Receiver string // receiver, compact
	Result   string // name!(receiver, args), compact
	Span     source.Span
	Start    source.LineCol
	End      source.LineCol
	Depth    int
	Tokens   int // receiver size, groups counted recursively
	Steps    []scan.Step
}

// Explain lists the invocations in file id in rewrite order (innermost and
// leftmost first). withSteps keeps the scanner decisions for each one.
// Nothing is printed or written.
func Explain(ctx context.Context, fs *source.FileSet, id source.FileID, withSteps bool, opts Options) ([]Site, *diag.Bag) {
	bag := diag.NewBag(opts.maxDiagnostics())
	file := fs.Get(id)
	if file == nil {
		bag.Add(diag.NewError(diag.IOLoadError, source.Span{File: id}, "unknown file"))
		return nil, bag
	}
	log := opts.logger()

	ts := lexer.ParseFile(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		return nil, bag
	}
	bodies, _, bad := unwrapMacros(ts)
	if bad != nil {
		bag.Add(*bad)
		return nil, bag
	}

	var (
		sites   []Site
		pending []scan.Step
	)
	var hook scan.Hook
	if withSteps {
		hook = func(s scan.Step) { pending = append(pending, s) }
	}
	tracer := trace.FromContext(ctx)
	rw := rewrite.New(rewrite.Options{
		MaxDepth: opts.maxDepth(),
		Hook:     chainHooks(hook, TraceHook(tracer, 0)),
		OnInvocation: func(inv rewrite.Invocation) {
			site := siteOf(fs, inv)
			site.Steps, pending = pending, nil
			sites = append(sites, site)
		},
	})
	if _, err := rewriteBodies(rw, bodies); err != nil {
		reportRewriteError(bag, id, err)
		log.DebugContext(ctx, "explain stopped", "file", file.Path, "error", err)
	}
	return sites, bag
}

func siteOf(fs *source.FileSet, inv rewrite.Invocation) Site {
	span := inv.Name.Span
	if len(inv.Receiver) > 0 {
		span = inv.Receiver[0].Span.Cover(inv.Name.Span)
	}
	start, end := fs.Resolve(span)
	call := token.Stream{inv.Name, token.NewPunct('!', token.Alone, inv.Site), inv.Result}
	return Site{
		Name:     inv.Name.Text,
		Receiver: printer.Print(inv.Receiver, printer.Options{}),
		Result:   printer.Print(call, printer.Options{}),
		Span:     span,
		Start:    start,
		End:      end,
		Depth:    inv.Depth,
		Tokens:   inv.Receiver.Count(),
	}
}
