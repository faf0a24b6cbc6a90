package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"postfix/internal/diag"
	"postfix/internal/lexer"
	"postfix/internal/logs"
	"postfix/internal/printer"
	"postfix/internal/rewrite"
	"postfix/internal/source"
	"postfix/internal/trace"
)

// Result is the outcome of rewriting one file.
type Result struct {
	Path        string
	FileID      source.FileID
	Output      string // весь новый текст файла
	Changed     bool
	Wrapped     bool // postfix_macros! wrappers were removed
	Invocations int
	Cached      bool
	Elapsed     time.Duration
	Bag         *diag.Bag
}

// Failed reports whether the file could not be rewritten.
func (r *Result) Failed() bool {
	return r == nil || r.Bag.HasErrors()
}

// RewriteFile loads path into a fresh FileSet and rewrites it.
// Load failures are returned both as error and as an IO diagnostic.
func RewriteFile(ctx context.Context, path string, opts Options) (*source.FileSet, *Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		res := &Result{Path: path, Bag: diag.NewBag(opts.maxDiagnostics())}
		loadError(res.Bag, err)
		return fs, res, err
	}
	return fs, RewriteSource(ctx, fs, id, opts), nil
}

// RewriteString rewrites an in-memory snippet. The first error diagnostic,
// if any, is returned as an error.
func RewriteString(src string, opts Options) (string, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	res := RewriteSource(context.Background(), fs, id, opts)
	for _, d := range res.Bag.Items() {
		if d.Severity == diag.SevError {
			return "", fmt.Errorf("%s at %s: %s", d.Code.ID(), d.Primary, d.Message)
		}
	}
	return res.Output, nil
}

// RewriteSource rewrites file id of fs. It never fails as a whole: problems
// end up in Result.Bag and leave Output equal to the original text.
func RewriteSource(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) *Result {
	file := fs.Get(id)
	res := &Result{FileID: id, Bag: diag.NewBag(opts.maxDiagnostics())}
	if file == nil {
		res.Bag.Add(diag.NewError(diag.IOLoadError, source.Span{File: id}, "unknown file"))
		return res
	}
	res.Path = file.Path
	res.Output = string(file.Content)

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file:"+file.Path, trace.ParentSpan(ctx))
	ctx = logs.WithFile(ctx, file.Path)
	log := opts.logger()
	started := time.Now()

	defer func() {
		res.Elapsed = time.Since(started)
		status := StatusUnchanged
		switch {
		case res.Failed():
			status = StatusError
		case res.Changed:
			status = StatusDone
		}
		span.WithExtra("invocations", strconv.Itoa(res.Invocations)).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			End(string(status))
		emit(opts.Progress, Event{File: file.Path, Stage: StagePrint, Status: status, Elapsed: res.Elapsed, Invocations: res.Invocations})
	}()

	key := cacheKey(Digest(file.Hash), opts)
	if opts.Cache != nil {
		var entry CacheEntry
		ok, err := opts.Cache.Get(key, &entry)
		switch {
		case err != nil:
			log.WarnContext(ctx, "cache read failed", "error", err)
		case ok:
			log.DebugContext(ctx, "cache hit", "invocations", entry.Invocations)
			res.Output, res.Changed, res.Wrapped, res.Invocations, res.Cached =
				entry.Output, entry.Changed, entry.Wrapped, entry.Invocations, true
			checkMode(res, file, opts)
			return res
		}
	}

	// lex
	emit(opts.Progress, Event{File: file.Path, Stage: StageLex, Status: StatusWorking})
	stop := opts.Timer.Track("lex")
	ts := lexer.ParseFile(file, lexer.Options{Reporter: diag.BagReporter{Bag: res.Bag}})
	stop()
	if res.Bag.HasErrors() {
		log.DebugContext(ctx, "lexing failed", "diagnostics", res.Bag.Len())
		return res
	}

	bodies, wrapped, bad := unwrapMacros(ts)
	if bad != nil {
		res.Bag.Add(*bad)
		return res
	}

	// rewrite
	emit(opts.Progress, Event{File: file.Path, Stage: StageRewrite, Status: StatusWorking})
	stop = opts.Timer.Track("rewrite")
	count := 0
	rw := rewrite.New(rewrite.Options{
		MaxDepth: opts.maxDepth(),
		Hook:     TraceHook(tracer, span.ID()),
		OnInvocation: func(inv rewrite.Invocation) {
			count++
			traceInvocation(tracer, span.ID(), inv)
		},
	})
	out, err := rewriteBodies(rw, bodies)
	stop()
	if err != nil {
		reportRewriteError(res.Bag, id, err)
		log.DebugContext(ctx, "rewrite failed", "error", err)
		return res
	}
	res.Invocations, res.Wrapped = count, wrapped

	// print
	if count > 0 || wrapped {
		emit(opts.Progress, Event{File: file.Path, Stage: StagePrint, Status: StatusWorking})
		stop = opts.Timer.Track("print")
		res.Output = printer.Print(out, printer.Options{Mode: opts.Mode, Files: fs})
		stop()
		res.Changed = res.Output != string(file.Content)
	}

	if opts.Verify && res.Changed {
		if ok, msg := VerifyOutput(file.Path, res.Output, opts.maxDepth()); !ok {
			res.Bag.Add(diag.NewError(diag.RewInternal, source.Span{File: id}, msg))
			res.Output, res.Changed = string(file.Content), false
			return res
		}
	}

	if opts.Cache != nil {
		entry := CacheEntry{Output: res.Output, Changed: res.Changed, Wrapped: res.Wrapped, Invocations: res.Invocations}
		if err := opts.Cache.Put(key, &entry); err != nil {
			log.WarnContext(ctx, "cache write failed", "error", err)
		}
	}
	checkMode(res, file, opts)
	return res
}

// checkMode adds the "would change" diagnostic for --check runs.
func checkMode(res *Result, file *source.File, opts Options) {
	if !opts.Check || !res.Changed {
		return
	}
	end := min(len(file.Content), 1)
	res.Bag.Add(diag.New(diag.SevWarning, diag.RewNotFormatted,
		source.Span{File: file.ID, Start: 0, End: uint32(end)}, // #nosec G115 -- 0 or 1
		fmt.Sprintf("%d postfix macro invocation(s) would be rewritten", res.Invocations)))
}
