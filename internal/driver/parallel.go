package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"postfix/internal/diag"
	"postfix/internal/source"
	"postfix/internal/trace"
)

// ListFiles returns the sorted source files under root. Hidden directories
// and Cargo's target/ are skipped.
func ListFiles(root string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{".rs"}
	}
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "target") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// RewriteDir rewrites every matching file under dir in parallel.
func RewriteDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*Result, error) {
	files, err := ListFiles(dir, opts.extensions())
	if err != nil {
		return nil, nil, err
	}
	return RewritePaths(ctx, dir, files, opts)
}

// RewritePaths rewrites files in parallel (opts.Jobs at a time). Results
// are in input order. The error is only set when ctx is cancelled; per-file
// problems are in each Result.Bag.
func RewritePaths(ctx context.Context, baseDir string, files []string, opts Options) (*source.FileSet, []*Result, error) {
	fileSet := source.NewFileSetWithBase(baseDir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "rewrite-paths", trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithParent(ctx, span.ID())

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Загружаем заранее: FileSet не потокобезопасен на запись
	results := make([]*Result, len(files))
	ids := make([]source.FileID, len(files))
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			r := &Result{Path: path, FileID: noFile, Bag: diag.NewBag(opts.maxDiagnostics())}
			loadError(r.Bag, err)
			results[i] = r
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			continue
		}
		ids[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i := range files {
		if results[i] != nil {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// индекс i уникален для горутины, мьютекс не нужен
			results[i] = RewriteSource(gctx, fileSet, ids[i], opts)
			results[i].Path = files[i]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
