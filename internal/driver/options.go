package driver

import (
	"log/slog"

	"postfix/internal/logs"
	"postfix/internal/observ"
	"postfix/internal/printer"
	"postfix/internal/scan"
)

const defaultMaxDiagnostics = 100

// Options control one rewrite run. The zero value rewrites in Compact mode
// with default limits and no cache, logging or progress.
type Options struct {
	MaxDepth       int          // 0 → scan.DefaultMaxDepth
	MaxDiagnostics int          // per file, 0 → 100
	Mode           printer.Mode // как печатать результат
	Jobs           int          // parallel files, 0 → GOMAXPROCS
	Extensions     []string     // directory walk filter, nil → .rs

	Check  bool // only report files that would change
	Verify bool // re-lex and re-rewrite the output

	Cache    *DiskCache
	Timer    *observ.Timer
	Progress ProgressSink
	Logger   *slog.Logger
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return scan.DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return []string{".rs"}
	}
	return o.Extensions
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logs.Discard()
	}
	return o.Logger
}
