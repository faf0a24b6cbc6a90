package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"postfix/internal/driver"
	"postfix/internal/source"
	"postfix/internal/ui"
)

// uiModes maps --ui values to a check. The progress UI draws on stderr, so
// auto looks at stderr.
var uiModes = map[string]func() bool{
	"auto": func() bool { return isTerminal(os.Stderr) },
	"on":   func() bool { return true },
	"off":  func() bool { return false },
}

// wantProgress decides whether a directory run of n files gets the progress UI.
func wantProgress(flag string, quiet bool, n int) (bool, error) {
	key := strings.ToLower(strings.TrimSpace(flag))
	if key == "" {
		key = "auto"
	}
	enabled, ok := uiModes[key]
	if !ok {
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", flag)
	}
	return !quiet && n > 0 && enabled(), nil
}

type rewriteOutcome struct {
	fs      *source.FileSet
	results []*driver.Result
	err     error
}

// runRewriteWithUI runs RewritePaths while a Bubble Tea model shows progress.
func runRewriteWithUI(ctx context.Context, title, base string, files []string, opts driver.Options) (*source.FileSet, []*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan rewriteOutcome, 1)

	go func() {
		o := opts
		o.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.RewritePaths(ctx, base, files, o)
		outcomeCh <- rewriteOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// модель больше не читает канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
