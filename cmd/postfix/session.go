package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"postfix/internal/config"
	"postfix/internal/logs"
	"postfix/internal/observ"
	"postfix/internal/prof"
	"postfix/internal/trace"
)

// session is the per-run state set up from persistent flags.
type session struct {
	cfg       config.Config
	logger    *slog.Logger
	logCloser io.Closer
	tracer    trace.Tracer
	stopTrace func()
	prof      *prof.Session
	timer     *observ.Timer
}

var sess = &session{cfg: config.Default(), logger: logs.Discard(), tracer: trace.Nop}

func startSession(cmd *cobra.Command, _ []string) error {
	flags := cmd.Root().PersistentFlags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if cfgPath != "" {
		sess.cfg, err = config.LoadFile(cfgPath)
	} else {
		sess.cfg, err = config.Load(".")
	}
	if err != nil {
		return err
	}

	logOpts := logs.Options{
		Level:   sess.cfg.Log.Level,
		File:    sess.cfg.Log.File,
		Journal: sess.cfg.Log.Journal,
		Writer:  cmd.ErrOrStderr(),
	}
	if flags.Changed("log-level") {
		logOpts.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-file") {
		logOpts.File, _ = flags.GetString("log-file")
	}
	sess.logger, sess.logCloser, err = logs.New(logOpts)
	if err != nil {
		return err
	}
	if sess.cfg.Path != "" {
		sess.logger.Debug("config loaded", "path", sess.cfg.Path)
	}

	if sess.stopTrace, err = setupTracing(cmd); err != nil {
		return err
	}
	if sess.prof, err = setupProfiling(cmd); err != nil {
		return err
	}

	if timings, _ := flags.GetBool("timings"); timings {
		sess.timer = observ.NewTimer()
	}
	return nil
}

// closeSession flushes everything startSession opened. runErr decides
// whether the trace ring is dumped.
func closeSession(w io.Writer, runErr error) {
	if sess.timer != nil {
		fmt.Fprint(w, sess.timer.Summary())
	}
	if err := sess.prof.Stop(); err != nil {
		fmt.Fprintf(w, "profiling: %v\n", err)
	}
	if runErr != nil {
		if _, ok := runErr.(exitCode); !ok {
			dumpTraceRing(w, sess.tracer)
		}
	}
	if sess.stopTrace != nil {
		sess.stopTrace()
	}
	if sess.logCloser != nil {
		if err := sess.logCloser.Close(); err != nil {
			fmt.Fprintf(w, "log: %v\n", err)
		}
	}
}
