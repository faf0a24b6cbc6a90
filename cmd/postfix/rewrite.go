package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"postfix/internal/diag"
	"postfix/internal/diagfmt"
	"postfix/internal/driver"
	"postfix/internal/highlight"
	"postfix/internal/printer"
	"postfix/internal/source"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [flags] [file.rs|directory]",
	Short: "Rewrite postfix macro invocations into prefix form",
	Long: `Rewrite turns recv.name!(args) into name!(recv, args). A single file is
printed to stdout unless --write is given; a directory needs --write or --check.
Without an argument the source is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().BoolP("write", "w", false, "write the result back to the source files")
	rewriteCmd.Flags().Bool("check", false, "report files that would change and exit with status 1")
	rewriteCmd.Flags().String("format", "", "print mode (compact|layout), default from [output].format")
	rewriteCmd.Flags().Bool("highlight", false, "syntax-highlight output printed to a terminal")
	rewriteCmd.Flags().String("style", "", "chroma style for --highlight")
	rewriteCmd.Flags().Int("jobs", 0, "max parallel files for directories (0=auto)")
	rewriteCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	rewriteCmd.Flags().Bool("verify", false, "re-lex and re-rewrite every result before accepting it")
	rewriteCmd.Flags().Bool("no-cache", false, "disable the result cache")
	rewriteCmd.Flags().Int("max-depth", 0, "nesting limit, default from [rewrite].max_depth")
	rewriteCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json|short)")
	rewriteCmd.Flags().Bool("with-notes", false, "include diagnostic notes")
}

type rewriteFlags struct {
	write, check, verify, highlight, withNotes, quiet bool
	diagFormat, style, ui                             string
}

func runRewrite(cmd *cobra.Command, args []string) error {
	opts, flags, err := rewriteOptions(cmd)
	if err != nil {
		return err
	}
	if flags.write && flags.check {
		return fmt.Errorf("--write and --check are mutually exclusive")
	}

	ctx := cmd.Context()
	var (
		fs      *source.FileSet
		results []*driver.Result
	)

	switch {
	case len(args) == 0 || args[0] == "-":
		if flags.write {
			return fmt.Errorf("--write needs a file or directory")
		}
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		fs = source.NewFileSet()
		id := fs.AddVirtual("<stdin>", src)
		results = []*driver.Result{driver.RewriteSource(ctx, fs, id, opts)}

	default:
		st, err := os.Stat(args[0])
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}
		if !st.IsDir() {
			var res *driver.Result
			fs, res, _ = driver.RewriteFile(ctx, args[0], opts)
			results = []*driver.Result{res}
			break
		}
		if !flags.write && !flags.check {
			return fmt.Errorf("%s is a directory: use --write or --check", args[0])
		}
		files, err := driver.ListFiles(args[0], opts.Extensions)
		if err != nil {
			return fmt.Errorf("failed to list files: %w", err)
		}
		withUI, err := wantProgress(flags.ui, flags.quiet, len(files))
		if err != nil {
			return err
		}
		if withUI {
			fs, results, err = runRewriteWithUI(ctx, "postfix rewrite "+args[0], args[0], files, opts)
		} else {
			fs, results, err = driver.RewritePaths(ctx, args[0], files, opts)
		}
		if err != nil {
			return err
		}
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	failed, changed := 0, 0
	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Failed() {
			failed++
		} else if res.Changed {
			changed++
		}
		if flags.write {
			if err := driver.WriteBack(res); err != nil {
				failed++
				sess.logger.Error("write failed", "file", res.Path, "error", err)
			} else if res.Changed {
				sess.logger.Info("rewrote file", "file", res.Path, "invocations", res.Invocations)
			}
		}
		bag.Merge(res.Bag)
	}
	bag.Sort()

	if err := reportDiagnostics(cmd, bag, fs, flags); err != nil {
		return err
	}

	// одиночный файл без --write/--check печатаем
	if !flags.write && !flags.check && len(results) == 1 && !results[0].Failed() {
		if err := printResult(cmd, results[0].Output, flags); err != nil {
			return err
		}
	}

	if !flags.quiet && (flags.write || flags.check) {
		verb := "rewrote"
		if flags.check {
			verb = "would rewrite"
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %d of %d file(s)", verb, changed, len(results))
		if failed > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), ", %d failed", failed)
		}
		fmt.Fprintln(cmd.ErrOrStderr())
	}

	if failed > 0 || (flags.check && changed > 0) {
		return exitCode(1)
	}
	return nil
}

// rewriteOptions merges config values with the flags the user set.
func rewriteOptions(cmd *cobra.Command) (driver.Options, rewriteFlags, error) {
	cfg := sess.cfg
	f := cmd.Flags()

	var flags rewriteFlags
	flags.write, _ = f.GetBool("write")
	flags.check, _ = f.GetBool("check")
	flags.verify, _ = f.GetBool("verify")
	flags.withNotes, _ = f.GetBool("with-notes")
	flags.diagFormat, _ = f.GetString("diag-format")
	flags.ui, _ = f.GetString("ui")
	flags.quiet, _ = cmd.Root().PersistentFlags().GetBool("quiet")

	flags.highlight = cfg.Output.Highlight
	if f.Changed("highlight") {
		flags.highlight, _ = f.GetBool("highlight")
	}
	flags.style = cfg.Output.Style
	if f.Changed("style") {
		flags.style, _ = f.GetString("style")
	}
	if flags.highlight && !highlight.HasStyle(flags.style) {
		return driver.Options{}, flags, fmt.Errorf("unknown highlight style %q", flags.style)
	}

	format := cfg.Output.Format
	if f.Changed("format") {
		format, _ = f.GetString("format")
	}
	mode, ok := printer.ParseMode(format)
	if !ok {
		return driver.Options{}, flags, fmt.Errorf("unknown format: %s", format)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return driver.Options{}, flags, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	opts := driver.Options{
		MaxDepth:       cfg.Rewrite.MaxDepth,
		MaxDiagnostics: maxDiagnostics,
		Mode:           mode,
		Jobs:           cfg.Rewrite.Jobs,
		Extensions:     cfg.Rewrite.Extensions,
		Check:          flags.check,
		Verify:         flags.verify,
		Timer:          sess.timer,
		Logger:         sess.logger,
	}
	if f.Changed("max-depth") {
		opts.MaxDepth, _ = f.GetInt("max-depth")
	}
	if f.Changed("jobs") {
		opts.Jobs, _ = f.GetInt("jobs")
	}

	noCache, _ := f.GetBool("no-cache")
	if cfg.Cache.Enabled && !noCache {
		dir, err := cfg.CacheDir()
		if err == nil {
			opts.Cache, err = driver.OpenDiskCache(dir)
		}
		if err != nil {
			// без кеша работать можно
			sess.logger.Warn("result cache disabled", "error", err)
			opts.Cache = nil
		}
	}
	return opts, flags, nil
}

func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, flags rewriteFlags) error {
	if bag.Len() == 0 || fs == nil {
		return nil
	}
	out := cmd.ErrOrStderr()
	switch flags.diagFormat {
	case "pretty":
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: flags.withNotes,
		})
	case "short":
		if s := diag.FormatShortDiagnostics(bag.Pointers(), fs, flags.withNotes); s != "" {
			fmt.Fprintln(out, s)
		}
	case "json":
		if err := diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     flags.withNotes,
		}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown diag format: %s", flags.diagFormat)
	}
	return nil
}

func printResult(cmd *cobra.Command, output string, flags rewriteFlags) error {
	out := cmd.OutOrStdout()
	if flags.highlight && useColor(cmd, os.Stdout) {
		return highlight.Write(out, output, highlight.Options{Style: flags.style})
	}
	_, err := io.WriteString(out, output)
	if err == nil && output != "" && !strings.HasSuffix(output, "\n") {
		_, err = io.WriteString(out, "\n")
	}
	return err
}
