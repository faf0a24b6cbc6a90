package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"postfix/internal/diagfmt"
	"postfix/internal/driver"
	"postfix/internal/source"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] file.rs",
	Short: "List the postfix invocations of a file and their receivers",
	Long: `Explain shows, for every postfix macro invocation, which tokens the scanner
takes as its receiver and what the call becomes. Nothing is written.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().Bool("steps", false, "show every scanner decision")
	explainCmd.Flags().Bool("json", false, "print JSON")
}

type stepJSON struct {
	Depth    int    `json:"depth"`
	Index    int    `json:"index"`
	Token    string `json:"token"`
	Decision string `json:"decision"`
	Note     string `json:"note,omitempty"`
}

type siteJSON struct {
	Name     string     `json:"name"`
	Receiver string     `json:"receiver"`
	Result   string     `json:"result"`
	Line     uint32     `json:"line"`
	Col      uint32     `json:"col"`
	EndLine  uint32     `json:"end_line"`
	EndCol   uint32     `json:"end_col"`
	Depth    int        `json:"depth"`
	Tokens   int        `json:"tokens"`
	Steps    []stepJSON `json:"steps,omitempty"`
}

func runExplain(cmd *cobra.Command, args []string) error {
	withSteps, _ := cmd.Flags().GetBool("steps")
	asJSON, _ := cmd.Flags().GetBool("json")
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}
	opts := driver.Options{
		MaxDepth:       sess.cfg.Rewrite.MaxDepth,
		MaxDiagnostics: maxDiagnostics,
		Logger:         sess.logger,
	}
	sites, bag := driver.Explain(cmd.Context(), fs, id, withSteps, opts)

	if bag.Len() > 0 {
		diagfmt.Pretty(cmd.ErrOrStderr(), bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, os.Stderr),
			Context:   2,
			ShowNotes: true,
		})
	}

	if asJSON {
		if err := writeSitesJSON(cmd.OutOrStdout(), sites); err != nil {
			return err
		}
	} else {
		writeSitesText(cmd.OutOrStdout(), fs.Get(id).Path, sites, useColor(cmd, os.Stdout))
	}
	if bag.HasErrors() {
		return exitCode(1)
	}
	return nil
}

func writeSitesText(w io.Writer, path string, sites []driver.Site, colored bool) {
	name := color.New(color.FgCyan, color.Bold)
	dim := color.New(color.Faint)
	if colored {
		name.EnableColor()
		dim.EnableColor()
	} else {
		name.DisableColor()
		dim.DisableColor()
	}

	if len(sites) == 0 {
		fmt.Fprintf(w, "%s: no postfix macro invocations\n", path)
		return
	}
	for _, s := range sites {
		fmt.Fprintf(w, "%s:%d:%d: %s receiver `%s` (%d tokens)\n",
			path, s.Start.Line, s.Start.Col, name.Sprint(s.Name+"!"), s.Receiver, s.Tokens)
		fmt.Fprintf(w, "    => %s\n", s.Result)
		for _, st := range s.Steps {
			line := fmt.Sprintf("    [%d] #%-3d %-13s %s", st.Depth, st.Index, st.Decision, st.Token.Describe())
			if st.Note != "" {
				line += " (" + st.Note + ")"
			}
			fmt.Fprintln(w, dim.Sprint(line))
		}
	}
}

func writeSitesJSON(w io.Writer, sites []driver.Site) error {
	out := make([]siteJSON, 0, len(sites))
	for _, s := range sites {
		js := siteJSON{
			Name:     s.Name,
			Receiver: s.Receiver,
			Result:   s.Result,
			Line:     s.Start.Line,
			Col:      s.Start.Col,
			EndLine:  s.End.Line,
			EndCol:   s.End.Col,
			Depth:    s.Depth,
			Tokens:   s.Tokens,
		}
		for _, st := range s.Steps {
			js.Steps = append(js.Steps, stepJSON{
				Depth:    st.Depth,
				Index:    st.Index,
				Token:    st.Token.Describe(),
				Decision: st.Decision.String(),
				Note:     st.Note,
			})
		}
		out = append(out, js)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
