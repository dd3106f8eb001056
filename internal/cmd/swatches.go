package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wudi/colorkit/document"
	"github.com/wudi/colorkit/observability"
	"github.com/wudi/colorkit/swatch"
)

func (a *app) newSwatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swatches FILE",
		Short: "Convert a swatch list and print a report",
		Long: `Convert every swatch in FILE (.yaml, .toml or .cxf) to a canonical record.

The report is printed as Markdown, or JSON with --json. With --output it is
written to a file instead; a .html extension renders HTML.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runSwatches,
	}
	cmd.Flags().StringP("output", "o", "", "Write the report to this file (.md or .html)")
	cmd.Flags().Bool("spot-tint", false, "Apply spot color tints to their process definitions")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"swatches.output", "output"},
		{"swatches.spot-tint", "spot-tint"},
	}
	for _, bf := range bindFlags {
		if err := a.v.BindPFlag(bf.key, cmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
	return cmd
}

func (a *app) runSwatches(cmd *cobra.Command, args []string) error {
	entries, err := swatch.Load(args[0])
	if err != nil {
		return err
	}
	e, err := a.engine(cmd.Context())
	if err != nil {
		return err
	}

	opts := []document.Option{
		document.WithEngine(e),
		document.WithLogger(observability.NewSlogLogger(a.logger)),
	}
	if a.v.GetBool("swatches.spot-tint") {
		opts = append(opts, document.WithSpotTint())
	}
	report := swatch.Build(entries, document.NewNormalizer(opts...))

	if failed := report.Failed(); failed > 0 {
		a.logger.Warn("Some swatches could not be converted", "file", args[0], "failed", failed)
	}

	if out := a.v.GetString("swatches.output"); out != "" {
		if err := swatch.SaveReport(out, report); err != nil {
			return err
		}
		a.logger.Info("Report written", "id", report.ID, "path", out, "rows", len(report.Rows))
		return nil
	}
	if a.v.GetBool("json") {
		return writeJSON(cmd, report)
	}
	return report.WriteMarkdown(cmd.OutOrStdout())
}
