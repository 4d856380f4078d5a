package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/sprintboard/internal/report"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var (
		sprint string
		pdf    bool
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a sprint report",
		Long: `Print the report of a sprint, the active one by default.

Examples:
  sprintboard report
  sprintboard report --sprint "Sprint 23" --pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			gw, err := openGateway(ctx, cfg, logger)
			if err != nil {
				return err
			}
			eng, err := newEngine(ctx, cfg, logger, gw)
			if err != nil {
				return err
			}

			r, err := report.Build(eng.Store().Snapshot(), sprint, time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := report.WriteText(out, r); err != nil {
				return err
			}
			if !pdf {
				return nil
			}
			if outDir == "" {
				outDir = cfg.ReportsDir
			}
			path, err := report.WritePDF(r, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "PDF saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&sprint, "sprint", "", "sprint name (defaults to the active sprint)")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "also write a PDF")
	cmd.Flags().StringVar(&outDir, "out", "", "PDF directory (overrides reports_dir)")
	return cmd
}
