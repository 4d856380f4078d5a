package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/sprintboard/internal/database"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var dbPath, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the service database as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			ctx := cmd.Context()
			db, err := database.Open(ctx, cfg.DBPath, database.WithLogger(logger))
			if err != nil {
				return err
			}
			defer db.Close()

			data, err := db.Export(ctx)
			if err != nil {
				return err
			}
			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			if err := os.WriteFile(outPath, data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite file (overrides db_path)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
