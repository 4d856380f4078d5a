package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/sprintboard/internal/brief"
	"github.com/akyairhashvil/sprintboard/internal/models"
)

func newBriefCmd(opts *rootOptions) *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "brief [text]",
		Short: "Extract a task draft from a request",
		Long: `Extract a task draft from free-form request text. The text is read from
the arguments, or from stdin when there are none.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			text := strings.Join(args, " ")
			if text == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read brief: %w", err)
				}
				text = string(raw)
			}

			ctx := cmd.Context()
			b, err := brief.Fallback{Logger: logger}.Extract(ctx, text)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printBrief(out, b)
			if !create {
				return nil
			}

			gw, err := openGateway(ctx, cfg, logger)
			if err != nil {
				return err
			}
			eng, err := newEngine(ctx, cfg, logger, gw)
			if err != nil {
				return err
			}
			task, err := eng.CreateTask(ctx, brief.ToDraft(b))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Created %s in %s\n", task.ID, task.Sprint)
			return nil
		},
	}
	cmd.Flags().BoolVar(&create, "create", false, "create the task")
	return cmd
}

func printBrief(w io.Writer, b models.Brief) {
	fmt.Fprintf(w, "Title: %s\n", b.Title)
	fmt.Fprintf(w, "Category: %s\n", b.Category)
	fmt.Fprintf(w, "Priority: %s\n", b.Priority)
	fmt.Fprintf(w, "Points: %d\n", b.Points)
	if b.Requester != "" {
		fmt.Fprintf(w, "Requester: %s\n", b.Requester)
	}
	if b.Sprint != "" {
		fmt.Fprintf(w, "Sprint: %s\n", b.Sprint)
	}
	for _, link := range b.ReferenceLinks {
		fmt.Fprintf(w, "Link: %s\n", link)
	}
}
