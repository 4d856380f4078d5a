package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/akyairhashvil/sprintboard/internal/brief"
	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/engine"
	"github.com/akyairhashvil/sprintboard/internal/tui"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

var errNoTerminal = errors.New("board needs an interactive terminal")

func newBoardCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the terminal board",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNoTerminal
			}
			// The board owns the screen, so logs go to a file.
			logFile, err := openBoardLog()
			if err != nil {
				return err
			}
			defer logFile.Close()

			cfg, logger, err := opts.load(logFile)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			return runBoard(ctx, cfg, logger)
		},
	}
}

func runBoard(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	gw, err := openGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}
	eng, err := newEngine(ctx, cfg, logger, gw)
	if err != nil {
		// The board shows the error slot and offers a retry.
		util.LogError(logger, "initial load failed", err)
	}

	merger := engine.NewMerger(eng.Store(), gw, logger)
	go func() {
		if err := merger.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			util.LogError(logger, "realtime merger stopped", err)
		}
	}()

	model := tui.NewBoardModel(ctx, eng, tui.Options{
		Extractor: brief.Fallback{Logger: logger},
		ActorID:   cfg.ActorID,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run board: %w", err)
	}
	return nil
}

func openBoardLog() (*os.File, error) {
	path := util.LogPath(config.AppName, "board")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open board log: %w", err)
	}
	return f, nil
}
