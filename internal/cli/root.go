// Package cli wires configuration, gateways and the engine into the
// sprintboard commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/akyairhashvil/sprintboard/internal/config"
	"github.com/akyairhashvil/sprintboard/internal/engine"
	"github.com/akyairhashvil/sprintboard/internal/gateway"
	"github.com/akyairhashvil/sprintboard/internal/gateway/memory"
	"github.com/akyairhashvil/sprintboard/internal/gateway/remote"
	"github.com/akyairhashvil/sprintboard/internal/store"
	"github.com/akyairhashvil/sprintboard/internal/util"
)

type rootOptions struct {
	configFile string
}

// NewRootCommand builds the command tree.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "sprintboard",
		Short: "Sprint board for a design team",
		Long: `sprintboard keeps a local, optimistic copy of the team's tasks, sprints,
members and counterparties in sync with a persistence service.

Run "sprintboard serve" for the service and "sprintboard board" for the terminal board.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "config file (YAML)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newBoardCmd(opts))
	cmd.AddCommand(newReportCmd(opts))
	cmd.AddCommand(newBriefCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

// Execute runs the root command against os.Args.
func Execute(version string) error {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func (o *rootOptions) load(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, util.NewLogger(logOut, cfg.Log.Level, cfg.Log.Format), nil
}

// openGateway returns the gateway the config selects. The in-memory gateway
// is seeded with demo data when cfg.Seed is set.
func openGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (gateway.Gateway, error) {
	switch cfg.Gateway {
	case config.GatewayRemote:
		return remote.New(cfg.RemoteURL, remote.WithLogger(logger)), nil
	default:
		gw := memory.New(memory.WithLogger(logger))
		if cfg.Seed {
			if err := gateway.SeedDemo(ctx, gw, time.Now()); err != nil {
				return nil, err
			}
		}
		return gw, nil
	}
}

// newEngine builds an engine over gw and loads the store. A failed load is
// returned alongside the engine so callers can decide whether to go on.
func newEngine(ctx context.Context, cfg *config.Config, logger *slog.Logger, gw gateway.Gateway) (*engine.Engine, error) {
	eng := engine.New(store.New(), gw,
		engine.WithPolicy(gateway.PolicyFromConfig(cfg.Retry, logger)),
		engine.WithActor(cfg.ActorID),
		engine.WithLogger(logger),
	)
	if err := eng.Load(ctx); err != nil {
		return eng, fmt.Errorf("load board: %w", err)
	}
	return eng, nil
}
