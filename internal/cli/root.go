// Package cli implements the roster command line tool: offline queries
// against the dataset and a smoke run against a live server.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	service "github.com/okian/floww/internal/app"
	"github.com/okian/floww/pkg/logger"
	"github.com/spf13/cobra"
)

const defaultTimeout = 30 * time.Second

type options struct {
	dataset  string
	logLevel string
	timeout  time.Duration
}

// NewRootCommand builds the roster command tree.
func NewRootCommand() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "roster",
		Short: "Query the Floww directory and smoke test a running server",
		Long: `roster reads the same dataset as the Floww server.

Offline commands (pending, search, employee, chart) load the dataset
locally. smoke calls a running server and checks its behaviour over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return logger.SetLevelString(o.logLevel)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&o.dataset, "dataset", "", "YAML dataset replacing the embedded one")
	root.PersistentFlags().StringVar(&o.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	root.PersistentFlags().DurationVar(&o.timeout, "timeout", defaultTimeout, "Operation timeout")

	root.AddCommand(
		newPendingCommand(o),
		newSearchCommand(o),
		newEmployeeCommand(o),
		newChartCommand(o),
		newSmokeCommand(o),
	)
	return root
}

// withService starts a single-worker service over the dataset, runs fn and
// stops the service again.
func withService(ctx context.Context, o *options, fn func(*service.Service) error) error {
	svc := service.New(
		service.WithWorkerCount(1),
		service.WithDatasetPath(o.dataset),
		service.WithLogger(logger.Named("roster")),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()
	return fn(svc)
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
