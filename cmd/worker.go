package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/undefender/internal/adapter"
	"github.com/mouse-blink/undefender/internal/domain"
)

// newWorkerCmd is the entry point of a worker process started for process
// isolation. It reads one task from stdin and writes its result to stdout.
func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:          adapter.WorkerCommand,
		Short:        "Resolve one work chunk read from stdin",
		Hidden:       true,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if verboseFlag {
				level = slog.LevelDebug
			}

			logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
				With("component", "worker")

			worker := domain.NewWorker(adapter.NewSandbox, adapter.NewLocalJSFileAdapter(), logger)

			return adapter.ServeWorker(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), worker.Resolve)
		},
	}
}
