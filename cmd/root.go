// Package cmd provides the root command and CLI setup for undefender.
package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mouse-blink/undefender/internal/adapter"
	"github.com/mouse-blink/undefender/internal/config"
	"github.com/mouse-blink/undefender/internal/controller"
	"github.com/mouse-blink/undefender/internal/domain"
	m "github.com/mouse-blink/undefender/internal/model"
)

// workflow overrides the per-command workflow when set. Tests swap in a mock.
var workflow domain.Workflow

var outputFlag string
var verboseFlag bool
var parallelFlag int
var engineFlag string
var isolationFlag string
var timeoutFlag time.Duration
var noColorsFlag bool
var noFormatFlag bool
var noNormalizeFlag bool
var noRenameFlag bool
var reportFlag string
var configFlag string
var argFlags []string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func init() {
	rootCmd.AddCommand(newInspectCmd(), newWorkerCmd())
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undefender [flags] <input>",
		Short: "JSDefender deobfuscator",
		Long: `Undefender restores scripts protected by JSDefender.

It recognises the protection's eval bootstrap, replays it in an embedded
JavaScript engine and replaces every encrypted block, storage access and
constant arithmetic expression with the literal it evaluates to.

The input is a file path, an http(s) URL or "-" for stdin. Files ending in
.gz, .zst or .lz4 are decompressed first.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			logger := newCommandLogger(cmd.ErrOrStderr(), verboseFlag)

			opts := cfg.RunOptions()
			opts.Arguments = argFlags

			return currentWorkflow(cmd, cfg, logger).Deobfuscate(cmd.Context(), domain.DeobfuscateArgs{
				Input:     m.Path(args[0]),
				Output:    m.Path(outputFlag),
				Report:    m.Path(reportFlag),
				Verbose:   verboseFlag,
				Highlight: cfg.Colors && outputFlag == "" && controller.IsTTY(cmd.OutOrStdout()),
				Options:   opts,
			})
		},
	}

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print every resolution and enable debug logging")
	cmd.PersistentFlags().BoolVar(&noColorsFlag, "no-colors", false, "disable the interactive display and syntax highlighting")
	cmd.PersistentFlags().StringVar(&configFlag, "config", "", "configuration file (default "+config.DefaultFile+" when present)")

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the result to a file instead of stdout")
	cmd.Flags().IntVarP(&parallelFlag, "parallel", "p", 0, "number of parallel workers (default: number of CPUs)")
	cmd.Flags().StringVar(&engineFlag, "engine", adapter.EngineGoja, "JavaScript engine: goja or otto")
	cmd.Flags().StringVar(&isolationFlag, "isolation", domain.IsolationGoroutine, "worker isolation: goroutine or process")
	cmd.Flags().DurationVar(&timeoutFlag, "timeout", 0, "per-evaluation timeout, 0 disables it")
	cmd.Flags().BoolVar(&noFormatFlag, "no-format", false, "do not pretty-print the result")
	cmd.Flags().BoolVar(&noNormalizeFlag, "no-normalize", false, "keep obj[\"prop\"] accesses as they are")
	cmd.Flags().BoolVar(&noRenameFlag, "no-rename", false, "keep generated identifiers as they are")
	cmd.Flags().StringVar(&reportFlag, "report", "", "write a YAML or JSON report of the run")
	cmd.Flags().StringArrayVar(&argFlags, "arg", nil, "argument passed to the bootstrap (can be repeated)")

	return cmd
}

// resolveConfig loads the configuration file and lays explicitly set flags over it.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()

	if flags.Changed("parallel") {
		cfg.Workers = parallelFlag
	}

	if flags.Changed("engine") {
		cfg.Engine = engineFlag
	}

	if flags.Changed("isolation") {
		cfg.Isolation = isolationFlag
	}

	if flags.Changed("timeout") {
		cfg.EvalTimeout = timeoutFlag
	}

	if flags.Changed("no-colors") {
		cfg.Colors = !noColorsFlag
	}

	if flags.Changed("no-format") {
		cfg.Format = !noFormatFlag
	}

	if flags.Changed("no-normalize") {
		cfg.NormalizeProperties = !noNormalizeFlag
	}

	if flags.Changed("no-rename") {
		cfg.RenameIdentifiers = !noRenameFlag
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// currentWorkflow builds the workflow for one command invocation.
func currentWorkflow(cmd *cobra.Command, cfg config.Config, logger *slog.Logger) domain.Workflow {
	if workflow != nil {
		return workflow
	}

	ui := controller.NewUI(cmd, cfg.Colors && controller.IsTTY(cmd.ErrOrStderr()))

	return domain.NewWorkflow(
		ui,
		adapter.NewReportStore(),
		adapter.NewLocalJSFileAdapter(),
		logger,
		domain.WithStdio(cmd.InOrStdin(), cmd.OutOrStdout()),
	)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
