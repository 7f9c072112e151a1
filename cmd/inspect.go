package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mouse-blink/undefender/internal/domain"
	m "github.com/mouse-blink/undefender/internal/model"
)

const inspectLongDescription = `Inspect matches the JSDefender signature of a script and reports the
storage binding, the eval bootstraps and how many encrypted blocks, storage
accesses and arithmetic expressions were found. Nothing is evaluated.`

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "inspect <input>",
		Short:        "Show the protection signature without evaluating anything",
		Long:         inspectLongDescription,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			logger := newCommandLogger(cmd.ErrOrStderr(), verboseFlag)

			return currentWorkflow(cmd, cfg, logger).Inspect(cmd.Context(), domain.InspectArgs{
				Input: m.Path(args[0]),
			})
		},
	}
}
