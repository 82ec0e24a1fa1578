package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lite-lake/ipsync/internal/application/orchestrator"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration",
		Long:  "Load the configuration, validate every entity and resolve all secret references.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wf := orchestrator.NewWorkflow(ConfigPath)
			cfg, err := wf.LoadAndValidate(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := wf.ResolveSecrets(cfg); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, SuccessStyle.Render("Configuration is valid."))
			fmt.Fprint(out, RenderGroups(cfg))
			return nil
		},
	}
}
