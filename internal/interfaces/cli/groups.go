package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lite-lake/ipsync/internal/application/orchestrator"
)

func newGroupsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List resolve groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := orchestrator.NewWorkflow(ConfigPath).LoadConfig(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderGroups(cfg))
			return nil
		},
	}
}
