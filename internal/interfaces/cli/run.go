package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lite-lake/ipsync/internal/application/orchestrator"
	"github.com/lite-lake/ipsync/internal/infrastructure/logger"
)

func newRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <group>",
		Short: "Run one resolve group",
		Long:  "Acquire candidates for a resolve group, reconcile its DNS records and send notifications.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(cmd, args[0])
		},
	}
}

func runGroup(cmd *cobra.Command, group string) error {
	ctx := cmd.Context()
	wf := orchestrator.NewWorkflow(ConfigPath)
	defer func() {
		if err := wf.Close(); err != nil {
			logger.Warn("failed to close ssh connections", "error", err)
		}
	}()

	cfg, err := wf.LoadAndValidate(ctx)
	if err != nil {
		return err
	}
	resolver, err := wf.ResolveSecrets(cfg)
	if err != nil {
		return err
	}
	runner, err := wf.NewRunner(cfg, resolver)
	if err != nil {
		return err
	}

	report, err := runner.Run(ctx, group)
	if report != nil {
		fmt.Fprint(cmd.OutOrStdout(), RenderReport(report, err))
	}
	if err != nil {
		logger.Error("run failed", "group", group, "error", err)
		return err
	}
	return nil
}
