package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lite-lake/ipsync/internal/infrastructure/persistence"
)

var (
	ConfigPath  string
	ShowVersion bool
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "ipsync",
	Short: "Best-IP DNS synchronizer",
	Long:  "Ipsync measures or downloads best-performing edge IPs and keeps DNS records, notification channels and published IP lists in line with them.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if ShowVersion {
			fmt.Println(Version)
			os.Exit(0)
		}
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&ConfigPath, "config", "c", persistence.DefaultConfigFile, "Configuration file")
	rootCmd.PersistentFlags().BoolVarP(&ShowVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(newRunCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newGroupsCommand())
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
