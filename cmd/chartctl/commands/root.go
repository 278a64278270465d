// Package commands implements the chartctl command line tool.
package commands

import (
	"github.com/spf13/cobra"

	"aqariy_web/internal/app/config"
)

// Execute runs the root command with os.Args.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chartctl",
		Short:         "Render market-range charts and issue admin tokens",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
		},
	}
	root.AddCommand(renderCmd(), tokenCmd())
	return root
}
