package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/prisma-cascade/cli/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Get().FullString())
	},
}

func init() {
	rootCmd.Version = version.Get().String()
	rootCmd.AddCommand(versionCmd)
}
