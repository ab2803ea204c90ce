package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianoliveira/activity-tray/internal/version"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("activity-tray v%s\n", version.String())
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
