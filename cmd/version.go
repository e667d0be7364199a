package cmd

import (
	"fmt"
	"github.com/spf13/cobra"
)

// Version can be overridden at build time with
// -ldflags "-X github.com/mistle-dev/gowinpll/cmd.Version=...".
var Version = "0.1"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gowinpll version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gowinpll %s\n", Version)
	},
	Args: cobra.NoArgs,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
