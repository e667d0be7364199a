package cmd

import (
	"fmt"
	"github.com/mistle-dev/gowinpll/netlist"
	"github.com/spf13/cobra"
	"sort"
)

// paramsCmd shows the raw material the calculations run on: every
// parameter the extractor kept, before any of them is interpreted.
var paramsCmd = &cobra.Command{
	Use:   "params <netlist>",
	Short: "Dump the parameters extracted from a netlist",
	Long: `params prints every defparam value the extractor kept, one "name =
value" line per parameter in name order.  Useful for checking what
the calculator is working from, or which parameters a netlist sets at
all.  Run with --verbose to also see the defparam lines that were
dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		par, warns, err := netlist.ExtractFile(args[0])
		if err != nil {
			return err
		}
		warn(warns)
		names := make([]string, 0, len(par))
		for name := range par {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, par[name])
		}
		return nil
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}
