package cmd

import (
	"github.com/mistle-dev/gowinpll/netlist"
	"github.com/mistle-dev/gowinpll/pll"
	"github.com/spf13/cobra"
)

// genOpts is settable from the config file's gen table.
var genOpts = struct {
	Instance string `mapstructure:"instance"`
}{
	Instance: "PLLA_inst",
}

// genCmd reads a netlist the same way report does, then writes the
// configuration back out instead of evaluating it.
var genCmd = &cobra.Command{
	Use:   "gen <netlist>",
	Short: "Re-emit a netlist's PLLA parameters as a clean defparam block",
	Long: `gen extracts a netlist's PLLA parameters and prints them back as a
normalized defparam block: fixed parameter order, an explicit enable
for every channel, zero fractional selectors left out, and whatever
instance path --instance names.  Handy for lifting a PLL setup out of
one generated file into another, or for diffing two setups that were
written down differently.

The emitted block feeds back through gowinpll unchanged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		par, warns, err := netlist.ExtractFile(args[0])
		if err != nil {
			return err
		}
		warn(warns)
		cfg, err := pll.FromParams(par)
		if err != nil {
			return err
		}
		return pll.WriteDefparams(cmd.OutOrStdout(), cfg, genOpts.Instance)
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(genCmd)
	flag := genCmd.Flags()
	flag.StringVar(&genOpts.Instance, "instance", genOpts.Instance, "instance path to put on the emitted lines")
}
