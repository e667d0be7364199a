package cmd

import (
	"fmt"
	"github.com/mistle-dev/gowinpll/netlist"
	"github.com/mistle-dev/gowinpll/pll"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"io"
)

// reportOpts is settable from the config file's report table as well
// as from flags.
var reportOpts = struct {
	Format string `mapstructure:"format"`
}{
	Format: "text",
}

// reportCmd is the spelled-out form of the root invocation, and the
// place where the output format can be chosen.
var reportCmd = &cobra.Command{
	Use:   "report <netlist>",
	Short: "Print the clocks a PLLA netlist generates",
	Long: `report extracts the PLLA parameters from a netlist and prints the
input clock, the VCO rate (pf) and each enabled channel's frequency
and phase.  --format json or --format yaml emit the same numbers
machine-readably.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.OutOrStdout(), args[0])
	},
	Args: cobra.ExactArgs(1),
}

// runReport extracts parameters from the netlist at path, computes
// the clock report and writes it to w in the configured format.
//
// A netlist without an input clock is the one failure reported on w
// itself: the classic "No input clock found!" line, with a failing
// exit status.
func runReport(w io.Writer, path string) error {
	par, warns, err := netlist.ExtractFile(path)
	if err != nil {
		return err
	}
	warn(warns)
	cfg, err := pll.FromParams(par)
	if err != nil {
		if errors.Cause(err) == pll.ErrNoInputClock {
			fmt.Fprintln(w, "No input clock found!")
			return errReported
		}
		return err
	}
	rep := pll.NewReport(cfg)
	switch reportOpts.Format {
	case "", "text":
		return rep.WriteText(w)
	case "json":
		return rep.WriteJSON(w)
	case "yaml":
		return rep.WriteYAML(w)
	}
	return errors.Errorf("unknown report format %q", reportOpts.Format)
}

func init() {
	rootCmd.AddCommand(reportCmd)
	flag := reportCmd.Flags()
	flag.StringVar(&reportOpts.Format, "format", reportOpts.Format, "output format: text, json or yaml")
}
