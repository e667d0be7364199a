// Package cmd wires the gowinpll commands together.  The root
// command doubles as the report command so the everyday invocation
// stays short: gowinpll pll.v
package cmd

import (
	"github.com/mistle-dev/gowinpll/logger"
	"github.com/mistle-dev/gowinpll/netlist"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// errReported marks a failure whose message already went out in the
// command's own format, so Execute only has to set the exit status.
var errReported = errors.New("already reported")

// rootCmd runs a clock report when handed a netlist directly; bare
// invocations get the help screen.
var rootCmd = &cobra.Command{
	Use:   "gowinpll [netlist]",
	Short: "Work out the clocks a Gowin PLLA generates from its netlist parameters",
	Long: `gowinpll reads the defparam assignments of a Gowin GW5A-family PLLA
instance and reports the clocks the block generates: the input clock,
the VCO rate every channel divides down from (pf), and the frequency
and static phase of each enabled output.

Point it at the Verilog the Gowin IP generator wrote:

  gowinpll video_pll.v

Settings shared between runs can live in a gowinpll config file; see
the report, solve and gen subcommands for what can be set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runReport(cmd.OutOrStdout(), args[0])
	},
	Args: cobra.MaximumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if configUsed != "" {
			logger.Info("settings from %s", configUsed)
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute parses the command line and runs the chosen command,
// returning the process exit status.  The config file is read before
// cobra parses anything, so flag values win over config values.
func Execute() int {
	loadConfig()
	if err := rootCmd.Execute(); err != nil {
		if err != errReported {
			logger.Error("%v", err)
		}
		return 1
	}
	return 0
}

// warn echoes extractor warnings; they only show in verbose mode.
func warn(warns []netlist.Warning) {
	for _, w := range warns {
		logger.Info("line %d: %s", w.Line, w.Text)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&logger.Verbose, "verbose", "v", false, "also report dropped defparam lines and config file use")
}
