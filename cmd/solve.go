package cmd

import (
	"fmt"
	"github.com/mistle-dev/gowinpll/pll"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"strconv"
)

// solveOpts embeds the search bounds so the config file's solve table
// can set everything in one place, emit options included.
var solveOpts = struct {
	pll.SolveOptions `mapstructure:",squash"`
	Emit             bool   `mapstructure:"emit"`
	Instance         string `mapstructure:"instance"`
}{
	SolveOptions: pll.DefaultSolveOptions(),
	Instance:     "PLLA_inst",
}

// solveCmd inverts the usual direction: instead of reading dividers
// out of a netlist, it finds dividers for a wanted frequency.
var solveCmd = &cobra.Command{
	Use:   "solve <mhz>",
	Short: "Find divider settings that hit a target output frequency",
	Long: `solve searches IDIV_SEL, FBDIV_SEL, MDIV_SEL and the output divider
for the combination that brings one output channel closest to the
requested frequency, and prints the winning settings with the exact
frequency and error they give.  --frac admits eighth steps on MDIV
and ODIV when integers cannot land close enough.

The bounds are search limits, nothing more; whether a combination is
legal for your device and speed grade is between you and the
datasheet.

  gowinpll solve 74.25 --fclkin 27
  gowinpll solve 148.5 --frac --emit > pll_params.v`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return errors.Errorf("target %q is not a frequency in MHz", args[0])
		}
		s, err := pll.Solve(target, solveOpts.SolveOptions)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if solveOpts.Emit {
			cfg, err := s.Config(solveOpts.Fclkin)
			if err != nil {
				return err
			}
			return pll.WriteDefparams(out, cfg, solveOpts.Instance)
		}
		fmt.Fprintf(out, "Target: %s Mhz\n", pll.FormatMHz(target))
		fmt.Fprintf(out, "Input clock: %s Mhz\n", pll.FormatMHz(solveOpts.Fclkin))
		fmt.Fprintf(out, "IDIV_SEL: %d\nFBDIV_SEL: %d\nMDIV_SEL: %d\n", s.IdivSel, s.FbdivSel, s.MdivSel)
		if s.MdivFrac != 0 {
			fmt.Fprintf(out, "MDIV_FRAC_SEL: %d\n", s.MdivFrac)
		}
		fmt.Fprintf(out, "ODIV0_SEL: %d\n", s.OdivSel)
		if s.OdivFrac != 0 {
			fmt.Fprintf(out, "ODIV0_FRAC_SEL: %d\n", s.OdivFrac)
		}
		fmt.Fprintf(out, "pf: %s Mhz\n", pll.FormatMHz(s.Pf))
		fmt.Fprintf(out, "Freq: %s Mhz\n", pll.FormatMHz(s.Freq))
		fmt.Fprintf(out, "Error: %s Mhz\n", pll.FormatMHz(s.Err))
		return nil
	},
	Args: cobra.ExactArgs(1),
}

func init() {
	rootCmd.AddCommand(solveCmd)
	flag := solveCmd.Flags()
	flag.Float64Var(&solveOpts.Fclkin, "fclkin", solveOpts.Fclkin, "input clock in MHz")
	flag.IntVar(&solveOpts.MaxIdiv, "max-idiv", solveOpts.MaxIdiv, "largest IDIV_SEL to try")
	flag.IntVar(&solveOpts.MaxFbdiv, "max-fbdiv", solveOpts.MaxFbdiv, "largest FBDIV_SEL to try")
	flag.IntVar(&solveOpts.MaxMdiv, "max-mdiv", solveOpts.MaxMdiv, "largest MDIV_SEL to try")
	flag.IntVar(&solveOpts.MaxOdiv, "max-odiv", solveOpts.MaxOdiv, "largest output divider to try")
	flag.Float64Var(&solveOpts.PfMin, "pf-min", solveOpts.PfMin, "lowest acceptable pf in MHz, 0 for no bound")
	flag.Float64Var(&solveOpts.PfMax, "pf-max", solveOpts.PfMax, "highest acceptable pf in MHz, 0 for no bound")
	flag.BoolVar(&solveOpts.Frac, "frac", solveOpts.Frac, "admit fractional MDIV and ODIV in eighths")
	flag.BoolVar(&solveOpts.Emit, "emit", solveOpts.Emit, "print the solution as a defparam block instead of a summary")
	flag.StringVar(&solveOpts.Instance, "instance", solveOpts.Instance, "instance path used with --emit")
}
