// Model of the Gowin GW5A-family PLLA clock block.
//
// The PLLA multiplies one input clock up to a VCO rate and divides
// that rate down onto as many as eight output channels:
//
// - the input clock FCLKIN first passes the reference divider
// IDIV_SEL, giving the phase detector comparison frequency.
//
// - the feedback path multiplies by FBDIV_SEL and by the feedback
// post-divider MDIV_SEL, so the VCO runs at
// FCLKIN * FBDIV_SEL / IDIV_SEL * MDIV_SEL.  MDIV_FRAC_SEL adds
// eighth steps to MDIV_SEL for rates an integer divider cannot reach.
//
// - each enabled output channel i divides the VCO rate by
// ODIV<i>_SEL (again with optional eighth steps from
// ODIV<i>_FRAC_SEL) and can be offset in phase by the interpolator
// settings CLKOUT<i>_PE_COARSE and CLKOUT<i>_PE_FINE, which count in
// VCO periods and eighths of a VCO period.
//
// All frequencies in this package are MHz, carried as float64 exactly
// like the divider arithmetic, and phases are degrees.  The selector
// values come straight out of a netlist; whether a particular
// combination is legal for a given speed grade is the datasheet's
// business, not this package's.
package pll

import (
	"fmt"
	"github.com/mistle-dev/gowinpll/netlist"
	"github.com/pkg/errors"
)

const (
	MAX_CLKOUT = 8 // number of output channels on a PLLA
	FRAC_DENOM = 8 // fractional selectors count in eighths
)

// ErrNoInputClock is returned by FromParams when the parameters carry
// no usable FCLKIN.  Without the input clock nothing else can be
// computed.
var ErrNoInputClock = errors.New("no input clock")

// Output is one enabled PLLA output channel: the integer and
// fractional parts of its output divider, and the coarse (whole VCO
// period) and fine (eighth of a VCO period) phase interpolator
// settings.  The param tags name the defparam each selector comes
// from, with the channel number filled into the %d.
type Output struct {
	Index    int // channel number, 0..MAX_CLKOUT-1
	OdivSel  int `param:"ODIV%d_SEL"`
	OdivFrac int `param:"ODIV%d_FRAC_SEL" omit_zero:"y"`
	PECoarse int `param:"CLKOUT%d_PE_COARSE"`
	PEFine   int `param:"CLKOUT%d_PE_FINE"`
}

// Odiv returns the channel's effective output divider.
func (o *Output) Odiv() float64 {
	return float64(o.OdivSel) + float64(o.OdivFrac)/FRAC_DENOM
}

// Freq returns the channel's output frequency in MHz, given the VCO
// rate it divides down from.
func (o *Output) Freq(vco float64) float64 {
	return vco / o.Odiv()
}

// Phase returns the channel's static phase offset in degrees.  The
// interpolator counts VCO periods, and one output period spans Odiv
// of those, so the offset is 360 * periods / Odiv.
func (o *Output) Phase() float64 {
	return 360 * (float64(o.PECoarse) + float64(o.PEFine)/FRAC_DENOM) / o.Odiv()
}

// Config is a complete PLLA clock configuration: the input clock in
// whole MHz, the reference divider, the feedback multiplier and
// post-divider, and the enabled output channels.  The param tags
// mirror the defparam names; FCLKIN is the one value the IP generator
// quotes.
type Config struct {
	Fclkin   int      `param:"FCLKIN" quoted:"y"`
	IdivSel  int      `param:"IDIV_SEL"`
	FbdivSel int      `param:"FBDIV_SEL"`
	MdivSel  int      `param:"MDIV_SEL"`
	MdivFrac int      `param:"MDIV_FRAC_SEL" omit_zero:"y"`
	Outs     []Output // enabled channels, ascending by Index
}

// Mdiv returns the effective feedback post-divider including its
// fractional eighths.
func (c *Config) Mdiv() float64 {
	return float64(c.MdivSel) + float64(c.MdivFrac)/FRAC_DENOM
}

// VCO returns the rate every output channel divides down from, in
// MHz.  The operations apply left to right, matching the order the
// hardware composes them: input clock times feedback multiplier,
// over the reference divider, times the post-divider.
func (c *Config) VCO() float64 {
	return float64(c.Fclkin) * float64(c.FbdivSel) / float64(c.IdivSel) * c.Mdiv()
}

// FromParams assembles a Config from extracted netlist parameters.
//
// fclkin must be present and integer-typed; a missing fclkin returns
// ErrNoInputClock.  The divider selectors default to 1 (and the
// fractional selectors to 0) when absent.  A channel is included
// exactly when its clkout<i>_en is present and truthy, and an enabled
// channel must carry its odiv<i>_sel, clkout<i>_pe_coarse and
// clkout<i>_pe_fine; a gap there is an error, not a guess.  Divider
// selections that would divide by zero are also refused, so every
// Config this returns can be evaluated.
func FromParams(p netlist.Params) (*Config, error) {
	v := p.Get("fclkin")
	switch v.Kind {
	case netlist.Missing:
		return nil, ErrNoInputClock
	case netlist.Boolean:
		return nil, errors.Errorf("fclkin: boolean %v is not a clock frequency", v.Bool)
	}
	cfg := &Config{
		Fclkin:   v.Int,
		IdivSel:  p.IntOr("idiv_sel", 1),
		FbdivSel: p.IntOr("fbdiv_sel", 1),
		MdivSel:  p.IntOr("mdiv_sel", 1),
		MdivFrac: p.IntOr("mdiv_frac_sel", 0),
	}
	if cfg.IdivSel == 0 {
		return nil, errors.New("idiv_sel is zero")
	}
	for i := 0; i < MAX_CLKOUT; i++ {
		if !p.Truthy(fmt.Sprintf("clkout%d_en", i)) {
			continue
		}
		out := Output{Index: i}
		var err error
		if out.OdivSel, err = need(p, i, "odiv%d_sel"); err != nil {
			return nil, err
		}
		if out.PECoarse, err = need(p, i, "clkout%d_pe_coarse"); err != nil {
			return nil, err
		}
		if out.PEFine, err = need(p, i, "clkout%d_pe_fine"); err != nil {
			return nil, err
		}
		out.OdivFrac = p.IntOr(fmt.Sprintf("odiv%d_frac_sel", i), 0)
		if out.Odiv() == 0 {
			return nil, errors.Errorf("clkout%d: output divider is zero", i)
		}
		cfg.Outs = append(cfg.Outs, out)
	}
	return cfg, nil
}

// need fetches a parameter an enabled channel cannot do without.
func need(p netlist.Params, ch int, format string) (int, error) {
	name := fmt.Sprintf(format, ch)
	switch v := p.Get(name); v.Kind {
	case netlist.Integer:
		return v.Int, nil
	case netlist.Boolean:
		return 0, errors.Errorf("clkout%d enabled but %s is boolean, want integer", ch, name)
	}
	return 0, errors.Errorf("clkout%d enabled but %s is missing", ch, name)
}
