package pll

// Search the divider space for settings that hit a requested output
// frequency.  This is the inverse of FromParams plus NewReport: given
// a target in MHz, find IDIV_SEL, FBDIV_SEL, MDIV_SEL and an output
// divider whose computed clock lands closest to it.

import (
	"github.com/pkg/errors"
	"math"
)

// SolveOptions bounds the search.  The Max fields are search limits
// only, not a statement of what any particular device or speed grade
// tolerates; the optional pf window discards VCO rates outside
// PfMin..PfMax (either end 0 means unbounded).  Frac admits eighth
// steps on the feedback post-divider and the output divider.
type SolveOptions struct {
	Fclkin   float64 `mapstructure:"fclkin"`
	MaxIdiv  int     `mapstructure:"max_idiv"`
	MaxFbdiv int     `mapstructure:"max_fbdiv"`
	MaxMdiv  int     `mapstructure:"max_mdiv"`
	MaxOdiv  int     `mapstructure:"max_odiv"`
	PfMin    float64 `mapstructure:"pf_min"`
	PfMax    float64 `mapstructure:"pf_max"`
	Frac     bool    `mapstructure:"frac"`
}

// DefaultSolveOptions returns the bounds used when neither config
// file nor flags say otherwise.  27 MHz is the oscillator on most
// boards carrying a GW5A part.
func DefaultSolveOptions() SolveOptions {
	return SolveOptions{
		Fclkin:   27,
		MaxIdiv:  64,
		MaxFbdiv: 64,
		MaxMdiv:  64,
		MaxOdiv:  128,
	}
}

// Solution is one divider combination and the clock it produces.
type Solution struct {
	IdivSel  int
	FbdivSel int
	MdivSel  int
	MdivFrac int
	OdivSel  int
	OdivFrac int
	Pf       float64 // VCO rate of this combination, MHz
	Freq     float64 // achieved output frequency, MHz
	Err      float64 // |Freq - target|, MHz
}

// Odiv returns the solution's effective output divider.
func (s Solution) Odiv() float64 {
	return float64(s.OdivSel) + float64(s.OdivFrac)/FRAC_DENOM
}

// Config expands the solution into a full PLLA configuration with the
// solved clock on channel 0 and zero phase offset.  fclkin must be a
// whole number of MHz, the only form FCLKIN takes in a netlist.
func (s Solution) Config(fclkin float64) (*Config, error) {
	if fclkin != math.Trunc(fclkin) || fclkin <= 0 {
		return nil, errors.Errorf("input clock %v MHz must be a positive whole number to appear in a netlist", fclkin)
	}
	return &Config{
		Fclkin:   int(fclkin),
		IdivSel:  s.IdivSel,
		FbdivSel: s.FbdivSel,
		MdivSel:  s.MdivSel,
		MdivFrac: s.MdivFrac,
		Outs: []Output{{
			Index:    0,
			OdivSel:  s.OdivSel,
			OdivFrac: s.OdivFrac,
		}},
	}, nil
}

// Solve walks the divider space inside opt's bounds and returns the
// combination whose output frequency lands closest to target MHz.
// Ties go to the lower VCO rate, and among equal VCO rates to the
// combination reached first in ascending (idiv, fbdiv, mdiv) order,
// so the answer is deterministic.
func Solve(target float64, opt SolveOptions) (Solution, error) {
	var best Solution
	if target <= 0 {
		return best, errors.Errorf("target of %v MHz is not a frequency", target)
	}
	if opt.Fclkin <= 0 {
		return best, errors.Errorf("input clock of %v MHz is not a frequency", opt.Fclkin)
	}
	if opt.MaxIdiv < 1 || opt.MaxFbdiv < 1 || opt.MaxMdiv < 1 || opt.MaxOdiv < 1 {
		return best, errors.New("divider search bounds must be at least 1")
	}
	if opt.PfMin > 0 && opt.PfMax > 0 && opt.PfMin > opt.PfMax {
		return best, errors.Errorf("pf window %v..%v MHz is empty", opt.PfMin, opt.PfMax)
	}
	mfracs := 1
	if opt.Frac {
		mfracs = FRAC_DENOM
	}
	found := false
	for id := 1; id <= opt.MaxIdiv; id++ {
		for fb := 1; fb <= opt.MaxFbdiv; fb++ {
			for md := 1; md <= opt.MaxMdiv; md++ {
				for mf := 0; mf < mfracs; mf++ {
					pf := opt.Fclkin * float64(fb) / float64(id) * (float64(md) + float64(mf)/FRAC_DENOM)
					if opt.PfMin > 0 && pf < opt.PfMin {
						continue
					}
					if opt.PfMax > 0 && pf > opt.PfMax {
						continue
					}
					for _, od := range odivCandidates(pf, target, opt) {
						cand := Solution{
							IdivSel:  id,
							FbdivSel: fb,
							MdivSel:  md,
							MdivFrac: mf,
							OdivSel:  od.sel,
							OdivFrac: od.frac,
							Pf:       pf,
						}
						cand.Freq = pf / cand.Odiv()
						cand.Err = math.Abs(cand.Freq - target)
						if !found || better(cand, best) {
							best = cand
							found = true
						}
					}
				}
			}
		}
	}
	if !found {
		return best, errors.New("no divider combination inside the bounds")
	}
	return best, nil
}

// odivCand is one output divider worth evaluating.
type odivCand struct {
	sel, frac int
}

// odivCandidates picks the output dividers to try against one VCO
// rate: the integers bracketing the ideal ratio pf/target, plus the
// eighth steps on either side of it when fractional dividers are
// allowed.  The eighth nearest the ratio is not always nearest in
// frequency (the smaller divider amplifies the miss), so both sides
// are tried.  All are clamped into 1..MaxOdiv, so a candidate always
// divides by something.
func odivCandidates(pf, target float64, opt SolveOptions) []odivCand {
	ideal := pf / target
	lo := clamp(int(math.Floor(ideal)), 1, opt.MaxOdiv)
	hi := clamp(int(math.Ceil(ideal)), 1, opt.MaxOdiv)
	cands := append(make([]odivCand, 0, 4), odivCand{lo, 0})
	if hi != lo {
		cands = append(cands, odivCand{hi, 0})
	}
	if opt.Frac {
		lo8 := clamp(int(math.Floor(ideal*FRAC_DENOM)), FRAC_DENOM, opt.MaxOdiv*FRAC_DENOM)
		hi8 := clamp(int(math.Ceil(ideal*FRAC_DENOM)), FRAC_DENOM, opt.MaxOdiv*FRAC_DENOM)
		if lo8%FRAC_DENOM != 0 {
			cands = append(cands, odivCand{lo8 / FRAC_DENOM, lo8 % FRAC_DENOM})
		}
		if hi8 != lo8 && hi8%FRAC_DENOM != 0 {
			cands = append(cands, odivCand{hi8 / FRAC_DENOM, hi8 % FRAC_DENOM})
		}
	}
	return cands
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// better prefers the smaller frequency error, breaking ties toward
// the lower VCO rate.
func better(a, b Solution) bool {
	if a.Err != b.Err {
		return a.Err < b.Err
	}
	return a.Pf < b.Pf
}
