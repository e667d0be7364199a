package pll

// Turn a Config into the clock summary the tool prints.

import (
	"encoding/json"
	"fmt"
	"gopkg.in/yaml.v3"
	"io"
	"strconv"
)

// Report is the computed clock summary for one PLLA configuration.
type Report struct {
	Fclkin  float64        `json:"fclkin_mhz" yaml:"fclkin_mhz"`
	Pf      float64        `json:"pf_mhz" yaml:"pf_mhz"`
	Outputs []OutputReport `json:"outputs" yaml:"outputs"`
}

// OutputReport is one enabled channel's line items in a Report.
type OutputReport struct {
	Index int     `json:"index" yaml:"index"`
	Freq  float64 `json:"freq_mhz" yaml:"freq_mhz"`
	Phase float64 `json:"phase_deg" yaml:"phase_deg"`
}

// NewReport evaluates cfg: the VCO rate once, then frequency and
// phase per enabled channel, in channel order.
func NewReport(cfg *Config) *Report {
	rep := &Report{
		Fclkin:  float64(cfg.Fclkin),
		Pf:      cfg.VCO(),
		Outputs: make([]OutputReport, 0, len(cfg.Outs)),
	}
	for i := range cfg.Outs {
		o := &cfg.Outs[i]
		rep.Outputs = append(rep.Outputs, OutputReport{
			Index: o.Index,
			Freq:  o.Freq(rep.Pf),
			Phase: o.Phase(),
		})
	}
	return rep
}

// FormatMHz renders a frequency or phase in plain decimal, using the
// fewest digits that read back to the same float64.  Whole numbers
// print bare: 1800, not 1800.0 and never an exponent.
func FormatMHz(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteText prints the report in the tool's classic layout:
//
//	Input clock: 50 Mhz
//	pf: 1800 Mhz
//	Output0:
//	  Freq: 450 Mhz
//	  Phase: 180°
//
// A configuration with no enabled channels stops after the pf line.
func (rep *Report) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Input clock: %s Mhz\npf: %s Mhz\n", FormatMHz(rep.Fclkin), FormatMHz(rep.Pf))
	if err != nil {
		return err
	}
	for _, o := range rep.Outputs {
		_, err = fmt.Fprintf(w, "Output%d:\n  Freq: %s Mhz\n  Phase: %s°\n", o.Index, FormatMHz(o.Freq), FormatMHz(o.Phase))
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON emits the report as indented JSON, for pipelines that
// want the numbers without scraping the text layout.
func (rep *Report) WriteJSON(w io.Writer) error {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}

// WriteYAML emits the report as a YAML document.
func (rep *Report) WriteYAML(w io.Writer) error {
	b, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
