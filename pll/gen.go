package pll

// Emit a Config back out as Verilog defparam assignments.  The param
// tags on Config and Output drive the emission, so the set of
// parameters written here and the set read by FromParams stay in one
// place.

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
)

// param is one defparam line waiting to be written.
type param struct {
	name  string // parameter name without the instance prefix
	value string // rendered right-hand side, quoting included
}

// WriteDefparams writes cfg as a normalized defparam block for the
// named instance, one assignment per line in a fixed order: the
// common selectors first, then each channel's enable and, for
// enabled channels, its divider and phase settings.  Enables are
// written for all MAX_CLKOUT channels so the block states every
// channel's fate explicitly.  Fractional selectors at zero are left
// out, which is also how the IP generator leaves them.
//
// The output round-trips: extracting it yields cfg again.
func WriteDefparams(w io.Writer, cfg *Config, instance string) error {
	ps := make([]param, 0, 5+5*len(cfg.Outs)+MAX_CLKOUT)
	collectParams(&ps, reflect.ValueOf(cfg).Elem(), -1)
	byIndex := make(map[int]*Output, len(cfg.Outs))
	for i := range cfg.Outs {
		byIndex[cfg.Outs[i].Index] = &cfg.Outs[i]
	}
	for i := 0; i < MAX_CLKOUT; i++ {
		ps = append(ps, param{fmt.Sprintf("CLKOUT%d_EN", i), quoteBool(byIndex[i] != nil)})
		if o := byIndex[i]; o != nil {
			collectParams(&ps, reflect.ValueOf(o).Elem(), i)
		}
	}
	for _, p := range ps {
		if _, err := fmt.Fprintf(w, "defparam %s.%s = %s;\n", instance, p.name, p.value); err != nil {
			return err
		}
	}
	return nil
}

// collectParams walks a struct and renders one param per int field
// carrying a param tag.  ch is substituted into indexed names; pass
// -1 for the common block, whose names have no %d.  Fields tagged
// omit_zero are skipped when zero, and fields tagged quoted get the
// double quotes the IP generator puts on them.
func collectParams(ps *[]param, v reflect.Value, ch int) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("param")
		if name == "" || f.Type.Kind() != reflect.Int {
			continue
		}
		n := int(v.Field(i).Int())
		if n == 0 && f.Tag.Get("omit_zero") == "y" {
			continue
		}
		if ch >= 0 {
			name = fmt.Sprintf(name, ch)
		}
		value := strconv.Itoa(n)
		if f.Tag.Get("quoted") == "y" {
			value = "\"" + value + "\""
		}
		*ps = append(*ps, param{name, value})
	}
}

// quoteBool renders a channel enable the way the IP generator writes
// it, as a quoted TRUE or FALSE.
func quoteBool(b bool) string {
	if b {
		return "\"TRUE\""
	}
	return "\"FALSE\""
}
