// Extract PLLA parameters from a Gowin netlist.
//
// The Gowin IP generator writes the configuration of a GW5A-family
// PLLA primitive as a block of single-line defparam assignments:
//
//	defparam PLLA_inst.FCLKIN = "50";
//	defparam PLLA_inst.IDIV_SEL = 1;
//	defparam PLLA_inst.CLKOUT0_EN = "TRUE";
//
// This package scans Verilog text for lines of exactly that shape and
// collects the parameters whose values are booleans ("TRUE"/"FALSE")
// or unsigned decimal integers.  Those two forms carry everything
// needed to compute the PLL's output clocks; string-valued parameters
// (mode selectors like CLKFB_SEL = "INTERNAL") and sized literals
// (CLKOUT0_DT_DIR = 1'b1) are dropped.
//
// Instance prefixes are stripped and names are lower-cased, so the
// FCLKIN above is stored under "fclkin" no matter what the instance
// is called.  Everything that is not a defparam assignment is
// ignored, which lets a whole generated module (ports, wires, the
// instantiation itself) pass through the scanner unremarked.
package netlist

import (
	"bufio"
	"fmt"
	"github.com/pkg/errors"
	"io"
	"os"
	"strconv"
	"strings"
)

// MAX_LINE is the longest input line Extract accepts.  Generated
// netlists sometimes put an entire port map on one line, far past
// bufio's default token size.
const MAX_LINE = 16 << 20

// Kind tags the coerced type of a parameter value.
type Kind int

const (
	Missing Kind = iota // no value stored under the key
	Boolean             // "TRUE" or "FALSE", any case
	Integer             // unsigned decimal digits
)

// Value is one coerced parameter value.  The zero Value has Kind
// Missing, so a failed map lookup reads as an absent parameter.
type Value struct {
	Kind Kind
	Bool bool // meaningful when Kind == Boolean
	Int  int  // meaningful when Kind == Integer
}

// String renders the value as it would appear in a parameter dump.
func (v Value) String() string {
	switch v.Kind {
	case Boolean:
		return strconv.FormatBool(v.Bool)
	case Integer:
		return strconv.Itoa(v.Int)
	}
	return "<missing>"
}

// Params maps normalized parameter names (instance prefix stripped,
// lower case) to their coerced values.
type Params map[string]Value

// Get returns the value stored under name.  Absent keys yield a
// Missing value.
func (p Params) Get(name string) Value {
	return p[name]
}

// Has reports whether any value is stored under name.
func (p Params) Has(name string) bool {
	return p[name].Kind != Missing
}

// Int returns the integer stored under name and whether name holds
// an integer at all.
func (p Params) Int(name string) (int, bool) {
	v := p[name]
	return v.Int, v.Kind == Integer
}

// IntOr returns the integer stored under name, or def when name is
// absent or holds something other than an integer.
func (p Params) IntOr(name string, def int) int {
	if n, ok := p.Int(name); ok {
		return n
	}
	return def
}

// Truthy reports whether name holds boolean true or a nonzero
// integer.  Missing names are falsy, as are parameters of any other
// shape.
func (p Params) Truthy(name string) bool {
	switch v := p[name]; v.Kind {
	case Boolean:
		return v.Bool
	case Integer:
		return v.Int != 0
	}
	return false
}

// Warning records a line that opened like a defparam assignment but
// was dropped anyway.  The extractor never stops for these; they
// exist so a verbose mode can show what was ignored.
type Warning struct {
	Line int    // 1-based line number in the input
	Text string // what kept the line out of the parameter map
}

// Extract scans Verilog text for single-line defparam assignments and
// returns the parameters whose values coerce to a boolean or an
// integer.  A later assignment to a name overwrites an earlier one; a
// value that fails coercion is dropped without disturbing whatever
// the name already held.  The returned error only reports a failure
// to read from r.
func Extract(r io.Reader) (Params, []Warning, error) {
	par := Params{}
	var warns []Warning
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, MAX_LINE)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		line = strings.TrimRight(line, ";")
		tok := strings.Fields(line)
		if len(tok) == 0 || !strings.EqualFold(tok[0], "defparam") {
			continue
		}
		if len(tok) != 4 {
			warns = append(warns, Warning{lineno, fmt.Sprintf("defparam split into %d tokens, want 4", len(tok))})
			continue
		}
		if tok[2] != "=" {
			warns = append(warns, Warning{lineno, fmt.Sprintf("defparam third token is %q, want \"=\"", tok[2])})
			continue
		}
		name := normalize(tok[1])
		v, ok := coerce(strings.Trim(tok[3], "\""))
		if !ok {
			warns = append(warns, Warning{lineno, fmt.Sprintf("%s: value %s is neither boolean nor decimal", name, tok[3])})
			continue
		}
		par[name] = v
	}
	if err := sc.Err(); err != nil {
		return nil, warns, errors.Wrap(err, "reading netlist")
	}
	return par, warns, nil
}

// ExtractFile runs Extract over the named file.
func ExtractFile(path string) (Params, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Extract(f)
}

// normalize strips the instance path from a dotted parameter name and
// lower-cases what is left, so "PLLA_inst.FCLKIN" and "u0.pll.fclkin"
// both become "fclkin".
func normalize(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return strings.ToLower(name)
}

// coerce turns the raw text of a defparam value (quotes already
// stripped) into a typed Value.  TRUE and FALSE in any case become
// booleans; nonempty runs of decimal digits become integers.
// Anything else, including sized literals like 1'b1, floats, negative
// numbers and device names, reports ok == false.
func coerce(raw string) (v Value, ok bool) {
	switch strings.ToLower(raw) {
	case "true":
		return Value{Kind: Boolean, Bool: true}, true
	case "false":
		return Value{Kind: Boolean}, true
	}
	if raw == "" {
		return
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// all digits but too big for an int
		return
	}
	return Value{Kind: Integer, Int: n}, true
}
