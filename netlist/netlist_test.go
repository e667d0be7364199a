package netlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func extract(t *testing.T, src string) (Params, []Warning) {
	t.Helper()
	par, warns, err := Extract(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	return par, warns
}

func TestExtractPLLABlock(t *testing.T) {
	src := `// PLLA instantiation generated by the IP generator
module video_pll (input clkin, output clkout0, output lock);

PLLA PLLA_inst (
    .LOCK(lock),
    .CLKIN(clkin),
    .RESET(1'b0)
);

defparam PLLA_inst.FCLKIN = "50";
defparam PLLA_inst.IDIV_SEL = 1;
DEFPARAM PLLA_inst.FBDIV_SEL = 2
defparam PLLA_inst.MDIV_SEL = 18;
defparam top.u0.PLLA_inst.CLKOUT0_EN = "TRUE";
defparam PLLA_inst.CLKOUT1_EN = "false";
defparam PLLA_inst.CLKFB_SEL = "INTERNAL";
defparam PLLA_inst.CLKOUT0_DT_DIR = 1'b1;

endmodule
`
	par, warns := extract(t, src)

	want := map[string]Value{
		"fclkin":     {Kind: Integer, Int: 50},
		"idiv_sel":   {Kind: Integer, Int: 1},
		"fbdiv_sel":  {Kind: Integer, Int: 2},
		"mdiv_sel":   {Kind: Integer, Int: 18},
		"clkout0_en": {Kind: Boolean, Bool: true},
		"clkout1_en": {Kind: Boolean},
	}
	if len(par) != len(want) {
		t.Errorf("extracted %d parameters, want %d: %v", len(par), len(want), par)
	}
	for name, wv := range want {
		if got := par.Get(name); got != wv {
			t.Errorf("%s = %+v, want %+v", name, got, wv)
		}
	}

	// CLKFB_SEL and CLKOUT0_DT_DIR open as defparams but carry
	// values that coerce to nothing, so they warn.
	if len(warns) != 2 {
		t.Errorf("warnings = %+v, want exactly 2", warns)
	}
}

func TestExtractLaterLineWins(t *testing.T) {
	src := `defparam pll.IDIV_SEL = 3;
defparam pll.IDIV_SEL = 5;
defparam pll.IDIV_SEL = 4'd7;
`
	par, warns := extract(t, src)
	if got := par.Get("idiv_sel"); got != (Value{Kind: Integer, Int: 5}) {
		t.Errorf("idiv_sel = %+v, want the later valid assignment 5", got)
	}
	if len(warns) != 1 {
		t.Errorf("warnings = %+v, want one for the sized literal", warns)
	}
}

func TestExtractLineShapes(t *testing.T) {
	tests := []struct {
		name string
		line string
		warn bool
	}{
		{"wrapped assignment", "defparam pll.FCLKIN =", true},
		{"missing value", "defparam pll.FCLKIN =;", true},
		{"double equals", `defparam pll.FCLKIN == "50";`, true},
		{"five tokens", `defparam pll.FCLKIN = "50" MHz;`, true},
		{"sized literal", "defparam pll.CLKOUT0_DT_DIR = 1'b1;", true},
		{"float value", `defparam pll.FCLKIN = "33.33";`, true},
		{"negative value", "defparam pll.DELAY = -5;", true},
		{"hex value", "defparam pll.MODE = 0x10;", true},
		{"empty value", `defparam pll.NAME = "";`, true},
		{"overflow", "defparam pll.HUGE = 99999999999999999999;", true},
		{"module header", "module video_pll (clkin);", false},
		{"port connection", ".CLKIN(clkin),", false},
		{"line comment", "// defparam set below for each channel", false},
		{"instantiation", "PLLA PLLA_inst (", false},
		{"blank", "   ", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			par, warns := extract(t, tc.line)
			if len(par) != 0 {
				t.Errorf("stored %v, want nothing", par)
			}
			if got := len(warns) > 0; got != tc.warn {
				t.Errorf("warned = %v, want %v (warnings: %+v)", got, tc.warn, warns)
			}
		})
	}
}

func TestExtractLongLine(t *testing.T) {
	// A machine-written port map can run far past bufio's default
	// token size on a single line; it must be ignored like any other
	// alien line, not turn into a read error.
	long := "assign bus = {" + strings.Repeat("port_a, ", 20000) + "port_a};"
	par, warns := extract(t, long+"\ndefparam pll.FCLKIN = \"27\";\n")
	if got := par.Get("fclkin"); got != (Value{Kind: Integer, Int: 27}) {
		t.Errorf("fclkin = %+v, want 27", got)
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %+v, want none", warns)
	}
}

func TestExtractAcceptedValueForms(t *testing.T) {
	src := `defparam a.NOSEMI = 12
defparam a.PADDED = 007;
defparam a.UNQUOTED_BOOL = TRUE;
defparam a.MIXEDCASE = "False";
defparam deep.path.b.NODOT = 3;
defparam NAKED = 4;
`
	par, warns := extract(t, src)
	want := map[string]Value{
		"nosemi":        {Kind: Integer, Int: 12},
		"padded":        {Kind: Integer, Int: 7},
		"unquoted_bool": {Kind: Boolean, Bool: true},
		"mixedcase":     {Kind: Boolean},
		"nodot":         {Kind: Integer, Int: 3},
		"naked":         {Kind: Integer, Int: 4},
	}
	if len(par) != len(want) {
		t.Errorf("extracted %v, want %d parameters", par, len(want))
	}
	for name, wv := range want {
		if got := par.Get(name); got != wv {
			t.Errorf("%s = %+v, want %+v", name, got, wv)
		}
	}
	if len(warns) != 0 {
		t.Errorf("warnings = %+v, want none", warns)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	par, warns := extract(t, "")
	if len(par) != 0 || len(warns) != 0 {
		t.Fatalf("empty input gave params %v, warnings %v", par, warns)
	}
}

func TestWarningLineNumbers(t *testing.T) {
	src := "module m;\ndefparam a.B =\n\"50\";\nendmodule\n"
	_, warns := extract(t, src)
	if len(warns) != 1 || warns[0].Line != 2 {
		t.Fatalf("warnings = %+v, want exactly one on line 2", warns)
	}
}

func TestAccessors(t *testing.T) {
	par := Params{
		"fclkin":     {Kind: Integer, Int: 50},
		"mdiv_sel":   {Kind: Integer},
		"clkout0_en": {Kind: Boolean, Bool: true},
		"clkout1_en": {Kind: Boolean},
	}

	if !par.Has("fclkin") || par.Has("idiv_sel") {
		t.Errorf("Has sees the wrong keys")
	}
	if n, ok := par.Int("fclkin"); !ok || n != 50 {
		t.Errorf("Int(fclkin) = %d, %v", n, ok)
	}
	if _, ok := par.Int("clkout0_en"); ok {
		t.Errorf("Int should not see a boolean as an integer")
	}
	if got := par.IntOr("idiv_sel", 1); got != 1 {
		t.Errorf("IntOr on a missing key = %d, want the default", got)
	}
	if got := par.IntOr("clkout0_en", 1); got != 1 {
		t.Errorf("IntOr on a boolean = %d, want the default", got)
	}
	if got := par.IntOr("fclkin", 1); got != 50 {
		t.Errorf("IntOr on an integer = %d, want 50", got)
	}

	truthy := map[string]bool{
		"clkout0_en": true,  // boolean true
		"clkout1_en": false, // boolean false
		"fclkin":     true,  // nonzero integer
		"mdiv_sel":   false, // zero integer
		"absent":     false,
	}
	for name, wantT := range truthy {
		if got := par.Truthy(name); got != wantT {
			t.Errorf("Truthy(%s) = %v, want %v", name, got, wantT)
		}
	}

	if got := par.Get("fclkin").String(); got != "50" {
		t.Errorf("String of an integer = %q", got)
	}
	if got := par.Get("clkout0_en").String(); got != "true" {
		t.Errorf("String of a boolean = %q", got)
	}
	if got := par.Get("absent").String(); got != "<missing>" {
		t.Errorf("String of a missing value = %q", got)
	}
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pll.v")
	if err := os.WriteFile(path, []byte(`defparam pll.FCLKIN = "27";`), 0644); err != nil {
		t.Fatal(err)
	}
	par, warns, err := ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if got := par.Get("fclkin"); got != (Value{Kind: Integer, Int: 27}) || len(warns) != 0 {
		t.Errorf("fclkin = %+v, warnings %v", got, warns)
	}

	if _, _, err := ExtractFile(filepath.Join(t.TempDir(), "nope.v")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
