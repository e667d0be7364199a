package cmd

// All the code that talks directly to the viper package lives in this
// file.

import (
	"github.com/mistle-dev/gowinpll/logger"
	"github.com/spf13/viper"
	"os"
	"path/filepath"
)

// configUsed holds the path of the config file loadConfig read, if
// any; PersistentPreRun mentions it in verbose mode.
var configUsed string

// loadConfig reads tool settings from a file called 'gowinpll' with
// any extension viper understands (gowinpll.toml, gowinpll.yaml, ...).
// It looks in the current directory first, so a project checkout can
// pin its own divider bounds, then in $HOME/.config/gowinpll.
// Tables report, solve and gen fill the matching option structs, and
// a top-level verbose key turns on diagnostics; flags parsed later
// override anything set here.  Returns true if a config file was
// read.
func loadConfig() bool {
	viper.SetConfigName("gowinpll") // name of config file (without extension)
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "gowinpll"))
	}
	if err := viper.ReadInConfig(); err != nil {
		return false
	}
	viper.UnmarshalKey("report", &reportOpts)
	viper.UnmarshalKey("solve", &solveOpts)
	viper.UnmarshalKey("gen", &genOpts)
	if viper.IsSet("verbose") {
		logger.Verbose = viper.GetBool("verbose")
	}
	configUsed = viper.ConfigFileUsed()
	return true
}
