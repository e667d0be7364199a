package main

import (
	"github.com/mistle-dev/gowinpll/cmd"
	"os"
)

func main() {
	os.Exit(cmd.Execute())
}
