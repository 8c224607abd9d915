package main

import (
	"os"

	servecmder "github.com/rosemira/rosebot/cmd/rosebot/serve"
)

func main() {
	cmd := servecmder.NewServeCmd()
	cmd.Use = "rosebotd"
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory holding the .rosebot/ config (default: auto-detect)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
