package main

import (
	"os"

	rosebotcmder "github.com/rosemira/rosebot/cmd/rosebot"
)

func main() {
	cmd := rosebotcmder.NewRosebotCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
