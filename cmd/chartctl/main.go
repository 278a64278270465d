package main

import (
	"os"

	"aqariy_web/cmd/chartctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
