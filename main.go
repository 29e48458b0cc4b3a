package main

import (
	"fmt"
	"os"

	"chatdeck/cmd"
)

// Version information set via ldflags at build time
var version = "dev"

func main() {
	cmd.SetVersionInfo(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
