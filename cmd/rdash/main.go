// Copyright (c) Axiom Studio AI (axiomstudio.ai)

package main

import (
	"fmt"
	"os"

	"rdash/internal/rdashcli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rdashcli.SetVersionInfo(version, commit, date)
	if err := rdashcli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
