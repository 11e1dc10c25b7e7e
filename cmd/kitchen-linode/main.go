// Package main is the entry point for the kitchen-linode CLI.
//
// kitchen-linode provisions throwaway Linode instances for automated test
// runs: create stands an instance up, boots it and prepares SSH access;
// destroy tears it down again. Both commands are idempotent against a state
// file, so interrupted runs can be repeated safely.
//
// For detailed usage information, run:
//
//	kitchen-linode --help
package main

import (
	"fmt"
	"os"

	"github.com/testkitchen/kitchen-linode/cmd/kitchen-linode/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
