// Package main provides the entry point for the gazetteer CLI tool.
package main

import "github.com/diariobr/gazetteer/cmd/gazetteer/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
