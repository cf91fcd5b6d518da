// Package main is the entry point for the workspace-updater CLI.
package main

import "github.com/smashah/workspace-updater/cmd"

func main() {
	cmd.Execute()
}
