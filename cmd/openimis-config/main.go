// Package main is the entry point for openimis-config.
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/openimis/fe-config/internal/cmd"
	"github.com/openimis/fe-config/internal/output"
	"github.com/openimis/fe-config/internal/version"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	// fang prints the error; only the exit code is left to set
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.GetInfo().String()),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		code := cmd.ExitCodeFromError(err)
		output.Debug("exiting", "code", code, "status", cmd.ExitCodeName(code))
		os.Exit(code)
	}
}
