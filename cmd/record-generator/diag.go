package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"record-generator/internal/diagnostic"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	warnLabel  = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// printDiagnostics renders every diagnostic of one schema file to stderr.
func printDiagnostics(path string, diags *diagnostic.Diagnostics) {
	for _, d := range diags.Warnings {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", warnLabel("warning:"), path, d.String())
	}

	for _, d := range diags.Errors {
		fmt.Fprintf(os.Stderr, "%s %s: %s\n", errorLabel("error:"), path, d.String())
	}
}
