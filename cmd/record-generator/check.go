package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	checkGo   []string
	checkTags []string
)

func init() {
	checkCmd.Flags().StringArrayVar(&checkGo, "go", nil, "Go package patterns to scan for //record: structs")
	checkCmd.Flags().StringArrayVar(&checkTags, "tags", nil, "extra build tags for --go loading")
}

var checkCmd = &cobra.Command{
	Use:   "check [schema.yaml...]",
	Short: "Validate schemas without generating",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := loadSchemas(args, checkGo, checkTags)
		if err != nil {
			return err
		}

		failed := false

		for _, f := range files {
			_, diags := resolveFile(f)
			printDiagnostics(f.Path, diags)

			if diags.HasErrors() {
				failed = true
			}
		}

		if failed {
			return fmt.Errorf("validation failed")
		}

		fmt.Fprintln(cmd.OutOrStdout(), "ok")

		return nil
	},
}
