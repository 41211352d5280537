package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"record-generator/internal/derive"
)

var (
	describeGo   []string
	describeTags []string
)

func init() {
	describeCmd.Flags().StringArrayVar(&describeGo, "go", nil, "Go package patterns to scan for //record: structs")
	describeCmd.Flags().StringArrayVar(&describeTags, "tags", nil, "extra build tags for --go loading")
}

var describeCmd = &cobra.Command{
	Use:   "describe [schema.yaml...]",
	Short: "Print resolved artifact sets as JSON",
	Long: `describe resolves the given schemas and prints the derived artifact
sets without generating code. Useful for inspecting what a schema will
produce and for diffing schema changes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := loadSchemas(args, describeGo, describeTags)
		if err != nil {
			return err
		}

		var sets []*derive.ArtifactSet

		for _, f := range files {
			models, diags := resolveFile(f)
			printDiagnostics(f.Path, diags)

			if diags.HasErrors() {
				return fmt.Errorf("schema %s has errors", f.Path)
			}

			for _, m := range models {
				sets = append(sets, derive.Derive(m))
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")

		return enc.Encode(sets)
	},
}
