// Package main provides the CLI entrypoint for record-generator.
//
// record-generator is a schema-driven codegen tool that:
//   - Reads record declarations from YAML schemas or Go structs carrying
//     //record: directives
//   - Resolves configuration, classifies fields, validates the result
//   - Generates map-backed record types with typed accessor families
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "record-generator",
		Short: "Schema-driven record code generator",
		Long: `record-generator derives map-backed record types from declarative
schemas. Each record gets a discriminant key taxonomy, a typed value
container, accessor method families, a companion extraction type, and
conditional Equal, Clone, and size capabilities.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(describeCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
