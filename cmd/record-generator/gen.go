package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"record-generator/internal/derive"
	"record-generator/internal/gen"
)

var (
	genOut     string
	genPackage string
	genGo      []string
	genTags    []string
	genDebug   bool
)

func init() {
	genCmd.Flags().StringVarP(&genOut, "out", "o", "./generated", "output directory")
	genCmd.Flags().StringVarP(&genPackage, "package", "p", "", "generated package name (default: derived from each input)")
	genCmd.Flags().StringArrayVar(&genGo, "go", nil, "Go package patterns to scan for //record: structs")
	genCmd.Flags().StringArrayVar(&genTags, "tags", nil, "extra build tags for --go loading")
	genCmd.Flags().BoolVar(&genDebug, "debug", false, "dump resolved models to stderr")
}

var genCmd = &cobra.Command{
	Use:   "gen [schema.yaml...]",
	Short: "Generate record packages from schemas",
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := loadSchemas(args, genGo, genTags)
		if err != nil {
			return err
		}

		var out []gen.GeneratedFile

		for _, f := range files {
			models, diags := resolveFile(f)
			printDiagnostics(f.Path, diags)

			if diags.HasErrors() {
				return fmt.Errorf("schema %s has errors", f.Path)
			}

			if genDebug {
				for _, m := range models {
					spew.Fdump(cmd.ErrOrStderr(), m)
				}
			}

			sets := make([]*derive.ArtifactSet, 0, len(models))
			for _, m := range models {
				sets = append(sets, derive.Derive(m))
			}

			pkg := genPackage
			if pkg == "" {
				pkg = packageFor(f.Path)
			}

			g := gen.NewGenerator(gen.Options{
				Package:   pkg,
				Source:    f.Path,
				Imports:   f.Imports,
				OutputDir: genOut,
			})

			file, err := g.Generate(sets)
			if err != nil {
				return err
			}

			out = append(out, *file)
		}

		if err := gen.WriteFiles(out, genOut); err != nil {
			return err
		}

		for _, f := range out {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", filepath.Join(genOut, f.Filename))
		}

		return nil
	},
}

// packageFor derives a package name from a schema path: the base name with
// extension stripped, lowercased, non-identifier characters dropped.
func packageFor(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder

	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r >= '0' && r <= '9':
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		}
	}

	if b.Len() == 0 {
		return "records"
	}

	return b.String()
}
