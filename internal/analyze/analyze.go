package analyze

import (
	"fmt"
	"strings"

	"golang.org/x/tools/go/packages"

	"record-generator/internal/schema"
)

// LoadMode specifies what information to load from packages. Extraction is
// syntactic, so types are not needed.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax

// Config controls package loading.
type Config struct {
	// Dir is the directory to load from. Empty means the current one.
	Dir string

	// Patterns are the package patterns to load ("./...", "./schema").
	Patterns []string

	// Tags are extra build tags, letting schema-only files sit behind a
	// build constraint.
	Tags []string
}

// Load loads the configured packages and extracts every record declaration
// found in them, one schema file per source file that declares records.
func Load(cfg Config) ([]*schema.File, error) {
	pcfg := &packages.Config{
		Mode: LoadMode,
		Dir:  cfg.Dir,
	}

	if len(cfg.Tags) > 0 {
		pcfg.BuildFlags = []string{"-tags=" + strings.Join(cfg.Tags, ",")}
	}

	pkgs, err := packages.Load(pcfg, cfg.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}

	var loadErrs []string

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			loadErrs = append(loadErrs, e.Error())
		}
	})

	if len(loadErrs) > 0 {
		return nil, fmt.Errorf("loading packages: %s", strings.Join(loadErrs, "; "))
	}

	var files []*schema.File

	for _, pkg := range pkgs {
		for _, syntax := range pkg.Syntax {
			f, err := ExtractFile(pkg.Fset, syntax)
			if err != nil {
				return nil, err
			}

			if f != nil {
				files = append(files, f)
			}
		}
	}

	return files, nil
}
